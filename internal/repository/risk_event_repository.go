package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RiskEventRepository struct {
	collection *mongo.Collection
}

func NewRiskEventRepository(db *mongo.Database) *RiskEventRepository {
	return &RiskEventRepository{
		collection: db.Collection("risk_events"),
	}
}

func (r *RiskEventRepository) CreateRiskEvent(ctx context.Context, event *models.RiskEvent) (*models.RiskEvent, error) {
	event.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert risk event")
		return nil, fmt.Errorf("failed to insert risk event: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = id
	}
	return event, nil
}

// GetUserRiskEvents returns a user's own history, newest first.
func (r *RiskEventRepository) GetUserRiskEvents(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.RiskEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch risk events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.RiskEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode risk events: %w", err)
	}
	return events, nil
}
