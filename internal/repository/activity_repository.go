package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository is the append-only per-user activity feed.
type ActivityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{
		collection: db.Collection("activities"),
	}
}

func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		logrus.WithError(err).WithField("type", activity.Type).Error("Failed to insert activity")
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		activity.ID = id
	}
	return nil
}

// GetUserActivities returns at most limit entries, newest first.
func (r *ActivityRepository) GetUserActivities(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}
