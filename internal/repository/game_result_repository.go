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

// GameResultRepository stores scored game sessions.
type GameResultRepository struct {
	collection *mongo.Collection
}

func NewGameResultRepository(db *mongo.Database) *GameResultRepository {
	return &GameResultRepository{
		collection: db.Collection("game_results"),
	}
}

// SaveResult inserts a score. The unique session_id index rejects a second
// result for the same session.
func (r *GameResultRepository) SaveResult(ctx context.Context, score *models.SeverityScore) (*models.SeverityScore, error) {
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, score)
	if err != nil {
		logger.Log.WithError(err).WithField("session_id", score.SessionID).Error("Failed to save game result")
		return nil, fmt.Errorf("failed to save game result: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		score.ID = id
	}
	return score, nil
}

func (r *GameResultRepository) find(ctx context.Context, filter bson.M, sort bson.D, limit int64) ([]models.SeverityScore, error) {
	opts := options.Find().SetSort(sort).SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game results: %w", err)
	}
	defer cursor.Close(ctx)

	scores := []models.SeverityScore{}
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, fmt.Errorf("failed to decode game results: %w", err)
	}
	return scores, nil
}

// GetLeaderboard returns the highest severity scores first.
func (r *GameResultRepository) GetLeaderboard(ctx context.Context, limit int64) ([]models.SeverityScore, error) {
	sort := bson.D{{Key: "severity_score", Value: -1}, {Key: "created_at", Value: 1}}
	return r.find(ctx, bson.M{}, sort, limit)
}

// GetResultsByUser returns a user's results, newest first.
func (r *GameResultRepository) GetResultsByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.SeverityScore, error) {
	return r.find(ctx, bson.M{"user_id": userID}, bson.D{{Key: "created_at", Value: -1}}, limit)
}
