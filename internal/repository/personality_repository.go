package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PersonalityRepository struct {
	collection *mongo.Collection
}

func NewPersonalityRepository(db *mongo.Database) *PersonalityRepository {
	return &PersonalityRepository{
		collection: db.Collection("personalities"),
	}
}

// SaveResult keeps one result per user; a retake overwrites the previous one.
func (r *PersonalityRepository) SaveResult(ctx context.Context, p *models.Personality) (*models.Personality, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"scores":           p.Scores,
			"personality_type": p.PersonalityType,
			"persona":          p.Persona,
			"wellness_focus":   p.WellnessFocus,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"user_id":    p.UserID,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved models.Personality
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"user_id": p.UserID}, update, opts).Decode(&saved); err != nil {
		logrus.WithError(err).WithField("user_id", p.UserID.Hex()).Error("Failed to save personality")
		return nil, fmt.Errorf("failed to save personality: %w", err)
	}
	return &saved, nil
}

func (r *PersonalityRepository) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Personality, error) {
	var p models.Personality
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPersonalityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch personality: %w", err)
	}
	return &p, nil
}
