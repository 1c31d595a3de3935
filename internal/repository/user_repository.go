package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// publicUserProjection never includes the password hash.
var publicUserProjection = bson.M{"_id": 1, "username": 1, "full_name": 1, "avatar": 1}

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user. Relationship arrays start empty so later
// $addToSet/$pull updates always target an array.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}
	if user.SentFriendRequests == nil {
		user.SentFriendRequests = []primitive.ObjectID{}
	}
	if user.ReceivedFriendRequests == nil {
		user.ReceivedFriendRequests = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUser
		}
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	user.ID = insertedID

	logrus.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetUserByUsername retrieves a user by exact username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Warn("Failed to find user by ID")
		return nil, err
	}
	return user, nil
}

// UpdateProfile sets the provided profile fields and returns the new document.
func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.FullName != nil {
		set["full_name"] = *upd.FullName
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logrus.WithError(err).WithField("userID", id.Hex()).Error("Failed to update user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) updateFields(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return r.updateFields(ctx, id, bson.M{"last_active_at": time.Now()})
}

func (r *UserRepository) SetPersonalityType(ctx context.Context, id primitive.ObjectID, personalityType string) error {
	return r.updateFields(ctx, id, bson.M{"personality_type": personalityType, "updated_at": time.Now()})
}

// UpdateStreak stores the streak counter and the day it was last extended.
func (r *UserRepository) UpdateStreak(ctx context.Context, id primitive.ObjectID, streak int, completedOn time.Time) error {
	return r.updateFields(ctx, id, bson.M{
		"streak":                    streak,
		"last_task_completion_date": completedOn,
		"updated_at":                time.Now(),
	})
}

// SetOnboardingStep sets onboarding_status.<step>. Callers validate step.
func (r *UserRepository) SetOnboardingStep(ctx context.Context, id primitive.ObjectID, step, status string) error {
	return r.updateFields(ctx, id, bson.M{"onboarding_status." + step: status, "updated_at": time.Now()})
}

// SearchUsers matches usernames case-insensitively, excluding one user.
func (r *UserRepository) SearchUsers(ctx context.Context, query string, exclude primitive.ObjectID, limit int64) ([]models.PublicUser, error) {
	filter := bson.M{
		"username": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"},
		"_id":      bson.M{"$ne": exclude},
	}
	opts := options.Find().
		SetProjection(publicUserProjection).
		SetSort(bson.D{{Key: "username", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.PublicUser{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// GetPublicUsersByIDs fetches public profiles for a list of ids.
func (r *UserRepository) GetPublicUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.PublicUser, error) {
	users := []models.PublicUser{}
	if len(ids) == 0 {
		return users, nil
	}

	opts := options.Find().SetProjection(publicUserProjection)
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by IDs: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// GetInactiveUsers returns users not seen since the cutoff.
func (r *UserRepository) GetInactiveUsers(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	filter := bson.M{"$or": []bson.M{
		{"last_active_at": bson.M{"$lt": cutoff}},
		{"last_active_at": bson.M{"$exists": false}},
	}}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"password_hash": 0}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch inactive users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, user)
	}
	return users, cursor.Err()
}
