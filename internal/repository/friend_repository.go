package repository

import (
	"context"
	"fmt"

	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FriendRepository keeps friendships and pending requests as id arrays on
// the user documents.
type FriendRepository struct {
	collection *mongo.Collection
}

func NewFriendRepository(db *mongo.Database) *FriendRepository {
	return &FriendRepository{
		collection: db.Collection("users"),
	}
}

// SendRequest records a pending request from sender to receiver on both
// documents. The receiver update is guarded so an existing friendship or
// request is reported instead of duplicated.
func (r *FriendRepository) SendRequest(ctx context.Context, senderID, receiverID primitive.ObjectID) error {
	filter := bson.M{
		"_id":                      receiverID,
		"friends":                  bson.M{"$ne": senderID},
		"received_friend_requests": bson.M{"$ne": senderID},
	}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$addToSet": bson.M{"received_friend_requests": senderID},
	})
	if err != nil {
		return fmt.Errorf("failed to send friend request: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.explainRejectedRequest(ctx, senderID, receiverID)
	}

	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": senderID}, bson.M{
		"$addToSet": bson.M{"sent_friend_requests": receiverID},
	}); err != nil {
		return fmt.Errorf("failed to record sent request: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"sender_id":   senderID.Hex(),
		"receiver_id": receiverID.Hex(),
	}).Info("Friend request sent")
	return nil
}

func (r *FriendRepository) explainRejectedRequest(ctx context.Context, senderID, receiverID primitive.ObjectID) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": receiverID})
	if err != nil {
		return fmt.Errorf("failed to look up receiver: %w", err)
	}
	if count == 0 {
		return ErrUserNotFound
	}
	count, err = r.collection.CountDocuments(ctx, bson.M{"_id": receiverID, "friends": senderID})
	if err != nil {
		return fmt.Errorf("failed to look up friendship: %w", err)
	}
	if count > 0 {
		return ErrAlreadyFriends
	}
	return ErrFriendRequestExists
}

// RemoveRequest withdraws a pending request from sender to receiver. It
// returns ErrFriendRequestNotFound when the receiver holds no such request.
func (r *FriendRepository) RemoveRequest(ctx context.Context, senderID, receiverID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": receiverID, "received_friend_requests": senderID},
		bson.M{"$pull": bson.M{"received_friend_requests": senderID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove friend request: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrFriendRequestNotFound
	}

	if _, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": senderID},
		bson.M{"$pull": bson.M{"sent_friend_requests": receiverID}},
	); err != nil {
		return fmt.Errorf("failed to remove sent request: %w", err)
	}
	return nil
}

// AddFriend links both users as friends.
func (r *FriendRepository) AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	if _, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"friends": friendID}},
	); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}

	if _, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": friendID},
		bson.M{"$addToSet": bson.M{"friends": userID}},
	); err != nil {
		return fmt.Errorf("failed to add reverse friend: %w", err)
	}
	return nil
}

// RemoveFriend unlinks both users. Removing a non-friend is reported as
// ErrUserNotFound for the acting user's friend list.
func (r *FriendRepository) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": userID, "friends": friendID},
		bson.M{"$pull": bson.M{"friends": friendID}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	if _, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": friendID},
		bson.M{"$pull": bson.M{"friends": userID}},
	); err != nil {
		return fmt.Errorf("failed to remove reverse friend: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id":   userID.Hex(),
		"friend_id": friendID.Hex(),
	}).Info("Friend removed")
	return nil
}
