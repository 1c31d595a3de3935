package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const friendSearchLimit = 20

type FriendStore interface {
	SendRequest(ctx context.Context, senderID, receiverID primitive.ObjectID) error
	RemoveRequest(ctx context.Context, senderID, receiverID primitive.ObjectID) error
	AddFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
	RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
}

type FriendUserStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	SearchUsers(ctx context.Context, query string, exclude primitive.ObjectID, limit int64) ([]models.PublicUser, error)
	GetPublicUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.PublicUser, error)
}

// FriendService handles business logic for managing friendships.
type FriendService struct {
	friendRepo FriendStore
	userRepo   FriendUserStore
	notifier   Notifier
}

// NewFriendService creates a new FriendService.
func NewFriendService(friendRepo FriendStore, userRepo FriendUserStore, notifier Notifier) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// SearchUsers finds other users by a case-insensitive username fragment.
func (s *FriendService) SearchUsers(ctx context.Context, userID primitive.ObjectID, query string) ([]models.PublicUser, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalidf("search query is required")
	}
	return s.userRepo.SearchUsers(ctx, query, userID, friendSearchLimit)
}

// SendFriendRequest records a pending request and notifies the receiver.
func (s *FriendService) SendFriendRequest(ctx context.Context, senderID, receiverID primitive.ObjectID) error {
	if senderID == receiverID {
		return invalidf("cannot send a friend request to yourself")
	}

	if err := s.friendRepo.SendRequest(ctx, senderID, receiverID); err != nil {
		return err
	}

	s.notify(ctx, receiverID, senderID, models.NotificationFriendRequest, "New friend request", "%s sent you a friend request")
	return nil
}

// RespondToRequest accepts or rejects the request requesterID sent to userID.
func (s *FriendService) RespondToRequest(ctx context.Context, userID, requesterID primitive.ObjectID, action string) error {
	if action != models.FriendActionAccept && action != models.FriendActionReject {
		return invalidf("action must be %q or %q", models.FriendActionAccept, models.FriendActionReject)
	}

	if err := s.friendRepo.RemoveRequest(ctx, requesterID, userID); err != nil {
		return err
	}

	if action == models.FriendActionAccept {
		if err := s.friendRepo.AddFriend(ctx, userID, requesterID); err != nil {
			return fmt.Errorf("failed to add friend: %w", err)
		}
		s.notify(ctx, requesterID, userID, models.NotificationFriendAccepted, "Friend request accepted", "%s accepted your friend request")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID.Hex(),
		"requester_id": requesterID.Hex(),
		"action":       action,
	}).Info("Friend request answered")
	return nil
}

// GetFriends returns the public profiles of userID's friends.
func (s *FriendService) GetFriends(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetPublicUsersByIDs(ctx, user.Friends)
}

// GetFriendRequests returns pending requests in both directions.
func (s *FriendService) GetFriendRequests(ctx context.Context, userID primitive.ObjectID) (*models.FriendRequests, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	received, err := s.userRepo.GetPublicUsersByIDs(ctx, user.ReceivedFriendRequests)
	if err != nil {
		return nil, err
	}
	sent, err := s.userRepo.GetPublicUsersByIDs(ctx, user.SentFriendRequests)
	if err != nil {
		return nil, err
	}
	return &models.FriendRequests{Received: received, Sent: sent}, nil
}

func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	if userID == friendID {
		return invalidf("cannot remove yourself")
	}
	return s.friendRepo.RemoveFriend(ctx, userID, friendID)
}

// notify tells recipient about something actor did. Failures are logged only.
func (s *FriendService) notify(ctx context.Context, recipient, actor primitive.ObjectID, notifType, title, format string) {
	name := "Someone"
	if user, err := s.userRepo.GetUserByID(ctx, actor); err == nil {
		name = user.Username
	}

	target := actor
	if err := s.notifier.CreateNotification(ctx, recipient, notifType, title, fmt.Sprintf(format, name), &target); err != nil {
		logrus.WithError(err).WithField("user_id", recipient.Hex()).Warn("Failed to create friend notification")
	}
}
