package services

import (
	"context"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// ActivityLogger records entries in a user's activity log.
type ActivityLogger interface {
	LogActivity(ctx context.Context, userID primitive.ObjectID, activityType, targetID, message string) error
}

type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error
	GetUserActivities(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Activity, error)
}

type ActivityService struct {
	repo ActivityStore
}

func NewActivityService(repo ActivityStore) *ActivityService {
	return &ActivityService{repo: repo}
}

// LogActivity logs a user activity
func (s *ActivityService) LogActivity(ctx context.Context, userID primitive.ObjectID, activityType, targetID, message string) error {
	activity := &models.Activity{
		UserID:    userID,
		Type:      activityType,
		TargetID:  targetID,
		Message:   message,
		Timestamp: time.Now(),
	}

	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		logrus.WithError(err).Error("Failed to log activity in service")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     userID.Hex(),
		"action_type": activityType,
	}).Debug("Activity logged")
	return nil
}

// GetRecentActivities clamps limit to [1, 100], defaulting to 20.
func (s *ActivityService) GetRecentActivities(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Activity, error) {
	return s.repo.GetUserActivities(ctx, userID, int64(clampLimit(limit, defaultActivityLimit, maxActivityLimit)))
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
