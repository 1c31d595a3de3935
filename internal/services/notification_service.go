package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	inactivityThreshold = 3 * 24 * time.Hour
	dueSoonWindow       = 24 * time.Hour
)

// Notifier creates in-app notifications. Other services use it for
// best-effort side effects.
type Notifier interface {
	CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteNotification(ctx context.Context, id, userID primitive.ObjectID) error
	GetLatestNotificationByType(ctx context.Context, userID primitive.ObjectID, notifType string) (*models.Notification, error)
	HasNotificationForTarget(ctx context.Context, userID primitive.ObjectID, notifType string, target primitive.ObjectID) (bool, error)
	DeleteExpiredNotifications(ctx context.Context) (int64, error)
}

type InactiveUserSource interface {
	GetInactiveUsers(ctx context.Context, cutoff time.Time) ([]models.User, error)
}

type DueTaskSource interface {
	GetPendingTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error)
}

type NotificationService struct {
	repo  NotificationStore
	users InactiveUserSource
	tasks DueTaskSource
	now   func() time.Time
}

func NewNotificationService(repo NotificationStore, users InactiveUserSource, tasks DueTaskSource) *NotificationService {
	return &NotificationService{
		repo:  repo,
		users: users,
		tasks: tasks,
		now:   time.Now,
	}
}

// CreateNotification logs a new notification for a user
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		TargetID: targetID,
	}
	return s.repo.CreateNotification(ctx, notif)
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID, userID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, notifID, userID)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, notifID, userID primitive.ObjectID) error {
	return s.repo.DeleteNotification(ctx, notifID, userID)
}

// CheckInactiveUsers nudges users who have not been seen for three days, at
// most once per three days.
func (s *NotificationService) CheckInactiveUsers(ctx context.Context) (int, error) {
	now := s.now()
	users, err := s.users.GetInactiveUsers(ctx, now.Add(-inactivityThreshold))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	sent := 0
	for _, user := range users {
		existing, err := s.repo.GetLatestNotificationByType(ctx, user.ID, models.NotificationInactive)
		if err != nil {
			logrus.WithError(err).WithField("user_id", user.ID.Hex()).Warn("Failed to check previous inactivity notification")
			continue
		}
		if existing != nil && now.Sub(existing.CreatedAt) < inactivityThreshold {
			continue
		}

		err = s.CreateNotification(ctx, user.ID, models.NotificationInactive,
			"We miss you!",
			"You haven't checked in for a few days. A short task or a quick game can help you reset.",
			nil,
		)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to send inactivity notification to user %s", user.ID.Hex())
			continue
		}
		sent++
	}
	return sent, nil
}

// CheckTaskDueSoon reminds owners of pending tasks due within a day. Each
// task is reminded once.
func (s *NotificationService) CheckTaskDueSoon(ctx context.Context) (int, error) {
	now := s.now()
	tasks, err := s.tasks.GetPendingTasksDueBetween(ctx, now, now.Add(dueSoonWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	sent := 0
	for _, task := range tasks {
		exists, err := s.repo.HasNotificationForTarget(ctx, task.UserID, models.NotificationTaskDueSoon, task.ID)
		if err != nil {
			logrus.WithError(err).WithField("task_id", task.ID.Hex()).Warn("Failed to check previous due-soon notification")
			continue
		}
		if exists {
			continue
		}

		taskID := task.ID
		message := fmt.Sprintf("Task %q is due soon. Small steps count!", task.Title)
		if err := s.CreateNotification(ctx, task.UserID, models.NotificationTaskDueSoon, "Task due soon", message, &taskID); err != nil {
			logrus.WithError(err).Warnf("Failed to send due soon notification for task %s", task.ID.Hex())
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredNotifications(ctx)
}
