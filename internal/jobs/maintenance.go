package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultJobTimeout = 5 * time.Minute

type NotificationChecker interface {
	CheckTaskDueSoon(ctx context.Context) (int, error)
	CheckInactiveUsers(ctx context.Context) (int, error)
	DeleteExpiredNotifications(ctx context.Context) (int64, error)
}

type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int, error)
}

// Maintenance groups the periodic background jobs. Each run gets its own
// timeout.
type Maintenance struct {
	Notifications NotificationChecker
	Sessions      SessionPurger
	Timeout       time.Duration
}

func NewMaintenance(notifications NotificationChecker, sessions SessionPurger) *Maintenance {
	return &Maintenance{
		Notifications: notifications,
		Sessions:      sessions,
		Timeout:       defaultJobTimeout,
	}
}

func (m *Maintenance) run(ctx context.Context, name string, fn func(ctx context.Context) (int64, error)) error {
	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	start := time.Now()
	n, err := fn(ctx)
	if err != nil {
		logrus.WithError(err).WithField("job", name).Error("Background job failed")
		return fmt.Errorf("%s: %w", name, err)
	}

	logrus.WithFields(logrus.Fields{
		"job":      name,
		"affected": n,
		"duration": time.Since(start).String(),
	}).Info("Background job completed")
	return nil
}

// RunDueSoonScan reminds users about pending tasks due in the next 24h.
func (m *Maintenance) RunDueSoonScan(ctx context.Context) error {
	return m.run(ctx, "task_due_soon", func(ctx context.Context) (int64, error) {
		n, err := m.Notifications.CheckTaskDueSoon(ctx)
		return int64(n), err
	})
}

// RunInactivityScan nudges users who have not been active for a few days.
func (m *Maintenance) RunInactivityScan(ctx context.Context) error {
	return m.run(ctx, "inactive_users", func(ctx context.Context) (int64, error) {
		n, err := m.Notifications.CheckInactiveUsers(ctx)
		return int64(n), err
	})
}

func (m *Maintenance) RunNotificationCleanup(ctx context.Context) error {
	return m.run(ctx, "expired_notifications", m.Notifications.DeleteExpiredNotifications)
}

func (m *Maintenance) RunSessionSweep(ctx context.Context) error {
	return m.run(ctx, "expired_game_sessions", func(ctx context.Context) (int64, error) {
		n, err := m.Sessions.PurgeExpiredSessions(ctx)
		return int64(n), err
	})
}
