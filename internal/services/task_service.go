package services

import (
	"context"
	"fmt"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/AyushPal0/Mental-Wellness/pkg/sanitize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const heavyWorkload = 5

type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)
	GetTaskByID(ctx context.Context, id, userID primitive.ObjectID) (*models.Task, error)
	GetTasks(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Task, error)
	UpdateTask(ctx context.Context, id, userID primitive.ObjectID, upd models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, id, userID primitive.ObjectID) error
	CountPending(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type StreakStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateStreak(ctx context.Context, id primitive.ObjectID, streak int, completedOn time.Time) error
}

// TaskService encapsulates the business logic for tasks.
type TaskService struct {
	repo      TaskStore
	users     StreakStore
	activity  ActivityLogger
	sanitizer *sanitize.Sanitizer
	now       func() time.Time
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo TaskStore, users StreakStore, activity ActivityLogger, sanitizer *sanitize.Sanitizer) *TaskService {
	return &TaskService{
		repo:      repo,
		users:     users,
		activity:  activity,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// CreateTask stores a new pending task for userID.
func (s *TaskService) CreateTask(ctx context.Context, userID primitive.ObjectID, task *models.Task) (*models.Task, error) {
	task.Title = s.sanitizer.Text(task.Title)
	if task.Title == "" {
		logger.Log.Warn("Task title is empty during creation")
		return nil, invalidf("task title is required")
	}
	task.Description = s.sanitizer.Text(task.Description)
	task.Category = s.sanitizer.Text(task.Category)
	task.ID = primitive.NilObjectID
	task.UserID = userID
	task.Status = models.TaskStatusPending
	task.CompletedAt = nil

	created, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create task")
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// GetTasks lists the caller's tasks, optionally filtered by status.
func (s *TaskService) GetTasks(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Task, error) {
	if status != "" && !validTaskStatus(status) {
		return nil, invalidf("status must be %q or %q", models.TaskStatusPending, models.TaskStatusCompleted)
	}
	return s.repo.GetTasks(ctx, userID, status)
}

// UpdateTask applies a partial update to one of the caller's tasks. The
// first transition to completed extends the user's streak.
func (s *TaskService) UpdateTask(ctx context.Context, id, userID primitive.ObjectID, upd models.TaskUpdate) (*models.Task, error) {
	if upd.Status != nil && !validTaskStatus(*upd.Status) {
		return nil, invalidf("status must be %q or %q", models.TaskStatusPending, models.TaskStatusCompleted)
	}
	if upd.Title != nil {
		title := s.sanitizer.Text(*upd.Title)
		if title == "" {
			return nil, invalidf("task title cannot be empty")
		}
		upd.Title = &title
	}
	if upd.Description != nil {
		desc := s.sanitizer.Text(*upd.Description)
		upd.Description = &desc
	}
	if upd.Category != nil {
		cat := s.sanitizer.Text(*upd.Category)
		upd.Category = &cat
	}

	existing, err := s.repo.GetTaskByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateTask(ctx, id, userID, upd)
	if err != nil {
		return nil, err
	}

	if existing.Status != models.TaskStatusCompleted && updated.Status == models.TaskStatusCompleted {
		s.recordCompletion(ctx, userID, updated)
	}
	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.repo.DeleteTask(ctx, id, userID)
}

// GetSuggestion returns a hint based on how many tasks are pending.
func (s *TaskService) GetSuggestion(ctx context.Context, userID primitive.ObjectID) (*models.TaskSuggestion, error) {
	pending, err := s.repo.CountPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.TaskSuggestion{
		Suggestion:   SuggestionFor(int(pending)),
		PendingTasks: int(pending),
	}, nil
}

// recordCompletion updates the streak and the activity log. Both are
// best-effort; the task update already succeeded.
func (s *TaskService) recordCompletion(ctx context.Context, userID primitive.ObjectID, task *models.Task) {
	now := s.now()

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Warn("Failed to load user for streak")
	} else {
		streak := NextStreak(user.Streak, user.LastTaskCompletionDate, now)
		if err := s.users.UpdateStreak(ctx, userID, streak, now); err != nil {
			logger.Log.WithError(err).WithField("user_id", userID.Hex()).Warn("Failed to update streak")
		} else {
			logger.Log.WithFields(map[string]interface{}{
				"user_id": userID.Hex(),
				"streak":  streak,
			}).Info("Streak updated")
		}
	}

	if err := s.activity.LogActivity(ctx, userID, models.ActivityTaskCompleted, task.ID.Hex(),
		fmt.Sprintf("Completed task %q", task.Title)); err != nil {
		logger.Log.WithError(err).Warn("Failed to record task completion activity")
	}
}

// NextStreak returns the streak after a completion at now. Days are
// compared in UTC.
func NextStreak(current int, lastCompletion *time.Time, now time.Time) int {
	if lastCompletion == nil || current <= 0 {
		return 1
	}

	days := int(utcDay(now).Sub(utcDay(*lastCompletion)).Hours() / 24)
	switch days {
	case 0:
		return current
	case 1:
		return current + 1
	default:
		return 1
	}
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SuggestionFor maps the number of pending tasks to a suggestion.
func SuggestionFor(pending int) string {
	switch {
	case pending == 0:
		return "No tasks today? Maybe do a quick mindfulness exercise."
	case pending > heavyWorkload:
		return "You’ve got a heavy workload. Take a 5-minute stretch break!"
	default:
		return "Great job staying on track! Stay hydrated."
	}
}

func validTaskStatus(status string) bool {
	return status == models.TaskStatusPending || status == models.TaskStatusCompleted
}
