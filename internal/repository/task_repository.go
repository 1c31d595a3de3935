package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskRepository handles database operations related to tasks
type TaskRepository struct {
	collection *mongo.Collection
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		collection: db.Collection("tasks"),
	}
}

// CreateTask stores a task in the pending state unless a status was given.
func (r *TaskRepository) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert task")
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted ID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	task.ID = insertedID

	logger.Log.WithField("task_id", task.ID.Hex()).Info("Task created successfully")
	return task, nil
}

// GetTaskByID fetches a task owned by userID.
func (r *TaskRepository) GetTaskByID(ctx context.Context, id, userID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", id.Hex()).Error("Failed to find task by ID")
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// GetTasks lists a user's tasks newest first, optionally filtered by status.
func (r *TaskRepository) GetTasks(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Task, error) {
	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch tasks")
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID.Hex(),
		"count":   len(tasks),
	}).Debug("Tasks fetched")
	return tasks, nil
}

// UpdateTask applies a partial update. Moving to completed stamps
// completed_at and moving back to pending clears it.
func (r *TaskRepository) UpdateTask(ctx context.Context, id, userID primitive.ObjectID, upd models.TaskUpdate) (*models.Task, error) {
	now := time.Now()
	set := bson.M{"updated_at": now}
	update := bson.M{"$set": set}

	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
		switch *upd.Status {
		case models.TaskStatusCompleted:
			set["completed_at"] = now
		case models.TaskStatusPending:
			update["$unset"] = bson.M{"completed_at": ""}
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task models.Task
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": userID}, update, opts).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", id.Hex()).Error("Failed to update task")
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	logger.Log.WithField("task_id", id.Hex()).Info("Task updated successfully")
	return &task, nil
}

// DeleteTask deletes a task owned by userID.
func (r *TaskRepository) DeleteTask(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("task_id", id.Hex()).Error("Failed to delete task")
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrTaskNotFound
	}

	logger.Log.WithField("task_id", id.Hex()).Info("Task deleted successfully")
	return nil
}

// CountPending returns how many tasks of the user are still pending.
func (r *TaskRepository) CountPending(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "status": models.TaskStatusPending})
	if err != nil {
		return 0, fmt.Errorf("failed to count pending tasks: %w", err)
	}
	return n, nil
}

// GetPendingTasksDueBetween is used by the due-soon notifier.
func (r *TaskRepository) GetPendingTasksDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	filter := bson.M{
		"status":   models.TaskStatusPending,
		"due_date": bson.M{"$gte": from, "$lte": to},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch due tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode due tasks: %w", err)
	}
	return tasks, nil
}
