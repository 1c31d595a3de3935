package handlers

import (
	"context"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskService interface {
	CreateTask(ctx context.Context, userID primitive.ObjectID, task *models.Task) (*models.Task, error)
	GetTasks(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Task, error)
	UpdateTask(ctx context.Context, id, userID primitive.ObjectID, upd models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, id, userID primitive.ObjectID) error
	GetSuggestion(ctx context.Context, userID primitive.ObjectID) (*models.TaskSuggestion, error)
}

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	Service TaskService
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

// POST /api/tasks
func (h *TaskHandler) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	var task models.Task
	if err := decodeJSON(w, r, &task); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.CreateTask(r.Context(), userID, &task)
	if err != nil {
		respondError(w, r, err, "Failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GET /api/tasks?status=
func (h *TaskHandler) GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	tasks, err := h.Service.GetTasks(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, r, err, "Failed to fetch tasks")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// PUT /api/tasks/{id}
func (h *TaskHandler) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var upd models.TaskUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.Service.UpdateTask(r.Context(), taskID, userID, upd)
	if err != nil {
		respondError(w, r, err, "Failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DELETE /api/tasks/{id}
func (h *TaskHandler) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteTask(r.Context(), taskID, userID); err != nil {
		respondError(w, r, err, "Failed to delete task")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Task deleted"})
}

// GET /api/tasks/suggestion
func (h *TaskHandler) GetSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	suggestion, err := h.Service.GetSuggestion(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to build suggestion")
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}
