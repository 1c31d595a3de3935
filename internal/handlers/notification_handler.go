package handlers

import (
	"context"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationService interface {
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkNotificationAsRead(ctx context.Context, notifID, userID primitive.ObjectID) error
	DeleteNotification(ctx context.Context, notifID, userID primitive.ObjectID) error
}

type NotificationHandler struct {
	Service NotificationService
}

func NewNotificationHandler(service NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

// GET /api/notifications
func (h *NotificationHandler) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	notifications, err := h.Service.GetUserNotifications(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to fetch notifications")
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkAsReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	notifID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.MarkNotificationAsRead(r.Context(), notifID, userID); err != nil {
		respondError(w, r, err, "Failed to mark notification as read")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Notification marked as read"})
}

// DELETE /api/notifications/{id}
func (h *NotificationHandler) DeleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	notifID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeleteNotification(r.Context(), notifID, userID); err != nil {
		respondError(w, r, err, "Failed to delete notification")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Notification deleted"})
}
