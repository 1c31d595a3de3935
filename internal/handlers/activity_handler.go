package handlers

import (
	"context"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityService interface {
	GetRecentActivities(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Activity, error)
}

type ActivityHandler struct {
	Service ActivityService
}

func NewActivityHandler(service ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: service}
}

// GET /api/activity?limit=
func (h *ActivityHandler) GetActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	activities, err := h.Service.GetRecentActivities(r.Context(), userID, queryInt(r, "limit", 0))
	if err != nil {
		respondError(w, r, err, "Failed to fetch activities")
		return
	}
	writeJSON(w, http.StatusOK, activities)
}
