package handlers

import (
	"context"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OnboardingService interface {
	GetStatus(ctx context.Context, userID primitive.ObjectID) (map[string]string, error)
	UpdateStep(ctx context.Context, userID primitive.ObjectID, upd models.OnboardingUpdate) (map[string]string, error)
	AssignGame(ctx context.Context, userID primitive.ObjectID) (string, error)
}

type OnboardingHandler struct {
	Service OnboardingService
}

func NewOnboardingHandler(service OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{Service: service}
}

// GET /api/onboarding/status
func (h *OnboardingHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	status, err := h.Service.GetStatus(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to load onboarding status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"onboarding_status": status})
}

// POST /api/onboarding/update
func (h *OnboardingHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	var upd models.OnboardingUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := h.Service.UpdateStep(r.Context(), userID, upd)
	if err != nil {
		respondError(w, r, err, "Failed to update onboarding")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"onboarding_status": status})
}

// POST /api/onboarding/assign-game
func (h *OnboardingHandler) AssignGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	choice, err := h.Service.AssignGame(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to assign game")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"game": choice})
}
