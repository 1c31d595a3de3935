package handlers

import (
	"context"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SafetyService interface {
	ReportRiskEvent(ctx context.Context, userID primitive.ObjectID, req models.RiskEventRequest) (*models.RiskEventResult, error)
	GetHistory(ctx context.Context, userID primitive.ObjectID) ([]models.RiskEvent, error)
}

type SafetyHandler struct {
	Service SafetyService
}

func NewSafetyHandler(service SafetyService) *SafetyHandler {
	return &SafetyHandler{Service: service}
}

// POST /api/safety/risk-event
func (h *SafetyHandler) RiskEventHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	var req models.RiskEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.ReportRiskEvent(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "Failed to record risk event")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "data": result})
}

// GET /api/safety/history
func (h *SafetyHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	events, err := h.Service.GetHistory(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to load risk history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "data": events})
}
