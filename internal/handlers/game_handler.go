package handlers

import (
	"context"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/game"
	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GameService interface {
	StartGame(ctx context.Context, userID primitive.ObjectID, level int) (*services.GameStart, error)
	RecordAction(ctx context.Context, userID primitive.ObjectID, req models.GameActionRequest) error
	CheckPlacement(placement models.ItemPlacement) (*game.PlacementCheck, error)
	CompleteGame(ctx context.Context, userID primitive.ObjectID, req models.GameCompletion) (*models.SeverityScore, error)
	GetLeaderboard(ctx context.Context, limit int) ([]models.SeverityScore, error)
	GetResults(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.SeverityScore, error)
}

// GameHandler serves the screening game. Errors use {"error": message}.
type GameHandler struct {
	Service GameService
}

func NewGameHandler(service GameService) *GameHandler {
	return &GameHandler{Service: service}
}

func gameError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	logError(r, err, status)
	writeJSON(w, status, map[string]string{"error": errorMessage(err, status, fallback)})
}

// POST /api/game/start
func (h *GameHandler) StartGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		gameError(w, r, err, "")
		return
	}

	var req models.GameStartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	start, err := h.Service.StartGame(r.Context(), userID, req.Level)
	if err != nil {
		gameError(w, r, err, "Failed to start game")
		return
	}
	writeJSON(w, http.StatusOK, start)
}

// POST /api/game/action
func (h *GameHandler) RecordActionHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		gameError(w, r, err, "")
		return
	}

	var req models.GameActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.Service.RecordAction(r.Context(), userID, req); err != nil {
		gameError(w, r, err, "Failed to record action")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// POST /api/game/check-placement
func (h *GameHandler) CheckPlacementHandler(w http.ResponseWriter, r *http.Request) {
	var placement models.ItemPlacement
	if err := decodeJSON(w, r, &placement); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	check, err := h.Service.CheckPlacement(placement)
	if err != nil {
		gameError(w, r, err, "Failed to check placement")
		return
	}
	writeJSON(w, http.StatusOK, check)
}

// POST /api/game/complete
func (h *GameHandler) CompleteGameHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		gameError(w, r, err, "")
		return
	}

	var req models.GameCompletion
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.Service.CompleteGame(r.Context(), userID, req)
	if err != nil {
		gameError(w, r, err, "Failed to complete game")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "result": result})
}

// GET /api/game/leaderboard?limit=10
func (h *GameHandler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	results, err := h.Service.GetLeaderboard(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		gameError(w, r, err, "Failed to load leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": results})
}

// GET /api/game/results
func (h *GameHandler) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		gameError(w, r, err, "")
		return
	}

	results, err := h.Service.GetResults(r.Context(), userID, queryInt(r, "limit", 0))
	if err != nil {
		gameError(w, r, err, "Failed to load results")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}
