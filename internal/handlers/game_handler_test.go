package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AyushPal0/Mental-Wellness/internal/game"
	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/internal/services"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGameService struct {
	actionErr   error
	completeErr error
	lastLimit   int
}

func (f *fakeGameService) StartGame(_ context.Context, _ primitive.ObjectID, level int) (*services.GameStart, error) {
	if level < 0 || level > 2 {
		return nil, services.ErrInvalidLevel
	}
	return &services.GameStart{SessionID: "abc", Level: level, TimeLimit: 60}, nil
}

func (f *fakeGameService) RecordAction(context.Context, primitive.ObjectID, models.GameActionRequest) error {
	return f.actionErr
}

func (f *fakeGameService) CheckPlacement(p models.ItemPlacement) (*game.PlacementCheck, error) {
	if p.ID != "circle1" {
		return nil, services.ErrItemNotFound
	}
	return &game.PlacementCheck{CorrectlyPositioned: true}, nil
}

func (f *fakeGameService) CompleteGame(_ context.Context, userID primitive.ObjectID, req models.GameCompletion) (*models.SeverityScore, error) {
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	return &models.SeverityScore{SessionID: req.SessionID, UserID: userID, SeverityScore: 60, Interpretation: "Moderate"}, nil
}

func (f *fakeGameService) GetLeaderboard(_ context.Context, limit int) ([]models.SeverityScore, error) {
	f.lastLimit = limit
	return []models.SeverityScore{{SeverityScore: 80}}, nil
}

func (f *fakeGameService) GetResults(context.Context, primitive.ObjectID, int) ([]models.SeverityScore, error) {
	return nil, nil
}

func TestStartGameHandler(t *testing.T) {
	h := NewGameHandler(&fakeGameService{})

	tests := []struct {
		name  string
		level int
		want  int
	}{
		{"valid level", 1, http.StatusOK},
		{"invalid level", 7, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.StartGameHandler(rec, newRequest(t, http.MethodPost, "/api/game/start", models.GameStartRequest{Level: tt.level}, primitive.NewObjectID(), nil))

			assert.Equal(t, tt.want, rec.Code)
			body := decodeBody(t, rec)
			if tt.want == http.StatusOK {
				assert.Equal(t, "abc", body["session_id"])
			} else {
				assert.Equal(t, "Invalid level", body["error"])
			}
		})
	}
}

func TestRecordActionHandler(t *testing.T) {
	t.Run("recorded", func(t *testing.T) {
		h := NewGameHandler(&fakeGameService{})
		rec := httptest.NewRecorder()
		h.RecordActionHandler(rec, newRequest(t, http.MethodPost, "/", models.GameActionRequest{SessionID: "abc"}, primitive.NewObjectID(), nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "recorded", decodeBody(t, rec)["status"])
	})

	t.Run("unknown session", func(t *testing.T) {
		h := NewGameHandler(&fakeGameService{actionErr: game.ErrSessionNotFound})
		rec := httptest.NewRecorder()
		h.RecordActionHandler(rec, newRequest(t, http.MethodPost, "/", models.GameActionRequest{SessionID: "nope"}, primitive.NewObjectID(), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, decodeBody(t, rec), "error")
	})
}

func TestCheckPlacementHandlerUnknownItem(t *testing.T) {
	h := NewGameHandler(&fakeGameService{})
	rec := httptest.NewRecorder()

	h.CheckPlacementHandler(rec, newRequest(t, http.MethodPost, "/", models.ItemPlacement{ID: "hexagon"}, primitive.NilObjectID, nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompleteGameHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewGameHandler(&fakeGameService{})
		rec := httptest.NewRecorder()
		h.CompleteGameHandler(rec, newRequest(t, http.MethodPost, "/", models.GameCompletion{SessionID: "abc"}, primitive.NewObjectID(), nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		result := body["result"].(map[string]interface{})
		assert.Equal(t, "Moderate", result["interpretation"])
	})

	t.Run("already completed", func(t *testing.T) {
		h := NewGameHandler(&fakeGameService{completeErr: services.ErrSessionCompleted})
		rec := httptest.NewRecorder()
		h.CompleteGameHandler(rec, newRequest(t, http.MethodPost, "/", models.GameCompletion{SessionID: "abc"}, primitive.NewObjectID(), nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestLeaderboardHandler(t *testing.T) {
	svc := &fakeGameService{}
	h := NewGameHandler(svc)
	rec := httptest.NewRecorder()

	h.LeaderboardHandler(rec, newRequest(t, http.MethodGet, "/api/game/leaderboard?limit=5", nil, primitive.NilObjectID, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.lastLimit)
	assert.Len(t, decodeBody(t, rec)["leaderboard"], 1)
}
