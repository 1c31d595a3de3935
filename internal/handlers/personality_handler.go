package handlers

import (
	"context"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PersonalityService interface {
	GetQuestions() []models.Question
	Submit(ctx context.Context, userID primitive.ObjectID, sub models.PersonalitySubmission) (*models.Personality, error)
	GetPersonality(ctx context.Context, userID primitive.ObjectID) (*models.Personality, error)
}

// PersonalityHandler answers with the {"success":...} envelope the quiz
// client expects.
type PersonalityHandler struct {
	Service PersonalityService
}

func NewPersonalityHandler(service PersonalityService) *PersonalityHandler {
	return &PersonalityHandler{Service: service}
}

func personalityError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	logError(r, err, status)
	writeJSON(w, status, map[string]interface{}{"success": false, "error": errorMessage(err, status, fallback)})
}

// GET /api/personality/questions
func (h *PersonalityHandler) GetQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "questions": h.Service.GetQuestions()})
}

// POST /api/personality/submit
func (h *PersonalityHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		personalityError(w, r, err, "")
		return
	}

	var sub models.PersonalitySubmission
	if err := decodeJSON(w, r, &sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": err.Error()})
		return
	}

	personality, err := h.Service.Submit(r.Context(), userID, sub)
	if err != nil {
		personalityError(w, r, err, "Failed to save personality")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"message":     "Personality saved successfully",
		"personality": personality,
	})
}

// GET /api/personality/me
func (h *PersonalityHandler) GetPersonalityHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		personalityError(w, r, err, "")
		return
	}

	personality, err := h.Service.GetPersonality(r.Context(), userID)
	if err != nil {
		personalityError(w, r, err, "Failed to load personality")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "personality": personality})
}
