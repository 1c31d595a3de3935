package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/internal/services"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePersonalityService struct{}

func (fakePersonalityService) GetQuestions() []models.Question {
	return []models.Question{{ID: 1, Text: "q", Dimension: "IE"}}
}

func (fakePersonalityService) Submit(_ context.Context, userID primitive.ObjectID, sub models.PersonalitySubmission) (*models.Personality, error) {
	if len(sub.Answers) == 0 && len(sub.Scores) == 0 {
		return nil, fmt.Errorf("%w: answers or scores are required", services.ErrValidation)
	}
	return &models.Personality{UserID: userID, PersonalityType: "INTJ"}, nil
}

func (fakePersonalityService) GetPersonality(context.Context, primitive.ObjectID) (*models.Personality, error) {
	return &models.Personality{PersonalityType: "ENFP", Persona: "Campaigner"}, nil
}

func TestGetQuestionsHandler(t *testing.T) {
	h := NewPersonalityHandler(fakePersonalityService{})
	rec := httptest.NewRecorder()

	h.GetQuestionsHandler(rec, newRequest(t, http.MethodGet, "/", nil, primitive.NewObjectID(), nil))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["questions"], 1)
}

func TestSubmitHandler(t *testing.T) {
	h := NewPersonalityHandler(fakePersonalityService{})

	rec := httptest.NewRecorder()
	sub := models.PersonalitySubmission{Answers: []models.Answer{{QuestionID: 1, Value: 5}}}
	h.SubmitHandler(rec, newRequest(t, http.MethodPost, "/", sub, primitive.NewObjectID(), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Personality saved successfully", body["message"])

	rec = httptest.NewRecorder()
	h.SubmitHandler(rec, newRequest(t, http.MethodPost, "/", models.PersonalitySubmission{}, primitive.NewObjectID(), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "answers or scores are required")
}

func TestGetPersonalityHandler(t *testing.T) {
	h := NewPersonalityHandler(fakePersonalityService{})
	rec := httptest.NewRecorder()

	h.GetPersonalityHandler(rec, newRequest(t, http.MethodGet, "/", nil, primitive.NewObjectID(), nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	personality := body["personality"].(map[string]interface{})
	assert.Equal(t, "ENFP", personality["personality_type"])
	assert.Equal(t, "Campaigner", personality["persona_type"])
	assert.NotContains(t, personality, "persona")
}
