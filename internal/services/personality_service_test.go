package services

import (
	"context"
	"testing"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePersonalityStore struct {
	saved map[primitive.ObjectID]*models.Personality
}

func (s *fakePersonalityStore) SaveResult(_ context.Context, p *models.Personality) (*models.Personality, error) {
	if existing, ok := s.saved[p.UserID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = primitive.NewObjectID()
	}
	s.saved[p.UserID] = p
	return p, nil
}

func (s *fakePersonalityStore) GetByUser(_ context.Context, userID primitive.ObjectID) (*models.Personality, error) {
	p, ok := s.saved[userID]
	if !ok {
		return nil, repository.ErrPersonalityNotFound
	}
	return p, nil
}

func TestScoreAnswers(t *testing.T) {
	scores, err := ScoreAnswers([]models.Answer{
		{QuestionID: 1, Value: 5},  // E +2
		{QuestionID: 2, Value: 1},  // I +2
		{QuestionID: 3, Value: 4},  // E +1
		{QuestionID: 5, Value: 3},  // neutral
		{QuestionID: 9, Value: 2},  // T +1
		{QuestionID: 13, Value: 5}, // P +2
	})
	require.NoError(t, err)
	assert.Equal(t, 3, scores["E"])
	assert.Equal(t, 2, scores["I"])
	assert.Equal(t, 0, scores["S"])
	assert.Equal(t, 0, scores["N"])
	assert.Equal(t, 1, scores["T"])
	assert.Equal(t, 2, scores["P"])
	assert.Equal(t, "ESTP", TypeFromScores(scores))

	_, err = ScoreAnswers([]models.Answer{{QuestionID: 999, Value: 3}})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = ScoreAnswers([]models.Answer{{QuestionID: 1, Value: 6}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTypeFromScoresTiesGoToFirstLetter(t *testing.T) {
	assert.Equal(t, "ISTJ", TypeFromScores(map[string]int{}))
	assert.Equal(t, "INFP", TypeFromScores(map[string]int{"N": 1, "F": 3, "T": 2, "P": 1}))
}

func TestSubmitPersonality(t *testing.T) {
	user := &models.User{Username: "ana"}
	users := newFakeUserStore(user)
	store := &fakePersonalityStore{saved: map[primitive.ObjectID]*models.Personality{}}
	activity := &fakeActivity{}
	svc := NewPersonalityService(store, users, activity)
	ctx := context.Background()

	_, err := svc.Submit(ctx, user.ID, models.PersonalitySubmission{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Submit(ctx, user.ID, models.PersonalitySubmission{Scores: map[string]int{"X": 1}})
	assert.ErrorIs(t, err, ErrValidation)

	p, err := svc.Submit(ctx, user.ID, models.PersonalitySubmission{
		Scores: map[string]int{"I": 4, "E": 1, "N": 5, "S": 2, "F": 3, "T": 1, "J": 2, "P": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "INFJ", p.PersonalityType)
	assert.Equal(t, "calm_supporter", p.Persona)
	assert.Equal(t, "Connection & Expression", p.WellnessFocus)

	stored, _ := users.GetUserByID(ctx, user.ID)
	assert.Equal(t, "INFJ", stored.PersonalityType)
	require.Len(t, activity.entries, 1)

	got, err := svc.GetPersonality(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestTemperament(t *testing.T) {
	assert.Equal(t, "NT", temperament("ENTP"))
	assert.Equal(t, "NF", temperament("INFJ"))
	assert.Equal(t, "SJ", temperament("ISTJ"))
	assert.Equal(t, "SP", temperament("ESFP"))
}
