package services

import (
	"context"
	"fmt"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dimensions in the order their letters appear in a type such as "INFJ".
var dimensions = []string{"IE", "SN", "TF", "JP"}

// Questions is the quiz. Agreeing with a statement scores the second letter
// of its dimension.
var Questions = []models.Question{
	{ID: 1, Text: "I feel energized after spending time with a group of people.", Dimension: "IE"},
	{ID: 2, Text: "I enjoy starting conversations with people I don't know.", Dimension: "IE"},
	{ID: 3, Text: "I think out loud rather than reflecting quietly first.", Dimension: "IE"},
	{ID: 4, Text: "A busy social weekend sounds better than a quiet one.", Dimension: "IE"},
	{ID: 5, Text: "I often think about future possibilities more than present details.", Dimension: "SN"},
	{ID: 6, Text: "I trust my intuition more than concrete facts.", Dimension: "SN"},
	{ID: 7, Text: "I enjoy abstract ideas and theories.", Dimension: "SN"},
	{ID: 8, Text: "I notice patterns and meanings before I notice specifics.", Dimension: "SN"},
	{ID: 9, Text: "I weigh people's feelings heavily when making decisions.", Dimension: "TF"},
	{ID: 10, Text: "Harmony in a group matters more to me than being right.", Dimension: "TF"},
	{ID: 11, Text: "I am easily moved by other people's stories.", Dimension: "TF"},
	{ID: 12, Text: "I would rather be kind than be blunt.", Dimension: "TF"},
	{ID: 13, Text: "I prefer keeping my plans flexible and open.", Dimension: "JP"},
	{ID: 14, Text: "I often start tasks close to the deadline.", Dimension: "JP"},
	{ID: 15, Text: "I enjoy being spontaneous more than following a schedule.", Dimension: "JP"},
	{ID: 16, Text: "A to-do list feels restrictive to me.", Dimension: "JP"},
}

type persona struct {
	name          string
	wellnessFocus string
}

// personas by temperament.
var personas = map[string]persona{
	"NT": {name: "curious_thinker", wellnessFocus: "Focus & Calm"},
	"NF": {name: "calm_supporter", wellnessFocus: "Connection & Expression"},
	"SJ": {name: "steady_planner", wellnessFocus: "Routine & Rest"},
	"SP": {name: "energetic_explorer", wellnessFocus: "Movement & Play"},
}

type PersonalityStore interface {
	SaveResult(ctx context.Context, p *models.Personality) (*models.Personality, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Personality, error)
}

type PersonalityTypeSetter interface {
	SetPersonalityType(ctx context.Context, id primitive.ObjectID, personalityType string) error
}

type PersonalityService struct {
	repo     PersonalityStore
	users    PersonalityTypeSetter
	activity ActivityLogger
}

func NewPersonalityService(repo PersonalityStore, users PersonalityTypeSetter, activity ActivityLogger) *PersonalityService {
	return &PersonalityService{repo: repo, users: users, activity: activity}
}

func (s *PersonalityService) GetQuestions() []models.Question {
	return Questions
}

// Submit scores the submission, stores the result and tags the user with
// the resulting type.
func (s *PersonalityService) Submit(ctx context.Context, userID primitive.ObjectID, sub models.PersonalitySubmission) (*models.Personality, error) {
	var (
		scores map[string]int
		err    error
	)
	switch {
	case len(sub.Answers) > 0:
		scores, err = ScoreAnswers(sub.Answers)
	case len(sub.Scores) > 0:
		scores, err = normalizeScores(sub.Scores)
	default:
		err = invalidf("answers or scores are required")
	}
	if err != nil {
		return nil, err
	}

	personalityType := TypeFromScores(scores)
	p := personas[temperament(personalityType)]

	saved, err := s.repo.SaveResult(ctx, &models.Personality{
		UserID:          userID,
		Scores:          scores,
		PersonalityType: personalityType,
		Persona:         p.name,
		WellnessFocus:   p.wellnessFocus,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save personality: %w", err)
	}

	if err := s.users.SetPersonalityType(ctx, userID, personalityType); err != nil {
		logrus.WithError(err).WithField("user_id", userID.Hex()).Warn("Failed to store personality type on user")
	}
	if err := s.activity.LogActivity(ctx, userID, models.ActivityPersonalitySubmitted, saved.ID.Hex(),
		fmt.Sprintf("Discovered personality type %s", personalityType)); err != nil {
		logrus.WithError(err).Warn("Failed to record personality activity")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"type":    personalityType,
	}).Info("Personality submitted")
	return saved, nil
}

func (s *PersonalityService) GetPersonality(ctx context.Context, userID primitive.ObjectID) (*models.Personality, error) {
	return s.repo.GetByUser(ctx, userID)
}

// ScoreAnswers turns Likert answers into letter scores: values below 3 add
// (3-value) to the dimension's first letter, values above 3 add (value-3)
// to the second.
func ScoreAnswers(answers []models.Answer) (map[string]int, error) {
	byID := make(map[int]models.Question, len(Questions))
	for _, q := range Questions {
		byID[q.ID] = q
	}

	scores := emptyScores()
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, invalidf("unknown question_id %d", a.QuestionID)
		}
		if a.Value < 1 || a.Value > 5 {
			return nil, invalidf("value for question %d must be between 1 and 5", a.QuestionID)
		}
		switch {
		case a.Value < 3:
			scores[q.Dimension[:1]] += 3 - a.Value
		case a.Value > 3:
			scores[q.Dimension[1:]] += a.Value - 3
		}
	}
	return scores, nil
}

// TypeFromScores picks the higher letter of each dimension; ties go to the
// first letter.
func TypeFromScores(scores map[string]int) string {
	out := make([]byte, 0, len(dimensions))
	for _, dim := range dimensions {
		first, second := dim[:1], dim[1:]
		if scores[second] > scores[first] {
			out = append(out, second[0])
		} else {
			out = append(out, first[0])
		}
	}
	return string(out)
}

func normalizeScores(in map[string]int) (map[string]int, error) {
	scores := emptyScores()
	for letter, v := range in {
		if _, ok := scores[letter]; !ok {
			return nil, invalidf("unknown score letter %q", letter)
		}
		if v < 0 {
			return nil, invalidf("score for %s cannot be negative", letter)
		}
		scores[letter] = v
	}
	return scores, nil
}

func emptyScores() map[string]int {
	scores := make(map[string]int, 2*len(dimensions))
	for _, dim := range dimensions {
		scores[dim[:1]] = 0
		scores[dim[1:]] = 0
	}
	return scores
}

// temperament is NT, NF, SJ or SP.
func temperament(personalityType string) string {
	if personalityType[1] == 'N' {
		return personalityType[1:2] + personalityType[2:3]
	}
	return personalityType[1:2] + personalityType[3:4]
}
