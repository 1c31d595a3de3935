package services

import (
	"context"
	"math/rand"
	"regexp"
	"strings"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Step names become part of a field path, so they are restricted.
var onboardingKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`)

type OnboardingStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	SetOnboardingStep(ctx context.Context, id primitive.ObjectID, step, status string) error
}

type OnboardingService struct {
	users  OnboardingStore
	pickFn func(n int) int
}

func NewOnboardingService(users OnboardingStore) *OnboardingService {
	return &OnboardingService{users: users, pickFn: rand.Intn}
}

func (s *OnboardingService) GetStatus(ctx context.Context, userID primitive.ObjectID) (map[string]string, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.OnboardingStatus == nil {
		return map[string]string{}, nil
	}
	return user.OnboardingStatus, nil
}

func (s *OnboardingService) UpdateStep(ctx context.Context, userID primitive.ObjectID, upd models.OnboardingUpdate) (map[string]string, error) {
	step := strings.TrimSpace(upd.Step)
	status := strings.TrimSpace(upd.Status)
	if !onboardingKeyRegex.MatchString(step) {
		return nil, invalidf("step must be lowercase letters, digits or '_'")
	}
	if status == "" || len(status) > 64 {
		return nil, invalidf("status is required")
	}

	if err := s.users.SetOnboardingStep(ctx, userID, step, status); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID.Hex(), "step": step, "status": status}).Info("Onboarding step updated")
	return s.GetStatus(ctx, userID)
}

// AssignGame picks one of the onboarding games at random and stores it.
func (s *OnboardingService) AssignGame(ctx context.Context, userID primitive.ObjectID) (string, error) {
	choice := models.OnboardingGames[s.pickFn(len(models.OnboardingGames))]
	if err := s.users.SetOnboardingStep(ctx, userID, models.OnboardingStepGame, choice); err != nil {
		return "", err
	}
	return choice, nil
}
