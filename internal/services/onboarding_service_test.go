package services

import (
	"context"
	"testing"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingSteps(t *testing.T) {
	user := &models.User{Username: "ana"}
	svc := NewOnboardingService(newFakeUserStore(user))
	ctx := context.Background()

	status, err := svc.GetStatus(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, status)

	status, err = svc.UpdateStep(ctx, user.ID, models.OnboardingUpdate{Step: "personality", Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", status["personality"])

	for _, step := range []string{"", "a.b", "$set", "Upper"} {
		_, err = svc.UpdateStep(ctx, user.ID, models.OnboardingUpdate{Step: step, Status: "x"})
		assert.ErrorIs(t, err, ErrValidation, step)
	}
}

func TestAssignGame(t *testing.T) {
	user := &models.User{Username: "ana"}
	svc := NewOnboardingService(newFakeUserStore(user))
	svc.pickFn = func(n int) int { return n - 1 }

	game, err := svc.AssignGame(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "focus_game", game)

	status, err := svc.GetStatus(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "focus_game", status[models.OnboardingStepGame])
}
