package models

const OnboardingStepGame = "game"

// OnboardingGames are the screening games a new user can be assigned.
var OnboardingGames = []string{"ocd_pattern", "memory_game", "focus_game"}

type OnboardingUpdate struct {
	Step   string `json:"step"`
	Status string `json:"status"`
}
