package game

import (
	"testing"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	require.Len(t, Levels, 3)
	assert.Len(t, Levels[0].Items, 3)
	assert.Len(t, Levels[1].Items, 6)
	assert.Len(t, Levels[2].Items, 9)

	seen := map[string]bool{}
	for _, level := range Levels {
		for _, item := range level.Items {
			assert.False(t, seen[item.ID], "duplicate item id %s", item.ID)
			seen[item.ID] = true
		}
	}

	item, level, ok := FindItem("cup_blue")
	require.True(t, ok)
	assert.Equal(t, 1, level)
	assert.Equal(t, "blue", item.Color)
	assert.Equal(t, 180.0, item.CorrectX)

	colors := map[string]string{
		"book_small":  "red",
		"book_medium": "blue",
		"book_large":  "green",
		"cup_red":     "red",
		"cup_blue":    "blue",
		"cup_green":   "green",
	}
	for id, want := range colors {
		item, level, ok := FindItem(id)
		require.True(t, ok, id)
		assert.Equal(t, 1, level, id)
		assert.Equal(t, want, item.Color, id)
	}

	_, _, ok = FindItem("missing")
	assert.False(t, ok)

	assert.True(t, ValidLevel(0))
	assert.True(t, ValidLevel(2))
	assert.False(t, ValidLevel(3))
	assert.False(t, ValidLevel(-1))
}

func TestStartItems(t *testing.T) {
	low := StartItems(0, func() float64 { return 0 })
	require.Len(t, low, 3)
	assert.Equal(t, 80.0, low[0].StartX)
	assert.Equal(t, 80.0, low[0].StartY)
	assert.Equal(t, -5.0, low[0].StartRotation)
	assert.Equal(t, "book1", low[0].ID)

	mid := StartItems(2, func() float64 { return 0.5 })
	require.Len(t, mid, 9)
	for _, it := range mid {
		assert.Equal(t, it.CorrectX, it.StartX)
		assert.Equal(t, it.CorrectY, it.StartY)
		assert.Equal(t, it.CorrectRotation, it.StartRotation)
	}
}

func TestRotationDiff(t *testing.T) {
	item := Item{CorrectRotation: 0}

	tests := []struct {
		rotation float64
		want     float64
	}{
		{0, 0},
		{4, 4},
		{359, 1},
		{180, 180},
		{190, 170},
		{-190, 170},
		{725, 5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, RotationDiff(item, tt.rotation), 1e-9, "rotation %v", tt.rotation)
	}
}

func TestCheckPlacement(t *testing.T) {
	book, level, ok := FindItem("book1")
	require.True(t, ok)

	check := CheckPlacement(book, level, 103, 104, 2)
	assert.InDelta(t, 5.0, check.Distance, 1e-9)
	assert.InDelta(t, 75.0, check.Precision, 1e-9)
	assert.True(t, check.CorrectlyPositioned)
	assert.Equal(t, Target{X: 100, Y: 100, Rotation: 0}, check.CorrectPosition)

	check = CheckPlacement(book, level, 103, 104, 6)
	assert.False(t, check.CorrectlyPositioned)

	check = CheckPlacement(book, level, 140, 100, 0)
	assert.Equal(t, 0.0, check.Precision)

	// Level 3 items are judged with the tighter 3px threshold.
	pen, penLevel, ok := FindItem("pen_tl")
	require.True(t, ok)
	check = CheckPlacement(pen, penLevel, 104, 50, 0)
	assert.False(t, check.CorrectlyPositioned)
}

func TestScore(t *testing.T) {
	exact := []models.ItemPlacement{
		{ID: "book1", X: 100, Y: 100},
		{ID: "cup1", X: 250, Y: 100},
		{ID: "plate1", X: 400, Y: 100},
	}

	tests := []struct {
		name           string
		level          int
		placements     []models.ItemPlacement
		totalTime      float64
		corrections    int
		wantSeverity   float64
		wantLabel      string
		wantCorrection float64
	}{
		{"exact and quick", 0, exact, 30, 0, 45, InterpretationModerate, 0},
		{"nothing placed", 0, nil, 120, 0, 70, InterpretationSevere, 1},
		{"unknown item counts as zero", 0, []models.ItemPlacement{{ID: "book1", X: 100, Y: 100}, {ID: "nope"}}, 0, 4, 55, InterpretationModerate, 1},
		{"out of catalog level", 7, nil, 10, 0, 55, InterpretationModerate, 1},
		{"corrections capped", 0, exact, 0, 100, 110, InterpretationSevere, 2},
		{"low severity", 1, []models.ItemPlacement{{ID: "cup_red", X: 120, Y: 250}}, 9, 0, 3, InterpretationMild, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(tt.level, tt.placements, tt.totalTime, tt.corrections)
			assert.InDelta(t, tt.wantSeverity, res.Severity, 1e-9)
			assert.Equal(t, tt.wantLabel, res.Interpretation)
			assert.InDelta(t, tt.wantCorrection, res.CorrectionFactor, 1e-9)
		})
	}
}

func TestScoreCountsCorrectPlacements(t *testing.T) {
	res := Score(0, []models.ItemPlacement{
		{ID: "book1", X: 101, Y: 101},
		{ID: "cup1", X: 270, Y: 100},
	}, 60, 1)

	assert.Equal(t, 1, res.CorrectlyPositioned)
	assert.InDelta(t, 1.0, res.TimeFactor, 1e-9)
	assert.InDelta(t, 0.25, res.CorrectionFactor, 1e-9)
}

func TestInterpret(t *testing.T) {
	assert.Equal(t, InterpretationMild, Interpret(0))
	assert.Equal(t, InterpretationMild, Interpret(39.99))
	assert.Equal(t, InterpretationModerate, Interpret(40))
	assert.Equal(t, InterpretationModerate, Interpret(69.99))
	assert.Equal(t, InterpretationSevere, Interpret(70))
}
