package game

import (
	"math"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
)

const (
	InterpretationMild     = "Mild"
	InterpretationModerate = "Moderate"
	InterpretationSevere   = "Severe"

	// Distance at which precision bottoms out at 0%.
	zeroPrecisionDistance = 20.0

	timeWeight       = 0.3
	correctionWeight = 0.4
	precisionWeight  = 0.3
)

// Target is the pose an item must reach.
type Target struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// PlacementCheck is the verdict on a single item position.
type PlacementCheck struct {
	CorrectlyPositioned bool    `json:"correctly_positioned"`
	Distance            float64 `json:"distance"`
	RotationDiff        float64 `json:"rotation_diff"`
	Precision           float64 `json:"precision"`
	CorrectPosition     Target  `json:"correct_position"`
}

// Distance is the Euclidean distance between (x, y) and the item's target.
func Distance(item Item, x, y float64) float64 {
	return math.Hypot(x-item.CorrectX, y-item.CorrectY)
}

// RotationDiff is the smallest angle between rotation and the item's target,
// always in [0, 180].
func RotationDiff(item Item, rotation float64) float64 {
	diff := math.Mod(math.Abs(rotation-item.CorrectRotation), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// Precision maps a distance to a 0..100 score.
func Precision(distance float64) float64 {
	return math.Max(0, 100-distance/zeroPrecisionDistance*100)
}

// CheckPlacement judges a position against the thresholds of the level the
// item belongs to.
func CheckPlacement(item Item, level int, x, y, rotation float64) PlacementCheck {
	distance := Distance(item, x, y)
	rotDiff := RotationDiff(item, rotation)
	lvl := Levels[level]

	return PlacementCheck{
		CorrectlyPositioned: distance <= lvl.PrecisionThreshold && rotDiff <= lvl.RotationThreshold,
		Distance:            distance,
		RotationDiff:        rotDiff,
		Precision:           Precision(distance),
		CorrectPosition: Target{
			X:        item.CorrectX,
			Y:        item.CorrectY,
			Rotation: item.CorrectRotation,
		},
	}
}

// Result is the breakdown of a severity computation.
type Result struct {
	TotalTime           float64
	AveragePrecision    float64
	CorrectlyPositioned int
	TimeFactor          float64
	CorrectionFactor    float64
	PrecisionFactor     float64
	Severity            float64
	Interpretation      string
}

// Score computes the severity of a finished level. Placements of unknown
// items count towards the average with 0% precision.
func Score(level int, placements []models.ItemPlacement, totalTime float64, corrections int) Result {
	var precisionSum float64
	correct := 0

	for _, p := range placements {
		item, itemLevel, ok := FindItem(p.ID)
		if !ok {
			continue
		}
		check := CheckPlacement(item, itemLevel, p.X, p.Y, p.Rotation)
		precisionSum += check.Precision
		if check.CorrectlyPositioned {
			correct++
		}
	}

	n := len(placements)

	avgPrecision := 0.0
	if n > 0 {
		avgPrecision = precisionSum / float64(n)
	}

	timeFactor := 0.5
	if ValidLevel(level) {
		timeFactor = math.Min(1, totalTime/(float64(Levels[level].TimeLimit)*0.5))
	}

	correctionFactor := 1.0
	if n > 0 {
		correctionFactor = math.Min(2, float64(corrections)/float64(n*2))
	}

	precisionFactor := avgPrecision / 100

	severity := (timeFactor*timeWeight + correctionFactor*correctionWeight + precisionFactor*precisionWeight) * 100

	return Result{
		TotalTime:           totalTime,
		AveragePrecision:    avgPrecision,
		CorrectlyPositioned: correct,
		TimeFactor:          timeFactor,
		CorrectionFactor:    correctionFactor,
		PrecisionFactor:     precisionFactor,
		Severity:            severity,
		Interpretation:      Interpret(severity),
	}
}

// Interpret buckets a severity score.
func Interpret(severity float64) string {
	switch {
	case severity < 40:
		return InterpretationMild
	case severity < 70:
		return InterpretationModerate
	default:
		return InterpretationSevere
	}
}
