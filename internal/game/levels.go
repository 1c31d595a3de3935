// Package game holds the calibration game used as a screening tool: the
// fixed level catalog, placement checks, severity scoring and the session
// stores.
package game

// Item is a draggable object and the pose it should end up in.
type Item struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	CorrectX        float64 `json:"correct_x"`
	CorrectY        float64 `json:"correct_y"`
	CorrectRotation float64 `json:"correct_rotation"`
	Color           string  `json:"color,omitempty"`
}

// Level groups items with the tolerances used to judge them.
type Level struct {
	Items []Item
	// Pixels.
	PrecisionThreshold float64
	// Degrees.
	RotationThreshold float64
	// Seconds.
	TimeLimit int
}

// Levels is the fixed catalog, indexed from 0.
var Levels = []Level{
	{
		Items: []Item{
			{ID: "book1", Type: "book", Width: 80, Height: 120, CorrectX: 100, CorrectY: 100},
			{ID: "cup1", Type: "cup", Width: 60, Height: 80, CorrectX: 250, CorrectY: 100},
			{ID: "plate1", Type: "plate", Width: 70, Height: 70, CorrectX: 400, CorrectY: 100},
		},
		PrecisionThreshold: 5,
		RotationThreshold:  5,
		TimeLimit:          120,
	},
	{
		Items: []Item{
			{ID: "book_small", Type: "book", Width: 60, Height: 100, CorrectX: 100, CorrectY: 100, Color: "red"},
			{ID: "book_medium", Type: "book", Width: 70, Height: 110, CorrectX: 180, CorrectY: 100, Color: "blue"},
			{ID: "book_large", Type: "book", Width: 80, Height: 120, CorrectX: 260, CorrectY: 100, Color: "green"},
			{ID: "cup_red", Type: "cup", Width: 50, Height: 70, CorrectX: 100, CorrectY: 250, Color: "red"},
			{ID: "cup_blue", Type: "cup", Width: 50, Height: 70, CorrectX: 180, CorrectY: 250, Color: "blue"},
			{ID: "cup_green", Type: "cup", Width: 50, Height: 70, CorrectX: 260, CorrectY: 250, Color: "green"},
		},
		PrecisionThreshold: 4,
		RotationThreshold:  4,
		TimeLimit:          180,
	},
	{
		Items: []Item{
			{ID: "book_left", Type: "book", Width: 80, Height: 120, CorrectX: 150, CorrectY: 100},
			{ID: "book_right", Type: "book", Width: 80, Height: 120, CorrectX: 450, CorrectY: 100},
			{ID: "cup_left", Type: "cup", Width: 60, Height: 80, CorrectX: 150, CorrectY: 250},
			{ID: "cup_right", Type: "cup", Width: 60, Height: 80, CorrectX: 450, CorrectY: 250},
			{ID: "plate_center", Type: "plate", Width: 80, Height: 80, CorrectX: 300, CorrectY: 175},
			{ID: "pen_tl", Type: "pen", Width: 40, Height: 120, CorrectX: 100, CorrectY: 50},
			{ID: "pen_tr", Type: "pen", Width: 40, Height: 120, CorrectX: 500, CorrectY: 50},
			{ID: "pen_bl", Type: "pen", Width: 40, Height: 120, CorrectX: 100, CorrectY: 300},
			{ID: "pen_br", Type: "pen", Width: 40, Height: 120, CorrectX: 500, CorrectY: 300},
		},
		PrecisionThreshold: 3,
		RotationThreshold:  3,
		TimeLimit:          240,
	},
}

// ValidLevel reports whether level indexes the catalog.
func ValidLevel(level int) bool {
	return level >= 0 && level < len(Levels)
}

// FindItem looks an item up across every level and returns the level it
// belongs to.
func FindItem(id string) (Item, int, bool) {
	for li, level := range Levels {
		for _, item := range level.Items {
			if item.ID == id {
				return item, li, true
			}
		}
	}
	return Item{}, -1, false
}

// StartItem is an item as handed to the player, nudged off its target.
type StartItem struct {
	Item
	StartX        float64 `json:"start_x"`
	StartY        float64 `json:"start_y"`
	StartRotation float64 `json:"start_rotation"`
}

const (
	startOffsetPixels  = 20
	startOffsetDegrees = 5
)

// StartItems places every item of the level within ±20px and ±5° of its
// target. random must return values in [0, 1).
func StartItems(level int, random func() float64) []StartItem {
	items := Levels[level].Items
	out := make([]StartItem, 0, len(items))
	for _, item := range items {
		out = append(out, StartItem{
			Item:          item,
			StartX:        item.CorrectX + spread(random, startOffsetPixels),
			StartY:        item.CorrectY + spread(random, startOffsetPixels),
			StartRotation: item.CorrectRotation + spread(random, startOffsetDegrees),
		})
	}
	return out
}

func spread(random func() float64, span float64) float64 {
	return random()*2*span - span
}
