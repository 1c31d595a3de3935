package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Position is a point on the play area, optionally with a rotation.
type Position struct {
	X        float64 `bson:"x" json:"x"`
	Y        float64 `bson:"y" json:"y"`
	Rotation float64 `bson:"rotation,omitempty" json:"rotation,omitempty"`
}

// GameAction is one drag/rotate gesture reported by the client.
type GameAction struct {
	ItemID        string   `json:"item_id"`
	ActionType    string   `json:"action_type"`
	StartPosition Position `json:"start_position"`
	EndPosition   Position `json:"end_position"`
	TimeTaken     float64  `json:"time_taken"`
	// Unix seconds as sent by the client.
	Timestamp float64 `json:"timestamp"`
}

// GameSession is the ephemeral state of one screening run.
type GameSession struct {
	ID        string       `json:"session_id"`
	UserID    string       `json:"user_id"`
	Level     int          `json:"level"`
	StartTime time.Time    `json:"start_time"`
	EndTime   *time.Time   `json:"end_time,omitempty"`
	Actions   []GameAction `json:"actions"`
	Completed bool         `json:"completed"`
}

// ItemPlacement is where the player left an item.
type ItemPlacement struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// SeverityScore is the persisted outcome of a completed session.
type SeverityScore struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID        string             `bson:"session_id" json:"session_id"`
	UserID           primitive.ObjectID `bson:"user_id" json:"user_id"`
	Level            int                `bson:"level" json:"level"`
	TotalTime        float64            `bson:"total_time" json:"total_time"`
	Corrections      int                `bson:"corrections" json:"corrections"`
	Precision        float64            `bson:"precision" json:"precision"`
	TimeFactor       float64            `bson:"time_factor" json:"time_factor"`
	CorrectionFactor float64            `bson:"correction_factor" json:"correction_factor"`
	PrecisionFactor  float64            `bson:"precision_factor" json:"precision_factor"`
	SeverityScore    float64            `bson:"severity_score" json:"severity_score"`
	Interpretation   string             `bson:"interpretation" json:"interpretation"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

type GameStartRequest struct {
	Level int `json:"level"`
}

// GameActionRequest is a GameAction addressed to a session.
type GameActionRequest struct {
	SessionID string `json:"session_id"`
	GameAction
}

type GameCompletion struct {
	SessionID      string          `json:"session_id"`
	Items          []ItemPlacement `json:"items"`
	CompletionTime float64         `json:"completion_time"`
	Corrections    int             `json:"corrections"`
}
