package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActivityPostCreated          = "post_created"
	ActivityTaskCompleted        = "task_completed"
	ActivityGameCompleted        = "game_completed"
	ActivityPersonalitySubmitted = "personality_submitted"
)

type Activity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type      string             `bson:"type" json:"type"`
	TargetID  string             `bson:"target_id,omitempty" json:"target_id,omitempty"` // post/task ObjectID hex or game session id
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Message   string             `bson:"message" json:"message"`
}
