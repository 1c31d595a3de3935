package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question is one item of the personality quiz. Dimension is a letter pair
// such as "IE"; agreeing answers score the second letter.
type Question struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Dimension string `json:"dimension"`
}

// Answer holds a Likert value from 1 (strongly disagree) to 5.
type Answer struct {
	QuestionID int `json:"question_id"`
	Value      int `json:"value"`
}

// Personality is the saved quiz result of a user.
type Personality struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	Scores          map[string]int     `bson:"scores" json:"scores"`
	PersonalityType string             `bson:"personality_type" json:"personality_type"`
	Persona         string             `bson:"persona" json:"persona_type"`
	WellnessFocus   string             `bson:"wellness_focus" json:"wellness_focus"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// PersonalitySubmission carries either raw answers or precomputed letter
// scores. Answers win when both are present.
type PersonalitySubmission struct {
	Answers []Answer       `json:"answers,omitempty"`
	Scores  map[string]int `json:"scores,omitempty"`
}
