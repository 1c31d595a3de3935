package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RiskEvent is a self-reported or detected crisis signal.
type RiskEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	RiskLevel string             `bson:"risk_level" json:"risk_level"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type Helpline struct {
	Name   string `json:"name"`
	Number string `json:"phone"`
}

// CrisisContacts is returned with every processed risk event.
type CrisisContacts struct {
	Helplines []Helpline `json:"helplines"`
	Emergency string     `json:"emergency"`
}

type RiskEventResult struct {
	Event    *RiskEvent     `json:"event"`
	Contacts CrisisContacts `json:"contacts"`
}

type RiskEventRequest struct {
	RiskLevel string `json:"risk_level"`
	Message   string `json:"message"`
}
