package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the wellness app.
type User struct {
	ID                     primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username               string               `bson:"username" json:"username"`
	Email                  string               `bson:"email" json:"email"`
	FullName               string               `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Avatar                 string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	PasswordHash           string               `bson:"password_hash" json:"-"`
	Role                   string               `bson:"role" json:"role"`
	Friends                []primitive.ObjectID `bson:"friends" json:"friends"`
	SentFriendRequests     []primitive.ObjectID `bson:"sent_friend_requests" json:"sent_friend_requests"`
	ReceivedFriendRequests []primitive.ObjectID `bson:"received_friend_requests" json:"received_friend_requests"`
	PersonalityType        string               `bson:"personality_type,omitempty" json:"personality_type,omitempty"`
	Streak                 int                  `bson:"streak" json:"streak"`
	LastTaskCompletionDate *time.Time           `bson:"last_task_completion_date,omitempty" json:"last_task_completion_date,omitempty"`
	OnboardingStatus       map[string]string    `bson:"onboarding_status,omitempty" json:"onboarding_status,omitempty"`
	LastActiveAt           time.Time            `bson:"last_active_at,omitempty" json:"last_active_at,omitempty"`
	CreatedAt              time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt              time.Time            `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the profile other users are allowed to see. It is also the
// shape the feed aggregation projects authors into.
type PublicUser struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	FullName string             `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

// ProfileUpdate carries the editable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}
