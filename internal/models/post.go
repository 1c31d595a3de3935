package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is stored inline in its post, in insertion order.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	// Filled by the feed aggregation, never persisted.
	User *PublicUser `bson:"user,omitempty" json:"user,omitempty"`
}

// Post is a community feed entry.
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Content   string               `bson:"content" json:"content"`
	MediaURL  string               `bson:"media_url,omitempty" json:"media_url,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	User      *PublicUser          `bson:"user,omitempty" json:"user,omitempty"`
}

func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// LikeResult reports the state of a post after a like toggle.
type LikeResult struct {
	PostID     primitive.ObjectID   `json:"post_id"`
	Liked      bool                 `json:"liked"`
	LikesCount int                  `json:"likes_count"`
	Likes      []primitive.ObjectID `json:"likes"`
}

type PostRequest struct {
	Content  string `json:"content"`
	MediaURL string `json:"media_url,omitempty"`
}

type CommentRequest struct {
	Text string `json:"text"`
}
