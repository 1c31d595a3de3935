package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/internal/realtime"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/AyushPal0/Mental-Wellness/pkg/sanitize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxPostLength    = 5000
	maxCommentLength = 1000
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

type PostStore interface {
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.LikeResult, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) (primitive.ObjectID, error)
	DeletePost(ctx context.Context, postID, userID primitive.ObjectID) error
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Publisher fans an event out to connected clients.
type Publisher interface {
	Publish(eventType string, data interface{})
}

// CommunityService owns the feed write path: every mutation is stored,
// then published to the realtime hub.
type CommunityService struct {
	posts     PostStore
	users     UserLookup
	hub       Publisher
	sanitizer *sanitize.Sanitizer
	notifier  Notifier
	activity  ActivityLogger
}

func NewCommunityService(posts PostStore, users UserLookup, hub Publisher, sanitizer *sanitize.Sanitizer, notifier Notifier, activity ActivityLogger) *CommunityService {
	return &CommunityService{
		posts:     posts,
		users:     users,
		hub:       hub,
		sanitizer: sanitizer,
		notifier:  notifier,
		activity:  activity,
	}
}

// CreatePost stores a sanitized post and returns it joined with its author.
func (s *CommunityService) CreatePost(ctx context.Context, userID primitive.ObjectID, req models.PostRequest) (*models.Post, error) {
	content := s.sanitizer.Text(req.Content)
	if content == "" {
		return nil, invalidf("Post content cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxPostLength {
		return nil, invalidf("Post content must be at most %d characters", maxPostLength)
	}

	mediaURL := ""
	if req.MediaURL != "" {
		if mediaURL = s.sanitizer.URL(req.MediaURL); mediaURL == "" {
			return nil, invalidf("media_url must be an http(s) URL")
		}
	}

	created, err := s.posts.CreatePost(ctx, &models.Post{
		UserID:   userID,
		Content:  content,
		MediaURL: mediaURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	post, err := s.posts.GetPostByID(ctx, created.ID)
	if err != nil {
		logger.Log.WithError(err).WithField("post_id", created.ID.Hex()).Warn("Created post could not be re-read with author")
		post = created
	}

	s.hub.Publish(realtime.EventNewPost, post)
	s.logActivity(ctx, userID, models.ActivityPostCreated, post.ID.Hex(), "Shared a post with the community")
	return post, nil
}

// GetPosts returns a page of the feed, newest first.
func (s *CommunityService) GetPosts(ctx context.Context, skip, limit int) ([]models.Post, error) {
	if skip < 0 {
		skip = 0
	}
	return s.posts.GetPosts(ctx, int64(skip), int64(clampLimit(limit, defaultFeedLimit, maxFeedLimit)))
}

func (s *CommunityService) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.posts.GetPostByID(ctx, id)
}

// ToggleLike flips the caller's like and publishes the new like set.
func (s *CommunityService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.LikeResult, error) {
	result, err := s.posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(realtime.EventPostUpdate, map[string]interface{}{
		"post_id":     postID.Hex(),
		"likes":       result.Likes,
		"likes_count": result.LikesCount,
	})
	return result, nil
}

// AddComment appends a sanitized comment, publishes it and notifies the
// post owner when someone else commented.
func (s *CommunityService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, req models.CommentRequest) (*models.Comment, error) {
	text := s.sanitizer.Text(req.Text)
	if text == "" {
		return nil, invalidf("Comment text cannot be empty")
	}
	if utf8.RuneCountInString(text) > maxCommentLength {
		return nil, invalidf("Comment must be at most %d characters", maxCommentLength)
	}

	comment := &models.Comment{UserID: userID, Text: text}
	ownerID, err := s.posts.AddComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}

	author, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Warn("Comment author lookup failed")
	} else {
		public := author.Public()
		comment.User = &public
	}

	s.hub.Publish(realtime.EventCommentUpdate, map[string]interface{}{
		"post_id": postID.Hex(),
		"comment": comment,
	})

	if ownerID != userID && !ownerID.IsZero() {
		name := "Someone"
		if comment.User != nil {
			name = comment.User.Username
		}
		target := postID
		if err := s.notifier.CreateNotification(ctx, ownerID, models.NotificationPostComment,
			"New comment", fmt.Sprintf("%s commented on your post", name), &target); err != nil {
			logger.Log.WithError(err).WithField("post_id", postID.Hex()).Warn("Failed to notify post owner")
		}
	}
	return comment, nil
}

// DeletePost removes the caller's own post.
func (s *CommunityService) DeletePost(ctx context.Context, postID, userID primitive.ObjectID) error {
	if err := s.posts.DeletePost(ctx, postID, userID); err != nil {
		return err
	}
	s.hub.Publish(realtime.EventPostDeleted, map[string]interface{}{"post_id": postID.Hex()})
	return nil
}

func (s *CommunityService) logActivity(ctx context.Context, userID primitive.ObjectID, activityType, targetID, message string) {
	if err := s.activity.LogActivity(ctx, userID, activityType, targetID, message); err != nil {
		logger.Log.WithError(err).WithField("type", activityType).Warn("Failed to record activity")
	}
}
