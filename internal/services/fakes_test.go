package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/internal/repository"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	logger.Silence()
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, repository.ErrDuplicateUser
		}
	}
	user.ID = primitive.NewObjectID()
	s.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStore) find(match func(*models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.Email == email })
}

func (s *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.Username == username })
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.ID == id })
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Avatar != nil {
		u.Avatar = *upd.Avatar
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) UpdateStreak(_ context.Context, id primitive.ObjectID, streak int, completedOn time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Streak = streak
	u.LastTaskCompletionDate = &completedOn
	return nil
}

func (s *fakeUserStore) SetPersonalityType(_ context.Context, id primitive.ObjectID, personalityType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PersonalityType = personalityType
	return nil
}

func (s *fakeUserStore) SetOnboardingStep(_ context.Context, id primitive.ObjectID, step, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if u.OnboardingStatus == nil {
		u.OnboardingStatus = map[string]string{}
	}
	u.OnboardingStatus[step] = status
	return nil
}

func (s *fakeUserStore) SearchUsers(_ context.Context, query string, exclude primitive.ObjectID, _ int64) ([]models.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.PublicUser{}
	for _, u := range s.users {
		if u.ID != exclude && strings.Contains(strings.ToLower(u.Username), strings.ToLower(query)) {
			out = append(out, u.Public())
		}
	}
	return out, nil
}

func (s *fakeUserStore) GetPublicUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.PublicUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.PublicUser{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u.Public())
		}
	}
	return out, nil
}

func (s *fakeUserStore) GetInactiveUsers(_ context.Context, cutoff time.Time) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if u.LastActiveAt.Before(cutoff) {
			out = append(out, *u)
		}
	}
	return out, nil
}

type sentNotification struct {
	UserID primitive.ObjectID
	Type   string
	Target *primitive.ObjectID
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *fakeNotifier) CreateNotification(_ context.Context, userID primitive.ObjectID, notifType, _, _ string, targetID *primitive.ObjectID) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, Type: notifType, Target: targetID})
	return nil
}

type fakeActivity struct {
	mu      sync.Mutex
	entries []models.Activity
}

func (a *fakeActivity) LogActivity(_ context.Context, userID primitive.ObjectID, activityType, targetID, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, models.Activity{UserID: userID, Type: activityType, TargetID: targetID, Message: message})
	return nil
}

type publishedEvent struct {
	Type string
	Data interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(eventType string, data interface{}) {
	p.events = append(p.events, publishedEvent{Type: eventType, Data: data})
}

type fakePostStore struct {
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (s *fakePostStore) CreatePost(_ context.Context, post *models.Post) (*models.Post, error) {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.Likes = []primitive.ObjectID{}
	post.Comments = []models.Comment{}
	s.posts[post.ID] = post
	return post, nil
}

func (s *fakePostStore) GetPosts(_ context.Context, _, _ int64) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range s.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakePostStore) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	cp := *p
	cp.User = &models.PublicUser{ID: p.UserID, Username: "author"}
	return &cp, nil
}

func (s *fakePostStore) ToggleLike(_ context.Context, postID, userID primitive.ObjectID) (*models.LikeResult, error) {
	p, ok := s.posts[postID]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	liked := !p.LikedBy(userID)
	if liked {
		p.Likes = append(p.Likes, userID)
	} else {
		kept := []primitive.ObjectID{}
		for _, id := range p.Likes {
			if id != userID {
				kept = append(kept, id)
			}
		}
		p.Likes = kept
	}
	return &models.LikeResult{PostID: postID, Liked: liked, LikesCount: len(p.Likes), Likes: p.Likes}, nil
}

func (s *fakePostStore) AddComment(_ context.Context, postID primitive.ObjectID, comment *models.Comment) (primitive.ObjectID, error) {
	p, ok := s.posts[postID]
	if !ok {
		return primitive.NilObjectID, repository.ErrPostNotFound
	}
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	p.Comments = append(p.Comments, *comment)
	return p.UserID, nil
}

func (s *fakePostStore) DeletePost(_ context.Context, postID, userID primitive.ObjectID) error {
	p, ok := s.posts[postID]
	if !ok || p.UserID != userID {
		return repository.ErrPostNotFound
	}
	delete(s.posts, postID)
	return nil
}
