package services

import (
	"context"
	"testing"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/internal/realtime"
	"github.com/AyushPal0/Mental-Wellness/internal/repository"
	"github.com/AyushPal0/Mental-Wellness/pkg/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type communityFixture struct {
	svc      *CommunityService
	posts    *fakePostStore
	hub      *fakePublisher
	notifier *fakeNotifier
	activity *fakeActivity
	author   *models.User
	reader   *models.User
}

func newCommunityFixture() *communityFixture {
	f := &communityFixture{
		posts:    newFakePostStore(),
		hub:      &fakePublisher{},
		notifier: &fakeNotifier{},
		activity: &fakeActivity{},
		author:   &models.User{Username: "author"},
		reader:   &models.User{Username: "reader"},
	}
	users := newFakeUserStore(f.author, f.reader)
	f.svc = NewCommunityService(f.posts, users, f.hub, sanitize.New(), f.notifier, f.activity)
	return f
}

func TestCreatePost(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()

	post, err := f.svc.CreatePost(ctx, f.author.ID, models.PostRequest{
		Content:  "<p>Feeling better today</p><script>alert(1)</script>",
		MediaURL: "https://cdn.example.com/a.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Feeling better today", post.Content)
	assert.Equal(t, "https://cdn.example.com/a.png", post.MediaURL)
	require.NotNil(t, post.User)

	require.Len(t, f.hub.events, 1)
	assert.Equal(t, realtime.EventNewPost, f.hub.events[0].Type)
	require.Len(t, f.activity.entries, 1)
	assert.Equal(t, models.ActivityPostCreated, f.activity.entries[0].Type)
}

func TestCreatePostRejectsEmptyAndBadMedia(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()

	_, err := f.svc.CreatePost(ctx, f.author.ID, models.PostRequest{Content: "   <b></b> "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.CreatePost(ctx, f.author.ID, models.PostRequest{Content: "hi", MediaURL: "ftp://x"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, f.hub.events)
}

func TestToggleLikePublishesUpdate(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	post, err := f.svc.CreatePost(ctx, f.author.ID, models.PostRequest{Content: "hello"})
	require.NoError(t, err)

	res, err := f.svc.ToggleLike(ctx, post.ID, f.reader.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.LikesCount)

	res, err = f.svc.ToggleLike(ctx, post.ID, f.reader.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 0, res.LikesCount)

	last := f.hub.events[len(f.hub.events)-1]
	assert.Equal(t, realtime.EventPostUpdate, last.Type)
	assert.Equal(t, post.ID.Hex(), last.Data.(map[string]interface{})["post_id"])

	_, err = f.svc.ToggleLike(ctx, primitive.NewObjectID(), f.reader.ID)
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

func TestAddCommentNotifiesOwner(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	post, err := f.svc.CreatePost(ctx, f.author.ID, models.PostRequest{Content: "hello"})
	require.NoError(t, err)

	comment, err := f.svc.AddComment(ctx, post.ID, f.reader.ID, models.CommentRequest{Text: "You got this!"})
	require.NoError(t, err)
	require.NotNil(t, comment.User)
	assert.Equal(t, "reader", comment.User.Username)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, f.author.ID, f.notifier.sent[0].UserID)
	assert.Equal(t, models.NotificationPostComment, f.notifier.sent[0].Type)
	assert.Equal(t, realtime.EventCommentUpdate, f.hub.events[len(f.hub.events)-1].Type)

	_, err = f.svc.AddComment(ctx, post.ID, f.author.ID, models.CommentRequest{Text: "thanks"})
	require.NoError(t, err)
	assert.Len(t, f.notifier.sent, 1, "own comments do not notify")

	_, err = f.svc.AddComment(ctx, post.ID, f.author.ID, models.CommentRequest{Text: " "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	f := newCommunityFixture()
	ctx := context.Background()
	post, err := f.svc.CreatePost(ctx, f.author.ID, models.PostRequest{Content: "hello"})
	require.NoError(t, err)

	err = f.svc.DeletePost(ctx, post.ID, f.reader.ID)
	assert.ErrorIs(t, err, repository.ErrPostNotFound)

	require.NoError(t, f.svc.DeletePost(ctx, post.ID, f.author.ID))
	assert.Equal(t, realtime.EventPostDeleted, f.hub.events[len(f.hub.events)-1].Type)
}
