package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"github.com/AyushPal0/Mental-Wellness/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommunityService interface {
	CreatePost(ctx context.Context, userID primitive.ObjectID, req models.PostRequest) (*models.Post, error)
	GetPosts(ctx context.Context, skip, limit int) ([]models.Post, error)
	GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.LikeResult, error)
	AddComment(ctx context.Context, postID, userID primitive.ObjectID, req models.CommentRequest) (*models.Comment, error)
	DeletePost(ctx context.Context, postID, userID primitive.ObjectID) error
}

// CommunityHandler serves the community feed.
type CommunityHandler struct {
	Service CommunityService
}

func NewCommunityHandler(service CommunityService) *CommunityHandler {
	return &CommunityHandler{Service: service}
}

// POST /api/community/posts
func (h *CommunityHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	var req models.PostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.Service.CreatePost(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "Failed to create post")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"status": "success", "post": post})
}

// GET /api/community/posts?skip=&limit=
func (h *CommunityHandler) GetPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Service.GetPosts(r.Context(), queryInt(r, "skip", 0), queryInt(r, "limit", 0))
	if err != nil {
		respondError(w, r, err, "Failed to fetch posts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "posts": posts})
}

// GET /api/community/posts/{id}
func (h *CommunityHandler) GetPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.Service.GetPost(r.Context(), postID)
	if err != nil {
		respondError(w, r, err, "Failed to fetch post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "post": post})
}

// POST /api/community/posts/{id}/like
func (h *CommunityHandler) ToggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		respondError(w, r, err, "Failed to update like")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"liked":       result.Liked,
		"likes_count": result.LikesCount,
	})
}

// POST /api/community/posts/{id}/comments
func (h *CommunityHandler) AddCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.Service.AddComment(r.Context(), postID, userID, req)
	if err != nil {
		respondError(w, r, err, "Failed to add comment")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"status": "success", "comment": comment})
}

// DELETE /api/community/posts/{id}
func (h *CommunityHandler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	postID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.DeletePost(r.Context(), postID, userID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "Post not found or user not authorized")
			return
		}
		respondError(w, r, err, "Failed to delete post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Post deleted"})
}
