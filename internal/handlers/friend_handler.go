package handlers

import (
	"context"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FriendService interface {
	SearchUsers(ctx context.Context, userID primitive.ObjectID, query string) ([]models.PublicUser, error)
	SendFriendRequest(ctx context.Context, senderID, receiverID primitive.ObjectID) error
	RespondToRequest(ctx context.Context, userID, requesterID primitive.ObjectID, action string) error
	GetFriends(ctx context.Context, userID primitive.ObjectID) ([]models.PublicUser, error)
	GetFriendRequests(ctx context.Context, userID primitive.ObjectID) (*models.FriendRequests, error)
	RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
}

type FriendHandler struct {
	Service FriendService
}

func NewFriendHandler(service FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// GET /api/friends/search?q=
func (h *FriendHandler) SearchUsersHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	users, err := h.Service.SearchUsers(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, r, err, "Failed to search users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// POST /api/friends/requests/{id}
func (h *FriendHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	senderID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	receiverID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.SendFriendRequest(r.Context(), senderID, receiverID); err != nil {
		respondError(w, r, err, "Failed to send friend request")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Friend request sent"})
}

// POST /api/friends/requests/{id}/respond
func (h *FriendHandler) RespondToRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	requesterID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.FriendResponse
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.RespondToRequest(r.Context(), userID, requesterID, req.Action); err != nil {
		respondError(w, r, err, "Failed to respond to friend request")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Friend request " + req.Action + "ed"})
}

// GET /api/friends
func (h *FriendHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	friends, err := h.Service.GetFriends(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to fetch friends")
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

// GET /api/friends/requests
func (h *FriendHandler) GetFriendRequestsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	requests, err := h.Service.GetFriendRequests(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to fetch friend requests")
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// DELETE /api/friends/{id}
func (h *FriendHandler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	friendID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.RemoveFriend(r.Context(), userID, friendID); err != nil {
		respondError(w, r, err, "Failed to remove friend")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Friend removed"})
}
