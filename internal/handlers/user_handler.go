package handlers

import (
	"context"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService is the account logic used by UserHandler.
type UserService interface {
	RegisterUser(ctx context.Context, req models.SignupRequest) (*models.User, error)
	AuthenticateUser(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetPublicProfile(ctx context.Context, id primitive.ObjectID) (*models.PublicUser, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd models.ProfileUpdate) (*models.User, error)
}

// UserHandler handles HTTP requests related to user operations.
type UserHandler struct {
	Service UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// POST /api/auth/signup
func (h *UserHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), req)
	if err != nil {
		respondError(w, r, err, "Failed to register user")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"status": "success", "user": user})
}

// POST /api/auth/login
func (h *UserHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.Service.AuthenticateUser(r.Context(), req)
	if err != nil {
		respondError(w, r, err, "Failed to log in")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/users/me
func (h *UserHandler) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	user, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "Failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// PATCH /api/users/me
func (h *UserHandler) UpdateMeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	var upd models.ProfileUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Service.UpdateProfile(r.Context(), userID, upd)
	if err != nil {
		respondError(w, r, err, "Failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GET /api/users/{id}
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.Service.GetPublicProfile(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "Failed to load user")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
