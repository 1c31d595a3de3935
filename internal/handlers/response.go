package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/AyushPal0/Mental-Wellness/internal/game"
	"github.com/AyushPal0/Mental-Wellness/internal/repository"
	"github.com/AyushPal0/Mental-Wellness/internal/services"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/AyushPal0/Mental-Wellness/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxBodyBytes = 1 << 20

var errUnauthorized = errors.New("Unauthorized")

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Warn("Failed to encode response")
	}
}

// writeError uses the {"status":"error","message":...} envelope shared by
// most of the API.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}

// decodeJSON reads a JSON body of at most 1 MiB into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request body is empty")
		}
		return fmt.Errorf("Invalid request payload")
	}
	return nil
}

// currentUserID returns the caller's id from the token claims.
func currentUserID(r *http.Request) (primitive.ObjectID, error) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return primitive.NilObjectID, errUnauthorized
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, errUnauthorized
	}
	return id, nil
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("Invalid %s", name)
	}
	return id, nil
}

// queryInt returns def when the parameter is absent or not a number.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errUnauthorized), errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidLevel):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrNotificationNotFound),
		errors.Is(err, repository.ErrPersonalityNotFound),
		errors.Is(err, repository.ErrFriendRequestNotFound),
		errors.Is(err, game.ErrSessionNotFound),
		errors.Is(err, services.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrDuplicateUser),
		errors.Is(err, repository.ErrAlreadyFriends),
		errors.Is(err, repository.ErrFriendRequestExists),
		errors.Is(err, services.ErrSessionCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides internal error text behind fallback.
func errorMessage(err error, status int, fallback string) string {
	if status >= http.StatusInternalServerError {
		return fallback
	}
	return err.Error()
}

// respondError logs err and writes it with the standard envelope.
func respondError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := statusFor(err)
	logError(r, err, status)
	writeError(w, status, errorMessage(err, status, fallback))
}

func logError(r *http.Request, err error, status int) {
	entry := logger.Log.WithError(err).WithFields(map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}
}
