package middleware

import (
	"context"
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LastActiveUpdater records when a user was last seen.
type LastActiveUpdater interface {
	UpdateLastActive(ctx context.Context, userID primitive.ObjectID) error
}

// UpdateLastActiveMiddleware must run after AuthMiddleware. Failures are
// logged and never block the request.
func UpdateLastActiveMiddleware(users LastActiveUpdater) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims != nil {
				userID, err := primitive.ObjectIDFromHex(claims.UserID)
				if err == nil {
					if err := users.UpdateLastActive(r.Context(), userID); err != nil {
						logger.Log.WithError(err).WithField("user_id", claims.UserID).Warn("Failed to update last active")
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
