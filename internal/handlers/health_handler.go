package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
)

type OnlineCounter interface {
	OnlineCount() int
}

// HealthHandler reports database reachability and the number of connected
// websocket clients.
type HealthHandler struct {
	Ping   func(ctx context.Context) error
	Online OnlineCounter
}

func NewHealthHandler(ping func(ctx context.Context) error, online OnlineCounter) *HealthHandler {
	return &HealthHandler{Ping: ping, Online: online}
}

// GET /
func (h *HealthHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	database := "connected"
	if err := h.Ping(ctx); err != nil {
		logger.Log.WithError(err).Warn("Health check: database unreachable")
		database = "disconnected"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"service":  "mental-wellness",
		"database": database,
		"online":   h.Online.OnlineCount(),
	})
}
