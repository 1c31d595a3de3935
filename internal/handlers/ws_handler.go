package handlers

import (
	"net/http"

	"github.com/AyushPal0/Mental-Wellness/internal/realtime"
	jwtutil "github.com/AyushPal0/Mental-Wellness/pkg/jwt"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades authenticated clients and attaches them to the hub.
// The token is read from the query string.
type WSHandler struct {
	Hub       *realtime.Hub
	JWTSecret string
	upgrader  websocket.Upgrader
}

// NewWSHandler accepts handshakes from allowedOrigins. A "*" entry or a
// request without an Origin header is always accepted.
func NewWSHandler(hub *realtime.Hub, jwtSecret string, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WSHandler{
		Hub:       hub,
		JWTSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// GET /ws?token=JWT
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Missing token")
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		logger.Log.WithError(err).Warn("Websocket auth failed")
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	// Upgrade writes its own error response.
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	client := realtime.NewClient(h.Hub, conn, claims.UserID)
	if !h.Hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
