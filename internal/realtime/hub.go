// Package realtime fans community events out to connected websocket
// clients.
package realtime

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/AyushPal0/Mental-Wellness/pkg/metrics"
)

const (
	EventNewPost       = "new_post"
	EventPostUpdate    = "post_update"
	EventCommentUpdate = "comment_update"
	EventPostDeleted   = "post_deleted"

	broadcastQueueSize = 256
)

// Event is the envelope written to every client.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub owns the set of connected clients. All mutation of that set happens
// on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	online  atomic.Int64
	metrics metrics.Recorder
}

func NewHub(rec metrics.Recorder) *Hub {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastQueueSize),
		done:       make(chan struct{}),
		metrics:    rec,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			logger.Log.Info("Realtime hub stopped")
			return

		case c := <-h.register:
			h.clients[c] = true
			h.updateOnline()
			logger.Log.WithFields(map[string]interface{}{
				"user_id": c.UserID,
				"online":  len(h.clients),
			}).Info("Websocket client registered")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				logger.Log.WithField("user_id", c.UserID).Info("Websocket client unregistered")
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer.
					h.drop(c)
					logger.Log.WithField("user_id", c.UserID).Warn("Dropped slow websocket client")
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.updateOnline()
}

func (h *Hub) updateOnline() {
	h.online.Store(int64(len(h.clients)))
	h.metrics.SetOnlineClients(len(h.clients))
}

// Register adds c to the hub. It returns false if the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues an event for every connected client. Events are dropped
// (and logged) when the queue is full.
func (h *Hub) Publish(eventType string, data interface{}) {
	payload, err := json.Marshal(Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logger.Log.WithError(err).WithField("type", eventType).Error("Failed to encode realtime event")
		return
	}

	select {
	case h.broadcast <- payload:
		h.metrics.RecordEventBroadcast(eventType)
	default:
		logger.Log.WithField("type", eventType).Warn("Broadcast queue full, dropping event")
	}
}

// OnlineCount is safe to call from any goroutine.
func (h *Hub) OnlineCount() int {
	return int(h.online.Load())
}
