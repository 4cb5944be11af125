// Package ws pushes change events to connected websocket clients.
package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

// Hub tracks connected clients and fans change events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes c and closes its send channel. Repeated calls are safe.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Publish encodes ev once and queues it for every client. Clients with a
// full buffer miss the event instead of blocking the publisher.
func (h *Hub) Publish(ev domain.ChangeEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal change event", "type", ev.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("dropping change event for slow client", "type", ev.Type)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
