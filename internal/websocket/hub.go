package websocket

import (
	"encoding/json"
	"sync"

	"portfolio-terminal/internal/pkg/logger"
	"portfolio-terminal/pkg/events"

	"github.com/google/uuid"
)

// Hub fans activity events out to every connected dashboard client. The feed
// is a pure broadcast: there is no per-client addressing.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
				h.logger.Info("Hub", "Dashboard client unregistered", map[string]interface{}{"client_id": client.ID})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an activity event to all connected clients. Clients whose
// send buffer is full are dropped rather than allowed to stall the feed.
func (h *Hub) Broadcast(evt events.BaseEvent) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "activity",
		"data": evt,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize activity event", map[string]interface{}{"error": err.Error()})
		return
	}

	var dropped []*Client

	h.mu.RLock()
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	// Unregister outside the read lock; Run needs the write lock.
	for _, client := range dropped {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"client_id": client.ID})
		h.unregister <- client
	}
}

// ClientCount reports the number of connected dashboard clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
