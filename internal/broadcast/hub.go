package broadcast

import (
	"sync"

	"go.uber.org/zap"
)

// Client is one connected websocket consumer. Send is buffered; the hub drops
// messages for clients that cannot keep up rather than blocking the queue.
type Client struct {
	ID   string
	Send chan []byte
}

// NewClient creates a client with a buffered send channel.
func NewClient(id string) *Client {
	return &Client{ID: id, Send: make(chan []byte, 16)}
}

// Hub tracks connected clients and fans event payloads out to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{clients: make(map[string]*Client), logger: logger}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}

// ClientCount reports connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast delivers the payload to every connected client, best effort.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("dropping broadcast for slow client", zap.String("client_id", client.ID))
		}
	}
}
