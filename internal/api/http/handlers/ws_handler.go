package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/queue-service/internal/broadcast"
)

// WSHandler upgrades clients onto the broadcast hub.
type WSHandler struct {
	hub    *broadcast.Hub
	logger *zap.Logger
}

// NewWSHandler constructs handler.
func NewWSHandler(hub *broadcast.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

// Upgrade gates the route to websocket upgrade requests.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve registers the connection with the hub and pumps broadcast payloads
// until the client disconnects. Inbound messages are drained and ignored.
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := broadcast.NewClient(uuid.NewString())
		h.hub.Register(client)
		defer h.hub.Unregister(client)
		h.logger.Debug("websocket client connected", zap.String("client_id", client.ID))

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case payload, ok := <-client.Send:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
