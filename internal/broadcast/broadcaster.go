package broadcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/queue-service/internal/events"
)

const publishTimeout = 2 * time.Second

// Broadcaster subscribes to queue events and pushes them to connected
// websocket clients and to a Redis pub/sub channel. Delivery is fire and
// forget: a failed push never fails the originating request.
type Broadcaster struct {
	hub     *Hub
	redis   *redis.Client
	channel string
	logger  *zap.Logger
}

// NewBroadcaster creates the fan-out bridge. The Redis client may be nil, in
// which case only websocket clients are notified.
func NewBroadcaster(hub *Hub, redisClient *redis.Client, channel string, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{hub: hub, redis: redisClient, channel: channel, logger: logger}
}

// RegisterHandlers subscribes the broadcaster to every queue event type.
func (b *Broadcaster) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range events.All() {
		dispatcher.Subscribe(eventType, b.handle)
	}
}

func (b *Broadcaster) handle(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("marshal broadcast event", zap.Error(err))
		return nil
	}

	b.hub.Broadcast(payload)

	if b.redis != nil {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := b.redis.Publish(pubCtx, b.channel, payload).Err(); err != nil {
			b.logger.Warn("redis publish failed",
				zap.String("channel", b.channel),
				zap.String("event_type", string(event.Type)),
				zap.Error(err))
		}
	}
	return nil
}
