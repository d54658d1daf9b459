package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/platform/logger"
)

const channelPrefix = "votemap:topic:"

func channelFor(topicID int64) string {
	return channelPrefix + strconv.FormatInt(topicID, 10)
}

// RedisHub publishes events on a Redis channel per topic and relays every
// message it receives into a local Hub. Membership stays local; Redis only
// carries events between instances.
type RedisHub struct {
	client *redis.Client
	local  *Hub
	logger *slog.Logger
}

type RedisOption func(*RedisHub)

func WithRedisLogger(logger *slog.Logger) RedisOption {
	return func(h *RedisHub) {
		h.logger = logger
	}
}

func NewRedisHub(client *redis.Client, local *Hub, opts ...RedisOption) *RedisHub {
	h := &RedisHub{
		client: client,
		local:  local,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *RedisHub) Subscribe(sub ports.Subscriber, topicID int64) {
	h.local.Subscribe(sub, topicID)
}

func (h *RedisHub) Unsubscribe(sub ports.Subscriber, topicID int64) {
	h.local.Unsubscribe(sub, topicID)
}

func (h *RedisHub) Remove(sub ports.Subscriber) {
	h.local.Remove(sub)
}

func (h *RedisHub) Publish(ctx context.Context, topicID int64, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := h.client.Publish(ctx, channelFor(topicID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Run relays messages from Redis to the local hub until ctx is done. ready,
// if not nil, is closed once the pattern subscription is confirmed.
func (h *RedisHub) Run(ctx context.Context, ready chan<- struct{}) error {
	pubsub := h.client.PSubscribe(ctx, channelPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}
	if ready != nil {
		close(ready)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			h.relay(ctx, msg)
		}
	}
}

func (h *RedisHub) relay(ctx context.Context, msg *redis.Message) {
	topicID, err := strconv.ParseInt(strings.TrimPrefix(msg.Channel, channelPrefix), 10, 64)
	if err != nil {
		h.logger.Warn("ignoring message on unexpected channel", "channel", msg.Channel)
		return
	}
	var event domain.Event
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		h.logger.Warn("ignoring malformed event", "channel", msg.Channel, "error", err)
		return
	}
	_ = h.local.Publish(ctx, topicID, event)
}
