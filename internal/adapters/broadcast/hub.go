package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/platform/logger"
	"github.com/vncsmyrnk/votemap/internal/platform/metrics"
)

// Hub is the in-process membership table. A subscriber that cannot accept an
// event is removed from every topic; its connection is expected to close.
type Hub struct {
	mu     sync.RWMutex
	topics map[int64]map[ports.Subscriber]struct{}
	subs   map[ports.Subscriber]map[int64]struct{}

	logger  *slog.Logger
	metrics *metrics.Metrics
}

type HubOption func(*Hub)

func WithHubLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

func WithHubMetrics(m *metrics.Metrics) HubOption {
	return func(h *Hub) {
		h.metrics = m
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		topics: make(map[int64]map[ports.Subscriber]struct{}),
		subs:   make(map[ports.Subscriber]map[int64]struct{}),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hub) Subscribe(sub ports.Subscriber, topicID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.topics[topicID]
	if !ok {
		members = make(map[ports.Subscriber]struct{})
		h.topics[topicID] = members
	}
	if _, dup := members[sub]; dup {
		return
	}
	members[sub] = struct{}{}

	joined, ok := h.subs[sub]
	if !ok {
		joined = make(map[int64]struct{})
		h.subs[sub] = joined
	}
	joined[topicID] = struct{}{}
	h.metrics.AddSubscriptions(1)
}

func (h *Hub) Unsubscribe(sub ports.Subscriber, topicID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leave(sub, topicID)
}

// Remove drops sub from every topic it joined.
func (h *Hub) Remove(sub ports.Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topicID := range h.subs[sub] {
		h.leave(sub, topicID)
	}
}

// leave must be called with mu held.
func (h *Hub) leave(sub ports.Subscriber, topicID int64) {
	members := h.topics[topicID]
	if _, ok := members[sub]; !ok {
		return
	}
	delete(members, sub)
	if len(members) == 0 {
		delete(h.topics, topicID)
	}
	joined := h.subs[sub]
	delete(joined, topicID)
	if len(joined) == 0 {
		delete(h.subs, sub)
	}
	h.metrics.AddSubscriptions(-1)
}

// Publish queues event on every current member of the topic. It never
// blocks on a subscriber and never fails.
func (h *Hub) Publish(_ context.Context, topicID int64, event domain.Event) error {
	h.mu.RLock()
	members := make([]ports.Subscriber, 0, len(h.topics[topicID]))
	for sub := range h.topics[topicID] {
		members = append(members, sub)
	}
	h.mu.RUnlock()

	var slow []ports.Subscriber
	for _, sub := range members {
		if sub.Deliver(event) {
			h.metrics.IncrementDelivered(string(event.Type))
			continue
		}
		h.metrics.IncrementDropped()
		slow = append(slow, sub)
	}

	for _, sub := range slow {
		h.logger.Warn("dropping slow subscriber", "topic_id", topicID, "event", event.Type)
		h.Remove(sub)
	}
	return nil
}

// Subscribers reports how many subscribers the topic has.
func (h *Hub) Subscribers(topicID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topicID])
}
