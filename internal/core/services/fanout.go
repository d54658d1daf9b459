package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

// topicFanout keeps one lane per topic. A lane serializes recompute with the
// enqueue of its events, and a single drainer per lane publishes the queued
// batches in enqueue order, so the last snapshot a subscriber receives is the
// last one computed.
type topicFanout struct {
	broadcaster ports.Broadcaster
	timeout     time.Duration
	logger      *slog.Logger

	mu    sync.Mutex
	lanes map[int64]*fanoutLane
}

type fanoutLane struct {
	order sync.Mutex

	mu       sync.Mutex
	pending  [][]domain.Event
	draining bool
}

func newTopicFanout(broadcaster ports.Broadcaster, timeout time.Duration, logger *slog.Logger) *topicFanout {
	return &topicFanout{
		broadcaster: broadcaster,
		timeout:     timeout,
		logger:      logger,
		lanes:       make(map[int64]*fanoutLane),
	}
}

func (f *topicFanout) lane(topicID int64) *fanoutLane {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lanes[topicID]
	if !ok {
		l = &fanoutLane{}
		f.lanes[topicID] = l
	}
	return l
}

// Sequence runs build under the topic's order lock and queues the events it
// returns. Publishing happens off the caller's goroutine.
func (f *topicFanout) Sequence(topicID int64, build func() ([]domain.Event, error)) error {
	l := f.lane(topicID)
	l.order.Lock()
	defer l.order.Unlock()

	events, err := build()
	if err != nil {
		return err
	}
	if f.broadcaster == nil || len(events) == 0 {
		return nil
	}

	l.mu.Lock()
	l.pending = append(l.pending, events)
	start := !l.draining
	l.draining = true
	l.mu.Unlock()

	if start {
		go f.drain(topicID, l)
	}
	return nil
}

func (f *topicFanout) drain(topicID int64, l *fanoutLane) {
	for {
		l.mu.Lock()
		if len(l.pending) == 0 {
			l.draining = false
			l.mu.Unlock()
			return
		}
		batch := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]
		l.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
		for _, event := range batch {
			if err := f.broadcaster.Publish(ctx, topicID, event); err != nil {
				f.logger.Warn("failed to publish event", "topic_id", topicID, "event", event.Type, "error", err)
			}
		}
		cancel()
	}
}
