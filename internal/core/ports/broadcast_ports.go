package ports

//go:generate mockgen -source=broadcast_ports.go -destination=mocks/broadcast.go -package=mocks

import (
	"context"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

// Subscriber is one connected client endpoint. Deliver must not block; it
// reports false when the event could not be queued.
type Subscriber interface {
	Deliver(event domain.Event) bool
}

type Broadcaster interface {
	Publish(ctx context.Context, topicID int64, event domain.Event) error
}

type SubscriptionHub interface {
	Broadcaster
	Subscribe(sub Subscriber, topicID int64)
	Unsubscribe(sub Subscriber, topicID int64)
	Remove(sub Subscriber)
}
