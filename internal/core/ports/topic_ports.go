package ports

//go:generate mockgen -source=topic_ports.go -destination=mocks/topic.go -package=mocks

import (
	"context"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

// TopicCatalog is the read side of the external topic catalog.
type TopicCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Topic, error)
	GetCurrent(ctx context.Context) (*domain.Topic, error)
	ListByStatus(ctx context.Context, status domain.TopicStatus) ([]*domain.Topic, error)
}
