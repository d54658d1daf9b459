package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

// TopicRepository is an in-process topic catalog used by tests and the
// memory storage mode.
type TopicRepository struct {
	mu     sync.RWMutex
	topics map[int64]domain.Topic
	nextID int64
}

func NewTopicRepository(topics ...domain.Topic) *TopicRepository {
	r := &TopicRepository{topics: make(map[int64]domain.Topic)}
	for _, t := range topics {
		r.Save(t)
	}
	return r
}

// Save stores t, assigning an ID when t.ID is zero, and returns the ID.
func (r *TopicRepository) Save(t domain.Topic) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == 0 {
		r.nextID++
		t.ID = r.nextID
	} else if t.ID > r.nextID {
		r.nextID = t.ID
	}
	if t.Status == "" {
		t.Status = domain.TopicStatusPreparing
	}
	r.topics[t.ID] = t
	return t.ID
}

func (r *TopicRepository) GetByID(_ context.Context, id int64) (*domain.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.topics[id]
	if !ok {
		return nil, domain.ErrTopicNotFound
	}
	return &t, nil
}

func (r *TopicRepository) GetCurrent(ctx context.Context) (*domain.Topic, error) {
	ongoing, err := r.ListByStatus(ctx, domain.TopicStatusOngoing)
	if err != nil {
		return nil, err
	}
	if len(ongoing) == 0 {
		return nil, domain.ErrTopicNotFound
	}
	return ongoing[0], nil
}

func (r *TopicRepository) ListByStatus(_ context.Context, status domain.TopicStatus) ([]*domain.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Topic
	for _, t := range r.topics {
		if t.Status == status {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
