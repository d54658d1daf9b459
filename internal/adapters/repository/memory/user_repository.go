package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]domain.User
	byPhone map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[uuid.UUID]domain.User),
		byPhone: make(map[string]uuid.UUID),
	}
}

func (r *UserRepository) GetByPhone(_ context.Context, phoneNumber string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPhone[phoneNumber]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPhone[user.PhoneNumber]; ok {
		return fmt.Errorf("%w: phone number already registered", domain.ErrConflict)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.byID[user.ID] = *user
	r.byPhone[user.PhoneNumber] = user.ID
	return nil
}

func (r *UserRepository) UpdateNickname(_ context.Context, id uuid.UUID, nickname string, changedAt time.Time, guard ports.UserGuard) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if guard != nil {
		current := u
		if err := guard(&current); err != nil {
			return nil, err
		}
	}
	u.Nickname = nickname
	u.NicknameChangedAt = &changedAt
	r.byID[id] = u
	return &u, nil
}

func (r *UserRepository) SetVerifiedRegion(_ context.Context, id uuid.UUID, region string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.VerifiedRegion = region
	r.byID[id] = u
	return &u, nil
}
