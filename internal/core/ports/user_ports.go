package ports

//go:generate mockgen -source=user_ports.go -destination=mocks/user.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

// UserGuard inspects the stored user inside the repository's critical
// section. A non-nil error aborts the change.
type UserGuard func(current *domain.User) error

type UserRepository interface {
	GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// UpdateNickname stores the nickname and its change time if guard
	// accepts the current row.
	UpdateNickname(ctx context.Context, id uuid.UUID, nickname string, changedAt time.Time, guard UserGuard) (*domain.User, error)
	SetVerifiedRegion(ctx context.Context, id uuid.UUID, region string) (*domain.User, error)
}

// RegionLocator maps a coordinate to the region name votes are tallied by.
type RegionLocator interface {
	Locate(ctx context.Context, latitude, longitude float64) (string, error)
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateNickname(ctx context.Context, id uuid.UUID, nickname string) (*domain.User, error)
	VerifyRegion(ctx context.Context, id uuid.UUID, latitude, longitude float64) (*domain.User, error)
}
