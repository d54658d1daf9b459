package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/platform/logger"
)

var (
	errNicknameUnchanged = errors.New("nickname unchanged")
	errNoRegionLocator   = errors.New("region verification is not configured")
)

type UserService struct {
	repo     ports.UserRepository
	locator  ports.RegionLocator
	nickname domain.NicknamePolicy
	now      func() time.Time
	logger   *slog.Logger
}

type UserOption func(*UserService)

func WithRegionLocator(l ports.RegionLocator) UserOption {
	return func(s *UserService) {
		s.locator = l
	}
}

func WithNicknameCooldown(d time.Duration) UserOption {
	return func(s *UserService) {
		s.nickname = domain.NicknamePolicy{CooldownPolicy: domain.CooldownPolicy{Cooldown: d}}
	}
}

func WithUserClock(now func() time.Time) UserOption {
	return func(s *UserService) {
		s.now = now
	}
}

func WithUserLogger(logger *slog.Logger) UserOption {
	return func(s *UserService) {
		s.logger = logger
	}
}

func NewUserService(repo ports.UserRepository, opts ...UserOption) *UserService {
	s := &UserService{
		repo:     repo,
		nickname: domain.NicknamePolicy{CooldownPolicy: domain.CooldownPolicy{Cooldown: domain.NicknameCooldown}},
		now:      time.Now,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateNickname changes the nickname at most once per cooldown. Setting the
// nickname the user already has is a no-op and does not restart the clock.
func (s *UserService) UpdateNickname(ctx context.Context, id uuid.UUID, nickname string) (*domain.User, error) {
	nickname, err := domain.NormalizeNickname(nickname)
	if err != nil {
		return nil, err
	}

	now := s.now()
	unchanged := false
	user, err := s.repo.UpdateNickname(ctx, id, nickname, now, func(current *domain.User) error {
		if current.Nickname == nickname {
			unchanged = true
			return errNicknameUnchanged
		}
		return s.nickname.Check(current, now)
	})
	if unchanged {
		return s.GetByID(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update nickname: %w", err)
	}

	s.logger.Info("nickname changed", "user_id", id)
	return user, nil
}

// VerifyRegion resolves the coordinate and stores the region on the user.
func (s *UserService) VerifyRegion(ctx context.Context, id uuid.UUID, latitude, longitude float64) (*domain.User, error) {
	if s.locator == nil {
		return nil, errNoRegionLocator
	}
	region, err := s.locator.Locate(ctx, latitude, longitude)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.SetVerifiedRegion(ctx, id, region)
	if err != nil {
		return nil, fmt.Errorf("failed to verify region: %w", err)
	}
	s.logger.Info("region verified", "user_id", id, "region", region)
	return user, nil
}
