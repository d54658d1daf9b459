package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
	"github.com/vncsmyrnk/votemap/internal/platform/logger"
)

const otpKeyPrefix = "otp:"

// AuthService is the phone one-time-code login. It lives beside the vote
// core: it only issues credentials and hands device votes over on login.
type AuthService struct {
	userRepo ports.UserRepository
	codes    ports.CodeStore
	sender   ports.CodeSender
	issuer   ports.TokenIssuer
	votes    ports.VoteService
	codeTTL  time.Duration
	logger   *slog.Logger
}

type AuthOption func(*AuthService)

func WithCodeTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		s.codeTTL = ttl
	}
}

func WithAuthLogger(logger *slog.Logger) AuthOption {
	return func(s *AuthService) {
		s.logger = logger
	}
}

func NewAuthService(userRepo ports.UserRepository, codes ports.CodeStore, sender ports.CodeSender, issuer ports.TokenIssuer, votes ports.VoteService, opts ...AuthOption) *AuthService {
	s := &AuthService{
		userRepo: userRepo,
		codes:    codes,
		sender:   sender,
		issuer:   issuer,
		votes:    votes,
		codeTTL:  3 * time.Minute,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) RequestCode(ctx context.Context, phoneNumber string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return fmt.Errorf("%w: phone number is required", domain.ErrValidation)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	if err := s.codes.Put(ctx, otpKeyPrefix+phoneNumber, code, s.codeTTL); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	if err := s.sender.Send(ctx, phoneNumber, code); err != nil {
		return fmt.Errorf("failed to send code: %w", err)
	}
	return nil
}

func (s *AuthService) VerifyCode(ctx context.Context, input ports.VerifyCodeInput) (*ports.LoginResult, error) {
	phoneNumber := strings.TrimSpace(input.PhoneNumber)
	if phoneNumber == "" || input.Code == "" {
		return nil, fmt.Errorf("%w: phone number and code are required", domain.ErrValidation)
	}

	// The stored code is consumed whether or not it matches.
	stored, ok, err := s.codes.Take(ctx, otpKeyPrefix+phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to read code: %w", err)
	}
	if !ok || subtle.ConstantTimeCompare([]byte(stored), []byte(input.Code)) != 1 {
		return nil, domain.ErrInvalidCode
	}

	user, err := s.findOrCreate(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	var reassigned int64
	if input.DeviceID != "" {
		reassigned, err = s.votes.ClaimDeviceVotes(ctx, input.DeviceID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "reassigned_votes", reassigned)

	return &ports.LoginResult{
		AccessToken:     token,
		User:            user,
		ReassignedVotes: reassigned,
	}, nil
}

func (s *AuthService) findOrCreate(ctx context.Context, phoneNumber string) (*domain.User, error) {
	user, err := s.userRepo.GetByPhone(ctx, phoneNumber)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return nil, fmt.Errorf("failed to generate nickname: %w", err)
	}
	user = &domain.User{
		PhoneNumber: phoneNumber,
		Nickname:    fmt.Sprintf("User%d", n.Int64()),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
