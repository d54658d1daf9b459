package ports

//go:generate mockgen -source=auth_ports.go -destination=mocks/auth.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

// IdentityResolver maps a bearer credential to a user id.
type IdentityResolver interface {
	Resolve(credential string) (uuid.UUID, bool)
}

type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// CodeStore is a keyed store with per-entry expiry. Take removes the entry
// and reports whether it was present and unexpired.
type CodeStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Take(ctx context.Context, key string) (string, bool, error)
}

type CodeSender interface {
	Send(ctx context.Context, phoneNumber, code string) error
}

type VerifyCodeInput struct {
	PhoneNumber string
	Code        string
	DeviceID    string
}

type LoginResult struct {
	AccessToken     string       `json:"access_token"`
	User            *domain.User `json:"user"`
	ReassignedVotes int64        `json:"reassigned_votes"`
}

type AuthService interface {
	RequestCode(ctx context.Context, phoneNumber string) error
	VerifyCode(ctx context.Context, input VerifyCodeInput) (*LoginResult, error)
}
