package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

// JWT issues and verifies HS256 access tokens. The subject is the user id.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*JWT)

func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

func New(secret string, ttl time.Duration, opts ...Option) (*JWT, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	j := &JWT{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

func (j *JWT) Issue(user *domain.User) (string, error) {
	now := j.now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"nickname": user.Nickname,
		"exp":      now.Add(j.ttl).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// Resolve returns the user id carried by a valid token.
func (j *JWT) Resolve(credential string) (uuid.UUID, bool) {
	if credential == "" {
		return uuid.Nil, false
	}
	parsed, err := jwt.Parse(credential, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return uuid.Nil, false
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sub)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
