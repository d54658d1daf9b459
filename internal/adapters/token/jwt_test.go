package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

func TestJWT_IssueAndResolve(t *testing.T) {
	issuer, err := New("test-secret", time.Hour)
	require.NoError(t, err)

	user := &domain.User{ID: uuid.New(), Nickname: "User42"}
	signed, err := issuer.Issue(user)
	require.NoError(t, err)

	id, ok := issuer.Resolve(signed)
	assert.True(t, ok)
	assert.Equal(t, user.ID, id)
}

func TestJWT_RejectsExpired(t *testing.T) {
	start := time.Now()
	now := start
	issuer, err := New("test-secret", time.Minute, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	signed, err := issuer.Issue(&domain.User{ID: uuid.New()})
	require.NoError(t, err)

	now = start.Add(2 * time.Minute)
	_, ok := issuer.Resolve(signed)
	assert.False(t, ok)
}

func TestJWT_RejectsForeignSignature(t *testing.T) {
	issuer, err := New("test-secret", time.Hour)
	require.NoError(t, err)
	other, err := New("other-secret", time.Hour)
	require.NoError(t, err)

	signed, err := other.Issue(&domain.User{ID: uuid.New()})
	require.NoError(t, err)

	_, ok := issuer.Resolve(signed)
	assert.False(t, ok)
}

func TestJWT_RejectsMalformedSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "not-a-uuid",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	issuer, err := New("test-secret", time.Hour)
	require.NoError(t, err)
	_, ok := issuer.Resolve(signed)
	assert.False(t, ok)
	_, ok = issuer.Resolve("")
	assert.False(t, ok)
}

func TestNew_Validates(t *testing.T) {
	_, err := New("", time.Hour)
	assert.Error(t, err)
	_, err = New("s", 0)
	assert.Error(t, err)
}
