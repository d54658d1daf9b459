package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// NicknameCooldown is how long a user keeps a nickname before changing it
// again. The first change after sign-up is always allowed.
const NicknameCooldown = 90 * 24 * time.Hour

const maxNicknameLength = 20

type User struct {
	ID                uuid.UUID  `json:"id"`
	PhoneNumber       string     `json:"phone_number"`
	Nickname          string     `json:"nickname"`
	NicknameChangedAt *time.Time `json:"nickname_changed_at,omitempty"`
	VerifiedRegion    string     `json:"verified_region,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// NormalizeNickname trims the nickname and checks its length.
func NormalizeNickname(nickname string) (string, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return "", ErrMissingNickname
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLength {
		return "", ErrNicknameTooLong
	}
	return nickname, nil
}

// NicknamePolicy applies a CooldownPolicy to nickname changes.
type NicknamePolicy struct {
	CooldownPolicy
}

func (p NicknamePolicy) Check(user *User, now time.Time) error {
	if user.NicknameChangedAt == nil {
		return nil
	}
	if !p.Allows(*user.NicknameChangedAt, now) {
		return ErrNicknameCooldown
	}
	return nil
}

// NextChangeAt is when the nickname may change again, or nil if it may change
// now.
func (p NicknamePolicy) NextChangeAt(user *User, now time.Time) *time.Time {
	if user.NicknameChangedAt == nil || p.Allows(*user.NicknameChangedAt, now) {
		return nil
	}
	next := user.NicknameChangedAt.Add(p.Cooldown)
	return &next
}
