package domain

import (
	"errors"
	"fmt"
)

// Error categories. Concrete errors wrap one of these so callers can
// branch on the category with errors.Is.
var (
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

var (
	ErrTopicNotFound  = fmt.Errorf("%w: topic not found", ErrNotFound)
	ErrVoterNotFound  = fmt.Errorf("%w: voter has no votes", ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrCooldownActive = fmt.Errorf("%w: cooldown active", ErrConflict)
	ErrTopicClosed    = fmt.Errorf("%w: topic is not open for voting", ErrConflict)

	ErrNicknameCooldown = fmt.Errorf("%w: nickname can change once every 90 days", ErrConflict)

	ErrInvalidTopicID   = fmt.Errorf("%w: invalid topic id", ErrValidation)
	ErrInvalidChoice    = fmt.Errorf("%w: choice must be A or B", ErrValidation)
	ErrMissingRegion    = fmt.Errorf("%w: region is required", ErrValidation)
	ErrMissingVoter     = fmt.Errorf("%w: voter identity required", ErrValidation)
	ErrInvalidVoterKind = fmt.Errorf("%w: unknown voter identity kind", ErrValidation)
	ErrMissingNickname  = fmt.Errorf("%w: nickname is required", ErrValidation)
	ErrNicknameTooLong  = fmt.Errorf("%w: nickname is too long", ErrValidation)
	ErrInvalidLocation  = fmt.Errorf("%w: latitude or longitude out of range", ErrValidation)
	ErrRegionUnknown    = fmt.Errorf("%w: location is outside every known region", ErrValidation)

	ErrInvalidCode = errors.New("invalid or expired authentication code")
	ErrInternal    = errors.New("internal server error")
)
