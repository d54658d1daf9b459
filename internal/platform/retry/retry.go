package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
)

// MaxAttempts bounds retries of idempotent operations. Vote writes never go
// through this package.
const MaxAttempts = 3

// Idempotent runs op until it succeeds, returns a domain error, or MaxAttempts is
// reached. Domain errors (not found, validation, conflict) are not retried.
func Idempotent[T any](ctx context.Context, op func() (T, error)) (T, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 20 * time.Millisecond
	policy.MaxInterval = 250 * time.Millisecond

	return backoff.RetryWithData(func() (T, error) {
		v, err := op()
		if err != nil && isPermanent(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, MaxAttempts-1), ctx))
}

func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
