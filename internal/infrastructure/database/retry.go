package database

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"langbot/internal/domain"
)

const retryAttempts = 4

// withRetry runs one logical store operation with a bounded
// exponential backoff, so a lost connection looks like a slow call to
// the layers above, never a failed turn. SQL-level errors and missing
// rows are not retried.
func withRetry[T any](ctx context.Context, op func() (T, error)) (T, error) {
	return backoff.Retry(ctx, func() (T, error) {
		value, err := op()
		if err != nil && !retryable(err) {
			return value, backoff.Permanent(err)
		}
		return value, err
	},
		backoff.WithBackOff(newRetryBackOff()),
		backoff.WithMaxTries(retryAttempts),
	)
}

func newRetryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}

// retryable treats connection-level failures as transient and
// everything the server actually answered as permanent. Domain
// sentinels are answers too: a not-found stays not-found however often
// it is asked.
func retryable(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	if errors.Is(err, domain.ErrIdentityNotFound) || errors.Is(err, domain.ErrUserNotFound) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}
	return true
}
