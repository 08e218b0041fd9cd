package service

import (
	"context"
	"time"

	"github.com/jamiebhpark/MentalHealthApp/internal/models"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds how often a transient store failure is retried.
type RetryPolicy struct {
	MaxAttempts int
	Initial     time.Duration
}

// DefaultRetryPolicy makes three attempts starting 50ms apart.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Initial: 50 * time.Millisecond}

// NoRetry makes a single attempt.
var NoRetry = RetryPolicy{MaxAttempts: 1}

// retry runs op until it succeeds, fails with a non-transient error, or the policy is spent.
// Only STORE_UNAVAILABLE errors are transient.
func retry[T any](ctx context.Context, p RetryPolicy, op func() (T, error)) (T, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	if p.Initial > 0 {
		b.InitialInterval = p.Initial
	}
	b.MaxInterval = 2 * time.Second

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && !models.IsCode(err, models.CodeStoreUnavailable) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(attempts)))
}

// retryErr is retry for operations with no result.
func retryErr(ctx context.Context, p RetryPolicy, op func() error) error {
	_, err := retry(ctx, p, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}
