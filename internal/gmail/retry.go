package gmail

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	// maxAttempts bounds every provider call: one initial try plus two
	// retries for retryable outcomes.
	maxAttempts = 3

	retryInitialInterval = 500 * time.Millisecond
	retryMaxInterval     = 5 * time.Second
)

// withRetry runs op with bounded exponential backoff. Only RateLimited and
// Transient outcomes are retried; every other kind propagates immediately.
// The returned error is always classified.
func withRetry[T any](ctx context.Context, op func() (T, error)) (T, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.MaxInterval = retryMaxInterval

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err == nil {
			return v, nil
		}
		cerr := Classify(err)
		if !cerr.Retryable() {
			return v, backoff.Permanent(cerr)
		}
		return v, cerr
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(maxAttempts))
}
