package pipeline

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays between translation
// attempts: a single retry after one second.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second}
}

// RetryFunc is called before each retry with the upcoming attempt number
// (starting at 2) and the error that caused it.
type RetryFunc func(attempt int, err error)

// Retry calls fn until it succeeds or the delays are exhausted, making
// len(delays)+1 attempts in total. A cancelled context stops retrying
// immediately and returns the context error.
func Retry[T any](ctx context.Context, delays []time.Duration, fn func(ctx context.Context) (T, error), onRetry RetryFunc) (T, error) {
	maxAttempts := len(delays) + 1

	var zero T
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if err := ctx.Err(); err != nil {
			return zero, err
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return zero, lastErr
}
