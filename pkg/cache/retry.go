package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork marks a remote backend that could not be reached.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrInvalidURL is returned for a malformed backend URL.
	ErrInvalidURL = errors.New("invalid cache url")
)

// RetryableError marks a transient failure worth another attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// backoff describes how often and how patiently to retry.
type backoff struct {
	attempts int
	delay    time.Duration // first pause; doubles after each attempt
}

// remoteBackoff is used for every round trip to a remote backend.
var remoteBackoff = backoff{attempts: 3, delay: 100 * time.Millisecond}

// RetryWithBackoff runs fn until it succeeds, fails with a non-retryable
// error, or the attempts are exhausted, pausing exponentially in between.
// Cancelling ctx aborts the pause.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return remoteBackoff.do(ctx, fn)
}

func (b backoff) do(ctx context.Context, fn func() error) error {
	delay := b.delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
