package queue

import (
	"errors"
	"math/rand"
	"time"
)

// RetryManager decides whether a failed delivery is tried again and how long to wait first.
type RetryManager struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

func NewRetryManager(maxAttempts int, baseDelay time.Duration) *RetryManager {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryManager{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    baseDelay * 16, // Maximum 16x base delay
	}
}

func (r *RetryManager) MaxAttempts() int {
	return r.maxAttempts
}

// ShouldRetry is asked after attempt number attempts failed with err.
func (r *RetryManager) ShouldRetry(attempts int, err error) (bool, time.Duration) {
	if attempts >= r.maxAttempts {
		return false, 0
	}
	if !IsRetryable(err) {
		return false, 0
	}
	return true, r.backoff(attempts)
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsRetryable reports whether err is a transient failure. Errors marked with
// Permanent, and errors exposing Temporary() == false, are not retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var permanent *permanentError
	if errors.As(err, &permanent) {
		return false
	}

	var temporary interface{ Temporary() bool }
	if errors.As(err, &temporary) {
		return temporary.Temporary()
	}
	return true
}

// backoff is base * 2^(attempt-1) with ±25% jitter, capped at maxDelay.
func (r *RetryManager) backoff(attempt int) time.Duration {
	if attempt <= 0 || r.baseDelay <= 0 {
		return r.baseDelay
	}

	backoff := r.baseDelay * time.Duration(1<<(attempt-1))

	if quarter := int64(backoff / 4); quarter > 0 {
		jitter := time.Duration(rand.Int63n(quarter + 1))
		if rand.Intn(2) == 0 {
			backoff += jitter
		} else {
			backoff -= jitter
		}
	}

	if backoff > r.maxDelay {
		backoff = r.maxDelay
	}
	return backoff
}
