package queue

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type temporaryErr struct{ temporary bool }

func (e temporaryErr) Error() string   { return "api error" }
func (e temporaryErr) Temporary() bool { return e.temporary }

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("connection reset"), true},
		{"permanent", Permanent(errors.New("bad payload")), false},
		{"wrapped permanent", fmt.Errorf("deliver: %w", Permanent(errors.New("bad payload"))), false},
		{"temporary", temporaryErr{temporary: true}, true},
		{"not temporary", fmt.Errorf("send: %w", temporaryErr{temporary: false}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRetryable(tt.err))
		})
	}
}

func TestPermanentKeepsCause(t *testing.T) {
	cause := errors.New("bad payload")
	err := Permanent(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad payload", err.Error())
	assert.NoError(t, Permanent(nil))
}

func TestShouldRetryStopsAtMaxAttempts(t *testing.T) {
	r := NewRetryManager(3, 100*time.Millisecond)
	transient := errors.New("timeout")

	retry, delay := r.ShouldRetry(1, transient)
	assert.True(t, retry)
	assert.InDelta(t, float64(100*time.Millisecond), float64(delay), float64(25*time.Millisecond))

	retry, delay = r.ShouldRetry(2, transient)
	assert.True(t, retry)
	assert.InDelta(t, float64(200*time.Millisecond), float64(delay), float64(50*time.Millisecond))

	retry, _ = r.ShouldRetry(3, transient)
	assert.False(t, retry)

	retry, _ = r.ShouldRetry(1, Permanent(transient))
	assert.False(t, retry)
}

func TestBackoffIsCapped(t *testing.T) {
	r := NewRetryManager(20, time.Second)

	for attempt := 1; attempt < 12; attempt++ {
		assert.LessOrEqual(t, r.backoff(attempt), 16*time.Second, "attempt %d", attempt)
	}
	assert.Equal(t, 16*time.Second, r.backoff(10))
}

func TestNewRetryManagerAllowsOneAttempt(t *testing.T) {
	r := NewRetryManager(0, time.Second)
	assert.Equal(t, 1, r.MaxAttempts())

	retry, _ := r.ShouldRetry(1, errors.New("timeout"))
	assert.False(t, retry)
}
