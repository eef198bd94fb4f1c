package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errTransient = errors.New("transient")

func isTransient(err error) bool {
	return errors.Is(err, errTransient)
}

func Test_Do_WhenTransientThenSuccess_ShouldRetry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 3, Backoff: time.Millisecond}, func(context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	}, isTransient)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func Test_Do_WhenAttemptsExhausted_ShouldReturnLastError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 2, Backoff: time.Millisecond}, func(context.Context) error {
		calls++
		return errTransient
	}, isTransient)

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 2, calls)
}

func Test_Do_WhenPermanentError_ShouldNotRetry(t *testing.T) {
	calls := 0
	permanent := errors.New("bad request")
	err := Do(context.Background(), Policy{MaxAttempts: 5, Backoff: time.Millisecond}, func(context.Context) error {
		calls++
		return permanent
	}, isTransient)

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func Test_Do_WhenContextCanceledDuringBackoff_ShouldStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Policy{MaxAttempts: 5, Backoff: time.Hour}, func(context.Context) error {
		calls++
		cancel()
		return errTransient
	}, isTransient)

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
