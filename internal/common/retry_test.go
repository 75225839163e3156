package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteWithRetry(t *testing.T) {
	t.Run("succeeds after retryable errors", func(t *testing.T) {
		calls := 0
		res, err := ExecuteWithRetry(context.Background(), func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, ErrRetryTryAgain
			}
			return 42, nil
		}, WithRetryWaitTime(time.Millisecond))

		require.NoError(t, err)
		assert.Equal(t, 42, res)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		_, err := ExecuteWithRetry(context.Background(), func(context.Context) (int, error) {
			calls++
			return 0, boom
		}, WithRetryWaitTime(time.Millisecond))

		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("gives up after retry count", func(t *testing.T) {
		calls := 0
		_, err := ExecuteWithRetry(context.Background(), func(context.Context) (int, error) {
			calls++
			return 0, ErrRetryTryAgain
		}, WithRetryCount(2), WithRetryWaitTime(time.Millisecond))

		require.ErrorIs(t, err, ErrRetryTimeout)
		assert.Equal(t, 2, calls)
	})

	t.Run("custom retryable predicate", func(t *testing.T) {
		calls := 0
		_, err := ExecuteWithRetry(context.Background(), func(context.Context) (int, error) {
			calls++
			return 0, errors.New("anything")
		}, WithRetryCount(3), WithRetryWaitTime(time.Millisecond),
			WithIsRetryableError(func(error) bool { return true }))

		require.ErrorIs(t, err, ErrRetryTimeout)
		assert.Equal(t, 3, calls)
	})

	t.Run("context cancelled while waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ExecuteWithRetry(ctx, func(context.Context) (int, error) {
			return 0, ErrRetryTryAgain
		}, WithRetryWaitTime(time.Hour))

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, IsRetryableError(nil))
	assert.False(t, IsRetryableError(context.Canceled))
	assert.True(t, IsRetryableError(ErrRetryTryAgain))
	assert.False(t, IsRetryableError(errors.New("plain")))
}
