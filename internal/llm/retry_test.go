package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetrySucceedsAfterRetryableFailures(t *testing.T) {
	calls := 0
	resp, err := WithRetry(context.Background(), 3, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", newError(KindUnavailable, "transient", nil)
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, 3, calls)
}

func TestWithRetryStopsImmediatelyOnNonRetryable(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), 5, func(ctx context.Context) (string, error) {
		calls++
		return "", newError(KindInvalidResponse, "bad json", nil)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), 2, func(ctx context.Context) (string, error) {
		calls++
		return "", newError(KindTimeout, "slow", nil)
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := WithRetry(ctx, 3, func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			cancel()
		}
		return "", newError(KindTimeout, "slow", nil)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
