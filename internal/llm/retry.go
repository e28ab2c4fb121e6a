package llm

import (
	"context"
	"fmt"
	"time"

	"jwright/internal/logging"
)

// WithRetry wraps a generate call with exponential backoff: 500ms, 1s, 2s...
// Retries only on Kinds that isRetryable accepts; stops immediately on any
// other error.
func WithRetry(ctx context.Context, maxAttempts int, generate func(context.Context) (string, error)) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	baseDelay := 500 * time.Millisecond
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := baseDelay * time.Duration(1<<uint(attempt-1))
			logging.LLMDebug("retry attempt %d/%d after %v", attempt+1, maxAttempts, delay)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("context cancelled during retry backoff: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		resp, err := generate(ctx)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}
