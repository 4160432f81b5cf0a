// Package retry implements bounded exponential backoff for API calls.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
	"github.com/gcp-hcp/gcphcp/internal/logger"
)

// Config defines how retry behavior should work.
type Config struct {
	MaxAttempts int           // Maximum number of attempts (e.g., 3)
	BaseDelay   time.Duration // Initial delay (e.g., 500ms)
	MaxDelay    time.Duration // Maximum delay (e.g., 5s)
	Jitter      bool          // Add randomness to spread contention
}

// APIPolicy is the retry policy for idempotent resource API calls.
var APIPolicy = Config{
	MaxAttempts: 3,
	BaseDelay:   500 * time.Millisecond,
	MaxDelay:    5 * time.Second,
	Jitter:      true,
}

// Retryer executes functions with retry.
type Retryer interface {
	Do(ctx context.Context, fn func() error) error
}

type exponentialBackoff struct {
	config Config
	log    *slog.Logger
}

// New creates a Retryer with the given configuration.
func New(config Config) Retryer {
	return &exponentialBackoff{
		config: config,
		log:    logger.Get(),
	}
}

// Do executes fn until it succeeds, fails with a non-retryable error,
// or the attempt budget is exhausted. Only errors classified as
// ServerError or NetworkError are retried.
func (e *exponentialBackoff) Do(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= e.config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return clierr.Wrap(clierr.Network, "operation canceled", ctx.Err())
		default:
		}

		err := fn()
		if err == nil {
			if attempt > 1 {
				e.log.Info("operation succeeded after retry",
					"attempt", attempt,
					"max_attempts", e.config.MaxAttempts)
			}
			return nil
		}
		lastErr = err

		if !clierr.IsRetryable(err) {
			return err
		}
		if attempt == e.config.MaxAttempts {
			break
		}

		delay := e.calculateDelay(attempt)
		e.log.Warn("operation attempt failed, retrying",
			"attempt", attempt,
			"max_attempts", e.config.MaxAttempts,
			"delay", delay.String(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return clierr.Wrap(clierr.Network, "operation canceled during backoff", ctx.Err())
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("max attempts reached (%d): %w", e.config.MaxAttempts, lastErr)
}

// calculateDelay computes baseDelay * 2^(attempt-1), capped at
// MaxDelay, with up to 25% jitter when enabled.
func (e *exponentialBackoff) calculateDelay(attempt int) time.Duration {
	exponential := float64(e.config.BaseDelay) * math.Pow(2, float64(attempt-1))
	if exponential > float64(e.config.MaxDelay) {
		exponential = float64(e.config.MaxDelay)
	}
	delay := time.Duration(exponential)

	if e.config.Jitter {
		jitterRange := float64(delay) * 0.25
		// #nosec G404 - jitter does not need cryptographic randomness
		delay += time.Duration(rand.Float64() * jitterRange)
	}
	return delay
}
