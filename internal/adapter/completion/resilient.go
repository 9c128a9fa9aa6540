package completion

import (
	"context"
	"fmt"
	"time"

	"ielts-reading/internal/domain"
	"ielts-reading/internal/logger"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const maxBackoffInterval = 30 * time.Second

// ResilientClient bounds each completion call with a timeout and retries failures with
// exponential backoff. It never retries once the caller's context is done.
type ResilientClient struct {
	next       domain.CompletionClient
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	// newTimer is nil outside tests, which selects the library's real timer
	newTimer func() backoff.Timer
}

// NewResilientClient wraps next. A zero timeout disables the per-attempt deadline.
func NewResilientClient(next domain.CompletionClient, timeout time.Duration, maxRetries int, backoff time.Duration) *ResilientClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ResilientClient{
		next:       next,
		timeout:    timeout,
		maxRetries: maxRetries,
		backoff:    backoff,
	}
}

func (c *ResilientClient) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	var text string
	attempts := 0

	operation := func() error {
		attempts++
		out, err := c.once(ctx, req)
		if err == nil {
			text = out
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		logger.Get().Warn("Completion attempt failed",
			zap.Int("attempt", attempts),
			zap.Int("max_attempts", c.maxRetries+1),
			zap.Duration("retry_in", wait),
			zap.Error(err))
	}

	var timer backoff.Timer
	if c.newTimer != nil {
		timer = c.newTimer()
	}

	if err := backoff.RetryNotifyWithTimer(operation, c.policy(ctx), notify, timer); err != nil {
		return "", fmt.Errorf("completion failed after %d attempt(s): %w", attempts, err)
	}
	return text, nil
}

// policy doubles the wait after each failure, starting at c.backoff, with no jitter.
func (c *ResilientClient) policy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.backoff
	exp.RandomizationFactor = 0
	exp.Multiplier = 2
	exp.MaxInterval = maxBackoffInterval
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.maxRetries)), ctx)
}

func (c *ResilientClient) once(ctx context.Context, req domain.CompletionRequest) (string, error) {
	if c.timeout <= 0 {
		return c.next.Complete(ctx, req)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.Complete(attemptCtx, req)
}

var _ domain.CompletionClient = (*ResilientClient)(nil)
