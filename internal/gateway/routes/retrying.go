package routes

import (
	"context"
	"errors"
	"time"

	"github.com/mjperez2704/deli-back-office/internal/domain"
	"github.com/mjperez2704/deli-back-office/internal/logx"
)

type gateway interface {
	Estimate(context.Context, domain.Point, domain.Point) (Estimate, error)
}

type counter interface {
	Inc()
}

// RetryConfig controls the retry behavior of RetryingGateway.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway wraps a route gateway and retries transient failures
// with exponential backoff.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway returns nil when next is nil.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Estimate calls the wrapped gateway, retrying up to MaxAttempts times.
func (g *RetryingGateway) Estimate(ctx context.Context, origin, destination domain.Point) (Estimate, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		est, err := g.next.Estimate(ctx, origin, destination)
		if err == nil {
			return est, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("route gateway retry",
			logx.String("method", "Estimate"),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return Estimate{}, lastErr
}

// isRetryable reports whether the error is worth another attempt.
// Cancellation is final; everything else from the HTTP client is transient.
func isRetryable(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// backoff returns the delay before the next attempt.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
