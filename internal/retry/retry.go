// Package retry wraps a source adapter with bounded retries and
// exponential backoff for transient fetch failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/vjdev/jobsdigest/internal/model"
)

type Options struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Adapter retries Fetch on transient errors. Client errors other than
// 429 are permanent and returned immediately, as is context
// cancellation. A 429 with Retry-After overrides the backoff delay.
type Adapter struct {
	inner  model.SourceAdapter
	opts   Options
	logger *slog.Logger

	// sleep is swapped out in tests.
	sleep func(context.Context, time.Duration) error
}

var _ model.SourceAdapter = (*Adapter)(nil)

func Wrap(inner model.SourceAdapter, opts Options, logger *slog.Logger) *Adapter {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &Adapter{
		inner:  inner,
		opts:   opts,
		logger: logger,
		sleep:  sleepCtx,
	}
}

func (a *Adapter) Name() string { return a.inner.Name() }

func (a *Adapter) Fetch(ctx context.Context) ([]model.JobRecord, error) {
	var lastErr error
	for attempt := 1; attempt <= a.opts.MaxAttempts; attempt++ {
		recs, err := a.inner.Fetch(ctx)
		if err == nil {
			return recs, nil
		}
		lastErr = err

		if !retryable(err) || attempt == a.opts.MaxAttempts {
			break
		}

		delay := backoff(a.opts.BaseDelay, attempt)
		var httpErr *model.HTTPError
		if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
			delay = httpErr.RetryAfter
		}
		a.logger.Warn("fetch failed, retrying",
			"source", a.inner.Name(),
			"attempt", attempt,
			"delay", delay,
			"err", err,
		)
		if err := a.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("fetching %s: %w", a.inner.Name(), lastErr)
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		code := httpErr.StatusCode
		return code == 429 || code >= 500
	}
	// Network-level errors without a status are assumed transient.
	return true
}

// backoff doubles the base delay per attempt with up to 25% jitter.
func backoff(base time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	return d + time.Duration(rand.Int63n(int64(d)/4+1))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
