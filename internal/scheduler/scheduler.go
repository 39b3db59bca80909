// Package scheduler fires a job once a day at a fixed UTC wall-clock
// time. It re-computes the target after every run, so drift and DST
// never accumulate (the schedule is UTC-anchored to begin with).
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

type Scheduler struct {
	hour   int
	minute int
	logger *slog.Logger
}

func New(hour, minute int, logger *slog.Logger) *Scheduler {
	return &Scheduler{hour: hour, minute: minute, logger: logger}
}

// NextRun returns the next occurrence of the configured time strictly
// after now, in UTC. If today's slot has already passed, it is
// tomorrow's.
func NextRun(now time.Time, hour, minute int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks, invoking fn at the scheduled time every day until ctx is
// cancelled. Errors from fn are logged and the schedule continues; a
// bad day must not kill the daemon.
func (s *Scheduler) Run(ctx context.Context, fn func(context.Context) error) error {
	for {
		next := NextRun(time.Now(), s.hour, s.minute)
		s.logger.Info("next digest scheduled", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := fn(ctx); err != nil {
			s.logger.Error("scheduled run failed", "err", err)
		}
	}
}
