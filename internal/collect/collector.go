// Package collect fans out to every source adapter and concatenates their
// batches into one ordered list.
package collect

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vjdev/jobsdigest/internal/model"
)

// ErrAllSourcesFailed is returned when every adapter errored. A batch with
// zero records but at least one healthy adapter is not an error.
var ErrAllSourcesFailed = errors.New("all sources failed")

// Collector invokes all adapters for one cycle. Adapters run concurrently,
// but the output is always the concatenation in adapter-list order, each
// adapter's records in the order it produced them.
type Collector struct {
	adapters []model.SourceAdapter
	timeout  time.Duration // per-adapter fetch budget
	logger   *slog.Logger
}

// New creates a collector over the given adapters.
func New(adapters []model.SourceAdapter, timeout time.Duration, logger *slog.Logger) *Collector {
	return &Collector{
		adapters: adapters,
		timeout:  timeout,
		logger:   logger,
	}
}

// Collect fetches from every adapter. A failing adapter contributes nothing
// and never aborts the batch; its error is logged as a warning. Only when
// every adapter fails does Collect return ErrAllSourcesFailed.
func (c *Collector) Collect(ctx context.Context) ([]model.JobRecord, error) {
	results := make([][]model.JobRecord, len(c.adapters))
	failed := make([]bool, len(c.adapters))

	var g errgroup.Group
	for i, a := range c.adapters {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			recs, err := a.Fetch(fctx)
			if err != nil {
				// best-effort: don't cancel siblings
				c.logger.Warn("source fetch failed", "source", a.Name(), "error", err)
				failed[i] = true
				return nil
			}
			results[i] = dropMalformed(recs, a.Name(), c.logger)
			c.logger.Info("source fetched", "source", a.Name(), "records", len(results[i]))
			return nil
		})
	}
	_ = g.Wait()

	allFailed := len(c.adapters) > 0
	var batch []model.JobRecord
	for i := range c.adapters {
		if !failed[i] {
			allFailed = false
		}
		batch = append(batch, results[i]...)
	}
	if allFailed {
		return nil, ErrAllSourcesFailed
	}
	return batch, nil
}

// dropMalformed enforces the adapter contract: records without an id or url
// never enter the pipeline.
func dropMalformed(recs []model.JobRecord, source string, logger *slog.Logger) []model.JobRecord {
	out := recs[:0:0]
	for _, r := range recs {
		if r.ID == "" || r.URL == "" {
			logger.Warn("dropping malformed record", "source", source, "company", r.Company, "role", r.Role)
			continue
		}
		out = append(out, r)
	}
	return out
}
