// Package pipeline ties the daily cycle together: collect from every
// source, drop what was already posted, curate into a digest, render
// and pack per channel, then deliver.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vjdev/jobsdigest/internal/collect"
	"github.com/vjdev/jobsdigest/internal/curate"
	"github.com/vjdev/jobsdigest/internal/dedup"
	"github.com/vjdev/jobsdigest/internal/digest"
	"github.com/vjdev/jobsdigest/internal/model"
	"github.com/vjdev/jobsdigest/internal/publish"
)

// Channel pairs a sender with the link style its platform renders.
// Telegram gets Markdown links, WhatsApp plain URLs.
type Channel struct {
	Sender model.Sender
	Style  digest.LinkStyle
}

type Pipeline struct {
	collector    *collect.Collector
	store        model.PostedStore
	channels     []Channel
	alerter      model.AdminAlerter
	curateOpts   curate.Options
	segmentLimit int
	segmentDelay time.Duration
	logger       *slog.Logger

	// now is swapped out in tests.
	now func() time.Time
}

type Params struct {
	Collector    *collect.Collector
	Store        model.PostedStore
	Channels     []Channel
	Alerter      model.AdminAlerter
	CurateOpts   curate.Options
	SegmentLimit int
	SegmentDelay time.Duration
	Logger       *slog.Logger
}

func New(p Params) *Pipeline {
	return &Pipeline{
		collector:    p.Collector,
		store:        p.Store,
		channels:     p.Channels,
		alerter:      p.Alerter,
		curateOpts:   p.CurateOpts,
		segmentLimit: p.SegmentLimit,
		segmentDelay: p.SegmentDelay,
		logger:       p.Logger,
		now:          time.Now,
	}
}

// Cycle runs one full collect-curate-deliver pass. An empty digest is
// a normal outcome, not an error. Source failures short of total are
// tolerated upstream; a total failure raises an admin alert.
func (p *Pipeline) Cycle(ctx context.Context) error {
	batch, err := p.collector.Collect(ctx)
	if err != nil {
		if errors.Is(err, collect.ErrAllSourcesFailed) {
			p.alert(ctx, "digest run aborted: every job source failed")
		}
		return fmt.Errorf("collecting jobs: %w", err)
	}
	p.logger.Info("collection complete", "records", len(batch))

	fresh, err := dedup.Filter(batch, p.store)
	if err != nil {
		return fmt.Errorf("filtering posted jobs: %w", err)
	}
	if len(fresh) == 0 {
		p.logger.Info("no new jobs today, skipping delivery")
		return nil
	}

	d, err := curate.Run(fresh, p.store, p.curateOpts)
	if err != nil {
		return fmt.Errorf("curating digest: %w", err)
	}
	if d.Total() == 0 {
		p.logger.Info("digest empty after curation, skipping delivery")
		return nil
	}
	p.logger.Info("digest curated",
		"remote", len(d.Remote),
		"india", len(d.India),
	)

	now := p.now()
	var delivered, failed int
	for _, ch := range p.channels {
		segments := digest.Pack(digest.Chunks(d, ch.Style, now), p.segmentLimit)
		pub := publish.New([]model.Sender{ch.Sender}, p.segmentDelay, p.logger)
		res := pub.Publish(ctx, segments)
		delivered += res.Delivered
		failed += res.Failed
	}
	p.logger.Info("delivery complete", "delivered", delivered, "failed", failed)

	if failed > 0 {
		p.alert(ctx, fmt.Sprintf("digest delivery incomplete: %d segment(s) failed", failed))
	}
	return nil
}

func (p *Pipeline) alert(ctx context.Context, msg string) {
	if p.alerter == nil {
		return
	}
	if err := p.alerter.AdminAlert(ctx, msg); err != nil {
		p.logger.Error("admin alert failed", "err", err)
	}
}
