// Package publish delivers rendered digest segments to the configured
// channels. A failure on one channel never blocks the others.
package publish

import (
	"context"
	"log/slog"
	"time"

	"github.com/vjdev/jobsdigest/internal/digest"
	"github.com/vjdev/jobsdigest/internal/model"
)

// Result summarizes one publishing run.
type Result struct {
	Delivered int // segments delivered across all channels
	Failed    int // segments that could not be delivered
}

// Publisher fans segments out to every registered sender, pausing
// between consecutive segments so channels see them in order.
type Publisher struct {
	senders []model.Sender
	delay   time.Duration
	logger  *slog.Logger
}

func New(senders []model.Sender, delay time.Duration, logger *slog.Logger) *Publisher {
	return &Publisher{
		senders: senders,
		delay:   delay,
		logger:  logger,
	}
}

// Publish sends every segment to every sender. A sender that fails on
// one segment is still given the remaining segments; errors are logged
// and counted rather than returned so one broken channel cannot stop
// delivery elsewhere.
func (p *Publisher) Publish(ctx context.Context, segments []digest.Segment) Result {
	var res Result
	for _, s := range p.senders {
		for i, seg := range segments {
			if i > 0 && p.delay > 0 {
				select {
				case <-time.After(p.delay):
				case <-ctx.Done():
					p.logger.Warn("publishing interrupted", "channel", s.Name(), "err", ctx.Err())
					res.Failed += len(segments) - i
					return res
				}
			}
			if err := s.Send(ctx, seg.Text); err != nil {
				p.logger.Error("segment delivery failed",
					"channel", s.Name(),
					"segment", i+1,
					"total", len(segments),
					"err", err,
				)
				res.Failed++
				continue
			}
			res.Delivered++
		}
		p.logger.Info("channel delivery complete", "channel", s.Name(), "segments", len(segments))
	}
	return res
}
