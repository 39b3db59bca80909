package notifier

import (
	"context"
	"log/slog"

	"github.com/vjdev/jobsdigest/internal/model"
)

// Ensure LogSender implements the delivery contracts.
var (
	_ model.Sender       = (*LogSender)(nil)
	_ model.AdminAlerter = (*LogSender)(nil)
)

// LogSender writes digest segments to the given logger. Used as the default
// channel and in dry-run mode.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender returns a sender that logs each segment via slog.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

// Send logs the segment. Returns nil (stdout logging does not fail).
func (s *LogSender) Send(ctx context.Context, text string) error {
	s.logger.Info("digest segment", "length", len(text), "text", text)
	return nil
}

// AdminAlert logs the alert at error level.
func (s *LogSender) AdminAlert(ctx context.Context, message string) error {
	s.logger.Error("admin alert", "message", message)
	return nil
}
