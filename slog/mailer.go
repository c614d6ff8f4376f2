package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cfpwatch"
)

// Ensure LoggingMailer implements cfpwatch.Mailer.
var _ cfpwatch.Mailer = (*LoggingMailer)(nil)

// LoggingMailer wraps a Mailer with logging.
type LoggingMailer struct {
	next   cfpwatch.Mailer
	logger *slog.Logger
}

// NewLoggingMailer creates a new LoggingMailer.
func NewLoggingMailer(next cfpwatch.Mailer, logger *slog.Logger) *LoggingMailer {
	return &LoggingMailer{next: next, logger: logger}
}

// Send delegates to the wrapped mailer.
func (m *LoggingMailer) Send(ctx context.Context, msg *cfpwatch.Message) (err error) {
	defer func(begin time.Time) {
		m.logger.Info("send email",
			"to", msg.To,
			"subject", msg.Subject,
			"attachments", len(msg.Attachments),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Send(ctx, msg)
}
