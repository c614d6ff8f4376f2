package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cfpwatch"
)

// Ensure LoggingComparer implements cfpwatch.Comparer.
var _ cfpwatch.Comparer = (*LoggingComparer)(nil)

// LoggingComparer wraps a Comparer with logging.
type LoggingComparer struct {
	next   cfpwatch.Comparer
	logger *slog.Logger
}

// NewLoggingComparer creates a new LoggingComparer.
func NewLoggingComparer(next cfpwatch.Comparer, logger *slog.Logger) *LoggingComparer {
	return &LoggingComparer{next: next, logger: logger}
}

// Compare delegates to the wrapped comparer and logs the parsed score.
func (c *LoggingComparer) Compare(ctx context.Context, kb, candidate string) (response string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("compare",
			"kb_bytes", len(kb),
			"candidate_bytes", len(candidate),
			"score", cfpwatch.ParseFitScore(response),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Compare(ctx, kb, candidate)
}
