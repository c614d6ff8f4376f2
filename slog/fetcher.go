// Package slog provides log/slog decorators for cfpwatch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cfpwatch"
)

var _ cfpwatch.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page request at debug level.
type LoggingFetcher struct {
	next   cfpwatch.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher wraps next.
func NewLoggingFetcher(next cfpwatch.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome. Failures carry
// the error code so retryable and permanent errors can be told apart.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (body string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Debug("fetch failed",
				"url", url,
				"code", cfpwatch.ErrorCode(err),
				"duration", time.Since(begin),
				"error", err,
			)
			return
		}
		f.logger.Debug("fetched",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
