package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/cfpwatch"
)

// Ensure LoggingDetector implements cfpwatch.ChangeDetector.
var _ cfpwatch.ChangeDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a ChangeDetector with logging.
type LoggingDetector struct {
	next   cfpwatch.ChangeDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next cfpwatch.ChangeDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// DetectLinks delegates to the wrapped detector and logs how many links
// were found on added lines.
func (d *LoggingDetector) DetectLinks(oldBody, newBody, base string, sel *cfpwatch.Selector) (links []cfpwatch.Link, err error) {
	defer func(begin time.Time) {
		d.logger.Debug("detect links",
			"base", base,
			"selector", sel.String(),
			"links", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.DetectLinks(oldBody, newBody, base, sel)
}
