package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cfpwatch"
)

// Ensure LoggingSnapshotService implements cfpwatch.SnapshotService.
var _ cfpwatch.SnapshotService = (*LoggingSnapshotService)(nil)

// LoggingSnapshotService wraps a SnapshotService with debug logging.
type LoggingSnapshotService struct {
	next   cfpwatch.SnapshotService
	logger *slog.Logger
}

// NewLoggingSnapshotService creates a new LoggingSnapshotService.
func NewLoggingSnapshotService(next cfpwatch.SnapshotService, logger *slog.Logger) *LoggingSnapshotService {
	return &LoggingSnapshotService{next: next, logger: logger}
}

// FindSnapshot delegates to the wrapped service. A missing snapshot is
// logged as such rather than as an error.
func (s *LoggingSnapshotService) FindSnapshot(ctx context.Context, venue string) (snap *cfpwatch.Snapshot, err error) {
	defer func(begin time.Time) {
		attrs := []any{"venue", venue, "duration", time.Since(begin)}
		switch {
		case cfpwatch.ErrorCode(err) == cfpwatch.ENOTFOUND:
			attrs = append(attrs, "found", false)
		case err != nil:
			attrs = append(attrs, "err", err)
		default:
			attrs = append(attrs, "found", true, "fetched_at", snap.FetchedAt)
		}
		s.logger.Debug("find snapshot", attrs...)
	}(time.Now())
	return s.next.FindSnapshot(ctx, venue)
}

// SaveSnapshot delegates to the wrapped service.
func (s *LoggingSnapshotService) SaveSnapshot(ctx context.Context, snapshot *cfpwatch.Snapshot) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save snapshot",
			"venue", snapshot.Venue,
			"bytes", len(snapshot.Body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveSnapshot(ctx, snapshot)
}
