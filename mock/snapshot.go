package mock

import (
	"context"

	"github.com/fwojciec/cfpwatch"
)

var _ cfpwatch.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of cfpwatch.SnapshotService.
type SnapshotService struct {
	FindSnapshotFn func(ctx context.Context, venue string) (*cfpwatch.Snapshot, error)
	SaveSnapshotFn func(ctx context.Context, snapshot *cfpwatch.Snapshot) error
}

func (s *SnapshotService) FindSnapshot(ctx context.Context, venue string) (*cfpwatch.Snapshot, error) {
	return s.FindSnapshotFn(ctx, venue)
}

func (s *SnapshotService) SaveSnapshot(ctx context.Context, snapshot *cfpwatch.Snapshot) error {
	return s.SaveSnapshotFn(ctx, snapshot)
}
