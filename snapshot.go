package cfpwatch

import (
	"context"
	"time"
)

// Snapshot is the last fetched HTML body of a venue page.
type Snapshot struct {
	ID          string    `json:"id"`
	Venue       string    `json:"venue"`
	URL         string    `json:"url"`
	Body        string    `json:"body"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.Venue == "" {
		return Errorf(EINVALID, "snapshot venue required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "snapshot URL required")
	}
	return nil
}

// SnapshotService persists the most recent snapshot of each venue.
type SnapshotService interface {
	// FindSnapshot returns the stored snapshot for a venue.
	// Returns ENOTFOUND if the venue has never been saved.
	FindSnapshot(ctx context.Context, venue string) (*Snapshot, error)

	// SaveSnapshot stores the snapshot, replacing any previous one.
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
}
