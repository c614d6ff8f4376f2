package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/cfpwatch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cfpwatch.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements cfpwatch.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// FindSnapshot retrieves the snapshot stored for venue.
func (s *SnapshotService) FindSnapshot(ctx context.Context, venue string) (*cfpwatch.Snapshot, error) {
	var snap cfpwatch.Snapshot
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, venue, url, body, content_hash, fetched_at
		FROM snapshots
		WHERE venue = ?
	`, venue).Scan(&snap.ID, &snap.Venue, &snap.URL, &snap.Body, &snap.ContentHash, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, cfpwatch.Errorf(cfpwatch.ENOTFOUND, "snapshot not found for venue %q", venue)
	}
	if err != nil {
		return nil, err
	}

	snap.FetchedAt, err = parseTimestamp(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

// SaveSnapshot stores the snapshot, replacing the venue's previous one.
// ID, ContentHash and FetchedAt are filled in when empty; an existing
// venue keeps its original ID.
func (s *SnapshotService) SaveSnapshot(ctx context.Context, snapshot *cfpwatch.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	if snapshot.ContentHash == "" {
		snapshot.ContentHash = hashContent(snapshot.Body)
	}
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now().UTC()
	}

	return s.db.QueryRowContext(ctx, `
		INSERT INTO snapshots (id, venue, url, body, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(venue) DO UPDATE SET
			url = excluded.url,
			body = excluded.body,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, snapshot.ID, snapshot.Venue, snapshot.URL, snapshot.Body, snapshot.ContentHash,
		formatTimestamp(snapshot.FetchedAt)).Scan(&snapshot.ID)
}
