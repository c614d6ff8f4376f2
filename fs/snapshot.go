package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cfpwatch"
)

// Ensure SnapshotService implements cfpwatch.SnapshotService at compile time.
var _ cfpwatch.SnapshotService = (*SnapshotService)(nil)

// SnapshotService stores each venue's last page body as
// <dir>/<venue>/<file>.html, the file name derived from the venue URL.
type SnapshotService struct {
	dir  string
	urls map[string]string
}

// NewSnapshotService creates a SnapshotService rooted at dir. Venues are
// needed to map a venue name to its page URL and therefore its file name.
func NewSnapshotService(dir string, venues []*cfpwatch.Venue) *SnapshotService {
	urls := make(map[string]string, len(venues))
	for _, v := range venues {
		urls[v.Name] = v.URL
	}
	return &SnapshotService{dir: dir, urls: urls}
}

// path returns the file a venue's snapshot lives in.
func (s *SnapshotService) path(venue, rawURL string) (string, error) {
	if venue == "" || venue == "." || venue == ".." || strings.ContainsAny(venue, `/\`) {
		return "", cfpwatch.Errorf(cfpwatch.EINVALID, "venue name %q cannot be used as a directory", venue)
	}
	return filepath.Join(s.dir, venue, cfpwatch.SnapshotFilename(rawURL)), nil
}

// FindSnapshot reads the stored page body for venue.
// Returns ENOTFOUND when the venue is unknown or has never been saved.
func (s *SnapshotService) FindSnapshot(ctx context.Context, venue string) (*cfpwatch.Snapshot, error) {
	rawURL, ok := s.urls[venue]
	if !ok {
		return nil, cfpwatch.Errorf(cfpwatch.ENOTFOUND, "venue %q is not configured", venue)
	}
	path, err := s.path(venue, rawURL)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cfpwatch.Errorf(cfpwatch.ENOTFOUND, "snapshot not found for venue %q", venue)
	}
	if err != nil {
		return nil, err
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &cfpwatch.Snapshot{
		ID:          path,
		Venue:       venue,
		URL:         rawURL,
		Body:        string(body),
		ContentHash: fmt.Sprintf("%x", xxhash.Sum64(body)),
		FetchedAt:   info.ModTime().UTC(),
	}, nil
}

// SaveSnapshot writes the page body, replacing the previous file.
func (s *SnapshotService) SaveSnapshot(ctx context.Context, snapshot *cfpwatch.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	path, err := s.path(snapshot.Venue, snapshot.URL)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, []byte(snapshot.Body)); err != nil {
		return err
	}

	if !snapshot.FetchedAt.IsZero() {
		if err := os.Chtimes(path, snapshot.FetchedAt, snapshot.FetchedAt); err != nil {
			return err
		}
	}

	snapshot.ID = path
	snapshot.ContentHash = fmt.Sprintf("%x", xxhash.Sum64String(snapshot.Body))
	return nil
}
