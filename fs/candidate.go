package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/cfpwatch"
)

// Ensure CandidateStore implements cfpwatch.CandidateStore at compile time.
var _ cfpwatch.CandidateStore = (*CandidateStore)(nil)

// Candidate file header keys and the line separating header from body.
const (
	headerVenue = "Venue: "
	headerLink  = "Link: "
	headerTitle = "Title: "
	separator   = "---"
)

// CandidateStore writes candidates as text files under
// <dir>/<venue-slug>/<url-slug>.txt.
type CandidateStore struct {
	dir  string
	skip map[string]bool
}

// NewCandidateStore creates a CandidateStore rooted at dir. Files named in
// skip (relative to dir) are ignored when listing, so the cached knowledge
// base can share the directory.
func NewCandidateStore(dir string, skip ...string) *CandidateStore {
	m := make(map[string]bool, len(skip))
	for _, name := range skip {
		m[filepath.Clean(name)] = true
	}
	return &CandidateStore{dir: dir, skip: m}
}

// Path returns the file a candidate is stored in.
func (s *CandidateStore) Path(c *cfpwatch.Candidate) string {
	venue := Slugify(c.Venue)
	if venue == "" {
		venue = "unknown"
	}
	return filepath.Join(s.dir, venue, URLToFilename(c.Link))
}

// SaveCandidate writes the candidate, replacing one with the same link.
func (s *CandidateStore) SaveCandidate(ctx context.Context, c *cfpwatch.Candidate) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return writeFileAtomic(s.Path(c), []byte(FormatCandidate(c)))
}

// FindCandidates reads every candidate file under the store directory,
// ordered by path.
func (s *CandidateStore) FindCandidates(ctx context.Context) ([]*cfpwatch.Candidate, error) {
	var paths []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		if s.skip[rel] {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return []*cfpwatch.Candidate{}, nil
	}
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	candidates := make([]*cfpwatch.Candidate, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		c, err := ParseCandidate(string(data))
		if err != nil {
			return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "%s: %s", path, cfpwatch.ErrorMessage(err))
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// FormatCandidate renders the header block, a separator line and the body.
func FormatCandidate(c *cfpwatch.Candidate) string {
	var b strings.Builder
	b.WriteString(headerVenue)
	b.WriteString(oneLine(c.Venue))
	b.WriteString("\n")
	b.WriteString(headerLink)
	b.WriteString(oneLine(c.Link))
	b.WriteString("\n")
	b.WriteString(headerTitle)
	b.WriteString(oneLine(c.Title))
	b.WriteString("\n")
	b.WriteString(separator)
	b.WriteString("\n")
	b.WriteString(c.Text)
	return b.String()
}

// ParseCandidate reads a file written by FormatCandidate.
func ParseCandidate(content string) (*cfpwatch.Candidate, error) {
	head, body, ok := strings.Cut(content, "\n"+separator+"\n")
	if !ok {
		head, ok = strings.CutSuffix(content, "\n"+separator)
		if !ok {
			return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "missing %q separator", separator)
		}
	}

	c := &cfpwatch.Candidate{Text: body, Score: cfpwatch.NoScore}
	for _, line := range strings.Split(head, "\n") {
		switch {
		case strings.HasPrefix(line, headerVenue):
			c.Venue = strings.TrimPrefix(line, headerVenue)
		case strings.HasPrefix(line, headerLink):
			c.Link = strings.TrimPrefix(line, headerLink)
		case strings.HasPrefix(line, headerTitle):
			c.Title = strings.TrimPrefix(line, headerTitle)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// oneLine keeps header values on a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
