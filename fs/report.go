package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/cfpwatch"
)

// Ensure ReportWriter implements cfpwatch.ReportWriter at compile time.
var _ cfpwatch.ReportWriter = (*ReportWriter)(nil)

// ReportWriter persists analyzed candidates as an indented JSON array.
type ReportWriter struct {
	path string
}

// NewReportWriter creates a ReportWriter for the file at path.
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

// Path returns the report file location.
func (w *ReportWriter) Path() string {
	return w.path
}

// WriteReport replaces the report file with candidates.
func (w *ReportWriter) WriteReport(ctx context.Context, candidates []*cfpwatch.Candidate) error {
	if candidates == nil {
		candidates = []*cfpwatch.Candidate{}
	}
	data, err := json.MarshalIndent(candidates, "", "    ")
	if err != nil {
		return err
	}
	return writeFileAtomic(w.path, append(data, '\n'))
}

// ReadReport loads a report written by WriteReport.
// Returns ENOTFOUND if no report has been written.
func (w *ReportWriter) ReadReport(ctx context.Context) ([]*cfpwatch.Candidate, error) {
	data, err := os.ReadFile(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cfpwatch.Errorf(cfpwatch.ENOTFOUND, "report %s not found", w.path)
	}
	if err != nil {
		return nil, err
	}

	var candidates []*cfpwatch.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "invalid report %s: %v", w.path, err)
	}
	return candidates, nil
}
