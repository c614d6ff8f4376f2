package mock

import (
	"context"

	"github.com/fwojciec/cfpwatch"
)

var (
	_ cfpwatch.CandidateStore = (*CandidateStore)(nil)
	_ cfpwatch.ReportWriter   = (*ReportWriter)(nil)
	_ cfpwatch.ReportRenderer = (*ReportRenderer)(nil)
)

// CandidateStore is a mock implementation of cfpwatch.CandidateStore.
type CandidateStore struct {
	SaveCandidateFn  func(ctx context.Context, c *cfpwatch.Candidate) error
	FindCandidatesFn func(ctx context.Context) ([]*cfpwatch.Candidate, error)
}

func (s *CandidateStore) SaveCandidate(ctx context.Context, c *cfpwatch.Candidate) error {
	return s.SaveCandidateFn(ctx, c)
}

func (s *CandidateStore) FindCandidates(ctx context.Context) ([]*cfpwatch.Candidate, error) {
	return s.FindCandidatesFn(ctx)
}

// ReportWriter is a mock implementation of cfpwatch.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, candidates []*cfpwatch.Candidate) error
}

func (w *ReportWriter) WriteReport(ctx context.Context, candidates []*cfpwatch.Candidate) error {
	return w.WriteReportFn(ctx, candidates)
}

// ReportRenderer is a mock implementation of cfpwatch.ReportRenderer.
type ReportRenderer struct {
	RenderFn func(candidates []*cfpwatch.Candidate) (string, error)
}

func (r *ReportRenderer) Render(candidates []*cfpwatch.Candidate) (string, error) {
	return r.RenderFn(candidates)
}
