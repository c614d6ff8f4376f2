package cfpwatch

import "context"

// Candidate is a page linked from a venue change, converted to markdown
// and, once analyzed, scored against the knowledge base.
type Candidate struct {
	Venue    string `json:"venue"`
	Link     string `json:"link"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Prompt   string `json:"prompt,omitempty"`
	Response string `json:"response,omitempty"`
	Score    int    `json:"score"`
}

// Validate returns an error if the candidate contains invalid fields.
func (c *Candidate) Validate() error {
	if c.Venue == "" {
		return Errorf(EINVALID, "candidate venue required")
	}
	if c.Link == "" {
		return Errorf(EINVALID, "candidate link required")
	}
	return nil
}

// CandidateStore persists candidates between the scan and analyze steps.
type CandidateStore interface {
	// SaveCandidate writes a candidate, replacing one with the same link.
	SaveCandidate(ctx context.Context, c *Candidate) error

	// FindCandidates returns every stored candidate.
	FindCandidates(ctx context.Context) ([]*Candidate, error)
}

// ReportWriter persists analyzed candidates.
type ReportWriter interface {
	WriteReport(ctx context.Context, candidates []*Candidate) error
}

// ReportRenderer renders analyzed candidates as an HTML document.
type ReportRenderer interface {
	Render(candidates []*Candidate) (string, error)
}
