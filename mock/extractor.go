package mock

import "github.com/fwojciec/cfpwatch"

var _ cfpwatch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of cfpwatch.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*cfpwatch.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*cfpwatch.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
