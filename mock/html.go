package mock

import "github.com/fwojciec/cfpwatch"

var (
	_ cfpwatch.Scoper         = (*Scoper)(nil)
	_ cfpwatch.Differ         = (*Differ)(nil)
	_ cfpwatch.LinkExtractor  = (*LinkExtractor)(nil)
	_ cfpwatch.ChangeDetector = (*ChangeDetector)(nil)
)

// Scoper is a mock implementation of cfpwatch.Scoper.
type Scoper struct {
	ScopeFn func(html string, sel *cfpwatch.Selector) (string, error)
}

func (s *Scoper) Scope(html string, sel *cfpwatch.Selector) (string, error) {
	return s.ScopeFn(html, sel)
}

// Differ is a mock implementation of cfpwatch.Differ.
type Differ struct {
	DiffFn func(oldText, newText string) []cfpwatch.DiffLine
}

func (d *Differ) Diff(oldText, newText string) []cfpwatch.DiffLine {
	return d.DiffFn(oldText, newText)
}

// LinkExtractor is a mock implementation of cfpwatch.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(fragment string) ([]cfpwatch.RawLink, error)
}

func (e *LinkExtractor) ExtractLinks(fragment string) ([]cfpwatch.RawLink, error) {
	return e.ExtractLinksFn(fragment)
}

// ChangeDetector is a mock implementation of cfpwatch.ChangeDetector.
type ChangeDetector struct {
	DetectLinksFn func(oldBody, newBody, base string, sel *cfpwatch.Selector) ([]cfpwatch.Link, error)
}

func (d *ChangeDetector) DetectLinks(oldBody, newBody, base string, sel *cfpwatch.Selector) ([]cfpwatch.Link, error) {
	return d.DetectLinksFn(oldBody, newBody, base, sel)
}
