// Package readability extracts the main text of linked call-for-papers pages
// using Mozilla's Readability algorithm.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/cfpwatch"
	"github.com/go-shiori/go-readability"
)

var _ cfpwatch.Extractor = (*Extractor)(nil)

// Extractor is the Readability fallback in the extractor chain. It does
// well on journal pages laid out as a single article.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article body of rawHTML. Relative links in the body
// are made absolute against pageURL when it is given.
func (e *Extractor) Extract(rawHTML, pageURL string) (*cfpwatch.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil || !u.IsAbs() {
			return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "page URL %q must be absolute", pageURL)
		}
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, cfpwatch.Errorf(cfpwatch.ENOTFOUND, "readability: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, cfpwatch.Errorf(cfpwatch.ENOTFOUND, "no readable content found")
	}

	return &cfpwatch.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
