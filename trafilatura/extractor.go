// Package trafilatura extracts the main text of linked call-for-papers pages
// whose content region is not configured.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/cfpwatch"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements cfpwatch.Extractor at compile time.
var _ cfpwatch.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Links are kept in the extracted
// content because submission and guideline links matter to the reader.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			IncludeLinks:    true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the main content of rawHTML. pageURL, when given, is passed
// to trafilatura as the original URL of the document.
// Returns ENOTFOUND when no content could be identified.
func (e *Extractor) Extract(rawHTML, pageURL string) (*cfpwatch.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "empty HTML input")
	}

	opts := e.opts
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil || !u.IsAbs() {
			return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "page URL %q must be absolute", pageURL)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, cfpwatch.Errorf(cfpwatch.ENOTFOUND, "no main content found")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &cfpwatch.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
