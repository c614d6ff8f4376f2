package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cfpwatch"
)

// Ensure LinkExtractor implements cfpwatch.LinkExtractor at compile time.
var _ cfpwatch.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns every anchor in an HTML fragment.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses fragment and returns its anchors in document order.
// Attribute values are returned raw; relative hrefs are not resolved.
// Fragments cut mid-tag are parsed with the parser's error recovery, so a
// truncated anchor may still be returned, or nothing at all.
func (e *LinkExtractor) ExtractLinks(fragment string) ([]cfpwatch.RawLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, cfpwatch.Errorf(cfpwatch.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []cfpwatch.RawLink
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		links = append(links, cfpwatch.RawLink{
			Href:     attr(a, "href"),
			Hreflang: attr(a, "hreflang"),
			Text:     strings.TrimSpace(a.Text()),
		})
	})

	return links, nil
}

// attr returns a pointer to the attribute value, or nil if absent.
func attr(sel *goquery.Selection, name string) *string {
	v, ok := sel.Attr(name)
	if !ok {
		return nil
	}
	return &v
}
