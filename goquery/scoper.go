// Package goquery implements HTML scoping and anchor extraction on top of
// github.com/PuerkitoBio/goquery, whose parser (golang.org/x/net/html)
// recovers from malformed markup the way browsers do.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cfpwatch"
)

// Ensure Scoper implements cfpwatch.Scoper at compile time.
var _ cfpwatch.Scoper = (*Scoper)(nil)

// Scoper narrows a document to the first element matching a selector.
type Scoper struct{}

// NewScoper creates a new Scoper.
func NewScoper() *Scoper {
	return &Scoper{}
}

// Scope returns the outer HTML of the first element, in document order,
// matched by sel. The element is re-serialized by the parser, so attribute
// quoting and whitespace inside tags may differ from the source.
func (s *Scoper) Scope(html string, sel *cfpwatch.Selector) (string, error) {
	if sel == nil {
		return html, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", cfpwatch.Errorf(cfpwatch.EINVALID, "failed to parse HTML: %v", err)
	}

	match := first(doc.Selection, sel)
	if match.Length() == 0 {
		return "", nil
	}

	return goquery.OuterHtml(match)
}

// Title returns the trimmed text of the document's <title> element.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// first returns the first element under root matched by sel.
func first(root *goquery.Selection, sel *cfpwatch.Selector) *goquery.Selection {
	return root.Find("*").FilterFunction(func(_ int, el *goquery.Selection) bool {
		class, _ := el.Attr("class")
		id, _ := el.Attr("id")
		return sel.Match(goquery.NodeName(el), class, id)
	}).First()
}
