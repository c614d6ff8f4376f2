// Package htmltomarkdown turns the content region of a linked call-for-papers
// page into Markdown for the comparison prompt.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/cfpwatch"
)

var _ cfpwatch.Converter = (*Converter)(nil)

// noise lists elements that never carry call-for-papers text. They show up
// when no content region was found and the whole page is converted.
var noise = []string{"nav", "footer", "form", "img", "picture", "svg", "iframe", "button"}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Converter renders HTML as CommonMark with GFM tables, which keeps the
// important-dates tables of most CFPs readable to the model.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	for _, tag := range noise {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}
	return &Converter{conv: conv}
}

// Convert renders html as Markdown. Relative links are made absolute against
// pageURL when it is given, and runs of blank lines are collapsed.
// Returns ENOTFOUND when nothing but markup was left.
func (c *Converter) Convert(html, pageURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", cfpwatch.Errorf(cfpwatch.EINVALID, "empty HTML input")
	}

	var md string
	var err error
	if pageURL != "" {
		md, err = c.conv.ConvertString(html, converter.WithDomain(pageURL))
	} else {
		md, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", cfpwatch.Errorf(cfpwatch.EINTERNAL, "convert to markdown: %v", err)
	}

	md = strings.TrimSpace(blankRuns.ReplaceAllString(md, "\n\n"))
	if md == "" {
		return "", cfpwatch.Errorf(cfpwatch.ENOTFOUND, "page has no text")
	}
	return md, nil
}
