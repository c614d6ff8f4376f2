// Package goldmark renders analyzed candidates as an HTML email body.
package goldmark

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/fwojciec/cfpwatch"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Ensure Renderer implements cfpwatch.ReportRenderer.
var _ cfpwatch.ReportRenderer = (*Renderer)(nil)

// KnowledgeBaseVenue is the venue name of a knowledge base entry that may
// appear in a candidate list; it is never rendered.
const KnowledgeBaseVenue = "KB"

const noResponse = "No response available"

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<body>
<h1>CFP Analysis Results</h1>
{{- if not .}}
<p>No new calls for papers.</p>
{{- end}}
{{- range .}}
<section>
<p><strong>Venue:</strong> {{.Venue}}<br>
<strong>Link:</strong> <a href="{{.Link}}">{{.Link}}</a>
{{- if .Title}}<br>
<strong>Title:</strong> {{.Title}}{{end}}
{{- if .Scored}}<br>
<strong>Fit:</strong> {{.Score}}/4{{end}}</p>
{{.Body}}
<hr>
</section>
{{- end}}
</body>
</html>
`))

type section struct {
	Venue  string
	Link   string
	Title  string
	Score  int
	Scored bool
	Body   template.HTML
}

// Renderer converts candidate responses from Markdown to sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer with GitHub-flavored Markdown and the
// bluemonday UGC policy.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render returns an HTML document with one section per candidate, in the
// order given.
func (r *Renderer) Render(candidates []*cfpwatch.Candidate) (string, error) {
	sections := make([]section, 0, len(candidates))
	for _, c := range candidates {
		if c.Venue == KnowledgeBaseVenue {
			continue
		}
		body, err := r.Markdown(c.Response)
		if err != nil {
			return "", fmt.Errorf("render %s: %w", c.Link, err)
		}
		sections = append(sections, section{
			Venue:  c.Venue,
			Link:   c.Link,
			Title:  c.Title,
			Score:  c.Score,
			Scored: c.Score != cfpwatch.NoScore,
			Body:   body,
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, sections); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Markdown converts one model response to sanitized HTML. Code fences
// wrapping the whole response are removed first.
func (r *Renderer) Markdown(response string) (template.HTML, error) {
	src := cfpwatch.StripCodeFences(response)
	if src == "" {
		src = noResponse
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	// Sanitized output is safe to embed unescaped.
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}
