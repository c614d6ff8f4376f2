package watch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/cfpwatch"
)

// PageFetcher fetches pages politely and converts linked pages to candidates.
type PageFetcher struct {
	Fetcher     cfpwatch.Fetcher
	RateLimiter cfpwatch.DomainLimiter // optional
	Scoper      cfpwatch.Scoper
	Extractors  []cfpwatch.Extractor // tried in order when no content region is found
	Converter   cfpwatch.Converter
	Title       func(html string) string // optional
	RetryDelays []time.Duration          // nil means DefaultRetryDelays
	Logger      *slog.Logger
}

// Fetch waits for the host's rate limit and fetches rawURL with retries.
func (p *PageFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if p.RateLimiter != nil {
		if err := p.RateLimiter.Wait(ctx, Host(rawURL)); err != nil {
			return "", err
		}
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetry(ctx, rawURL, p.Fetcher.Fetch, p.Logger, delays)
}

// FetchCandidate fetches a page linked from venue and converts its main
// content to Markdown. The venue's Content selector picks the region; when
// it is unset or matches nothing, each extractor is tried in turn, and when
// all of them fail the whole page is converted.
func (p *PageFetcher) FetchCandidate(ctx context.Context, venue *cfpwatch.Venue, link string) (*cfpwatch.Candidate, error) {
	html, err := p.Fetch(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", link, err)
	}

	var title string
	if p.Title != nil {
		title = p.Title(html)
	}

	content, extractedTitle, err := p.content(html, link, venue.Content)
	if err != nil {
		return nil, fmt.Errorf("scope %s: %w", link, err)
	}
	if title == "" {
		title = extractedTitle
	}

	markdown, err := p.Converter.Convert(content, link)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", link, err)
	}

	return &cfpwatch.Candidate{
		Venue: venue.Name,
		Link:  link,
		Title: strings.TrimSpace(title),
		Text:  markdown,
		Score: cfpwatch.NoScore,
	}, nil
}

// content returns the HTML to convert and any title found by an extractor.
func (p *PageFetcher) content(html, link string, sel *cfpwatch.Selector) (string, string, error) {
	if sel != nil {
		scoped, err := p.Scoper.Scope(html, sel)
		if err != nil {
			return "", "", err
		}
		if scoped != "" {
			return scoped, "", nil
		}
		if p.Logger != nil {
			p.Logger.Debug("content selector matched nothing", "selector", sel.String())
		}
	}

	for _, ex := range p.Extractors {
		res, err := ex.Extract(html, link)
		if err != nil {
			if p.Logger != nil {
				p.Logger.Debug("extractor failed", "error", err)
			}
			continue
		}
		if strings.TrimSpace(res.ContentHTML) != "" {
			return res.ContentHTML, res.Title, nil
		}
	}

	return html, "", nil
}
