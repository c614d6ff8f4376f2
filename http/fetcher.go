// Package http provides an HTTP-based implementation of cfpwatch.Fetcher
// for fetching venue pages and the calls for papers they link to.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/cfpwatch"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the watcher to venue sites. Some publisher
// sites reject requests without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (compatible; cfpwatch/1.0)"

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20

// Ensure Fetcher implements cfpwatch.Fetcher at compile time.
var _ cfpwatch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// It does not execute JavaScript.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits the number of bytes read from a response body.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch returns the body of url decoded to UTF-8 using the charset from the
// Content-Type header or the page's meta tags. Statuses outside 2xx become
// errors: ENOTFOUND for 404 and 410, EINVALID for other client errors that a
// retry will not fix, EINTERNAL otherwise.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", cfpwatch.Errorf(cfpwatch.EINVALID, "bad request for %s: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, url); err != nil {
		return "", err
	}

	limited := io.LimitReader(resp.Body, f.maxBodySize)
	r, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		r = limited
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func statusError(code int, url string) error {
	switch {
	case code >= 200 && code <= 299:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return cfpwatch.Errorf(cfpwatch.ENOTFOUND, "HTTP %d for %s", code, url)
	case code == http.StatusRequestTimeout || code == http.StatusTooManyRequests:
		return cfpwatch.Errorf(cfpwatch.EINTERNAL, "HTTP %d for %s", code, url)
	case code >= 400 && code <= 499:
		return cfpwatch.Errorf(cfpwatch.EINVALID, "HTTP %d for %s", code, url)
	default:
		return cfpwatch.Errorf(cfpwatch.EINTERNAL, "HTTP %d for %s", code, url)
	}
}

// Close drops idle keep-alive connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
