package cfpwatch

import "context"

// Fetcher retrieves page bodies from URLs.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// A non-2xx response or transport failure is an error.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting for fetches.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
