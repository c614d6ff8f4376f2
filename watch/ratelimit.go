package watch

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/cfpwatch"
	"golang.org/x/time/rate"
)

var _ cfpwatch.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each host with its own token bucket.
// Venues on different hosts are fetched concurrently while the pages of a
// single publisher, all of IEEE ComSoc for instance, are fetched one by one.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
}

// NewDomainLimiter allows rps requests per second to each host with no
// burst. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   limit,
	}
}

// Wait blocks until a request to domain is allowed. Domains are compared
// case-insensitively. Returns the context error if ctx ends first.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.limit == rate.Inf {
		return ctx.Err()
	}
	domain = strings.ToLower(domain)

	d.mu.Lock()
	b, ok := d.buckets[domain]
	if !ok {
		b = rate.NewLimiter(d.limit, 1)
		d.buckets[domain] = b
	}
	d.mu.Unlock()

	return b.Wait(ctx)
}

// Host returns the host of rawURL, or "" when it has none.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
