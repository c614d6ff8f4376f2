// Package bloom provides per-run link deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter for link deduplication.
// It is safe for concurrent use by venue workers.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected links
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a link to the filter.
func (f *Filter) Add(link string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(link)
}

// Test returns true if the link might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(link string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(link)
}

// Seen reports whether link was probably added before, and adds it.
// Exactly one of several concurrent callers with the same link sees false.
func (f *Filter) Seen(link string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(link)
}

// EstimatedCount returns the approximate number of links in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
