// Package bloom provides probabilistic deduplication of URLs and subqueries
// across search expansion rounds.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/ragsearch"
)

// Ensure Filter implements ragsearch.SeenFilter at compile time.
var _ ragsearch.SeenFilter = (*Filter)(nil)

// Filter wraps a Bloom filter. Test may return false positives (a never-seen
// value reported as seen) but never false negatives, which for deduplication
// means occasionally skipping a fresh URL, never re-processing a seen one.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Filter sized for n expected items with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a value as seen.
func (f *Filter) Add(s string) {
	f.f.AddString(s)
}

// Test returns true if the value might have been seen.
func (f *Filter) Test(s string) bool {
	return f.f.TestString(s)
}
