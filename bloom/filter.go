// Package bloom provides a probabilistic membership prefilter for URL sets.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter answers "definitely absent" cheaply for large URL sets.
// It is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected items with the given
// false positive rate. A zero n is treated as one.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records s.
func (f *Filter) Add(s string) {
	f.f.AddString(s)
}

// MayContain reports whether s might have been added.
// A false result is exact; a true result may be a false positive.
func (f *Filter) MayContain(s string) bool {
	return f.f.TestString(s)
}

// TestAndAdd records s and reports whether it might already have been added.
func (f *Filter) TestAndAdd(s string) bool {
	return f.f.TestAndAddString(s)
}

// Count returns the approximate number of distinct items added.
func (f *Filter) Count() uint {
	return uint(f.f.ApproximatedSize())
}
