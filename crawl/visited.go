package crawl

import (
	"github.com/fwojciec/sitesnap/bloom"
)

// visitedFalsePositiveRate sizes the bloom prefilter.
const visitedFalsePositiveRate = 0.01

// VisitedSet is an exact set of normalized URLs owned by one crawl loop.
// A bloom filter answers most negative lookups before the map is consulted.
// It is not safe for concurrent use.
type VisitedSet struct {
	filter *bloom.Filter
	urls   map[string]struct{}
}

// NewVisitedSet creates a VisitedSet sized for n expected URLs.
func NewVisitedSet(n uint) *VisitedSet {
	return &VisitedSet{
		filter: bloom.NewFilter(n, visitedFalsePositiveRate),
		urls:   make(map[string]struct{}),
	}
}

// Add inserts url and reports whether it was not already present.
func (v *VisitedSet) Add(url string) bool {
	if v.filter.TestAndAdd(url) {
		if _, ok := v.urls[url]; ok {
			return false
		}
	}
	v.urls[url] = struct{}{}
	return true
}

// Has reports whether url is in the set.
func (v *VisitedSet) Has(url string) bool {
	if !v.filter.MayContain(url) {
		return false
	}
	_, ok := v.urls[url]
	return ok
}

// Len returns the number of URLs in the set.
func (v *VisitedSet) Len() int {
	return len(v.urls)
}
