// Package bloom provides a trigram term filter over resolved item paths
// using Bloom filters.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/docidx"
)

// Ensure TermFilter implements docidx.TermFilter at compile time.
var _ docidx.TermFilter = (*TermFilter)(nil)

// DefaultFalsePositiveRate is the false positive rate of NewTermFilter.
const DefaultFalsePositiveRate = 0.01

// gramSize is the length of the indexed substrings.
const gramSize = 3

// TermFilter records every trigram of an index's case-folded paths so that
// queries containing an absent trigram can be rejected without a scan.
type TermFilter struct {
	f *bloom.BloomFilter
}

// NewTermFilter builds a filter over the resolved paths of idx.
func NewTermFilter(idx *docidx.Index, fpRate float64) *TermFilter {
	grams := make(map[string]struct{})
	for i := range idx.Len() {
		for _, g := range trigrams(strings.ToLower(idx.Path(i))) {
			grams[g] = struct{}{}
		}
	}

	n := uint(len(grams))
	if n == 0 {
		n = 1
	}
	f := bloom.NewWithEstimates(n, fpRate)
	for g := range grams {
		f.AddString(g)
	}
	return &TermFilter{f: f}
}

// MayContain reports whether segment can occur in a resolved path. Segments
// shorter than a trigram always may.
func (t *TermFilter) MayContain(segment string) bool {
	for _, g := range trigrams(segment) {
		if !t.f.TestString(g) {
			return false
		}
	}
	return true
}

// EstimatedCount returns the approximate number of distinct trigrams.
func (t *TermFilter) EstimatedCount() uint {
	return uint(t.f.ApproximatedSize())
}

// trigrams returns every byte trigram of s.
func trigrams(s string) []string {
	if len(s) < gramSize {
		return nil
	}
	grams := make([]string, 0, len(s)-gramSize+1)
	for i := 0; i+gramSize <= len(s); i++ {
		grams = append(grams, s[i:i+gramSize])
	}
	return grams
}
