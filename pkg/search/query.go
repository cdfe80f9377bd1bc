package search

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// matchFunc resolves one normalized term to its candidate rows.
type matchFunc func(idx *InvertedIndex, term string) *bitset.BitSet

func matchContaining(idx *InvertedIndex, term string) *bitset.BitSet {
	return idx.containing(term)
}

func matchPrefix(idx *InvertedIndex, term string) *bitset.BitSet {
	return idx.beginningWith(term)
}

// evaluate runs a multi-word query: every term must match (AND). It returns
// processed row indices in ascending order, or all=true when the query is
// blank and every row should be shown.
func evaluate(idx *InvertedIndex, searchTerm string, match matchFunc) (rows []int, all bool) {
	if strings.TrimSpace(searchTerm) == "" {
		return nil, true
	}
	terms := Fields(Normalize(searchTerm))
	if len(terms) == 0 {
		return nil, true
	}
	if idx == nil {
		return nil, false
	}

	var candidates *bitset.BitSet
	for _, term := range terms {
		matched := match(idx, term)
		if candidates == nil {
			candidates = matched
		} else {
			candidates.InPlaceIntersection(matched)
		}
		if candidates.None() {
			return nil, false
		}
	}
	return members(candidates), false
}

// evaluateExact resolves the whole normalized term with one keyed lookup.
func evaluateExact(idx *InvertedIndex, searchTerm string) (rows []int, all bool) {
	trimmed := strings.TrimSpace(searchTerm)
	if trimmed == "" {
		return nil, true
	}
	if idx == nil {
		return nil, false
	}
	return idx.Lookup(Normalize(trimmed)), false
}
