package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultPrefixCap is the longest prefix, in runes, that gets its own key.
const DefaultPrefixCap = 10

// InvertedIndex maps full words and word prefixes to the set of processed
// rows containing them. An index is immutable once built.
type InvertedIndex struct {
	postings  map[string]*bitset.BitSet
	keys      []string // sorted, for deterministic scans
	trie      *patricia.Trie
	prefixCap int
	rowCount  int
}

// BuildIndex indexes rows with DefaultPrefixCap.
func BuildIndex(rows []ProcessedRow) *InvertedIndex {
	return BuildIndexWithCap(rows, DefaultPrefixCap)
}

// BuildIndexWithCap indexes every word of each row's search text under the
// word itself and under each of its prefixes of 1..prefixCap runes.
// A fresh index is built on every call; nothing is carried over.
func BuildIndexWithCap(rows []ProcessedRow, prefixCap int) *InvertedIndex {
	if prefixCap < 1 {
		prefixCap = DefaultPrefixCap
	}

	idx := &InvertedIndex{
		postings:  make(map[string]*bitset.BitSet),
		trie:      patricia.NewTrie(),
		prefixCap: prefixCap,
		rowCount:  len(rows),
	}

	for i, row := range rows {
		for _, word := range Fields(row.SearchText) {
			idx.add(word, i)
			for end, n := 0, 0; end < len(word) && n < prefixCap; n++ {
				_, size := utf8.DecodeRuneInString(word[end:])
				end += size
				idx.add(word[:end], i)
			}
		}
	}

	idx.keys = make([]string, 0, len(idx.postings))
	for key, set := range idx.postings {
		idx.keys = append(idx.keys, key)
		idx.trie.Insert(patricia.Prefix(key), set)
	}
	sort.Strings(idx.keys)

	log.Debugf("Indexed %d rows into %d keys (prefix cap %d)", len(rows), len(idx.keys), prefixCap)
	return idx
}

func (idx *InvertedIndex) add(key string, row int) {
	set, ok := idx.postings[key]
	if !ok {
		set = bitset.New(uint(idx.rowCount))
		idx.postings[key] = set
	}
	set.Set(uint(row))
}

// Len returns the number of keys.
func (idx *InvertedIndex) Len() int {
	return len(idx.keys)
}

// RowCount returns how many processed rows were indexed.
func (idx *InvertedIndex) RowCount() int {
	return idx.rowCount
}

// PrefixCap returns the prefix length the index was built with.
func (idx *InvertedIndex) PrefixCap() int {
	return idx.prefixCap
}

// Keys returns every key in sorted order.
func (idx *InvertedIndex) Keys() []string {
	return append([]string(nil), idx.keys...)
}

// Has reports whether key exists in the index.
func (idx *InvertedIndex) Has(key string) bool {
	_, ok := idx.postings[key]
	return ok
}

// Lookup returns the rows indexed under exactly key, in ascending order.
// This is a single map lookup.
func (idx *InvertedIndex) Lookup(key string) []int {
	set, ok := idx.postings[key]
	if !ok {
		return nil
	}
	return members(set)
}

// containing unions the postings of every key that contains term as a
// substring. It visits all keys: O(keys) per term.
func (idx *InvertedIndex) containing(term string) *bitset.BitSet {
	matched := bitset.New(uint(idx.rowCount))
	for _, key := range idx.keys {
		if strings.Contains(key, term) {
			matched.InPlaceUnion(idx.postings[key])
		}
	}
	return matched
}

// beginningWith unions the postings of every key starting with term,
// walking only the matching trie subtree.
func (idx *InvertedIndex) beginningWith(term string) *bitset.BitSet {
	matched := bitset.New(uint(idx.rowCount))
	err := idx.trie.VisitSubtree(patricia.Prefix(term), func(_ patricia.Prefix, item patricia.Item) error {
		matched.InPlaceUnion(item.(*bitset.BitSet))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting index subtree for %q: %v", term, err)
	}
	return matched
}

// Equal reports whether both indexes hold the same keys with the same rows.
func (idx *InvertedIndex) Equal(other *InvertedIndex) bool {
	if idx == nil || other == nil {
		return idx == other
	}
	if idx.rowCount != other.rowCount || len(idx.postings) != len(other.postings) {
		return false
	}
	for key, set := range idx.postings {
		o, ok := other.postings[key]
		if !ok || !set.Equal(o) {
			return false
		}
	}
	return true
}

func members(set *bitset.BitSet) []int {
	out := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
