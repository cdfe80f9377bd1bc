// Package search is the core of dictable: it normalizes table rows, builds
// an inverted index over words and word prefixes, and evaluates multi-word
// queries against it.
package search

import (
	"context"

	"github.com/bastiangx/dictable/pkg/dataset"
)

// Searcher is what the render sinks and the IPC server need from an engine.
type Searcher interface {
	// Query matches every word as a substring of some index key (AND across words)
	Query(searchTerm string) []dataset.Row

	// QueryPrefix matches every word as a prefix of some index key
	QueryPrefix(searchTerm string) []dataset.Row

	// QueryExact is a single keyed lookup of the whole normalized term
	QueryExact(searchTerm string) []dataset.Row

	// AllRows returns the unfiltered table
	AllRows() []dataset.Row

	Headers() []string

	// Reload rebuilds everything from the configured source
	Reload(ctx context.Context) error

	Stats() map[string]int
}

var _ Searcher = (*Engine)(nil)

// Mode selects which query operation to run.
type Mode string

const (
	ModeSubstring Mode = "substring"
	ModePrefix    Mode = "prefix"
	ModeExact     Mode = "exact"
)

// Run dispatches searchTerm to the operation for mode. Unknown modes fall
// back to ModeSubstring.
func Run(s Searcher, mode Mode, searchTerm string) []dataset.Row {
	switch mode {
	case ModePrefix:
		return s.QueryPrefix(searchTerm)
	case ModeExact:
		return s.QueryExact(searchTerm)
	default:
		return s.Query(searchTerm)
	}
}

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, bool) {
	switch Mode(name) {
	case ModeSubstring, ModePrefix, ModeExact:
		return Mode(name), true
	case "":
		return ModeSubstring, true
	}
	return "", false
}
