package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bastiangx/dictable/pkg/dataset"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Snapshot is everything derived from one dataset load. Queries read a
// single snapshot; a reload builds a new one and swaps it in whole.
type Snapshot struct {
	ID        string
	Dataset   *dataset.Dataset
	Rows      []ProcessedRow
	Index     *InvertedIndex
	LoadedAt  time.Time
	BuildTime time.Duration
}

// Engine answers table searches over the currently loaded dataset.
type Engine struct {
	snap      atomic.Pointer[Snapshot]
	prefixCap int
	loader    *dataset.Loader

	mu     sync.Mutex // serializes LoadFrom/Reload
	source string
}

// NewEngine creates an empty engine. A prefixCap below 1 means DefaultPrefixCap,
// a nil loader means dataset.NewLoader(0).
func NewEngine(prefixCap int, loader *dataset.Loader) *Engine {
	if prefixCap < 1 {
		prefixCap = DefaultPrefixCap
	}
	if loader == nil {
		loader = dataset.NewLoader(0)
	}
	return &Engine{
		prefixCap: prefixCap,
		loader:    loader,
	}
}

// Load preprocesses and indexes ds, then makes it the active snapshot.
func (e *Engine) Load(ds *dataset.Dataset) *Snapshot {
	if ds == nil {
		ds = &dataset.Dataset{}
	}
	start := time.Now()
	rows := Preprocess(ds)
	index := BuildIndexWithCap(rows, e.prefixCap)

	snap := &Snapshot{
		ID:        uuid.NewString(),
		Dataset:   ds,
		Rows:      rows,
		Index:     index,
		LoadedAt:  time.Now(),
		BuildTime: time.Since(start),
	}
	e.snap.Store(snap)

	log.Debugf("Snapshot %s ready: rows=[%d] keys=[%d] took [ %v ]", snap.ID, len(rows), index.Len(), snap.BuildTime)
	return snap
}

// LoadFrom fetches the dataset at source and loads it. On failure the
// current snapshot stays active.
func (e *Engine) LoadFrom(ctx context.Context, source string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ds, err := e.loader.Load(ctx, source)
	if err != nil {
		return fmt.Errorf("load %s: %w", source, err)
	}
	e.source = source
	e.Load(ds)
	return nil
}

// Reload loads the last source given to LoadFrom again.
func (e *Engine) Reload(ctx context.Context) error {
	e.mu.Lock()
	source := e.source
	e.mu.Unlock()

	if source == "" {
		return errors.New("no dataset source to reload")
	}
	return e.LoadFrom(ctx, source)
}

// Source returns the last source passed to LoadFrom.
func (e *Engine) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source
}

// Snapshot returns the active snapshot, or nil before the first load.
func (e *Engine) Snapshot() *Snapshot {
	return e.snap.Load()
}

// Query returns the rows matching every word of searchTerm, where a word
// matches any index key containing it. A blank term returns all rows.
func (e *Engine) Query(searchTerm string) []dataset.Row {
	snap := e.snap.Load()
	if snap == nil {
		return nil
	}
	ids, all := evaluate(snap.Index, searchTerm, matchContaining)
	return snap.resolve(ids, all)
}

// QueryPrefix is like Query, but a word only matches keys that begin with
// it. Lookups walk the key trie instead of scanning every key.
func (e *Engine) QueryPrefix(searchTerm string) []dataset.Row {
	snap := e.snap.Load()
	if snap == nil {
		return nil
	}
	ids, all := evaluate(snap.Index, searchTerm, matchPrefix)
	return snap.resolve(ids, all)
}

// QueryExact returns the rows indexed under the whole normalized term:
// an exact word, or an exact prefix of up to PrefixCap runes.
func (e *Engine) QueryExact(searchTerm string) []dataset.Row {
	snap := e.snap.Load()
	if snap == nil {
		return nil
	}
	ids, all := evaluateExact(snap.Index, searchTerm)
	return snap.resolve(ids, all)
}

// AllRows returns every row in dataset order.
func (e *Engine) AllRows() []dataset.Row {
	snap := e.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.resolve(nil, true)
}

// Headers returns the column headers of the active dataset.
func (e *Engine) Headers() []string {
	snap := e.snap.Load()
	if snap == nil {
		return nil
	}
	return slices.Clone(snap.Dataset.Headers)
}

// Stats returns statistics about the active snapshot.
func (e *Engine) Stats() map[string]int {
	snap := e.snap.Load()
	if snap == nil {
		return map[string]int{"rows": 0, "keys": 0, "columns": 0, "prefixCap": e.prefixCap}
	}
	return map[string]int{
		"rows":        snap.Dataset.Len(),
		"keys":        snap.Index.Len(),
		"columns":     len(snap.Dataset.Headers),
		"prefixCap":   snap.Index.PrefixCap(),
		"buildMicros": int(snap.BuildTime.Microseconds()),
	}
}

// resolve copies every returned row, so callers can never write through
// to the snapshot's dataset.
func (s *Snapshot) resolve(ids []int, all bool) []dataset.Row {
	if all {
		out := make([]dataset.Row, len(s.Dataset.Rows))
		for i, row := range s.Dataset.Rows {
			out[i] = slices.Clone(row)
		}
		return out
	}
	out := make([]dataset.Row, 0, len(ids))
	for _, i := range ids {
		out = append(out, slices.Clone(s.Dataset.Rows[s.Rows[i].RowID]))
	}
	return out
}
