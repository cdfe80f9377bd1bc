//go:build test

package search

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/bastiangx/dictable/pkg/dataset"
)

var memTerms = []string{
	"a", "ab", "abc",
	"h", "ho", "hok", "hokk", "hokkien",
	"l", "la", "lan", "lang",
	"p", "pe", "per", "person",
	"tsiah png", "good person", "xyz",
}

func syntheticDataset(rows int) *dataset.Dataset {
	ds := &dataset.Dataset{Headers: []string{"POJ", "English", "Notes"}}
	for i := range rows {
		ds.Rows = append(ds.Rows, dataset.Row{
			fmt.Sprintf("hó-lâng%d", i),
			fmt.Sprintf("good person number %d", i),
			fmt.Sprintf("lán-lâng-ōe %d", i%97),
		})
	}
	return ds
}

func TestMemoryStableAcrossQueries(t *testing.T) {
	for _, iterations := range []int{100, 500, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			e := NewEngine(0, nil)
			e.Load(syntheticDataset(2000))

			var baseline runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&baseline)
			baselineGoroutines := runtime.NumGoroutine()

			for range iterations {
				for _, term := range memTerms {
					_ = e.Query(term)
				}
			}

			var final runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&final)

			retained := int64(final.HeapAlloc) - int64(baseline.HeapAlloc)
			perOp := float64(retained) / float64(iterations*len(memTerms))
			t.Logf("iterations=%d retained=%d bytes per_op=%.2f", iterations, retained, perOp)

			if perOp > 1000 {
				t.Errorf("excessive retained memory per query: %.2f bytes", perOp)
			}
			if delta := runtime.NumGoroutine() - baselineGoroutines; delta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", delta)
			}
		})
	}
}

func TestMemoryReleasedOnReload(t *testing.T) {
	e := NewEngine(0, nil)
	ds := syntheticDataset(5000)
	e.Load(ds)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	for range 20 {
		e.Load(ds)
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	// one snapshot alive before and after; allow some slack for the allocator
	growth := float64(final.HeapAlloc) / float64(baseline.HeapAlloc)
	t.Logf("heap before=%d after=%d growth=%.2f", baseline.HeapAlloc, final.HeapAlloc, growth)
	if growth > 2 {
		t.Errorf("old snapshots are not released: heap grew %.2fx", growth)
	}
}
