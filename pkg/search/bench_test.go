package search

import (
	"fmt"
	"testing"

	"github.com/bastiangx/dictable/pkg/dataset"
)

func benchDataset(rows int) *dataset.Dataset {
	ds := &dataset.Dataset{Headers: []string{"POJ", "English"}}
	for i := range rows {
		ds.Rows = append(ds.Rows, dataset.Row{
			fmt.Sprintf("hó-lâng-%d", i),
			fmt.Sprintf("good person %d people of the village", i),
		})
	}
	return ds
}

func BenchmarkBuildIndex(b *testing.B) {
	rows := Preprocess(benchDataset(5000))
	b.ResetTimer()
	for range b.N {
		BuildIndex(rows)
	}
}

// Query scans every key, QueryPrefix walks one trie subtree and QueryExact
// is a single map lookup.
func BenchmarkQueryModes(b *testing.B) {
	e := NewEngine(0, nil)
	e.Load(benchDataset(5000))

	for _, mode := range []Mode{ModeSubstring, ModePrefix, ModeExact} {
		b.Run(string(mode), func(b *testing.B) {
			for range b.N {
				Run(e, mode, "village")
			}
		})
	}
}
