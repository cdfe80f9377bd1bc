package search

import (
	"strings"

	"github.com/bastiangx/dictable/pkg/dataset"
)

// ProcessedRow is the normalized, indexable form of one dataset row.
type ProcessedRow struct {
	RowID           int
	NormalizedCells []string
	SearchText      string
}

// Preprocess normalizes every row of ds. The i-th result always has RowID i.
func Preprocess(ds *dataset.Dataset) []ProcessedRow {
	if ds == nil {
		return nil
	}

	processed := make([]ProcessedRow, len(ds.Rows))
	for i, row := range ds.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = Normalize(cell)
		}
		processed[i] = ProcessedRow{
			RowID:           i,
			NormalizedCells: cells,
			SearchText:      Normalize(strings.Join(row, " ")),
		}
	}
	return processed
}
