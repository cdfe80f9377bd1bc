package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/dictable/internal/utils"
	"github.com/bastiangx/dictable/pkg/dataset"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	oddCellStyle = cellStyle.
			Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"})
	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#cecacd", Dark: "#403d52"})
	summaryStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
)

// MaxCellWidth bounds every rendered cell, in runes.
const MaxCellWidth = 48

// BuildTable lays rows out under headers. Short rows are padded and long
// cells truncated so every line has the header's arity.
func BuildTable(headers []string, rows []dataset.Row) *table.Table {
	width := len(headers)
	for _, row := range rows {
		width = max(width, len(row))
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		line := make([]string, width)
		for j := range line {
			if j < len(row) {
				line[j] = utils.Truncate(row[j], MaxCellWidth)
			}
		}
		cells[i] = line
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 1:
				return oddCellStyle
			default:
				return cellStyle
			}
		}).
		Rows(cells...)
	if len(headers) > 0 {
		t.Headers(headers...)
	}
	return t
}

// TableRenderer writes search results as tables. Renders can come from the
// debounce goroutine and the input loop, so writes are serialized.
type TableRenderer struct {
	mu    sync.Mutex
	w     io.Writer
	limit int
}

// NewTableRenderer renders at most limit rows per result; 0 shows all.
func NewTableRenderer(w io.Writer, limit int) *TableRenderer {
	return &TableRenderer{w: w, limit: limit}
}

// Render writes one result set. term is the query that produced rows.
func (r *TableRenderer) Render(headers []string, rows []dataset.Row, term string, elapsed time.Duration) error {
	shown := rows
	if r.limit > 0 && len(shown) > r.limit {
		shown = shown[:r.limit]
	}

	var b strings.Builder
	if len(shown) > 0 {
		b.WriteString(BuildTable(headers, shown).String())
		b.WriteByte('\n')
	}
	b.WriteString(summaryStyle.Render(summary(len(shown), len(rows), term, elapsed)))
	b.WriteByte('\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := io.WriteString(r.w, b.String())
	return err
}

func summary(shown, total int, term string, elapsed time.Duration) string {
	term = strings.TrimSpace(term)
	switch {
	case total == 0:
		return fmt.Sprintf("No rows match '%s'", term)
	case term == "":
		return fmt.Sprintf("Showing %s of %s rows", utils.FormatWithCommas(shown), utils.FormatWithCommas(total))
	case shown < total:
		return fmt.Sprintf("Found %s rows for '%s', showing %s (took %v)",
			utils.FormatWithCommas(total), term, utils.FormatWithCommas(shown), elapsed.Round(time.Microsecond))
	default:
		return fmt.Sprintf("Found %s rows for '%s' (took %v)",
			utils.FormatWithCommas(total), term, elapsed.Round(time.Microsecond))
	}
}
