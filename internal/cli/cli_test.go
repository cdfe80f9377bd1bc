package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/dictable/pkg/dataset"
	"github.com/bastiangx/dictable/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.ErrorLevel)
	log.SetOutput(&bytes.Buffer{})
}

func newEngine() *search.Engine {
	e := search.NewEngine(0, nil)
	e.Load(&dataset.Dataset{
		Headers: []string{"POJ", "English"},
		Rows: []dataset.Row{
			{"hó", "good"},
			{"hó-lâng", "good person"},
			{"hok-kiàn", "hokkien"},
		},
	})
	return e
}

func TestBuildTablePadsRaggedRows(t *testing.T) {
	out := BuildTable([]string{"A", "B", "C"}, []dataset.Row{{"x"}, {"y", "z", "w"}}).String()
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "w")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 6, "border, header, separator, two rows, border")
}

func TestBuildTableTruncatesLongCells(t *testing.T) {
	long := strings.Repeat("a", MaxCellWidth+20)
	out := BuildTable([]string{"A"}, []dataset.Row{{long}}).String()
	assert.NotContains(t, out, long)
	assert.Contains(t, out, "…")
}

func TestRendererSummaries(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableRenderer(&buf, 1)

	rows := []dataset.Row{{"hó", "good"}, {"hó-lâng", "good person"}}
	require.NoError(t, r.Render([]string{"POJ", "English"}, rows, "good", time.Millisecond))
	out := buf.String()
	assert.Contains(t, out, "hó")
	assert.NotContains(t, out, "good person", "limit cuts the second row")
	assert.Contains(t, out, "Found 2 rows for 'good', showing 1")

	buf.Reset()
	require.NoError(t, r.Render([]string{"POJ"}, nil, "xyz", 0))
	assert.Contains(t, buf.String(), "No rows match 'xyz'")
}

func TestReplFlushesOnEOF(t *testing.T) {
	var buf bytes.Buffer
	h := NewInputHandler(newEngine(), search.ModeSubstring, NewTableRenderer(&buf, 0), time.Hour).
		WithInput(strings.NewReader("kkie\n"))

	require.NoError(t, h.Start())
	out := buf.String()
	assert.Contains(t, out, "Showing 3 of 3 rows")
	assert.Contains(t, out, "Found 1 rows for 'kkie'")
}

func TestReplEscapeClears(t *testing.T) {
	var buf bytes.Buffer
	h := NewInputHandler(newEngine(), search.ModeSubstring, NewTableRenderer(&buf, 0), time.Hour).
		WithInput(strings.NewReader("xyz\n\x1b\n"))

	require.NoError(t, h.Start())
	out := buf.String()
	assert.NotContains(t, out, "No rows match", "pending search was cancelled")
	assert.Equal(t, 2, strings.Count(out, "Showing 3 of 3 rows"))
}

func TestReplClearCommandAndQuit(t *testing.T) {
	var buf bytes.Buffer
	h := NewInputHandler(newEngine(), search.ModeExact, NewTableRenderer(&buf, 0), time.Hour).
		WithInput(strings.NewReader("good\n:clear\n:q\nperson\n"))

	require.NoError(t, h.Start())
	out := buf.String()
	assert.NotContains(t, out, "Found")
	assert.Equal(t, 2, strings.Count(out, "Showing 3 of 3 rows"))
}

func TestReplDebouncesTyping(t *testing.T) {
	var buf bytes.Buffer
	h := NewInputHandler(newEngine(), search.ModePrefix, NewTableRenderer(&buf, 0), 20*time.Millisecond).
		WithInput(strings.NewReader("g\ngo\ngoo\n"))

	require.NoError(t, h.Start())
	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "Found"), "one search for the burst")
	assert.Contains(t, out, "Found 2 rows for 'goo'")
}
