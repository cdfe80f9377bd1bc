package tui

import (
	"testing"
	"time"

	"github.com/bastiangx/dictable/pkg/dataset"
	"github.com/bastiangx/dictable/pkg/search"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) (*Model, chan tea.Msg) {
	t.Helper()
	e := search.NewEngine(0, nil)
	e.Load(&dataset.Dataset{
		Headers: []string{"POJ", "English"},
		Rows: []dataset.Row{
			{"hó", "good"},
			{"hó-lâng", "good person"},
			{"lâng", "person"},
		},
	})
	msgs := make(chan tea.Msg, 8)
	m := New(e, search.ModeSubstring, 10*time.Millisecond)
	m.send = func(msg tea.Msg) { msgs <- msg }
	t.Cleanup(m.debouncer.Stop)
	return m, msgs
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestInitialViewShowsAllRows(t *testing.T) {
	m, _ := newModel(t)
	view := m.View()
	assert.Contains(t, view, "POJ")
	assert.Contains(t, view, "good person")
	assert.Contains(t, view, "3 of 3 rows")
}

func TestTypingIsDebounced(t *testing.T) {
	m, msgs := newModel(t)
	typeText(m, "person")

	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-time.After(time.Second):
		t.Fatal("no search result")
	}
	res, ok := msg.(resultsMsg)
	require.True(t, ok)
	assert.Equal(t, "person", res.term)

	select {
	case extra := <-msgs:
		t.Fatalf("burst produced a second search: %v", extra)
	case <-time.After(50 * time.Millisecond):
	}

	m.Update(res)
	assert.Equal(t, []dataset.Row{{"hó-lâng", "good person"}, {"lâng", "person"}}, m.rows)
	assert.Contains(t, m.View(), "2 of 2 rows for 'person'")
}

func TestStaleResultsIgnored(t *testing.T) {
	m, _ := newModel(t)
	typeText(m, "good")

	m.Update(resultsMsg{term: "goo", rows: nil})
	assert.Len(t, m.rows, 3, "result for an older term is dropped")
}

func TestEscapeClears(t *testing.T) {
	m, msgs := newModel(t)
	typeText(m, "xyz")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Empty(t, m.input.Value())
	assert.Len(t, m.rows, 3)
	select {
	case msg := <-msgs:
		t.Fatalf("cancelled search still ran: %v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowSizeLimitsRows(t *testing.T) {
	m, _ := newModel(t)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 8})
	assert.Contains(t, m.View(), "1 of 3 rows")
}
