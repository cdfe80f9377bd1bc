// Package tui is the interactive search box: a text input over a result
// table, searching as the user types.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bastiangx/dictable/internal/cli"
	"github.com/bastiangx/dictable/internal/utils"
	"github.com/bastiangx/dictable/pkg/dataset"
	"github.com/bastiangx/dictable/pkg/debounce"
	"github.com/bastiangx/dictable/pkg/search"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	statusStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"})
)

// resultsMsg carries a finished search back into the update loop.
type resultsMsg struct {
	term    string
	rows    []dataset.Row
	elapsed time.Duration
}

// Model is the bubbletea model for the search screen.
type Model struct {
	searcher  search.Searcher
	mode      search.Mode
	input     textinput.Model
	debouncer *debounce.Debouncer
	send      func(tea.Msg)

	headers []string
	rows    []dataset.Row
	term    string
	elapsed time.Duration

	width  int
	height int
}

// New creates the model showing every row. Debounced results are dropped
// until Run connects the model to a program.
func New(searcher search.Searcher, mode search.Mode, delay time.Duration) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search…"
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	m := &Model{
		searcher: searcher,
		mode:     mode,
		input:    ti,
		headers:  searcher.Headers(),
		rows:     searcher.AllRows(),
		width:    80,
		height:   24,
		send:     func(tea.Msg) {},
	}
	m.debouncer = debounce.New(delay, m.runSearch)
	return m
}

// Run starts a full screen program around the model.
func Run(searcher search.Searcher, mode search.Mode, delay time.Duration) error {
	m := New(searcher, mode, delay)
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.send = p.Send
	defer m.debouncer.Stop()

	_, err := p.Run()
	return err
}

// runSearch executes on the debouncer's goroutine.
func (m *Model) runSearch(term string) {
	start := time.Now()
	rows := search.Run(m.searcher, m.mode, term)
	m.send(resultsMsg{term: term, rows: rows, elapsed: time.Since(start)})
}

// Init starts the cursor blinking.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keys, window size and search results.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-4)
		return m, nil

	case resultsMsg:
		// typing continued after this search was scheduled
		if msg.term != m.input.Value() {
			return m, nil
		}
		m.term, m.rows, m.elapsed = msg.term, msg.rows, msg.elapsed
		return m, nil

	case tea.KeyMsg:
		//nolint:exhaustive // only keys with their own meaning
		switch msg.Type {
		case tea.KeyCtrlC:
			m.debouncer.Stop()
			return m, tea.Quit
		case tea.KeyEsc:
			m.debouncer.Cancel()
			m.input.SetValue("")
			m.term, m.rows, m.elapsed = "", m.searcher.AllRows(), 0
			m.headers = m.searcher.Headers()
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.debouncer.Trigger(after)
	}
	return m, cmd
}

// View renders the input, the visible part of the table and a status line.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dictable"))
	b.WriteString("  ")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	// title, blank, header block and status take about 7 lines
	visible := max(1, m.height-7)
	shown := m.rows
	if len(shown) > visible {
		shown = shown[:visible]
	}
	if len(shown) > 0 {
		b.WriteString(cli.BuildTable(m.headers, shown).String())
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render(m.status(len(shown))))
	return b.String()
}

func (m *Model) status(shown int) string {
	total := len(m.rows)
	if total == 0 {
		return fmt.Sprintf("no rows match '%s' · esc clears · ctrl+c quits", m.term)
	}
	line := fmt.Sprintf("%s of %s rows", utils.FormatWithCommas(shown), utils.FormatWithCommas(total))
	if m.term != "" {
		line += fmt.Sprintf(" for '%s' in %v", m.term, m.elapsed.Round(time.Microsecond))
	}
	return line + " · esc clears · ctrl+c quits"
}
