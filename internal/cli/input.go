// Package cli is the line based front end: a read-eval loop that feeds each
// line through the debouncer and prints result tables.
package cli

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/dictable/pkg/debounce"
	"github.com/bastiangx/dictable/pkg/search"
	"github.com/charmbracelet/log"
)

const (
	escapeKey    = "\x1b"
	clearCommand = ":clear"
	quitCommand  = ":q"
)

// InputHandler reads search terms line by line. Every line is an input
// event; the search runs once input has been quiet for the debounce delay.
type InputHandler struct {
	searcher  search.Searcher
	mode      search.Mode
	renderer  *TableRenderer
	debouncer *debounce.Debouncer
	in        io.Reader

	mu           sync.Mutex
	current      string
	requestCount int
}

// NewInputHandler wires a searcher to a renderer through a debouncer with
// the given delay.
func NewInputHandler(searcher search.Searcher, mode search.Mode, renderer *TableRenderer, delay time.Duration) *InputHandler {
	h := &InputHandler{
		searcher: searcher,
		mode:     mode,
		renderer: renderer,
		in:       os.Stdin,
	}
	h.debouncer = debounce.New(delay, h.runSearch)
	return h
}

// WithInput replaces stdin as the source of lines.
func (h *InputHandler) WithInput(r io.Reader) *InputHandler {
	h.in = r
	return h
}

// Start shows the full table, then reads lines until EOF or :q. A pending
// search is run before returning on EOF.
func (h *InputHandler) Start() error {
	defer h.debouncer.Stop()

	log.Print("dictable repl")
	log.Print("type to search, ESC or :clear resets, :q quits")
	h.showAll()

	scanner := bufio.NewScanner(h.in)
	for {
		log.Print("> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			h.debouncer.Flush()
			return nil
		}
		line := strings.TrimRight(scanner.Text(), "\r\n")

		switch strings.TrimSpace(line) {
		case quitCommand:
			h.debouncer.Cancel()
			return nil
		case escapeKey, clearCommand:
			h.debouncer.Cancel()
			h.setCurrent("")
			h.showAll()
			continue
		}

		h.setCurrent(line)
		h.debouncer.Trigger(line)
	}
}

func (h *InputHandler) setCurrent(term string) {
	h.mu.Lock()
	h.current = term
	h.mu.Unlock()
}

// runSearch is the debounced handler. A term the user has already moved
// away from is dropped.
func (h *InputHandler) runSearch(term string) {
	h.mu.Lock()
	stale := term != h.current
	h.requestCount++
	count := h.requestCount
	h.mu.Unlock()
	if stale {
		log.Debugf("Dropping stale search '%s'", term)
		return
	}

	start := time.Now()
	rows := search.Run(h.searcher, h.mode, term)
	elapsed := time.Since(start)
	log.Debugf("Search #%d took [ %v ] for '%s' (%s)", count, elapsed, term, h.mode)

	if err := h.renderer.Render(h.searcher.Headers(), rows, term, elapsed); err != nil {
		log.Errorf("Render failed: %v", err)
	}
}

func (h *InputHandler) showAll() {
	if err := h.renderer.Render(h.searcher.Headers(), h.searcher.AllRows(), "", 0); err != nil {
		log.Errorf("Render failed: %v", err)
	}
}
