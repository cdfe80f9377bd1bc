// Package watch reloads the table when its dataset file changes on disk.
package watch

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/bastiangx/dictable/internal/logger"
	"github.com/bastiangx/dictable/pkg/debounce"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDelay coalesces the burst of events editors emit on save.
const DefaultDelay = 300 * time.Millisecond

// Watcher calls onChange once per burst of changes to a single file.
type Watcher struct {
	fsw       *fsnotify.Watcher
	path      string
	debouncer *debounce.Debouncer
	done      chan struct{}
	log       *log.Logger
}

// New watches path. The parent directory is watched rather than the file,
// so editors that save by rename keep being seen.
func New(path string, delay time.Duration, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watch: nil onChange")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:  fsw,
		path: abs,
		done: make(chan struct{}),
		log:  logger.New("watch"),
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	w.debouncer = debounce.New(delay, func(string) { onChange() })

	go w.loop()
	w.log.Debugf("Watching %s", abs)
	return w, nil
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.log.Debugf("%s: %s", ev.Op, ev.Name)
				w.debouncer.Trigger(ev.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnf("Watch error: %v", err)
		}
	}
}

// Close stops watching and drops a pending change.
func (w *Watcher) Close() error {
	w.debouncer.Stop()
	err := w.fsw.Close()
	<-w.done
	return err
}
