package tui

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 150 * time.Millisecond

// storeWatcher reports writes to the store directory, debounced, so edits made
// by another process (e.g. the CLI in a second terminal) show up in the TUI.
type storeWatcher struct {
	w   *fsnotify.Watcher
	log *log.Logger
}

func newStoreWatcher(dir string, logger *log.Logger) (*storeWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &storeWatcher{w: w, log: logger}, nil
}

// run delivers notify() after each burst of relevant events until Close.
func (sw *storeWatcher) run(notify func()) {
	var debounce *time.Timer
	for {
		select {
		case event, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if !relevantEvent(event) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, notify)
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			sw.log.Warn("store watcher", "err", err)
		}
	}
}

func (sw *storeWatcher) Close() error { return sw.w.Close() }

func relevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		// temp files from atomic writes
		return false
	}
	return strings.HasSuffix(base, ".json") || strings.Contains(base, ".sqlite")
}
