package app

import (
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// watcher reloads the listing when the current directory changes on
// disk. Watch failures are logged and browsing continues without live
// refresh.
type watcher struct {
	logger *slog.Logger
	fs     *fsnotify.Watcher
	dir    string

	// pending guards against stacking wait goroutines: the event
	// channels are shared, so one blocked waiter covers every re-arm
	// until it delivers.
	pending atomic.Bool
}

func newWatcher(logger *slog.Logger) *watcher {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("filesystem watcher unavailable", "error", err)
		return &watcher{logger: logger}
	}
	return &watcher{logger: logger, fs: fs}
}

// watch points the watcher at dir and returns a command waiting for the
// next relevant event.
func (w *watcher) watch(dir string) tea.Cmd {
	if w.fs == nil {
		return nil
	}
	if w.dir != "" {
		if err := w.fs.Remove(w.dir); err != nil {
			w.logger.Debug("unwatch failed", "dir", w.dir, "error", err)
		}
	}
	if err := w.fs.Add(dir); err != nil {
		w.logger.Warn("watch failed", "dir", dir, "error", err)
		w.dir = ""
		return nil
	}
	w.dir = dir
	return w.wait()
}

// wait blocks for the next create/remove/rename event. At most one
// waiter runs at a time; extra arms return nil.
func (w *watcher) wait() tea.Cmd {
	if w.fs == nil || !w.pending.CompareAndSwap(false, true) {
		return nil
	}
	return func() tea.Msg {
		defer w.pending.Store(false)
		for {
			select {
			case ev, ok := <-w.fs.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					return dirReloadMsg{}
				}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}
				w.logger.Warn("watch error", "error", err)
			}
		}
	}
}

// close releases the watcher.
func (w *watcher) close() {
	if w.fs != nil {
		w.fs.Close()
	}
}
