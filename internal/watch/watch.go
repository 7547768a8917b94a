// Package watch reports on-disk changes to the file being edited.
//
// The watcher wraps fsnotify but exposes a poll-style API: Changed drains
// whatever events have accumulated and never blocks, so the editor's
// single-threaded loop can check it once per iteration without any shared
// state leaving the loop.
package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes one file for writes and replacements.
type Watcher struct {
	fw   *fsnotify.Watcher
	path string
}

// New watches the file at path. The watch is placed on the containing
// directory because editors and tools typically replace files by rename,
// which would silently drop a watch on the file itself.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{fw: fw, path: abs}, nil
}

// Changed drains all pending events and reports whether the watched file
// was written, created, or renamed since the last call. It never blocks.
func (w *Watcher) Changed() bool {
	changed := false
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return changed
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				changed = true
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return changed
			}
		default:
			return changed
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
