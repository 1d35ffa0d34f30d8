// Package watcher turns fsnotify callbacks into a channel of file-change
// events, decoupling the capture pipeline from the notification API.
package watcher

import (
	"context"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"pit-go/internal/fs"
	"pit-go/internal/pit"
)

// Watcher monitors a workspace recursively and delivers debounced
// pit.Event messages on its Events channel. Rapid successive notifications
// for one path collapse to the last one within the debounce window.
type Watcher struct {
	fsw      *fsnotify.Watcher
	events   chan pit.Event
	done     chan struct{}
	logger   pit.Logger
	debounce time.Duration
	ignore   *fs.IgnoreMatcher
	root     string

	mu        sync.Mutex
	pending   map[string]*time.Timer
	closeOnce sync.Once
}

// New creates a watcher with the given debounce window.
func New(debounce time.Duration, ignore *fs.IgnoreMatcher, logger pit.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		events:   make(chan pit.Event, 64),
		done:     make(chan struct{}),
		logger:   logger,
		debounce: debounce,
		ignore:   ignore,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Watch registers root and every subdirectory below it, pruning ignored
// directories.
func (w *Watcher) Watch(root string) error {
	w.root = root
	return filepath.WalkDir(root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return rerr
		}
		if rel != "." && w.ignore.Match(filepath.ToSlash(rel)+"/") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		w.logger.Debug("watching directory", "path", p)
		return nil
	})
}

// Events is the inbound channel consumed by the capture pipeline.
func (w *Watcher) Events() <-chan pit.Event { return w.events }

// Run pumps fsnotify notifications into the event channel until ctx is
// done or the underlying watcher closes.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	kind, ok := MapOp(ev.Op)
	if !ok {
		return
	}

	if kind == pit.EventCreated {
		// A new directory must itself be watched; it produces no capture.
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if w.ignorePath(ev.Name) {
				return
			}
			if err := w.fsw.Add(ev.Name); err != nil {
				w.logger.Warn("watching new directory", "path", ev.Name, "error", err)
			}
			return
		}
	}

	if w.ignorePath(ev.Name) {
		return
	}
	w.send(ev.Name, kind)
}

// MapOp translates an fsnotify operation into an event kind. Rename and
// chmod notifications carry no content change and are dropped.
func MapOp(op fsnotify.Op) (pit.EventKind, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return pit.EventCreated, true
	case op.Has(fsnotify.Write):
		return pit.EventChanged, true
	case op.Has(fsnotify.Remove):
		return pit.EventDeleted, true
	}
	return "", false
}

// ignorePath applies the ignore rules to an absolute notification path.
func (w *Watcher) ignorePath(absPath string) bool {
	rel, err := filepath.Rel(w.root, absPath)
	if err != nil {
		return true
	}
	return w.ignore.Match(filepath.ToSlash(rel))
}

// send delivers the event after the debounce window. An existing pending
// timer for the same path is replaced, keeping only the latest event.
// A timer that fires after Close drops its event instead of blocking.
func (w *Watcher) send(path string, kind pit.EventKind) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}
		select {
		case w.events <- pit.Event{Path: path, Kind: kind}:
		case <-w.done:
		}
	})
}

// Close stops the underlying fsnotify watcher and releases any pending
// debounce timers. Safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() { close(w.done) })
	return w.fsw.Close()
}
