// Package watch reports batches of changed source files under a directory.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long changes are collected before a batch is sent.
const DefaultDebounce = 200 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	// Roots are the directories to watch recursively.
	Roots []string

	// Match selects the files worth reporting.
	Match func(path string) bool

	// Debounce is how long to wait for more changes before emitting a batch.
	Debounce time.Duration

	Logger *slog.Logger
}

// Watcher watches directory trees and emits debounced batches of file paths.
type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]struct{}

	batches chan []string
}

// New creates a watcher. Call Start to begin receiving batches.
func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.Match == nil {
		config.Match = func(string) bool { return true }
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  config.Logger,
		pending: make(map[string]struct{}),
		batches: make(chan []string, 16),
	}, nil
}

// Batches returns the channel of changed file paths, sorted per batch.
// It is closed when the watcher stops.
func (w *Watcher) Batches() <-chan []string {
	return w.batches
}

// Start adds the watches and processes events until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	for _, root := range w.config.Roots {
		if err := w.addRecursive(root); err != nil {
			return err
		}
	}

	go w.run(ctx)

	w.logger.Info("file watcher started", "roots", w.config.Roots, "debounce", w.config.Debounce)
	return nil
}

// SkipDir reports whether a directory is never descended into.
func SkipDir(name string) bool {
	return name == "node_modules" || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && SkipDir(d.Name()) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("watching directory", "path", path)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.config.Debounce)
	defer ticker.Stop()
	defer close(w.batches)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)

		case <-ticker.C:
			if batch := w.drain(); len(batch) > 0 {
				select {
				case w.batches <- batch:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !SkipDir(filepath.Base(path)) {
				if err := w.addRecursive(path); err != nil {
					w.logger.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !w.config.Match(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = struct{}{}
	w.pendingMu.Unlock()

	w.logger.Debug("file change detected", "path", path, "op", event.Op.String())
}

func (w *Watcher) drain() []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}

	batch := make([]string, 0, len(w.pending))
	for path := range w.pending {
		batch = append(batch, path)
	}
	w.pending = make(map[string]struct{})

	sort.Strings(batch)
	return batch
}
