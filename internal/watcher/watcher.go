// Package watcher monitors a drop directory and imports spreadsheet
// files as they appear, so a catalog can be fed by simply copying
// files into a folder.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/dungeonarchitect/companion/internal/catalog"
	"github.com/dungeonarchitect/companion/internal/spreadsheet"
)

// defaultSettle is how long a file must be quiet before it is imported.
const defaultSettle = 500 * time.Millisecond

// Watcher imports spreadsheet files dropped into a directory.
type Watcher struct {
	dir     string
	store   *catalog.Store
	logger  *slog.Logger
	limiter *rate.Limiter
	settle  time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a watcher for dir. Editors and file copies emit bursts of
// events for one file (create, then one write per chunk); each event
// re-arms a per-file settle timer, so the import runs once, on the
// finished file. The limiter spaces imports apart when many files land
// at the same time.
func New(dir string, store *catalog.Store, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dir:     dir,
		store:   store,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(1), 1), // at most one import per second per watcher
		settle:  defaultSettle,
		timers:  make(map[string]*time.Timer),
	}
}

// Run watches the directory until the context is canceled. Import
// failures are logged and never stop the watch loop; a failed file
// leaves the store untouched.
func (w *Watcher) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fsWatcher.Close() }()
	defer w.stopTimers()

	if err := fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.logger.Info("watching for spreadsheet drops", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !importable(event.Name) {
				continue
			}
			w.schedule(ctx, event.Name)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// schedule arms the settle timer for path, or pushes it back if one is
// already running. The file is imported only after it has been quiet
// for the settle period.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		if err := w.limiter.Wait(ctx); err != nil {
			return // canceled while waiting for an import slot
		}
		w.importFile(path)
	})
}

// stopTimers cancels all pending settle timers.
func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}

// importable reports whether the file extension is a supported
// spreadsheet type.
func importable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".csv":
		return true
	default:
		return false
	}
}

// importFile parses and applies one dropped file.
func (w *Watcher) importFile(path string) {
	imported, err := spreadsheet.ImportFile(path)
	if err != nil {
		w.logger.Warn("failed to import dropped file", "file", path, "error", err)
		return
	}

	newSystems := spreadsheet.Apply(w.store, imported)
	w.logger.Info("imported dropped file",
		"file", filepath.Base(path),
		"events", len(imported),
		"new_systems", len(newSystems),
	)
}
