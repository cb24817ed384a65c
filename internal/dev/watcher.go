package dev

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ChangeType classifies a detected file change.
type ChangeType int

const (
	// ChangeSource is a route module or other application source; the
	// browser needs a full reload.
	ChangeSource ChangeType = iota

	// ChangeStyle is a stylesheet; the browser can swap CSS in place.
	ChangeStyle
)

// Change is one detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// defaultIgnore lists names and globs the watcher skips.
var defaultIgnore = []string{
	"*_test.go",
	".git",
	"node_modules",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher polls the app directory for modified, added or deleted files
// and reports changes. Polling keeps the watcher dependency-free and
// portable; the interval doubles as the debounce window, and within one
// scan only the first change of each type is reported.
type Watcher struct {
	dir string

	// Interval is the poll period. Zero defaults to 100ms.
	Interval time.Duration

	mu         sync.Mutex
	onChange   func(Change)
	timestamps map[string]time.Time
	running    bool
	stop       chan struct{}
}

// NewWatcher creates a watcher over the given directory.
func NewWatcher(dir string) *Watcher {
	return &Watcher{
		dir:        dir,
		timestamps: make(map[string]time.Time),
	}
}

// OnChange sets the callback invoked for each reported change.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start polls until the context is canceled or Stop is called. The
// first scan only primes timestamps; pre-existing files are not
// reported as changes.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stop = make(chan struct{})
	stop := w.stop
	w.mu.Unlock()

	w.prime()

	interval := w.Interval
	if interval == 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case <-ticker.C:
			w.report(w.scan())
		}
	}
}

// Stop ends the poll loop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stop)
		w.running = false
	}
}

// prime records the current modification times without reporting.
func (w *Watcher) prime() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.walk(func(path string, modTime time.Time) {
		w.timestamps[path] = modTime
	})
}

// scan collects every file changed since the previous scan.
func (w *Watcher) scan() []Change {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changes []Change
	seen := make(map[string]bool, len(w.timestamps))

	w.walk(func(path string, modTime time.Time) {
		seen[path] = true
		last, known := w.timestamps[path]
		if known && !modTime.After(last) {
			return
		}
		w.timestamps[path] = modTime
		changes = append(changes, Change{Path: path, Type: classifyChange(path)})
	})

	for path := range w.timestamps {
		if !seen[path] {
			delete(w.timestamps, path)
			changes = append(changes, Change{Path: path, Type: classifyChange(path)})
		}
	}
	return changes
}

// report invokes the callback for the first change of each type.
func (w *Watcher) report(changes []Change) {
	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()
	if callback == nil {
		return
	}

	reported := make(map[ChangeType]bool, 2)
	for _, c := range changes {
		if !reported[c.Type] {
			reported[c.Type] = true
			callback(c)
		}
	}
}

// walk visits every non-ignored file under the watched directory.
// Callers hold w.mu.
func (w *Watcher) walk(fn func(path string, modTime time.Time)) {
	filepath.Walk(w.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.dir && shouldIgnore(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !shouldIgnore(path) {
			fn(path, info.ModTime())
		}
		return nil
	})
}

func shouldIgnore(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range defaultIgnore {
		if name == pattern {
			return true
		}
		if strings.ContainsAny(pattern, "*?[") {
			if matched, _ := filepath.Match(pattern, name); matched {
				return true
			}
		}
	}
	return false
}

// classifyChange maps a file to the reload the browser needs.
func classifyChange(path string) ChangeType {
	if filepath.Ext(path) == ".css" {
		return ChangeStyle
	}
	return ChangeSource
}
