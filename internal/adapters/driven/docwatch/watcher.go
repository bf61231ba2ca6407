// Package docwatch reports document descriptors written into a directory.
package docwatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/adapters/driven/docfile"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/logger"
)

// DefaultSettle is how long a descriptor must go unmodified before it is reported.
const DefaultSettle = 200 * time.Millisecond

// DefaultPattern matches descriptor file names.
const DefaultPattern = "*" + docfile.Extension

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the settle delay. Zero or less keeps DefaultSettle.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithPattern sets the doublestar pattern file names must match.
func WithPattern(pattern string) Option {
	return func(w *Watcher) {
		if pattern != "" {
			w.pattern = pattern
		}
	}
}

// Watcher reports descriptor files created or rewritten in a directory.
type Watcher struct {
	dir     string
	settle  time.Duration
	pattern string

	mu      sync.Mutex
	pending map[string]*time.Timer
	watcher *fsnotify.Watcher
}

// New creates a watcher for dir. It fails if the pattern is malformed.
func New(dir string, opts ...Option) (*Watcher, error) {
	w := &Watcher{
		dir:     dir,
		settle:  DefaultSettle,
		pattern: DefaultPattern,
		pending: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(w)
	}
	if !doublestar.ValidatePattern(w.pattern) {
		return nil, fmt.Errorf("invalid pattern %q", w.pattern)
	}
	return w, nil
}

// Existing returns the descriptors already present in the directory, sorted by name.
func (w *Watcher) Existing() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("reading watch directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		path := filepath.Join(w.dir, entry.Name())
		if !entry.IsDir() && w.matches(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Watch starts watching and returns a channel of descriptor paths. The
// channel is closed when ctx is cancelled or the watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan string, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}

	w.mu.Lock()
	w.watcher = fsw
	w.mu.Unlock()

	ready := make(chan string)
	done := make(chan struct{})
	out := make(chan string)

	go func() {
		defer close(out)
		defer close(done)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case path := <-ready:
				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if path := w.handleFsEvent(event); path != "" {
					w.schedule(path, ready, done)
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error: %v", err)
			}
		}
	}()

	return out, nil
}

// handleFsEvent returns the descriptor path an event refers to, or ""
// when the event should be ignored.
func (w *Watcher) handleFsEvent(event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	if !w.matches(event.Name) {
		return ""
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return ""
	}
	return event.Name
}

// schedule reports path once it has settled. Each new event for the same
// path restarts its timer.
func (w *Watcher) schedule(path string, ready chan<- string, done <-chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case ready <- path:
		case <-done:
		}
	})
}

// Close stops the underlying watcher and any pending timers.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

// matches reports whether path names a visible file matching the pattern.
func (w *Watcher) matches(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	ok, err := doublestar.Match(w.pattern, name)
	return err == nil && ok
}
