// Package watch keeps a directory of CUE sheets in sync with a handler.
//
// A Watcher re-parses a .cue file after it is created or written and
// reports its removal when it is deleted or renamed away. Bursts of events
// for one file (editors often write in several steps) are collapsed into a
// single reload once the file has been quiet for the debounce interval.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/simonhull/cuesheet/internal/types"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 250 * time.Millisecond

// ParseFunc reads the sheet at path.
type ParseFunc func(path string) (*types.Disc, error)

// Handler receives the results of a watch.
type Handler interface {
	// Update is called with a freshly parsed sheet.
	Update(ctx context.Context, path string, disc *types.Disc) error
	// Remove is called when a sheet disappears from the directory.
	Remove(ctx context.Context, path string) error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for watch events and handler failures.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets how long a file must stay quiet before it is reloaded.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher watches one directory (not its subdirectories).
type Watcher struct {
	dir      string
	parse    ParseFunc
	handler  Handler
	logger   *slog.Logger
	debounce time.Duration

	// handling serializes handler calls so a Scan running beside the
	// event loop cannot store a sheet older than the loop's last view.
	handling sync.Mutex

	mu      sync.Mutex
	pending map[string]*time.Timer
	ready   chan string
	cancel  context.CancelFunc
	done    chan struct{}
}

// New returns a Watcher for dir. Nothing is watched until Start.
func New(dir string, parse ParseFunc, handler Handler, opts ...Option) (*Watcher, error) {
	if parse == nil || handler == nil {
		return nil, errors.New("watch: parse func and handler are required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", dir)
	}

	w := &Watcher{
		dir:      filepath.Clean(dir),
		parse:    parse,
		handler:  handler,
		logger:   slog.New(slog.DiscardHandler),
		debounce: DefaultDebounce,
		pending:  make(map[string]*time.Timer),
		ready:    make(chan string),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Scan loads every sheet already in the directory and returns how many
// reached the handler. Sheets that fail to parse are logged and skipped.
//
// Call Scan after Start so that a sheet written during the scan is either
// read by it or seen as an event.
func (w *Watcher) Scan(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", w.dir, err)
	}

	n := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if e.IsDir() || !IsCueFile(e.Name()) {
			continue
		}
		if w.reload(ctx, filepath.Join(w.dir, e.Name())) {
			n++
		}
	}
	return n, nil
}

// Start begins watching. Events are handled on a background goroutine
// until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	if w.done != nil {
		return errors.New("watch: already started")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.logger.Info("watching for sheet changes", "dir", w.dir)

	go w.loop(ctx, fw)
	return nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	if w.cancel == nil {
		return nil
	}
	w.cancel()
	<-w.done
	return nil
}

// Done is closed once the watcher has stopped.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer close(w.done)
	defer fw.Close()
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping watcher", "dir", w.dir)
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !IsCueFile(event.Name) {
				continue
			}
			w.handleEvent(ctx, event)

		case path := <-w.ready:
			w.reload(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	w.logger.Debug("watch event", "file", event.Name, "op", event.Op.String())

	switch {
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		w.schedule(event.Name)

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.unschedule(event.Name)
		w.handling.Lock()
		err := w.handler.Remove(ctx, event.Name)
		w.handling.Unlock()
		if err != nil {
			w.logger.Error("failed to drop sheet", "file", event.Name, "error", err)
			return
		}
		w.logger.Info("sheet removed", "file", event.Name)
	}
}

// schedule (re)arms the reload timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	done := w.done
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case w.ready <- path:
		case <-done:
		}
	})
}

func (w *Watcher) unschedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

// reload parses path and hands the result to the handler. It reports
// whether the handler accepted the sheet.
func (w *Watcher) reload(ctx context.Context, path string) bool {
	w.handling.Lock()
	defer w.handling.Unlock()

	disc, err := w.parse(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Gone again before the debounce fired; the Remove event covers it.
			return false
		}
		w.logger.Warn("failed to parse sheet", "file", path, "error", err)
		return false
	}
	if err := w.handler.Update(ctx, path, disc); err != nil {
		w.logger.Error("failed to store sheet", "file", path, "error", err)
		return false
	}
	w.logger.Info("sheet loaded", "file", path, "tracks", disc.TrackCount(), "warnings", len(disc.Warnings))
	return true
}

// IsCueFile reports whether name has a .cue extension, in any case.
func IsCueFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".cue")
}
