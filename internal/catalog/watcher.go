package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must stay quiet before a change
// is reported. Editors often write a file several times in a row.
const DefaultDebounce = 300 * time.Millisecond

// ErrNothingToWatch is returned by NewWatcher when no paths are given.
var ErrNothingToWatch = errors.New("no files to watch")

// Watcher reports changes to a fixed set of data files.
// The parent directories are watched rather than the files themselves so
// that atomic saves (write temp file, rename) are still observed.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	files    []string
	onChange func(path string)
	logger   *slog.Logger
	debounce time.Duration
	pending  map[string]time.Time
	done     chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounce sets the quiet period before onChange fires.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a watcher for files. onChange is called from the
// watcher goroutine with the cleaned path of the file that changed.
// Empty paths are ignored, so callers can pass optional file settings as is.
func NewWatcher(files []string, onChange func(path string), opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		onChange: onChange,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
		pending:  make(map[string]time.Time),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		w.files = append(w.files, filepath.Clean(abs))
	}
	if len(w.files) == 0 {
		return nil, ErrNothingToWatch
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	dirs := make([]string, 0, len(w.files))
	for _, f := range w.files {
		dir := filepath.Dir(f)
		if slices.Contains(dirs, dir) {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs = append(dirs, dir)
	}
	w.watcher = fw
	return w, nil
}

// Run processes events until ctx is canceled or Close is called.
// It blocks; callers usually start it in a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.debounce / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

// Close stops the watcher. It is safe to call after Run has returned.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Done is closed when Run returns.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Clean(event.Name)
	if !slices.Contains(w.files, name) {
		return
	}
	w.logger.Debug("data file changed", "path", name, "op", event.Op.String())

	w.mu.Lock()
	w.pending[name] = time.Now()
	w.mu.Unlock()
}

// flush fires onChange for every file that has been quiet for the
// debounce period.
func (w *Watcher) flush(now time.Time) {
	var ready []string

	w.mu.Lock()
	for name, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, name)
			delete(w.pending, name)
		}
	}
	w.mu.Unlock()

	slices.Sort(ready)
	for _, name := range ready {
		w.onChange(name)
	}
}
