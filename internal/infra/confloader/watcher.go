package confloader

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls a handler when a watched file is written or replaced.
// One Watcher serves any number of files.
type Watcher struct {
	fs  *fsnotify.Watcher
	log *slog.Logger

	mu       sync.RWMutex
	handlers map[string][]func(path string) // by absolute path
	dirs     map[string]bool

	done     chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the watcher.
func WithWatcherLogger(log *slog.Logger) WatcherOption {
	return func(w *Watcher) { w.log = log }
}

// NewWatcher returns an idle Watcher; call Run to start dispatching.
func NewWatcher(opts ...WatcherOption) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:       fs,
		log:      slog.Default(),
		handlers: make(map[string][]func(string)),
		dirs:     make(map[string]bool),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch subscribes fn to changes of path. The containing directory is
// what fsnotify watches, so a file swapped in by rename still fires.
func (w *Watcher) Watch(path string, fn func(path string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.handlers[abs] = append(w.handlers[abs], fn)
	w.log.Debug("watching file", "file", abs)
	return nil
}

// Run dispatches events until ctx is done or Stop is called. Handlers run
// on the Run goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Error("file watcher error", "error", err)
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.dispatch(ev)
			}
		}
	}
}

func (w *Watcher) dispatch(ev fsnotify.Event) {
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}
	w.mu.RLock()
	fns := w.handlers[abs]
	w.mu.RUnlock()
	if len(fns) == 0 {
		return
	}

	w.log.Debug("file changed", "file", abs, "op", ev.Op.String())
	for _, fn := range fns {
		fn(abs)
	}
}

// Stop releases the fsnotify watcher. Later calls return nil.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}
