package catalog

import (
	"context"
	"path/filepath"
	"sync"

	"addonlist/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher signals when a local data set source changes on disk.
// Directories are watched rather than files so that editors that save by
// rename keep being tracked.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	files    map[string]string // cleaned path -> data set name
	debounce *Debouncer
	changes  chan string
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher over the local sources; remote sources are ignored.
func NewWatcher(sources []Source) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	files := make(map[string]string)
	for _, src := range sources {
		if IsRemote(src.Location) {
			continue
		}
		path, err := LocalPath(src.Location)
		if err != nil {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		files[filepath.Clean(abs)] = src.Name
	}

	return &Watcher{
		watcher:  w,
		files:    files,
		debounce: NewDebouncer(DefaultReloadDebounce),
		changes:  make(chan string, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watching reports how many local sources are tracked.
func (w *Watcher) Watching() int {
	return len(w.files)
}

// Changes delivers the name of a data set whose file changed. Bursts are
// coalesced; a pending notification is not duplicated.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dirs := make(map[string]bool)
	for path := range w.files {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			logging.Get(logging.CategoryCatalog).Warn("watch %s: %v", dir, err)
			continue
		}
		logging.Catalog("watching %s", dir)
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.debounce.Cancel()

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryCatalog).Error("close watcher: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
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
			logging.Get(logging.CategoryCatalog).Error("watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	name, ok := w.files[filepath.Clean(event.Name)]
	if !ok {
		return
	}
	logging.CatalogDebug("%s changed (%s)", event.Name, event.Op)

	w.debounce.Debounce(func() {
		select {
		case w.changes <- name:
		default:
		}
	})
}
