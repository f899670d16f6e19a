package discovery

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDelay coalesces editor write bursts into one reload
const DefaultWatchDelay = 100 * time.Millisecond

// Watcher reloads candidate files when they change on disk
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	service   DiscoveryService
	files     map[string]string // absolute path to source name
	delay     time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
	done   chan struct{}
}

// NewWatcher watches the directories holding files. Directories are watched
// rather than files so editors that replace the file on save keep working.
func NewWatcher(service DiscoveryService, files []string, delay time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultWatchDelay
	}

	w := &Watcher{
		fsWatcher: fsw,
		service:   service,
		files:     make(map[string]string, len(files)),
		delay:     delay,
		timers:    make(map[string]*time.Timer),
		done:      make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = f
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run processes file system events until ctx is done or the watcher stops
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if source, ok := w.files[abs]; ok {
				w.schedule(ctx, source)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watch error: %v", err)
		}
	}
}

// Stop shuts down the watcher and pending reloads
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	w.fsWatcher.Close()
}

// Done is closed once Run returned
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		if err := w.service.Reload(ctx, path); err != nil {
			log.Printf("Reload of %s failed: %v", path, err)
		}
	})
}
