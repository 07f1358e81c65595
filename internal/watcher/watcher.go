// Package watcher monitors the catalog file for changes and triggers reloads.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gamedex/gamedex-server/internal/logger"
)

// DefaultSettleDelay is how long a file must stay unchanged before the
// change callback fires. Editors and atomic-rename writers produce several
// events per save; the delay coalesces them into one reload.
const DefaultSettleDelay = 500 * time.Millisecond

// FileWatcher watches a single file via its parent directory and invokes a
// callback once writes to it have settled.
type FileWatcher struct {
	path        string
	settleDelay time.Duration
	onChange    func()
	logger      *logger.Logger

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	size    int64
	modTime time.Time
	timer   *time.Timer

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a watcher for path. onChange runs on the watcher goroutine
// after each settled change; it should return quickly or spawn its own work.
func New(path string, onChange func(), log *logger.Logger) (*FileWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	path = filepath.Clean(path)

	// Watch the parent directory so atomic renames onto the file are seen.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	return &FileWatcher{
		path:        path,
		settleDelay: DefaultSettleDelay,
		onChange:    onChange,
		logger:      log,
		watcher:     fsw,
		done:        make(chan struct{}),
	}, nil
}

// Start begins watching. It blocks until the context is cancelled or Stop is
// called.
func (w *FileWatcher) Start(ctx context.Context) error {
	w.wg.Add(1)
	go w.processEvents(ctx)

	select {
	case <-ctx.Done():
	case <-w.done:
	}
	return nil
}

// Stop stops the watcher and releases resources.
func (w *FileWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()

		w.watcher.Close()
	})

	w.wg.Wait()
	return nil
}

// processEvents filters fsnotify events down to ones touching our file.
func (w *FileWatcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.startSettling()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("file watcher error", "path", w.path)
		}
	}
}

// startSettling (re)arms the settle timer for the watched file.
func (w *FileWatcher) startSettling() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}

	info, err := os.Stat(w.path)
	if err != nil {
		// The file may be mid-rename. Try again after the settle delay.
		w.timer = time.AfterFunc(w.settleDelay, w.checkSettled)
		return
	}

	w.size = info.Size()
	w.modTime = info.ModTime()
	w.timer = time.AfterFunc(w.settleDelay, w.checkSettled)
}

// checkSettled fires the callback if the file stopped changing, otherwise
// restarts the timer.
func (w *FileWatcher) checkSettled() {
	w.mu.Lock()

	info, err := os.Stat(w.path)
	if err != nil {
		w.mu.Unlock()
		w.logger.WithError(err).Warn("watched file unreadable after change", "path", w.path)
		return
	}

	if info.Size() != w.size || info.ModTime() != w.modTime {
		// Still being written, wait another round.
		w.size = info.Size()
		w.modTime = info.ModTime()
		w.timer = time.AfterFunc(w.settleDelay, w.checkSettled)
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return
	default:
	}

	w.logger.Info("catalog file changed", "path", w.path)
	w.onChange()
}
