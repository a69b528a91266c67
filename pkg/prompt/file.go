package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileSource reads the system prompt from a file and optionally watches
// it for changes. Reads are lock-free; Watch swaps the text atomically
// after each reload.
type FileSource struct {
	path     string
	logger   *slog.Logger
	text     atomic.Value // string
	debounce *debouncer

	stateMu sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewFileSource creates a FileSource and performs the initial read.
func NewFileSource(path string) (*FileSource, error) {
	fs := &FileSource{
		path:     path,
		logger:   slog.Default().With("component", "prompt"),
		debounce: newDebouncer(100 * time.Millisecond),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	if err := fs.reload(); err != nil {
		return nil, err
	}
	return fs, nil
}

// System returns the current prompt text.
func (fs *FileSource) System() string {
	return fs.text.Load().(string)
}

// reload reads the prompt file and swaps the text in.
func (fs *FileSource) reload() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return fmt.Errorf("failed to read prompt file %q: %w", fs.path, err)
	}
	fs.text.Store(strings.TrimSpace(string(data)))
	return nil
}

// Watch blocks, reloading the prompt whenever the file changes, until
// the context is cancelled or Stop is called. A failed reload keeps the
// previous prompt.
func (fs *FileSource) Watch(ctx context.Context) error {
	fs.stateMu.Lock()
	if fs.running {
		fs.stateMu.Unlock()
		return fmt.Errorf("prompt watcher already running")
	}
	fs.running = true
	fs.stateMu.Unlock()

	defer func() {
		fs.stateMu.Lock()
		fs.running = false
		fs.stateMu.Unlock()
		close(fs.doneCh)
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(fs.path); err != nil {
		return fmt.Errorf("failed to watch prompt file: %w", err)
	}

	fs.logger.Info("prompt watcher started", "path", fs.path)

	for {
		select {
		case <-ctx.Done():
			fs.logger.Info("prompt watcher stopped")
			return nil

		case <-fs.stopCh:
			fs.logger.Info("prompt watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			fs.debounce.trigger(func() {
				if err := fs.reload(); err != nil {
					fs.logger.Error("prompt reload failed", "error", err)
					return
				}
				fs.logger.Info("prompt reloaded", "path", fs.path)
			})

			// Editors often replace the file; re-add the watch after
			// rename or remove.
			if event.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				time.Sleep(50 * time.Millisecond)
				if err := watcher.Add(fs.path); err != nil {
					fs.logger.Warn("failed to re-watch prompt file", "error", err)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fs.logger.Error("prompt watcher error", "error", err)
		}
	}
}

// Stop stops the watcher started by Watch.
func (fs *FileSource) Stop() {
	fs.stateMu.Lock()
	if !fs.running {
		fs.stateMu.Unlock()
		return
	}
	fs.stateMu.Unlock()

	close(fs.stopCh)
	<-fs.doneCh
	fs.debounce.stop()
}

// debouncer collects rapid file events and fires the callback only
// after a quiet period.
type debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
			d.mu.Lock()
			cb := d.callback
			d.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	})
}

func (d *debouncer) stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
