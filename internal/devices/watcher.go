package devices

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/smazurov/focusselect/internal/events"
)

// Publisher receives device change events. *events.Bus satisfies it.
type Publisher interface {
	Publish(ev events.Event)
}

// Watcher watches a device directory for video nodes appearing or
// disappearing. Each change is published immediately; handlers run once
// per burst of changes, after the debounce period.
type Watcher struct {
	dir       string
	prefix    string
	debounce  time.Duration
	publisher Publisher
	handlers  []func()
	mu        sync.RWMutex
	watcher   *fsnotify.Watcher
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before handlers run.
// Default is 500ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithPublisher sets the sink for DeviceChangedEvent.
func WithPublisher(p Publisher) WatcherOption {
	return func(w *Watcher) {
		w.publisher = p
	}
}

// WithNodePrefix sets the file name prefix of watched nodes. Default "video".
func WithNodePrefix(prefix string) WatcherOption {
	return func(w *Watcher) {
		w.prefix = prefix
	}
}

// NewWatcher creates a watcher over dir, usually /dev.
func NewWatcher(dir string, logger *slog.Logger, opts ...WatcherOption) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:      dir,
		prefix:   "video",
		debounce: 500 * time.Millisecond,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnChange registers a handler. Returns a function that removes it.
func (w *Watcher) OnChange(handler func()) func() {
	w.mu.Lock()
	w.handlers = append(w.handlers, handler)
	idx := len(w.handlers) - 1
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if idx < len(w.handlers) {
			w.handlers[idx] = nil
		}
	}
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if addErr := watcher.Add(w.dir); addErr != nil {
		watcher.Close()
		return addErr
	}
	w.watcher = watcher

	w.logger.Info("Device watcher started", "dir", w.dir, "debounce", w.debounce)
	go w.watch()
	return nil
}

// Stop stops watching and waits for the watch loop to exit.
func (w *Watcher) Stop() error {
	w.cancel()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) watch() {
	defer close(w.done)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Debug("Device watcher stopped")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			action := changeAction(event.Op)
			if action == "" || !strings.HasPrefix(filepath.Base(event.Name), w.prefix) {
				continue
			}

			w.logger.Info("Video device changed", "action", action, "path", event.Name)
			if w.publisher != nil {
				w.publisher.Publish(events.DeviceChangedEvent{
					Action:     action,
					DevicePath: event.Name,
					Timestamp:  time.Now().UTC().Format(time.RFC3339),
				})
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.notify()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Device watcher error", "error", err)
		}
	}
}

func (w *Watcher) notify() {
	w.mu.RLock()
	handlers := make([]func(), 0, len(w.handlers))
	for _, h := range w.handlers {
		if h != nil {
			handlers = append(handlers, h)
		}
	}
	w.mu.RUnlock()

	for _, handler := range handlers {
		handler()
	}
}

// changeAction maps a filesystem op to "added" or "removed"; other ops
// (chmod, writes to the node) are not device changes.
func changeAction(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "added"
	case op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return "removed"
	default:
		return ""
	}
}
