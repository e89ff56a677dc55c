// Package configwatcher rebuilds on configuration changes.
// It watches a single config file and invokes a callback, debounced, each
// time the file is written or recreated.
package configwatcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/adhosts/pkg/log"
)

// ErrAlreadyStarted is returned by Start on a running Watcher.
var ErrAlreadyStarted = errors.New("configwatcher: already started")

// Config holds configuration options for the watcher.
type Config struct {
	// DebounceDelay is the quiet period after the last change before the
	// callback fires. Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 100 * time.Millisecond}
}

// ChangeFunc is called after the watched file changed. Calls never overlap.
type ChangeFunc func(ctx context.Context)

// Watcher monitors one config file.
type Watcher struct {
	path          string
	onChange      ChangeFunc
	debounceDelay time.Duration
	logger        log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Watcher for path.
func New(path string, onChange ChangeFunc, cfg Config, opts ...Option) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultConfig().DebounceDelay
	}
	w := &Watcher{
		path:          filepath.Clean(path),
		onChange:      onChange,
		debounceDelay: cfg.DebounceDelay,
		logger:        log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the watcher identifier.
func (w *Watcher) Name() string {
	return "configwatcher"
}

// Start runs the watch loop in the background until ctx is canceled or
// Shutdown is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return ErrAlreadyStarted
	}

	fw, err := w.newFSWatcher()
	if err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.loop(watchCtx, fw)
	}()
	return nil
}

// Shutdown stops the watch loop and waits for an in-flight callback.
func (w *Watcher) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run watches until ctx is canceled. It returns nil on cancellation and an
// error only when the watch cannot be established.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := w.newFSWatcher()
	if err != nil {
		return err
	}
	w.loop(ctx, fw)
	return nil
}

// newFSWatcher watches the parent directory so that editors replacing the
// file through a rename are still observed.
func (w *Watcher) newFSWatcher() (*fsnotify.Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return fw, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer fw.Close()

	name := filepath.Base(w.path)
	timer := time.NewTimer(w.debounceDelay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	w.logger.Info("watching config file", log.String("path", w.path))

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("config file changed", log.String("op", event.Op.String()))
			timer.Reset(w.debounceDelay)

		case <-timer.C:
			w.logger.Info("config file changed, rebuilding", log.String("path", w.path))
			w.onChange(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", log.Err(err))
		}
	}
}
