package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the config file into a Holder whenever it changes.
// A file that fails to parse or validate is logged and ignored; the
// previous configuration stays live.
type Watcher struct {
	path     string
	holder   *Holder
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange []func(old, updated *Config)

	mu        sync.Mutex
	running   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
	closeOnce sync.Once
}

// NewWatcher creates a watcher for path. onChange callbacks run on the
// watcher goroutine after each successful swap.
func NewWatcher(path string, holder *Holder, logger *zap.Logger, onChange ...func(old, updated *Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     abs,
		holder:   holder,
		logger:   logger.Named("config").With(zap.String("path", abs)),
		watcher:  fw,
		debounce: 200 * time.Millisecond,
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start watches the file's directory so editors that replace the file
// by rename are still picked up. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.running = true
	go w.run(ctx)

	w.logger.Info("watching config")
	return nil
}

// Stop ends the watch, waits for the goroutine to exit and releases
// the underlying watcher. It is safe to call without Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	w.closeOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn("closing watcher", zap.Error(err))
		}
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

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
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// rapid saves collapse into one reload
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-pending:
			pending = nil
			w.Reload()
		}
	}
}

// Reload loads, validates and installs the file. It reports whether the
// live configuration changed.
func (w *Watcher) Reload() bool {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected", zap.Error(err))
		return false
	}
	if err := cfg.Validate(); err != nil {
		w.logger.Warn("config reload rejected", zap.Error(err))
		return false
	}

	old := w.holder.Swap(cfg)
	w.logger.Info("config reloaded",
		zap.Duration("rotation_interval", cfg.GetRotationInterval()),
		zap.Int("wide_slots", len(cfg.LayoutConfig().Wide)),
		zap.Int("compact_slots", len(cfg.LayoutConfig().Compact)))

	for _, fn := range w.onChange {
		fn(old, cfg)
	}
	return true
}
