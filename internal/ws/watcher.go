package ws

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloader re-reads the dataset from disk.
type Reloader interface {
	Reload(ctx context.Context) error
}

// debounceWindow coalesces write bursts from editors and atomic saves.
const debounceWindow = 500 * time.Millisecond

// Watcher reloads the dataset and notifies the hub when the dataset file
// changes on disk.
type Watcher struct {
	path     string
	reloader Reloader
	hub      *Hub
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher creates a watcher over the dataset file. The parent directory
// is watched so renames and atomic replaces are seen.
func NewWatcher(path string, reloader Reloader, hub *Hub, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{
		path:     path,
		reloader: reloader,
		hub:      hub,
		logger:   logger.With(slog.String("component", "dataset_watcher")),
		watcher:  fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start watches until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Close stops the underlying fsnotify watcher and waits for the loop.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var (
		debounce *time.Timer
		pending  <-chan time.Time
	)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceWindow)
			} else {
				// A fired-but-unread tick must be drained or the Reset
				// delivers it immediately and shortens the window.
				if !debounce.Stop() && pending != nil {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(debounceWindow)
			}
			pending = debounce.C
		case <-pending:
			pending = nil
			w.reload(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", slog.String("error", err.Error()))
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	if err := w.reloader.Reload(ctx); err != nil {
		w.logger.ErrorContext(ctx, "dataset reload failed",
			slog.String("path", w.path),
			slog.String("error", err.Error()),
		)
		return
	}
	w.logger.InfoContext(ctx, "dataset changed on disk, subscribers notified",
		slog.String("path", w.path),
	)
	w.hub.Broadcast(Event{Type: TypeDatasetUpdated})
}
