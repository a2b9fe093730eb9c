package params

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a preset file into a Store whenever it changes on disk.
type Watcher struct {
	path    string
	store   *Store
	log     *zap.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching path. The parent directory is watched rather
// than the file itself so that editors which save by rename keep working.
func NewWatcher(path string, store *Store, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, store: store, log: log, watcher: fw}, nil
}

// Run processes file events until ctx is cancelled. A preset that fails to
// parse is logged and the store keeps its previous snapshot.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("preset watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	p, err := LoadPreset(w.path)
	if err != nil {
		// Editors often truncate before writing; the next event carries the content.
		w.log.Warn("preset reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.store.Set(p)
	w.log.Info("preset reloaded", zap.String("path", w.path))
}
