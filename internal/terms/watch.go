package terms

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads idx from path whenever the file changes, until ctx is
// done. The parent directory is watched so editors that save by rename
// are picked up too. A reload that fails to parse keeps the old terms.
func Watch(ctx context.Context, path string, idx *Index, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				list, err := ReadFile(target)
				if err != nil {
					logger.Warn("terms reload failed", "path", target, "err", err)
					continue
				}
				idx.Replace(list)
				logger.Info("terms reloaded", "path", target, "count", idx.Len())
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("terms watcher error", "err", err)
			}
		}
	}()
	return nil
}
