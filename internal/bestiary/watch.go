package bestiary

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchFile watches the bestiary file and warns when it changes on disk.
// The loaded catalog stays immutable for the lifetime of the process; the
// watcher only tells operators that a restart is needed to pick up edits.
// Blocks until ctx is cancelled.
func WatchFile(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating bestiary watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save and
	// a file-level watch is lost after the first rename.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	base := filepath.Base(path)
	var lastWarn time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Editors fire bursts of events per save.
			if time.Since(lastWarn) < 500*time.Millisecond {
				continue
			}
			lastWarn = time.Now()
			slog.Warn("bestiary changed on disk; restart to apply",
				"path", path,
				"op", event.Op.String())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("bestiary watcher error", "error", err)
		}
	}
}
