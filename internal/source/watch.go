package source

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/obsidianstack/schedhealth/pkg/types"
)

// Watch monitors path and calls onChange with the newly loaded project each
// time the file is written. Events arriving within debounce of each other
// produce a single reload. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file itself: an atomic
// save renames a new inode over path, which a watch on the old inode only
// sees as a Remove.
//
// If a reload fails (e.g. invalid YAML), the error is logged and onChange is
// not called, so the caller keeps its previous project.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func(*types.Project)) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("source: watching for changes", "path", path)

	// timer is nil until the first relevant event; pending is its channel.
	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			// A rename over path arrives as Create for the new name.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce <= 0 {
				reload(path, onChange)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			reload(path, onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("source: watcher error", "err", err)
		}
	}
}

func reload(path string, onChange func(*types.Project)) {
	p, err := Load(path)
	if err != nil {
		slog.Error("source: reload failed, keeping previous project",
			"path", path, "err", err)
		return
	}
	slog.Info("source: reloaded", "path", path, "activities", len(p.Activities))
	onChange(p)
}
