package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"depcycle/internal/core/app"
)

const watchDebounce = 200 * time.Millisecond

// runWatch re-runs the analysis every time the graph snapshot file changes.
// It watches the parent directory so atomic saves (replace-on-write) are seen.
func runWatch(ctx context.Context, a *app.App) error {
	provider, ok := a.Provider.(*app.FileProvider)
	if !ok {
		return fmt.Errorf("watch mode requires a graph file (--graph)")
	}
	target := filepath.Clean(provider.Path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	if _, err := analyzeAndPrint(ctx, a); err != nil {
		slog.Error("initial analysis failed", "error", err)
	}
	slog.Info("watching graph file", "path", target)

	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				if _, err := analyzeAndPrint(ctx, a); err != nil {
					slog.Error("analysis failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("graph watcher error", "error", err)

		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		}
	}
}
