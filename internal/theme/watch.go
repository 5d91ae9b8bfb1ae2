// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// paletteFile is the pywal output whose rewrite signals a finished
// regeneration. Watching this file (rather than every template output)
// mirrors what the live-retheming desktop tools do.
const paletteFile = "colors.json"

// debounceDelay coalesces the burst of writes wal produces into one
// restart fan-out.
const debounceDelay = 500 * time.Millisecond

// Watcher restarts the theme consumers whenever an external palette
// regeneration rewrites the pywal cache.
type Watcher struct {
	applier *Applier
	logger  *log.Logger
}

// NewWatcher creates a Watcher that fans out through applier.
func NewWatcher(applier *Applier, logger *log.Logger) *Watcher {
	return &Watcher{applier: applier, logger: logger}
}

// Watch blocks until ctx is canceled, restarting the consumers after
// each palette rewrite. The wal cache directory is watched as a whole
// because wal replaces colors.json rather than writing in place, which
// would silently detach a per-file watch.
func (w *Watcher) Watch(ctx context.Context, walCacheDir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(walCacheDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", walCacheDir, err)
	}
	w.logger.Info("watching palette", "dir", walCacheDir)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != paletteFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		case <-fire:
			w.logger.Info("palette changed, restarting consumers")
			w.applier.RestartConsumers(ctx)
		}
	}
}
