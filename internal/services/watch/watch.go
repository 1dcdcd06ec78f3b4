// Package watch regenerates role documentation whenever the role directory
// changes on disk.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// defaultDebounceInterval coalesces bursts of filesystem events into a
	// single regeneration.
	defaultDebounceInterval = 250 * time.Millisecond
)

// Options configures a watch run.
type Options struct {
	// RolePath is the root of the watched role directory tree.
	RolePath string
	// DebounceInterval overrides the event coalescing window when positive.
	DebounceInterval time.Duration
}

// Run watches the role directory tree and invokes regenerate after each
// settled burst of changes. New subdirectories are added to the watch as
// they appear. Run blocks until ctx is canceled or the watcher fails.
func Run(ctx context.Context, options Options, regenerate func() error, logger *zap.Logger) error {
	watcher, watcherError := fsnotify.NewWatcher()
	if watcherError != nil {
		return watcherError
	}
	defer watcher.Close()

	for _, watchDirectory := range CollectWatchDirectories(options.RolePath) {
		if addError := watcher.Add(watchDirectory); addError != nil {
			logger.Warn("unable to watch directory",
				zap.String("directory", watchDirectory), zap.Error(addError))
		}
	}

	debounceInterval := options.DebounceInterval
	if debounceInterval <= 0 {
		debounceInterval = defaultDebounceInterval
	}

	group, watchCtx := errgroup.WithContext(ctx)
	changed := make(chan struct{}, 1)

	group.Go(func() error {
		defer close(changed)
		for {
			select {
			case <-watchCtx.Done():
				return watchCtx.Err()
			case event, open := <-watcher.Events:
				if !open {
					return nil
				}
				if event.Op.Has(fsnotify.Create) {
					if info, statError := os.Stat(event.Name); statError == nil && info.IsDir() {
						if addError := watcher.Add(event.Name); addError != nil {
							logger.Warn("unable to watch new directory",
								zap.String("directory", event.Name), zap.Error(addError))
						}
					}
				}
				select {
				case changed <- struct{}{}:
				default:
				}
			case watchError, open := <-watcher.Errors:
				if !open {
					return nil
				}
				logger.Warn("watch error", zap.Error(watchError))
			}
		}
	})

	group.Go(func() error {
		for {
			select {
			case <-watchCtx.Done():
				return watchCtx.Err()
			case _, open := <-changed:
				if !open {
					return nil
				}
				settle := time.NewTimer(debounceInterval)
				select {
				case <-watchCtx.Done():
					settle.Stop()
					return watchCtx.Err()
				case <-settle.C:
				}
				drainPending(changed)
				logger.Info("change detected, regenerating documentation",
					zap.String("role", options.RolePath))
				if regenerateError := regenerate(); regenerateError != nil {
					logger.Warn("regeneration failed", zap.Error(regenerateError))
				}
			}
		}
	})

	if waitError := group.Wait(); waitError != nil && !errors.Is(waitError, context.Canceled) {
		return waitError
	}
	return nil
}

// drainPending discards change notifications accumulated during the settle
// window so they do not trigger an immediate second regeneration.
func drainPending(changed <-chan struct{}) {
	for {
		select {
		case <-changed:
		default:
			return
		}
	}
}

// CollectWatchDirectories returns rolePath and every subdirectory below it.
func CollectWatchDirectories(rolePath string) []string {
	var watchDirectories []string
	walkError := filepath.WalkDir(rolePath, func(currentPath string, entry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return nil
		}
		if entry.IsDir() {
			watchDirectories = append(watchDirectories, currentPath)
		}
		return nil
	})
	if walkError != nil {
		return []string{rolePath}
	}
	return watchDirectories
}
