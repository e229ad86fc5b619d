// Package watch runs the sync action whenever a watched tracker file
// changes on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	syncaction "tracksync.dev/tracksync/internal/actions/sync"
	"tracksync.dev/tracksync/internal/runtime"
)

// DefaultDebounce is the quiet window after the last tracker event before a
// sync run starts. Editors and the agent both write trackers in bursts.
const DefaultDebounce = 600 * time.Millisecond

// Options contains options for the watch command
type Options struct {
	Debounce time.Duration
	Message  string
}

// Action watches the repository root and performs one sync run per burst of
// tracker changes. It returns when the context is cancelled.
func Action(ctx *runtime.Context, opts Options) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the files: editors and the agent replace
	// trackers via rename, which drops per-file watches.
	if err := watcher.Add(ctx.RepoRoot); err != nil {
		return fmt.Errorf("failed to watch %s: %w", ctx.RepoRoot, err)
	}

	splog := ctx.Splog
	splog.Info("Watching %s for tracker changes...", ctx.RepoRoot)

	// The timer is parked until the first relevant event.
	timer := time.NewTimer(opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Context.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsWatched(event.Name, ctx.Config.WatchSet) {
				continue
			}
			splog.Debug("tracker event: %s %s", event.Op, event.Name)
			timer.Reset(opts.Debounce)

		case <-timer.C:
			if err := syncaction.Action(ctx, syncaction.Options{Message: opts.Message}); err != nil {
				splog.Error("Sync failed: %v", err)
			}
			// The run itself rewrites trackers (stash, rebase, pop); those
			// events are already queued. Drop them so the run doesn't
			// retrigger itself.
			drain(watcher.Events)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			splog.Warn("Watcher error: %v", err)
		}
	}
}

// IsWatched reports whether the event path names a watch-set file.
func IsWatched(eventPath string, watchSet []string) bool {
	base := filepath.Base(eventPath)
	for _, w := range watchSet {
		if base == filepath.Base(w) {
			return true
		}
	}
	return false
}

func drain(events chan fsnotify.Event) {
	for {
		select {
		case <-events:
		default:
			return
		}
	}
}
