// Package sync implements the sync-and-commit run: detect watched changes,
// synchronize with the remote, then stage, commit, and push.
package sync

import (
	"fmt"
	"path"
	"strings"

	"tracksync.dev/tracksync/internal/runtime"
)

// autoStashMessage names the stash entry created before pulling.
const autoStashMessage = "Auto-stash before sync"

// Options contains options for the sync command
type Options struct {
	// Message overrides the configured commit message when non-empty.
	Message string
}

// Phase identifies where in the run an error occurred.
type Phase int

// Run phases, in execution order.
const (
	PhaseIdle Phase = iota
	PhaseDetecting
	PhaseSyncing
	PhaseStaging
	PhaseCommitting
	PhasePushing
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDetecting:
		return "detecting"
	case PhaseSyncing:
		return "syncing"
	case PhaseStaging:
		return "staging"
	case PhaseCommitting:
		return "committing"
	case PhasePushing:
		return "pushing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// PhaseError wraps an error with the phase it occurred in.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("sync failed while %s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Action performs the sync-and-commit run. Every external git call is a
// fallible step; the only specially-reported failure is the pull, which is
// fatal and requires manual conflict resolution.
func Action(ctx *runtime.Context, opts Options) error {
	gctx := ctx.Context
	splog := ctx.Splog
	runner := ctx.Runner
	cfg := ctx.Config

	message := opts.Message
	if message == "" {
		message = cfg.CommitMessage
	}

	// Detect: decide whether the watched trackers changed.
	changed, err := runner.ChangedPaths(gctx)
	if err != nil {
		return &PhaseError{Phase: PhaseDetecting, Err: err}
	}
	watched := MatchWatchSet(changed, cfg.WatchSet)

	if len(watched) > 0 {
		splog.Info("Tracker changes detected: %s", strings.Join(watched, ", "))

		if err := synchronize(ctx); err != nil {
			return err
		}
	} else {
		splog.Info("No tracker changes, skipping sync.")
	}

	// Stage everything: modified, new, and deleted files.
	if err := runner.StageAll(gctx); err != nil {
		return &PhaseError{Phase: PhaseStaging, Err: err}
	}

	staged, err := runner.HasStagedChanges(gctx)
	if err != nil {
		return &PhaseError{Phase: PhaseStaging, Err: err}
	}
	if !staged {
		splog.Info("No changes to commit.")
		return nil
	}

	splog.Commit("Committing: %s", message)
	if err := runner.Commit(gctx, message); err != nil {
		return &PhaseError{Phase: PhaseCommitting, Err: err}
	}

	splog.Push("Pushing to %s/%s...", cfg.Remote, cfg.Branch)
	if err := runner.Push(gctx, cfg.Remote, cfg.Branch); err != nil {
		return &PhaseError{Phase: PhasePushing, Err: err}
	}

	splog.Success("Tracker data committed and pushed.")
	return nil
}

// synchronize brings the local branch up to date with the remote:
// stash if dirty, pull with rebase, restore the stash.
func synchronize(ctx *runtime.Context) error {
	gctx := ctx.Context
	splog := ctx.Splog
	runner := ctx.Runner
	cfg := ctx.Config

	dirty, err := runner.HasUnstagedChanges(gctx)
	if err != nil {
		return &PhaseError{Phase: PhaseSyncing, Err: err}
	}
	if !dirty {
		// A brand-new tracker file is untracked only, but still needs
		// stashing before the rebase.
		dirty, err = runner.HasUntrackedFiles(gctx)
		if err != nil {
			return &PhaseError{Phase: PhaseSyncing, Err: err}
		}
	}

	if dirty {
		splog.Stash("Stashing uncommitted changes...")
		if _, err := runner.StashPush(gctx, autoStashMessage); err != nil {
			return &PhaseError{Phase: PhaseSyncing, Err: err}
		}
	}

	splog.Pull("Pulling %s/%s with rebase...", cfg.Remote, cfg.Branch)
	if err := runner.PullRebase(gctx, cfg.Remote, cfg.Branch); err != nil {
		splog.Error("Pull failed, resolve conflicts manually: %v", err)
		return &PhaseError{Phase: PhaseSyncing, Err: err}
	}

	if dirty {
		splog.Stash("Restoring stashed changes...")
		if err := runner.StashPop(gctx); err != nil {
			return &PhaseError{Phase: PhaseSyncing, Err: err}
		}
	}

	return nil
}

// MatchWatchSet returns the changed paths that belong to the watch-set.
// Watch-set entries match either the full repo-relative path or the bare
// file name, so trackers kept in a subdirectory are still detected.
func MatchWatchSet(changed, watchSet []string) []string {
	set := make(map[string]struct{}, len(watchSet))
	for _, w := range watchSet {
		set[path.Clean(strings.TrimPrefix(w, "./"))] = struct{}{}
	}

	var matched []string
	for _, p := range changed {
		clean := path.Clean(p)
		if _, ok := set[clean]; ok {
			matched = append(matched, clean)
			continue
		}
		if _, ok := set[path.Base(clean)]; ok {
			matched = append(matched, clean)
		}
	}
	return matched
}
