package git

import (
	"context"
	"fmt"

	tserrors "tracksync.dev/tracksync/internal/errors"
)

// StashPush pushes current changes, including untracked files, to the stash
func StashPush(ctx context.Context, message string) (string, error) {
	return stashPush(ctx, defaultRunner, message)
}

func stashPush(ctx context.Context, r *CommandRunner, message string) (string, error) {
	args := []string{"stash", "push", "-u"}
	if message != "" {
		args = append(args, "-m", message)
	}
	output, err := r.Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("stash push failed: %w", err)
	}
	return output, nil
}

// StashPop pops the most recent stash. A conflict during the pop leaves the
// stash entry in place; git reports it on stderr and we surface it as a
// StashPopError.
func StashPop(ctx context.Context) error {
	return stashPop(ctx, defaultRunner)
}

func stashPop(ctx context.Context, r *CommandRunner) error {
	_, err := r.Run(ctx, "stash", "pop")
	if err != nil {
		return &tserrors.StashPopError{Err: err}
	}
	return nil
}
