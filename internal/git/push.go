package git

import (
	"context"
	"fmt"
)

// Push publishes the current branch's commits to the remote branch.
func Push(ctx context.Context, remote, branch string) error {
	return push(ctx, defaultRunner, remote, branch)
}

func push(ctx context.Context, r *CommandRunner, remote, branch string) error {
	_, err := r.Run(ctx, "push", remote, branch)
	if err != nil {
		return fmt.Errorf("failed to push to %s/%s: %w", remote, branch, err)
	}
	return nil
}
