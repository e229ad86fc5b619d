package git

import (
	"context"

	tserrors "tracksync.dev/tracksync/internal/errors"
)

// PullRebase fetches the remote branch and replays local commits on top of
// it, producing a linear history. Failure means the rebase hit a conflict or
// the remote was unreachable; either way the run cannot continue and manual
// resolution is required.
func PullRebase(ctx context.Context, remote, branch string) error {
	return pullRebase(ctx, defaultRunner, remote, branch)
}

func pullRebase(ctx context.Context, r *CommandRunner, remote, branch string) error {
	_, err := r.Run(ctx, "pull", "--rebase", remote, branch)
	if err != nil {
		return tserrors.NewPullFailedError(remote, branch, err)
	}
	return nil
}
