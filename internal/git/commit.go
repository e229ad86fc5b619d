package git

import (
	"context"
	"fmt"
)

// Commit creates a commit from the staged tree with the given message.
func Commit(ctx context.Context, message string) error {
	return commit(ctx, defaultRunner, message)
}

func commit(ctx context.Context, r *CommandRunner, message string) error {
	_, err := r.Run(ctx, "commit", "-m", message)
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
