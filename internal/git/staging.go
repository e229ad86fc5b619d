package git

import (
	"context"
	"fmt"
	"strings"
)

// StageAll stages all changes including untracked files
func StageAll(ctx context.Context) error {
	return stageAll(ctx, defaultRunner)
}

func stageAll(ctx context.Context, r *CommandRunner) error {
	_, err := r.Run(ctx, "add", "-A")
	if err != nil {
		return fmt.Errorf("failed to stage all changes: %w", err)
	}
	return nil
}

// HasStagedChanges checks if the staged tree differs from the last commit
func HasStagedChanges(ctx context.Context) (bool, error) {
	return hasStagedChanges(ctx, defaultRunner)
}

func hasStagedChanges(ctx context.Context, r *CommandRunner) (bool, error) {
	output, err := r.Run(ctx, "diff", "--cached", "--shortstat")
	if err != nil {
		return false, fmt.Errorf("failed to check staged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUnstagedChanges checks if there are unstaged changes to tracked files
func HasUnstagedChanges(ctx context.Context) (bool, error) {
	return hasUnstagedChanges(ctx, defaultRunner)
}

func hasUnstagedChanges(ctx context.Context, r *CommandRunner) (bool, error) {
	// Use git diff to check for unstaged changes to tracked files
	// This is more reliable than parsing porcelain output which gets trimmed
	output, err := r.Run(ctx, "diff", "--name-only")
	if err != nil {
		return false, fmt.Errorf("failed to check unstaged changes: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// HasUntrackedFiles checks if there are untracked files
func HasUntrackedFiles(ctx context.Context) (bool, error) {
	return hasUntrackedFiles(ctx, defaultRunner)
}

func hasUntrackedFiles(ctx context.Context, r *CommandRunner) (bool, error) {
	output, err := r.Run(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return false, fmt.Errorf("failed to check untracked files: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}
