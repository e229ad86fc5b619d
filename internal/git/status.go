package git

import (
	"context"
	"fmt"
	"strings"
)

// ChangedPaths returns the paths of all modified, staged, and untracked files
// reported by git status, relative to the repository root.
func ChangedPaths(ctx context.Context) ([]string, error) {
	return changedPaths(ctx, defaultRunner)
}

func changedPaths(ctx context.Context, r *CommandRunner) ([]string, error) {
	output, err := r.RunRaw(ctx, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return parsePorcelainStatus(output), nil
}

// parsePorcelainStatus extracts file paths from `git status --porcelain` output.
// Rename entries ("R  old -> new") report the new path.
func parsePorcelainStatus(output string) []string {
	paths := []string{}
	for _, line := range strings.Split(output, "\n") {
		// Porcelain v1 lines are "XY <path>"; anything shorter is noise.
		if len(line) < 4 {
			continue
		}
		entry := line[3:]
		if idx := strings.Index(entry, " -> "); idx != -1 {
			entry = entry[idx+4:]
		}
		entry = unquotePath(entry)
		if entry != "" {
			paths = append(paths, entry)
		}
	}
	return paths
}

// unquotePath strips the double quotes git adds around paths with special
// characters. Escape sequences inside are left as-is; the watch-set only
// contains plain ASCII names.
func unquotePath(path string) string {
	if len(path) >= 2 && strings.HasPrefix(path, `"`) && strings.HasSuffix(path, `"`) {
		return path[1 : len(path)-1]
	}
	return path
}

// CurrentBranch returns the name of the currently checked-out branch.
func CurrentBranch() (string, error) {
	return currentBranch(context.Background(), defaultRunner)
}

func currentBranch(ctx context.Context, r *CommandRunner) (string, error) {
	output, err := r.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return output, nil
}
