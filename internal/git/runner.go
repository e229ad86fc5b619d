// Package git provides a wrapper around git commands and go-git for repository operations.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	tserrors "tracksync.dev/tracksync/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// defaultRunner is the global runner used by the package-level functions.
// It runs git in the process working directory.
var defaultRunner = &CommandRunner{}

// Run executes a git command with the given context and returns the output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, true, args...)
}

// RunRaw executes a git command and returns the raw output (no trimming)
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, false, args...)
}

// runInternal is the internal implementation that handles directory and trimming
func (r *CommandRunner) runInternal(ctx context.Context, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", tserrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", tserrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}

// Runner defines the interface for git operations used by the sync orchestrator.
// This allows the orchestrator to be used with both real git and mock implementations.
type Runner interface {
	// Working-tree inspection
	ChangedPaths(ctx context.Context) ([]string, error)
	HasUnstagedChanges(ctx context.Context) (bool, error)
	HasUntrackedFiles(ctx context.Context) (bool, error)
	HasStagedChanges(ctx context.Context) (bool, error)

	// Stash
	StashPush(ctx context.Context, message string) (string, error)
	StashPop(ctx context.Context) error

	// Remote synchronization
	PullRebase(ctx context.Context, remote, branch string) error
	Push(ctx context.Context, remote, branch string) error

	// Staging and committing
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error

	// Repository information
	CurrentBranch() (string, error)
}

// NewRealRunnerWithDir returns a standard implementation of Runner that calls
// the package-level git functions in a specific directory.
func NewRealRunnerWithDir(dir string) Runner {
	return &realRunner{runner: CommandRunner{workingDir: dir}}
}

// realRunner implements Runner by calling the actual git package functions
type realRunner struct {
	runner CommandRunner
}

func (r *realRunner) ChangedPaths(ctx context.Context) ([]string, error) {
	return changedPaths(ctx, &r.runner)
}

func (r *realRunner) HasUnstagedChanges(ctx context.Context) (bool, error) {
	return hasUnstagedChanges(ctx, &r.runner)
}

func (r *realRunner) HasUntrackedFiles(ctx context.Context) (bool, error) {
	return hasUntrackedFiles(ctx, &r.runner)
}

func (r *realRunner) HasStagedChanges(ctx context.Context) (bool, error) {
	return hasStagedChanges(ctx, &r.runner)
}

func (r *realRunner) StashPush(ctx context.Context, message string) (string, error) {
	return stashPush(ctx, &r.runner, message)
}

func (r *realRunner) StashPop(ctx context.Context) error {
	return stashPop(ctx, &r.runner)
}

func (r *realRunner) PullRebase(ctx context.Context, remote, branch string) error {
	return pullRebase(ctx, &r.runner, remote, branch)
}

func (r *realRunner) Push(ctx context.Context, remote, branch string) error {
	return push(ctx, &r.runner, remote, branch)
}

func (r *realRunner) StageAll(ctx context.Context) error {
	return stageAll(ctx, &r.runner)
}

func (r *realRunner) Commit(ctx context.Context, message string) error {
	return commit(ctx, &r.runner, message)
}

func (r *realRunner) CurrentBranch() (string, error) {
	return currentBranch(context.Background(), &r.runner)
}
