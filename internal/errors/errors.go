// Package errors provides sentinel errors and custom error types for the tracksync application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates the working directory is not inside a git repository
	ErrNotARepository = errors.New("not a git repository")

	// ErrPullFailed indicates that the pull --rebase against the remote failed
	ErrPullFailed = errors.New("pull failed")

	// ErrStashPopConflict indicates that restoring the auto-stash hit a conflict
	ErrStashPopConflict = errors.New("stash pop conflict")
)

// PullFailedError represents a failed pull --rebase. This is the one fatal,
// non-retried condition in a sync run: it requires manual conflict resolution.
type PullFailedError struct {
	Remote string
	Branch string
	Err    error
}

func (e *PullFailedError) Error() string {
	return fmt.Sprintf("failed to pull %s/%s with rebase: %v", e.Remote, e.Branch, e.Err)
}

func (e *PullFailedError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrPullFailed
func (e *PullFailedError) Is(target error) bool {
	return target == ErrPullFailed
}

// NewPullFailedError creates a new PullFailedError
func NewPullFailedError(remote, branch string, err error) *PullFailedError {
	return &PullFailedError{Remote: remote, Branch: branch, Err: err}
}

// StashPopError represents a conflict while re-applying the auto-stash after
// a successful pull. The stash entry itself is preserved by git.
type StashPopError struct {
	Err error
}

func (e *StashPopError) Error() string {
	return fmt.Sprintf("failed to restore stashed changes: %v", e.Err)
}

func (e *StashPopError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrStashPopConflict
func (e *StashPopError) Is(target error) bool {
	return target == ErrStashPopConflict
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
