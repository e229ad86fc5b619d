package sync

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracksync.dev/tracksync/internal/config"
	tserrors "tracksync.dev/tracksync/internal/errors"
	"tracksync.dev/tracksync/internal/output"
	"tracksync.dev/tracksync/internal/runtime"
)

// mockRunner implements git.Runner with canned responses and a call log.
type mockRunner struct {
	calls []string

	changedPaths []string
	unstaged     bool
	untracked    bool
	staged       bool

	changedPathsErr error
	stashPushErr    error
	stashPopErr     error
	pullErr         error
	stageErr        error
	commitErr       error
	pushErr         error

	lastCommitMessage string
	lastStashMessage  string
}

func (m *mockRunner) ChangedPaths(_ context.Context) ([]string, error) {
	m.calls = append(m.calls, "status")
	return m.changedPaths, m.changedPathsErr
}

func (m *mockRunner) HasUnstagedChanges(_ context.Context) (bool, error) {
	m.calls = append(m.calls, "diff")
	return m.unstaged, nil
}

func (m *mockRunner) HasUntrackedFiles(_ context.Context) (bool, error) {
	m.calls = append(m.calls, "ls-files")
	return m.untracked, nil
}

func (m *mockRunner) HasStagedChanges(_ context.Context) (bool, error) {
	m.calls = append(m.calls, "diff --cached")
	return m.staged, nil
}

func (m *mockRunner) StashPush(_ context.Context, message string) (string, error) {
	m.calls = append(m.calls, "stash push")
	m.lastStashMessage = message
	return "", m.stashPushErr
}

func (m *mockRunner) StashPop(_ context.Context) error {
	m.calls = append(m.calls, "stash pop")
	return m.stashPopErr
}

func (m *mockRunner) PullRebase(_ context.Context, remote, branch string) error {
	m.calls = append(m.calls, "pull")
	if m.pullErr != nil {
		return tserrors.NewPullFailedError(remote, branch, m.pullErr)
	}
	return nil
}

func (m *mockRunner) Push(_ context.Context, _, _ string) error {
	m.calls = append(m.calls, "push")
	return m.pushErr
}

func (m *mockRunner) StageAll(_ context.Context) error {
	m.calls = append(m.calls, "add")
	return m.stageErr
}

func (m *mockRunner) Commit(_ context.Context, message string) error {
	m.calls = append(m.calls, "commit")
	m.lastCommitMessage = message
	return m.commitErr
}

func (m *mockRunner) CurrentBranch() (string, error) { return "main", nil }

func (m *mockRunner) called(name string) bool {
	for _, c := range m.calls {
		if c == name {
			return true
		}
	}
	return false
}

func newTestContext(t *testing.T, runner *mockRunner) (*runtime.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	splog, err := output.NewSplogWithConfig(&buf, "")
	require.NoError(t, err)
	return runtime.NewContext(context.Background(), runner, config.Default(), splog), &buf
}

func TestActionSkipsSyncWhenWatchSetUntouched(t *testing.T) {
	t.Run("unrelated changes commit without stash or pull", func(t *testing.T) {
		runner := &mockRunner{
			changedPaths: []string{"notes.md", "scratch/plan.txt"},
			staged:       true,
		}
		ctx, _ := newTestContext(t, runner)

		err := Action(ctx, Options{})
		require.NoError(t, err)

		assert.False(t, runner.called("stash push"))
		assert.False(t, runner.called("pull"))
		assert.True(t, runner.called("add"))
		assert.True(t, runner.called("commit"))
		assert.True(t, runner.called("push"))
	})

	t.Run("clean tree is a no-op with success exit", func(t *testing.T) {
		runner := &mockRunner{}
		ctx, buf := newTestContext(t, runner)

		err := Action(ctx, Options{})
		require.NoError(t, err)

		assert.Contains(t, buf.String(), "No changes to commit")
		for _, forbidden := range []string{"stash push", "pull", "commit", "push", "stash pop"} {
			assert.False(t, runner.called(forbidden), "unexpected call: %s", forbidden)
		}
	})
}

func TestActionSyncsWhenWatchedFileChanged(t *testing.T) {
	t.Run("pull runs exactly once per run", func(t *testing.T) {
		runner := &mockRunner{
			changedPaths: []string{"cold_emails.json"},
			staged:       true,
		}
		ctx, _ := newTestContext(t, runner)

		require.NoError(t, Action(ctx, Options{}))

		pulls := 0
		for _, c := range runner.calls {
			if c == "pull" {
				pulls++
			}
		}
		assert.Equal(t, 1, pulls)
	})

	t.Run("watched file in subdirectory still triggers sync", func(t *testing.T) {
		runner := &mockRunner{
			changedPaths: []string{"data/job_applications.json"},
			staged:       true,
		}
		ctx, _ := newTestContext(t, runner)

		require.NoError(t, Action(ctx, Options{}))
		assert.True(t, runner.called("pull"))
	})
}

func TestActionStashLifecycle(t *testing.T) {
	t.Run("stash created and restored when tree is dirty", func(t *testing.T) {
		runner := &mockRunner{
			changedPaths: []string{"job_applications.json"},
			unstaged:     true,
			staged:       true,
		}
		ctx, _ := newTestContext(t, runner)

		require.NoError(t, Action(ctx, Options{}))

		assert.True(t, runner.called("stash push"))
		assert.True(t, runner.called("stash pop"))
		assert.Equal(t, "Auto-stash before sync", runner.lastStashMessage)
	})

	t.Run("untracked-only tree still stashes before rebase", func(t *testing.T) {
		runner := &mockRunner{
			changedPaths: []string{"cold_emails.json"},
			untracked:    true,
			staged:       true,
		}
		ctx, _ := newTestContext(t, runner)

		require.NoError(t, Action(ctx, Options{}))

		assert.True(t, runner.called("stash push"))
		assert.True(t, runner.called("stash pop"))
	})

	t.Run("no stash when tree is clean of unstaged changes", func(t *testing.T) {
		runner := &mockRunner{
			changedPaths: []string{"job_applications.json"},
			staged:       true,
		}
		ctx, _ := newTestContext(t, runner)

		require.NoError(t, Action(ctx, Options{}))

		assert.False(t, runner.called("stash push"))
		assert.False(t, runner.called("stash pop"))
	})
}

func TestActionPullFailureIsFatal(t *testing.T) {
	runner := &mockRunner{
		changedPaths: []string{"cold_emails.json"},
		unstaged:     true,
		pullErr:      errors.New("CONFLICT (content): merge conflict"),
	}
	ctx, buf := newTestContext(t, runner)

	err := Action(ctx, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, tserrors.ErrPullFailed)

	var phaseErr *PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, PhaseSyncing, phaseErr.Phase)

	// Stash was created, but nothing after the failed pull may run.
	assert.True(t, runner.called("stash push"))
	assert.False(t, runner.called("stash pop"))
	assert.False(t, runner.called("add"))
	assert.False(t, runner.called("commit"))
	assert.False(t, runner.called("push"))
	assert.Contains(t, buf.String(), "[ERROR]")
}

func TestActionStashPopFailureAborts(t *testing.T) {
	runner := &mockRunner{
		changedPaths: []string{"cold_emails.json"},
		unstaged:     true,
		stashPopErr:  &tserrors.StashPopError{Err: errors.New("conflict")},
	}
	ctx, _ := newTestContext(t, runner)

	err := Action(ctx, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, tserrors.ErrStashPopConflict)
	assert.False(t, runner.called("commit"))
	assert.False(t, runner.called("push"))
}

func TestActionCommitAndPush(t *testing.T) {
	t.Run("nothing staged means no commit and no push", func(t *testing.T) {
		runner := &mockRunner{
			changedPaths: []string{"cold_emails.json"},
		}
		ctx, buf := newTestContext(t, runner)

		require.NoError(t, Action(ctx, Options{}))

		assert.True(t, runner.called("pull"))
		assert.True(t, runner.called("add"))
		assert.False(t, runner.called("commit"))
		assert.False(t, runner.called("push"))
		assert.Contains(t, buf.String(), "No changes to commit")
	})

	t.Run("uses supplied message", func(t *testing.T) {
		runner := &mockRunner{staged: true, changedPaths: []string{"notes.md"}}
		ctx, _ := newTestContext(t, runner)

		require.NoError(t, Action(ctx, Options{Message: "Add new applications"}))
		assert.Equal(t, "Add new applications", runner.lastCommitMessage)
	})

	t.Run("falls back to configured default message", func(t *testing.T) {
		runner := &mockRunner{staged: true, changedPaths: []string{"notes.md"}}
		ctx, _ := newTestContext(t, runner)

		require.NoError(t, Action(ctx, Options{}))
		assert.Equal(t, config.DefaultCommitMessage, runner.lastCommitMessage)
	})

	t.Run("push failure surfaces with its phase", func(t *testing.T) {
		runner := &mockRunner{staged: true, pushErr: errors.New("remote rejected")}
		ctx, _ := newTestContext(t, runner)

		err := Action(ctx, Options{})
		require.Error(t, err)

		var phaseErr *PhaseError
		require.ErrorAs(t, err, &phaseErr)
		assert.Equal(t, PhasePushing, phaseErr.Phase)
	})
}

func TestMatchWatchSet(t *testing.T) {
	watchSet := []string{"cold_emails.json", "job_applications.json"}

	t.Run("exact match", func(t *testing.T) {
		matched := MatchWatchSet([]string{"cold_emails.json", "other.txt"}, watchSet)
		assert.Equal(t, []string{"cold_emails.json"}, matched)
	})

	t.Run("base name match in subdirectory", func(t *testing.T) {
		matched := MatchWatchSet([]string{"trackers/job_applications.json"}, watchSet)
		assert.Equal(t, []string{"trackers/job_applications.json"}, matched)
	})

	t.Run("disjoint set matches nothing", func(t *testing.T) {
		matched := MatchWatchSet([]string{"README.md", "main.go"}, watchSet)
		assert.Empty(t, matched)
	})

	t.Run("similar names do not match", func(t *testing.T) {
		matched := MatchWatchSet([]string{"cold_emails.json.bak", "old_cold_emails.json"}, watchSet)
		assert.Empty(t, matched)
	})

	t.Run("similar names in subdirectories do not match", func(t *testing.T) {
		matched := MatchWatchSet([]string{"x/subdir_cold_emails.json", "trackers/cold_emails.json.old"}, watchSet)
		assert.Empty(t, matched)
	})
}
