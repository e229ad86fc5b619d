package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tserrors "tracksync.dev/tracksync/internal/errors"
	"tracksync.dev/tracksync/internal/git"
	"tracksync.dev/tracksync/testhelpers"
)

func TestPullRebase(t *testing.T) {
	t.Run("brings in remote commits", func(t *testing.T) {
		scene, remoteDir := testhelpers.NewSceneWithRemote(t, nil)
		ctx := context.Background()

		// A second clone pushes a new commit to the shared remote.
		otherDir := filepath.Join(t.TempDir(), "other")
		other, err := testhelpers.NewClonedGitRepo(otherDir, remoteDir)
		require.NoError(t, err)
		require.NoError(t, other.CreateChangeAndCommit("cold_emails.json", "{\"emails\": []}\n", "add tracker"))
		require.NoError(t, other.PushBranch("origin", "main"))

		require.NoError(t, git.PullRebase(ctx, "origin", "main"))

		_, statErr := os.Stat(filepath.Join(scene.Dir, "cold_emails.json"))
		assert.NoError(t, statErr)
	})

	t.Run("local commits are replayed on top", func(t *testing.T) {
		scene, remoteDir := testhelpers.NewSceneWithRemote(t, nil)
		ctx := context.Background()

		otherDir := filepath.Join(t.TempDir(), "other")
		other, err := testhelpers.NewClonedGitRepo(otherDir, remoteDir)
		require.NoError(t, err)
		require.NoError(t, other.CreateChangeAndCommit("remote.txt", "remote\n", "remote commit"))
		require.NoError(t, other.PushBranch("origin", "main"))

		require.NoError(t, scene.Repo.CreateChangeAndCommit("local.txt", "local\n", "local commit"))

		require.NoError(t, git.PullRebase(ctx, "origin", "main"))

		messages, err := scene.Repo.ListCommitMessages()
		require.NoError(t, err)
		// Linear history with the local commit on top
		require.GreaterOrEqual(t, len(messages), 3)
		assert.Equal(t, "local commit", messages[0])
		assert.Equal(t, "remote commit", messages[1])
	})

	t.Run("conflicting histories fail with ErrPullFailed", func(t *testing.T) {
		scene, remoteDir := testhelpers.NewSceneWithRemote(t, nil)
		ctx := context.Background()

		otherDir := filepath.Join(t.TempDir(), "other")
		other, err := testhelpers.NewClonedGitRepo(otherDir, remoteDir)
		require.NoError(t, err)
		require.NoError(t, other.CreateChangeAndCommit("shared.txt", "theirs\n", "their change"))
		require.NoError(t, other.PushBranch("origin", "main"))

		require.NoError(t, scene.Repo.CreateChangeAndCommit("shared.txt", "ours\n", "our change"))

		err = git.PullRebase(ctx, "origin", "main")
		require.Error(t, err)
		assert.ErrorIs(t, err, tserrors.ErrPullFailed)

		// Leave the repository usable for the next assertion-free cleanup.
		_ = scene.Repo.RunGitCommand("rebase", "--abort")
	})
}

func TestPush(t *testing.T) {
	scene, remoteDir := testhelpers.NewSceneWithRemote(t, nil)
	ctx := context.Background()

	require.NoError(t, scene.Repo.CreateChangeAndCommit("job_applications.json", "{\"applications\": []}\n", "add tracker"))
	require.NoError(t, git.Push(ctx, "origin", "main"))

	sha, err := scene.Repo.GetCurrentSHA()
	require.NoError(t, err)

	remoteSHA, err := scene.Repo.RunGitCommandAndGetOutput("ls-remote", remoteDir, "refs/heads/main")
	require.NoError(t, err)
	assert.Contains(t, remoteSHA, sha)
}

func TestCommit(t *testing.T) {
	scene := testhelpers.NewScene(t, func(s *testhelpers.Scene) error {
		return s.Repo.CreateChangeAndCommit("README.md", "init\n", "initial commit")
	})
	ctx := context.Background()

	require.NoError(t, scene.Repo.WriteFile("cold_emails.json", "{\"emails\": []}\n"))
	require.NoError(t, git.StageAll(ctx))
	require.NoError(t, git.Commit(ctx, "Update tracker data"))

	messages, err := scene.Repo.ListCommitMessages()
	require.NoError(t, err)
	assert.Equal(t, "Update tracker data", messages[0])
}
