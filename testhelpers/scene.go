package testhelpers

import (
	"os"
	"testing"
)

// Scene represents a test scene with a temporary directory and Git repository.
type Scene struct {
	Dir    string
	Repo   *GitRepo
	oldDir string
}

// SceneSetup is a function type for setting up a scene.
type SceneSetup func(*Scene) error

// NewScene creates a new test scene with a temporary directory and Git repository.
// It chdirs into the repository and automatically restores and cleans up via t.Cleanup().
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tracksync-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:    tmpDir,
		Repo:   repo,
		oldDir: oldDir,
	}

	if err := os.Chdir(tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to change directory: %v", err)
	}

	if setup != nil {
		if err := setup(scene); err != nil {
			os.Chdir(oldDir)
			os.RemoveAll(tmpDir)
			t.Fatalf("Setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(tmpDir)
		}
	})

	return scene
}

// NewSceneWithRemote creates a scene whose repository has an initial commit
// pushed to a bare "origin" remote, so pull and push operations work.
func NewSceneWithRemote(t *testing.T, setup SceneSetup) (*Scene, string) {
	t.Helper()

	var remoteDir string
	scene := NewScene(t, func(s *Scene) error {
		if err := s.Repo.CreateChangeAndCommit("README.md", "trackers\n", "initial commit"); err != nil {
			return err
		}
		dir, err := s.Repo.CreateBareRemote("origin")
		if err != nil {
			return err
		}
		remoteDir = dir
		if err := s.Repo.PushBranch("origin", "main"); err != nil {
			return err
		}
		if setup != nil {
			return setup(s)
		}
		return nil
	})

	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(remoteDir)
		}
	})

	return scene, remoteDir
}
