// Package runtime provides a context type that holds the git runner, config,
// and logger for use throughout the application. This avoids passing multiple
// parameters and lets tests substitute a mock collaborator.
package runtime

import (
	"context"
	"os"

	"tracksync.dev/tracksync/internal/config"
	"tracksync.dev/tracksync/internal/git"
	"tracksync.dev/tracksync/internal/output"
)

// Context provides access to the git runner, config, and output for commands
type Context struct {
	Context  context.Context
	Runner   git.Runner
	Splog    *output.Splog
	Config   *config.Config
	RepoRoot string
}

// NewContext creates a context with the given runner and config. Used by
// tests to inject a mock runner and buffer-backed logger.
func NewContext(ctx context.Context, runner git.Runner, cfg *config.Config, splog *output.Splog) *Context {
	return &Context{
		Context: ctx,
		Runner:  runner,
		Splog:   splog,
		Config:  cfg,
	}
}

// GetContext builds the real runtime context: it locates the enclosing
// repository, loads its config, and wires a git runner rooted at it.
func GetContext(ctx context.Context) (*Context, error) {
	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}

	splog := output.NewSplog()
	if cfg.LogFile != "" {
		if s, err := output.NewSplogWithConfig(os.Stdout, cfg.LogFile); err == nil {
			splog = s
		}
	}
	if !config.IsInitialized(repoRoot) {
		splog.Debug("no repo config found, using defaults (run 'tracksync init' to customize)")
	}

	return &Context{
		Context:  ctx,
		Runner:   git.NewRealRunnerWithDir(repoRoot),
		Splog:    splog,
		Config:   cfg,
		RepoRoot: repoRoot,
	}, nil
}
