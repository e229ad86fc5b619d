// Package config provides repository configuration management,
// including reading and writing the tracksync configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the config file inside the .git directory.
const ConfigFileName = ".tracksync_config"

// Defaults used when no config file exists.
const (
	DefaultRemote        = "origin"
	DefaultBranch        = "main"
	DefaultCommitMessage = "Update tracker data"
)

// DefaultWatchSet returns the tracker files whose modification triggers
// pre-commit synchronization.
func DefaultWatchSet() []string {
	return []string{"job_applications.json", "cold_emails.json"}
}

// Config represents the repository configuration
type Config struct {
	Remote        string   `json:"remote,omitempty"`
	Branch        string   `json:"branch,omitempty"`
	CommitMessage string   `json:"commitMessage,omitempty"`
	WatchSet      []string `json:"watchSet,omitempty"`
	LogFile       string   `json:"logFile,omitempty"`
}

// Default returns a Config populated with the default values.
func Default() *Config {
	return &Config{
		Remote:        DefaultRemote,
		Branch:        DefaultBranch,
		CommitMessage: DefaultCommitMessage,
		WatchSet:      DefaultWatchSet(),
	}
}

func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ConfigFileName)
}

// Load reads the repository configuration. A missing file yields the
// defaults; a present file's empty fields are backfilled with defaults.
func Load(repoRoot string) (*Config, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if err != nil {
		return Default(), nil
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = DefaultCommitMessage
	}
	if len(cfg.WatchSet) == 0 {
		cfg.WatchSet = DefaultWatchSet()
	}

	return &cfg, nil
}

// Save writes the repository configuration.
func (c *Config) Save(repoRoot string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(configPath(repoRoot), data, 0600)
}

// IsInitialized returns true if a config file has been written for the repo.
func IsInitialized(repoRoot string) bool {
	_, err := os.Stat(configPath(repoRoot))
	return err == nil
}
