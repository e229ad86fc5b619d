package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"tracksync.dev/tracksync/internal/config"
	"tracksync.dev/tracksync/internal/git"
	"tracksync.dev/tracksync/internal/output"
)

// isInteractive checks if we're in an interactive terminal
func isInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var (
		remote  string
		branch  string
		message string
		watch   []string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the tracksync configuration for this repository",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repoRoot, err := git.GetRepoRoot()
			if err != nil {
				return err
			}

			cfg := config.Default()
			if remote != "" {
				cfg.Remote = remote
			}
			if branch != "" {
				cfg.Branch = branch
			}
			if message != "" {
				cfg.CommitMessage = message
			}
			if len(watch) > 0 {
				cfg.WatchSet = watch
			}

			if !yes && isInteractive() {
				if err := promptConfig(cfg); err != nil {
					return err
				}
			}

			if err := cfg.Save(repoRoot); err != nil {
				return err
			}

			splog := output.NewSplog()
			splog.Success("Wrote %s (remote %s, branch %s, watching %s)",
				config.ConfigFileName, cfg.Remote, cfg.Branch, strings.Join(cfg.WatchSet, ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "Remote to pull from and push to")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch to pull from and push to")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Default commit message")
	cmd.Flags().StringSliceVar(&watch, "watch", nil, "Tracker files whose changes trigger synchronization")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept defaults without prompting")

	return cmd
}

// promptConfig asks for each setting, prefilled with the current values.
func promptConfig(cfg *config.Config) error {
	if err := survey.AskOne(&survey.Input{
		Message: "Remote to sync with",
		Default: cfg.Remote,
	}, &cfg.Remote); err != nil {
		return fmt.Errorf("canceled")
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Branch to sync with",
		Default: cfg.Branch,
	}, &cfg.Branch); err != nil {
		return fmt.Errorf("canceled")
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Default commit message",
		Default: cfg.CommitMessage,
	}, &cfg.CommitMessage); err != nil {
		return fmt.Errorf("canceled")
	}

	watchList := strings.Join(cfg.WatchSet, ", ")
	if err := survey.AskOne(&survey.Input{
		Message: "Watched tracker files (comma-separated)",
		Default: watchList,
	}, &watchList); err != nil {
		return fmt.Errorf("canceled")
	}

	cfg.WatchSet = cfg.WatchSet[:0]
	for _, entry := range strings.Split(watchList, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			cfg.WatchSet = append(cfg.WatchSet, entry)
		}
	}
	if len(cfg.WatchSet) == 0 {
		cfg.WatchSet = config.DefaultWatchSet()
	}

	return nil
}
