// Package cli wires the tracksync commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tracksync",
		Short: "Tracksync safely commits and publishes job-hunt tracker files",
		Long: `Tracksync sequences the git operations needed to publish changes to the
job-hunt tracker files: it detects tracker changes, synchronizes with the
remote (stash, pull --rebase, unstash), then stages, commits, and pushes.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}
