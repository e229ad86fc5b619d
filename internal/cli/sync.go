package cli

import (
	"github.com/spf13/cobra"

	syncaction "tracksync.dev/tracksync/internal/actions/sync"
	"tracksync.dev/tracksync/internal/runtime"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "sync [message]",
		Short: "Sync with the remote and commit tracker changes",
		Long: `Sync with the remote and commit tracker changes.

If a watched tracker file changed, the working tree is stashed when dirty,
the configured branch is pulled with rebase, and the stash is restored.
All pending changes are then staged, committed, and pushed. A failed pull
is fatal and leaves the repository for manual conflict resolution.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) > 0 {
				message = args[0]
			}

			return syncaction.Action(ctx, syncaction.Options{Message: message})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message (default from config)")

	return cmd
}
