package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	watchaction "tracksync.dev/tracksync/internal/actions/watch"
	"tracksync.dev/tracksync/internal/runtime"
)

// newWatchCmd creates the watch command
func newWatchCmd() *cobra.Command {
	var (
		debounce time.Duration
		message  string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the tracker files and sync on every change",
		Long: `Watch the repository for tracker file changes and run a sync-and-commit
pass after each burst of changes. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ctx, err := runtime.GetContext(sigCtx)
			if err != nil {
				return err
			}

			return watchaction.Action(ctx, watchaction.Options{
				Debounce: debounce,
				Message:  message,
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watchaction.DefaultDebounce, "Quiet period before a sync run starts")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message (default from config)")

	return cmd
}
