package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	syncaction "tracksync.dev/tracksync/internal/actions/sync"
	"tracksync.dev/tracksync/internal/runtime"
	"tracksync.dev/tracksync/internal/tracker"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tracker summaries and pending watched changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			splog := ctx.Splog

			branch, err := ctx.Runner.CurrentBranch()
			if err != nil {
				return err
			}
			splog.Info("On %s, syncing with %s/%s", branch, ctx.Config.Remote, ctx.Config.Branch)

			apps, err := tracker.LoadApplications(ctx.RepoRoot)
			if err != nil {
				return err
			}
			emails, err := tracker.LoadColdEmails(ctx.RepoRoot)
			if err != nil {
				return err
			}

			splog.Info("Job applications: %s", formatSummary(apps.Summarize()))
			if unknown := apps.UnknownStatuses(); len(unknown) > 0 {
				splog.Warn("Unrecognized application statuses: %s", strings.Join(unknown, ", "))
			}
			splog.Info("Cold emails: %s", formatSummary(emails.Summarize()))
			if unknown := emails.UnknownStatuses(); len(unknown) > 0 {
				splog.Warn("Unrecognized cold email statuses: %s", strings.Join(unknown, ", "))
			}

			changed, err := ctx.Runner.ChangedPaths(ctx.Context)
			if err != nil {
				return err
			}
			pending := syncaction.MatchWatchSet(changed, ctx.Config.WatchSet)
			if len(pending) == 0 {
				splog.Info("Watched files are clean.")
			} else {
				splog.Info("Watched files with pending changes: %s", strings.Join(pending, ", "))
			}
			return nil
		},
	}

	return cmd
}

func formatSummary(s tracker.Summary) string {
	if s.Total == 0 {
		return "none"
	}
	statuses := make([]string, 0, len(s.ByStatus))
	for status := range s.ByStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)

	parts := make([]string, 0, len(statuses))
	for _, status := range statuses {
		parts = append(parts, fmt.Sprintf("%s: %d", strings.ReplaceAll(status, "_", " "), s.ByStatus[status]))
	}
	return fmt.Sprintf("%d total (%s)", s.Total, strings.Join(parts, ", "))
}
