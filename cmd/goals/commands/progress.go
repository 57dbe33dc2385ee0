// ABOUTME: CLI command to show progress toward goal targets
// ABOUTME: One row per goal measure target with totals, percentages, and days remaining
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

var progressJSON bool

// NewProgressCmd creates the progress command
func NewProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show progress toward goal targets",
		Long: `Show progress toward every measurable goal target.

Logged actions count toward a target when their measurement uses
the same unit. Goals without targets do not appear.`,
		RunE: runProgress,
	}

	cmd.Flags().BoolVar(&progressJSON, "json", false, "Output as JSON")

	return cmd
}

func runProgress(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rows, err := store.GoalProgress()
	if err != nil {
		return fmt.Errorf("computing progress: %w", err)
	}
	if progressJSON {
		return printJSON(cmd, rows)
	}

	if len(rows) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No measurable targets yet. Add one with: goals add --unit --target")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GOAL\tPROGRESS\tPERCENT\tDAYS LEFT\tSTATUS")
	for _, r := range rows {
		daysLeft := "-"
		if r.DaysRemaining != nil {
			daysLeft = fmt.Sprintf("%d", *r.DaysRemaining)
		}
		fmt.Fprintf(w, "%s\t%g / %g %s\t%.1f%%\t%s\t%s\n",
			r.GoalTitle, r.CurrentProgress, r.TargetValue, r.Unit, r.PercentComplete, daysLeft, displayStatus(&r))
	}
	return w.Flush()
}

// displayStatus is a presentation-only classification of the raw progress
// numbers; the storage layer deliberately does not compute it.
func displayStatus(r *models.ProgressRow) string {
	switch {
	case r.IsComplete():
		return "complete"
	case r.DaysRemaining != nil && *r.DaysRemaining < 0:
		return "overdue"
	case r.CurrentProgress == 0:
		return "not started"
	default:
		return "in progress"
	}
}
