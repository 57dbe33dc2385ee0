// ABOUTME: CLI command to list goals
// ABOUTME: Shows goals in target-date order, optionally with full relationship graphs
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/willbda/ten-week-goal-app-sub004/internal/storage/sqlite"
)

var (
	listGraphs bool
	listJSON   bool
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		Long: `List goals ordered by target date, soonest first, undated goals last.

Examples:
  goals list
  goals list --graphs
  goals list --json`,
		RunE: runList,
	}

	cmd.Flags().BoolVar(&listGraphs, "graphs", false, "Include measure targets, value alignments, and term assignments")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if listGraphs {
		graphs, err := store.FetchGoalGraphs(sqlite.GraphFilter{})
		if err != nil {
			return fmt.Errorf("fetching goal graphs: %w", err)
		}
		if listJSON {
			return printJSON(cmd, graphs)
		}

		for _, g := range graphs {
			fmt.Fprintf(cmd.OutOrStdout(), "\n[%d] %s\n", g.Goal.ID, g.Goal.Title)
			if g.Goal.TargetDate != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "  Target date: %s\n", g.Goal.TargetDate.Format("2006-01-02"))
			}
			for _, t := range g.MeasureTargets {
				fmt.Fprintf(cmd.OutOrStdout(), "  Target: %g %s\n", t.TargetValue, t.Measure.Unit)
			}
			for _, a := range g.ValueAlignments {
				fmt.Fprintf(cmd.OutOrStdout(), "  Aligns with: %s\n", a.Value.Title)
			}
			if g.TermAssignment != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "  Term: %d\n", g.TermAssignment.Term.TermNumber)
			}
		}
		return nil
	}

	goals, err := store.Goals.List()
	if err != nil {
		return fmt.Errorf("listing goals: %w", err)
	}
	if listJSON {
		return printJSON(cmd, goals)
	}

	if len(goals) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No goals yet. Create one with: goals add")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTARGET DATE")
	for _, g := range goals {
		target := "-"
		if g.TargetDate != nil {
			target = g.TargetDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", g.ID, g.Title, target)
	}
	return w.Flush()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
