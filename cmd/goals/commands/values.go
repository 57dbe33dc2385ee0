// ABOUTME: CLI command to list and add personal values
// ABOUTME: Values order by priority; lower numbers are more important
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

var (
	valuesLevel    string
	valuesJSON     bool
	valueAddLevel  string
	valueAddRank   int
	valueAddDomain string
)

// NewValuesCmd creates the values command group
func NewValuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values",
		Short: "List personal values",
		Long: `List personal values ordered by priority.

Lower priority numbers are more important; 1 is the highest.

Examples:
  goals values
  goals values --level major
  goals values add "Health" --level major --priority 10`,
		RunE: runValues,
	}

	cmd.Flags().StringVar(&valuesLevel, "level", "", "Filter by level: general, major, highest_order, life_area")
	cmd.Flags().BoolVar(&valuesJSON, "json", false, "Output as JSON")

	addCmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a personal value",
		Args:  cobra.ExactArgs(1),
		RunE:  runValuesAdd,
	}
	addCmd.Flags().StringVar(&valueAddLevel, "level", "general", "Level: general, major, highest_order, life_area")
	addCmd.Flags().IntVar(&valueAddRank, "priority", models.DefaultPriority, "Priority (1 is most important)")
	addCmd.Flags().StringVar(&valueAddDomain, "domain", "", "Life domain (e.g. health, relationships)")
	cmd.AddCommand(addCmd)

	return cmd
}

func runValues(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var level *models.ValueLevel
	if valuesLevel != "" {
		parsed, err := models.ParseValueLevel(valuesLevel)
		if err != nil {
			return err
		}
		level = &parsed
	}

	values, err := store.Values.List(level)
	if err != nil {
		return fmt.Errorf("listing values: %w", err)
	}
	if valuesJSON {
		return printJSON(cmd, values)
	}

	if len(values) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No values yet. Add one with: goals values add")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tLEVEL\tPRIORITY")
	for _, v := range values {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", v.ID, v.Title, v.Level, v.Priority)
	}
	return w.Flush()
}

func runValuesAdd(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	level, err := models.ParseValueLevel(valueAddLevel)
	if err != nil {
		return err
	}

	value := &models.PersonalValue{
		Title:      args[0],
		Level:      level,
		Priority:   valueAddRank,
		LifeDomain: valueAddDomain,
	}
	if err := store.Values.Create(value); err != nil {
		return fmt.Errorf("creating value: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added value %d: %s (%s, priority %d)\n",
			value.ID, value.Title, value.Level, value.Priority)
	}
	return nil
}
