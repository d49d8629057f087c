// ABOUTME: CLI commands for first-run seeding, record rebuilds and resets.
// ABOUTME: Reset deletes all swims and settings and reseeds sample data.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetYes bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed sample data on first run",
	Long: `Seed a month of sample swims and default settings.

Every command seeds automatically on first run; init only reports whether
seeding happened now. Running it again changes nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()

		if seeded {
			color.Green("✓ Seeded sample data")
		} else {
			fmt.Fprintln(out, "Already initialized.")
		}
		fmt.Fprintf(out, "  Workouts: %d\n", len(store.Workouts(ctx)))
		fmt.Fprintf(out, "  Segments: %d\n", len(store.Segments(ctx)))
		fmt.Fprintf(out, "  Records:  %d\n", len(store.Records(ctx)))
		return nil
	},
}

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Rebuild records from segments",
	Long: `Rebuild the records book from every stored segment.

Records are rebuilt after each change anyway; use this if a previous run
was interrupted between saving segments and saving records.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		store.RecalculateRecords(ctx)
		color.Green("✓ Recalculated %d records", len(store.Records(ctx)))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and reseed sample swims",
	Long: `Delete every workout, segment, record and setting, then seed fresh
sample data as on first run.

This is a DESTRUCTIVE operation. Export first if you want a backup:

  swim export json -o backup.json
  swim reset`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()

		if !resetYes {
			fmt.Fprintln(out, "This will DELETE all swims and settings and seed sample data.")
			fmt.Fprint(out, "Continue? [y/N]: ")
			response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Canceled.")
				return nil
			}
		}

		if !store.ResetAll(ctx) {
			return fmt.Errorf("reset failed (run with --log-level debug for details)")
		}
		color.Green("✓ Reset complete")
		fmt.Fprintf(out, "  Segments: %d\n", len(store.Segments(ctx)))
		fmt.Fprintf(out, "  Records:  %d\n", len(store.Records(ctx)))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip confirmation prompt")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(recalcCmd)
	rootCmd.AddCommand(resetCmd)
}
