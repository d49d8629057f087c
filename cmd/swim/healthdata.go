// ABOUTME: CLI commands for the Apple Health integration.
// ABOUTME: Reports availability, requests access and imports swims.
package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/swimbook/internal/healthdata"
	"github.com/spf13/cobra"
)

var (
	healthSince string
	healthFile  string
)

// newHealthSource is swapped in tests.
var newHealthSource = func() healthdata.Source {
	return healthdata.NewService(healthdata.CurrentPlatform(), store, logger)
}

var healthdataCmd = &cobra.Command{
	Use:     "healthdata",
	Aliases: []string{"health"},
	Short:   "Import swims from Apple Health",
	Long: `Import pool swims from Apple Health (HealthKit).

HealthKit is only reachable from a native iOS build. On other platforms
these commands report why the integration is unavailable.

COMMANDS:

  status      Show availability, authorization and last sync
  authorize   Request access to swimming workouts
  sync        Import swims since the last sync (or --since)

Swims exported from a phone as JSON lap samples can be imported anywhere:

  swim healthdata sync --file laps.json

Enable the integration first:

  swim settings set --health-data`,
}

var healthdataStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show health data status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()
		status := newHealthSource().Status(ctx)

		if status.IsAvailable {
			color.New(color.FgGreen).Fprintln(out, "✓ Available")
		} else {
			color.New(color.FgYellow).Fprintf(out, "✗ Not available: %s\n", status.ErrorMessage)
		}
		fmt.Fprintf(out, "Authorized: %t\n", status.IsAuthorized)
		fmt.Fprintf(out, "Enabled:    %t\n", store.Settings(ctx).UseHealthData)
		fmt.Fprintf(out, "Last sync:  %s\n", lastSync(store.Settings(ctx)))

		if !status.IsAvailable {
			fmt.Fprintln(out, "\nRequired permissions:")
			fmt.Fprintf(out, "  %s\n", strings.Join(healthdata.RequiredPermissions(), "\n  "))
			fmt.Fprintln(out)
			fmt.Fprintln(out, healthdata.NativeBuildInstructions())
		}
		return nil
	},
}

var healthdataAuthorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Request access to health data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		src := newHealthSource()
		if !src.RequestAuthorization(cmdContext(cmd)) {
			status := src.Status(cmdContext(cmd))
			return fmt.Errorf("authorization not granted: %s", status.ErrorMessage)
		}
		color.Green("✓ Health data access granted")
		return nil
	},
}

var healthdataSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import swims from health data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()

		until := time.Now()
		since := until.AddDate(0, -1, 0)
		if last := store.Settings(ctx).LastHealthDataSync; last != nil {
			since = *last
		}
		if healthFile != "" {
			// Files are imported whole; known IDs are skipped.
			since = time.Time{}
		}
		if healthSince != "" {
			t, err := time.ParseInLocation("2006-01-02", healthSince, location)
			if err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", healthSince)
			}
			since = t
		}

		src := newHealthSource()
		if healthFile != "" {
			src = healthdata.NewFileSource(healthFile)
		}

		n, err := healthdata.Sync(ctx, src, store, since, until)
		switch {
		case errors.Is(err, healthdata.ErrDisabled):
			return fmt.Errorf("%w (enable with 'swim settings set --health-data')", err)
		case err != nil:
			return err
		}

		if n == 0 {
			fmt.Fprintln(out, "No new swims.")
			return nil
		}
		color.Green("✓ Imported %d segments", n)
		return nil
	},
}

func init() {
	healthdataSyncCmd.Flags().StringVar(&healthSince, "since", "", "import swims since date (YYYY-MM-DD)")
	healthdataSyncCmd.Flags().StringVar(&healthFile, "file", "", "import from a JSON file of exported lap samples")

	healthdataCmd.AddCommand(healthdataStatusCmd)
	healthdataCmd.AddCommand(healthdataAuthorizeCmd)
	healthdataCmd.AddCommand(healthdataSyncCmd)
	rootCmd.AddCommand(healthdataCmd)
}
