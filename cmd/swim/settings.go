// ABOUTME: CLI commands for viewing and changing user settings.
// ABOUTME: Only flags that are given are changed.
package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/storage"
	"github.com/spf13/cobra"
)

var (
	setName        string
	setAvatar      int
	setTheme       string
	setShowUnknown bool
	setHealthData  bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View or change settings",
	Long: `View or change your settings.

COMMANDS:

  show    Print current settings
  set     Change one or more settings

EXAMPLES:

  swim settings show
  swim settings set --name "Jana" --avatar 2
  swim settings set --theme dark --show-unknown=false`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printSettings(cmd, store.Settings(cmdContext(cmd)))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Long: `Change settings. Only the flags you pass are changed.

  --name           Display name on the records book
  --avatar         Avatar number 0-5
  --theme          light, dark, or system
  --show-unknown   Show records with unknown stroke style
  --health-data    Enable importing swims from Apple Health`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		s := store.Settings(ctx)

		flags := cmd.Flags()
		if flags.Changed("name") {
			s.DisplayName = setName
		}
		if flags.Changed("avatar") {
			s.AvatarIndex = setAvatar
		}
		if flags.Changed("theme") {
			mode, err := models.ParseThemeMode(setTheme)
			if err != nil {
				return err
			}
			s.ThemeMode = mode
		}
		if flags.Changed("show-unknown") {
			s.ShowUnknownRecords = setShowUnknown
		}
		if flags.Changed("health-data") {
			s.UseHealthData = setHealthData
		}

		if err := store.SaveSettings(ctx, s); err != nil {
			if errors.Is(err, storage.ErrValidation) {
				return fmt.Errorf("invalid settings: %w", err)
			}
			return err
		}

		color.Green("✓ Settings saved")
		printSettings(cmd, store.Settings(ctx))
		return nil
	},
}

func printSettings(cmd *cobra.Command, s models.Settings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:          %s\n", s.DisplayName)
	fmt.Fprintf(out, "Avatar:        %d\n", s.AvatarIndex)
	fmt.Fprintf(out, "Theme:         %s\n", s.ThemeMode)
	fmt.Fprintf(out, "Show unknown:  %t\n", s.ShowUnknownRecords)
	fmt.Fprintf(out, "Health data:   %t\n", s.UseHealthData)
	fmt.Fprintf(out, "Last sync:     %s\n", lastSync(s))
}

func lastSync(s models.Settings) string {
	if s.LastHealthDataSync == nil {
		return "never"
	}
	return humanize.Time(*s.LastHealthDataSync)
}

func init() {
	settingsSetCmd.Flags().StringVar(&setName, "name", "", "display name")
	settingsSetCmd.Flags().IntVar(&setAvatar, "avatar", 0, "avatar number (0-5)")
	settingsSetCmd.Flags().StringVar(&setTheme, "theme", "", "theme mode (light, dark, system)")
	settingsSetCmd.Flags().BoolVar(&setShowUnknown, "show-unknown", true, "show unknown stroke records")
	settingsSetCmd.Flags().BoolVar(&setHealthData, "health-data", false, "enable health data import")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
