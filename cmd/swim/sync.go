// ABOUTME: CLI commands for Charm Cloud sync.
// ABOUTME: Supports link, status, now, and reset with the charm backend.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/swimbook/internal/kv"
	"github.com/spf13/cobra"
)

var syncResetYes bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync swim data across devices",
	Long: `Sync swim data across devices using Charm Cloud.

Requires the charm backend (--backend charm or SWIM_BACKEND=charm).
Your data is E2E encrypted with your SSH key before upload.

COMMANDS:

  link        Link this device to your Charm account
  status      Show sync status and account info
  now         Sync immediately
  reset       Replace local data with the cloud copy (destructive)

Data syncs automatically after each change.`,
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = os.Stdout
		charmCmd.Stderr = os.Stderr

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}

		color.Green("\n✓ Device linked to Charm")
		if c, err := charmBackend(); err == nil {
			if err := c.Sync(); err != nil {
				color.Yellow("⚠ Initial sync failed: %v", err)
			} else {
				color.Green("✓ Initial sync complete")
			}
		}
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()

		c, err := charmBackend()
		if err != nil {
			return err
		}

		id, err := c.ID()
		if err != nil {
			color.New(color.FgYellow).Fprintln(out, "Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'swim sync link' to connect to Charm.")
			return nil
		}

		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Server:  ", os.Getenv("CHARM_HOST"))
		if c.IsReadOnly() {
			color.New(color.FgYellow).Fprintln(out, "⚠ Read-only: another process holds the database (MCP server?)")
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Workouts: %d\n", len(store.Workouts(ctx)))
		fmt.Fprintf(out, "  Segments: %d\n", len(store.Segments(ctx)))
		fmt.Fprintf(out, "  Records:  %d\n", len(store.Records(ctx)))
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync immediately",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := charmBackend()
		if err != nil {
			return err
		}
		if err := c.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		color.Green("✓ Synced")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	Long: `Delete all local data and restore from Charm Cloud.

This is a destructive operation. All local changes not yet synced are lost.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		c, err := charmBackend()
		if err != nil {
			return err
		}

		if !syncResetYes {
			fmt.Fprintln(out, "This will DELETE all local swim data and restore from cloud.")
			fmt.Fprint(out, "Continue? [y/N]: ")
			response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Canceled.")
				return nil
			}
		}

		if err := c.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		color.Green("✓ Local data reset and restored from cloud")
		return nil
	},
}

func charmBackend() (*kv.Charm, error) {
	if store == nil {
		return nil, fmt.Errorf("storage not open")
	}
	c, ok := store.Backend().(*kv.Charm)
	if !ok {
		return nil, fmt.Errorf("sync requires the charm backend (current: %s); use --backend charm", cfg.GetBackend())
	}
	return c, nil
}

func init() {
	syncResetCmd.Flags().BoolVarP(&syncResetYes, "yes", "y", false, "skip confirmation prompt")

	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncResetCmd)
	rootCmd.AddCommand(syncCmd)
}
