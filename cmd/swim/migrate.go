// ABOUTME: CLI command for migrating swim data between storage backends.
// ABOUTME: Copies every stored document from one backend to another.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/swimbook/internal/config"
	"github.com/harperreed/swimbook/internal/kv"
	"github.com/harperreed/swimbook/internal/logging"
	"github.com/harperreed/swimbook/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy all swim data from one storage backend to another.

BACKENDS:

  badger   Local Badger database in <data-dir>/badger (default)
  sqlite   Local SQLite database at <data-dir>/swim.db
  charm    Charm Cloud KV with E2E encrypted sync

IMPORTANT:

  - The destination is not overwritten if it already holds data,
    unless --force is given
  - Run with --dry-run first to see what would be copied
  - After migrating, set 'backend' in config or SWIM_BACKEND

EXAMPLES:

  swim migrate --from badger --to sqlite --dry-run
  swim migrate --from badger --to charm`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()

		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %q", migrateFrom)
		}

		base, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := logging.NewLogger(base.LogLevel)
		if err != nil {
			return err
		}

		src, err := openBackend(base, migrateFrom, log)
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer src.Close()

		dst, err := openBackend(base, migrateTo, log)
		if err != nil {
			return fmt.Errorf("open destination: %w", err)
		}
		defer dst.Close()

		if !migrateForce {
			if _, err := dst.Get(ctx, storage.KeyInitialized); err == nil {
				return fmt.Errorf("destination %s already holds swim data (use --force to overwrite)", migrateTo)
			}
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Fprintln(out)
		}

		// Push to Charm Cloud once at the end instead of after every document.
		cloud, toCharm := dst.(*kv.Charm)
		if toCharm {
			cloud.SetAutoSync(false)
		}

		summary, err := storage.MigrateData(ctx, src, dst, migrateDryRun)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		if toCharm && !migrateDryRun {
			if err := cloud.Sync(); err != nil {
				color.Yellow("⚠ Copied locally but sync failed: %v (run 'swim sync now')", err)
			}
		}

		for _, key := range summary.Copied {
			fmt.Fprintf(out, "  copied  %s\n", key)
		}
		for _, key := range summary.Skipped {
			fmt.Fprintf(out, "  skipped %s (not in source)\n", key)
		}
		if !migrateDryRun {
			color.Green("✓ Migrated %d documents from %s to %s", len(summary.Copied), migrateFrom, migrateTo)
		}
		return nil
	},
}

func openBackend(base *config.Config, backend string, log *zap.Logger) (kv.Store, error) {
	c := *base
	c.Backend = backend
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.OpenStore(log)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", kv.BackendBadger, "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", kv.BackendSQLite, "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite a destination that already holds data")
	rootCmd.AddCommand(migrateCmd)
}
