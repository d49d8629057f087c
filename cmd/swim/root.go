// ABOUTME: Root Cobra command for swim CLI.
// ABOUTME: Loads config, opens the storage gateway and seeds first-run data.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/swimbook/internal/config"
	"github.com/harperreed/swimbook/internal/logging"
	"github.com/harperreed/swimbook/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile     string
	configViper = config.NewViper()
)

var (
	cfg      *config.Config
	logger   = zap.NewNop()
	store    *storage.Store
	location = time.Local
	seeded   bool
)

// Commands that never touch the gateway.
var skipStore = map[string]bool{
	"help":          true,
	"version":       true,
	"install-skill": true,
	"migrate":       true,
	"completion":    true,
}

var rootCmd = &cobra.Command{
	Use:   "swim",
	Short: "Personal swimming records book",
	Long: `Swim keeps a personal records book of your pool swims.

Every continuous swim of one stroke and distance is a segment. For each
stroke style and distance (50-600 m) the fastest segment is your record.

QUICK START:

  $ swim records                       # Show the records book
  $ swim history freestyle 100         # Every 100 m freestyle, by day
  $ swim segment 3f2a9c1b              # Laps and best splits of a segment
  $ swim style 3f2a9c1b backstroke     # Fix a mislabeled stroke
  $ swim split 3f2a9c1b 100            # Fastest 100 m inside a longer swim

The first run seeds a month of sample swims so there is something to see.
Use 'swim reset' to start over with fresh sample data.

STORAGE:

  Data lives in $XDG_DATA_HOME/swim (badger by default). Choose a backend
  with --backend or SWIM_BACKEND: badger, sqlite, or charm (cloud sync).

MCP INTEGRATION:

  Run 'swim mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

  {
    "mcpServers": {
      "swim": { "command": "swim", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipStore[cmd.Name()] {
			return nil
		}
		return openStore(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (default $XDG_CONFIG_HOME/swim/config.json)")
	rootCmd.PersistentFlags().String("backend", configViper.GetString("backend"), "storage backend (badger, sqlite, charm)")
	rootCmd.PersistentFlags().String("data-dir", "", "data directory (default $XDG_DATA_HOME/swim)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); off when empty")

	bindFlag(configViper, "backend", "backend")
	bindFlag(configViper, "data_dir", "data-dir")
	bindFlag(configViper, "log_level", "log-level")
}

func bindFlag(v *viper.Viper, key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// loadConfig resolves flags, env and the config file.
func loadConfig() (*config.Config, error) {
	if err := config.ReadFile(configViper, cfgFile); err != nil {
		return nil, err
	}
	return config.FromViper(configViper)
}

func openStore(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	logger, err = logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	location, err = cfg.Location()
	if err != nil {
		return err
	}

	backend, err := cfg.OpenStore(logger)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}

	store = storage.New(backend, storage.WithLogger(logger))
	seeded = store.Initialize(ctx)
	return nil
}

func closeStore() error {
	defer logger.Sync() //nolint:errcheck
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// cmdContext returns the command context, or Background when unset.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
