// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/swimbook/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read your records book and correct
segments through a standardized protocol. The server communicates via
stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "swim": {
        "command": "swim",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_records          Best time per stroke and distance
  record_history        Every swim for one stroke and distance, by day
  get_segment           Segment with laps, workout and best splits
  get_workout           Workout with its segments
  update_segment_style  Correct a segment's stroke and rebuild records
  recalculate_records   Rebuild records from segments
  best_split            Fastest split of a segment for a distance
  get_settings          Read settings
  update_settings       Change settings
  reset_data            Delete everything and reseed sample data
  healthdata_status     Apple Health availability

AVAILABLE RESOURCES:

  swim://records    Records book
  swim://recent     Last 10 swims
  swim://settings   Settings`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, mcp.Options{
			PoolLength: cfg.GetPoolLength(),
			Location:   location,
			Health:     newHealthSource(),
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmdContext(cmd))
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
