// ABOUTME: CLI commands for exporting and importing swim data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats; JSON import.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export swim data",
	Long: `Export swim data in various formats.

FORMATS:

  json       Full JSON export with laps (suitable for backup/restore)
  yaml       YAML summary of records and segments (human-readable)
  markdown   Records book and workout log as Markdown tables

OPTIONS:

  --output, -o   Write to file instead of stdout

EXAMPLES:

  swim export json                  # Export all data as JSON
  swim export json -o backup.json   # Save to file
  swim export yaml                  # Export as YAML
  swim export markdown -o book.md   # Records book for sharing`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = store.ExportJSON(ctx)
		case "yaml":
			data, err = store.ExportYAML(ctx)
		case "markdown", "md":
			var md string
			md, err = store.ExportMarkdown(ctx, location)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import swim data from JSON",
	Long: `Replace all swim data with a JSON backup made by 'swim export json'.

Segments are validated before anything is written and records are rebuilt
from them. Existing data is overwritten.

EXAMPLES:

  swim import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := store.ImportJSON(cmdContext(cmd), data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
