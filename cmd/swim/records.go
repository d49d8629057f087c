// ABOUTME: CLI command for showing the records book.
// ABOUTME: Renders one row per stroke style and one column per distance.
package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/records"
	"github.com/spf13/cobra"
)

var recordsAll bool

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Padding(0, 1).Faint(true)
)

var recordsCmd = &cobra.Command{
	Use:     "records",
	Aliases: []string{"r", "book"},
	Short:   "Show the records book",
	Long: `Show your best time for every stroke style and distance.

Records are derived from your segments: for each stroke and distance the
fastest segment wins; on a tie the earlier segment keeps the record.

Records with an unknown stroke are hidden when show-unknown is off in
settings. Use --all to show them anyway.

EXAMPLES:

  swim records          # Records book
  swim records --all    # Include unknown strokes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()

		s := store.Settings(ctx)
		styles := s.VisibleStrokeStyles()
		if recordsAll {
			styles = models.AllStrokeStyles
		}

		recs := store.Records(ctx)
		color.New(color.Bold).Fprintf(out, "Kniha rekordů - %s\n", s.DisplayName)
		if len(recs) == 0 {
			fmt.Fprintln(out, "No records yet.")
			return nil
		}

		fmt.Fprintln(out, renderBook(records.BuildBook(recs, styles)))
		return nil
	},
}

func renderBook(book records.Book) string {
	headers := []string{"Styl"}
	for _, d := range models.Distances {
		headers = append(headers, strconv.Itoa(d)+" m")
	}

	rows := make([][]string, 0, len(book.Styles))
	for _, style := range book.Styles {
		row := []string{style.Label()}
		for _, d := range models.Distances {
			if rec := book.Slots[style][d]; rec != nil {
				row = append(row, records.FormatElapsed(rec.BestElapsedSeconds))
			} else {
				row = append(row, "-")
			}
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col > 0 && rows[row][col] == "-":
				return emptyStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

func init() {
	recordsCmd.Flags().BoolVarP(&recordsAll, "all", "a", false, "include unknown stroke style")
	rootCmd.AddCommand(recordsCmd)
}
