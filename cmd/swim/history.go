// ABOUTME: CLI command for the history of one record.
// ABOUTME: Lists every matching segment grouped by day, newest day first.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/records"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history <style> <distance>",
	Aliases: []string{"h"},
	Short:   "Show every swim for one stroke and distance",
	Long: `Show every segment for one stroke style and distance, grouped by day.

Days are listed newest first; within a day swims are sorted fastest first.
The record-holding swim is marked with a star.

STYLES:

  freestyle, backstroke, breaststroke, butterfly, medley, unknown

EXAMPLES:

  swim history freestyle 100
  swim history medley 400`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()

		style, err := models.ParseStrokeStyle(args[0])
		if err != nil {
			return err
		}
		distance, err := strconv.Atoi(args[1])
		if err != nil || !models.IsRecordDistance(distance) {
			return fmt.Errorf("invalid distance: %s (use one of %v)", args[1], models.Distances)
		}

		key := models.RecordKey{StrokeStyle: style, DistanceMeters: distance}
		groups := store.RecordHistory(ctx, key, location)

		color.New(color.Bold).Fprintf(out, "%s %d m\n", style.Label(), distance)
		if len(groups) == 0 {
			fmt.Fprintln(out, "No swims yet.")
			return nil
		}

		holders := recordSegments(ctx)
		faint := color.New(color.Faint)
		star := color.New(color.FgYellow)
		for _, g := range groups {
			fmt.Fprintln(out)
			color.New(color.FgCyan).Fprintf(out, "%s  best %s\n", formatDay(g.Date), records.FormatElapsed(g.BestTime))
			for _, seg := range g.Segments {
				mark := " "
				if holders[seg.ID.String()] {
					mark = star.Sprint("★")
				}
				fmt.Fprintf(out, "  %s %s %s %s\n",
					mark,
					faint.Sprint(shortID(seg.ID)),
					padRight(records.FormatElapsed(seg.ElapsedSeconds), 9),
					faint.Sprint(formatClock(seg.StartDateTime)))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
