// ABOUTME: CLI commands for segment detail and stroke style correction.
// ABOUTME: Shows laps and best splits; edits rebuild the records.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/records"
	"github.com/harperreed/swimbook/internal/storage"
	"github.com/spf13/cobra"
)

var segmentCmd = &cobra.Command{
	Use:     "segment <id>",
	Aliases: []string{"seg"},
	Short:   "Show a segment with its laps",
	Long: `Show one segment: stroke, distance, time, its workout, every lap and
the fastest split for each record distance it covers.

The ID may be any unique prefix (the 8-character IDs shown elsewhere work).

EXAMPLES:

  swim segment 3f2a9c1b`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()

		seg, err := resolveSegment(ctx, args[0])
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		color.New(color.Bold).Fprintf(out, "%s %d m  %s\n",
			seg.StrokeStyle.Label(), seg.DistanceMeters, records.FormatElapsed(seg.ElapsedSeconds))
		fmt.Fprintf(out, "ID:      %s\n", seg.ID)
		fmt.Fprintf(out, "Start:   %s\n", records.FormatDateTime(localTime(seg.StartDateTime)))
		if recordSegments(ctx)[seg.ID.String()] {
			color.New(color.FgYellow).Fprintln(out, "★ Current record")
		}
		if w := store.WorkoutByID(ctx, seg.WorkoutID); w != nil {
			fmt.Fprintf(out, "Workout: %s (%d m, %s)\n",
				shortID(w.ID), w.TotalDistanceMeters, records.FormatElapsed(w.DurationSeconds))
		}

		fmt.Fprintln(out, "\nLaps:")
		for _, lap := range seg.Laps {
			style := ""
			if lap.StrokeStyle != seg.StrokeStyle {
				style = faint.Sprintf(" (%s)", lap.StrokeStyle.Label())
			}
			fmt.Fprintf(out, "  %2d  %s%s\n", lap.LapIndex+1, records.FormatElapsed(lap.ElapsedSeconds), style)
		}

		splits := records.BestSplits(seg, store.PoolLength(ctx, seg, cfg.GetPoolLength()))
		if len(splits) > 0 {
			fmt.Fprintln(out, "\nBest splits:")
			for _, sp := range splits {
				fmt.Fprintf(out, "  %s %s %s\n",
					padRight(strconv.Itoa(sp.DistanceMeters)+" m", 6),
					padRight(records.FormatElapsed(sp.ElapsedSeconds), 9),
					faint.Sprintf("laps %d-%d", sp.FirstLap+1, sp.LastLap+1))
			}
		}
		return nil
	},
}

var styleCmd = &cobra.Command{
	Use:   "style <segment-id> <style>",
	Short: "Correct the stroke style of a segment",
	Long: `Change the stroke style of a segment and rebuild the records book.

Only the segment's style changes; lap styles keep what was recorded.

STYLES:

  freestyle, backstroke, breaststroke, butterfly, medley, unknown

EXAMPLES:

  swim style 3f2a9c1b backstroke`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)

		seg, err := resolveSegment(ctx, args[0])
		if err != nil {
			return err
		}

		if err := store.UpdateSegmentStyle(ctx, seg.ID, args[1]); err != nil {
			if errors.Is(err, storage.ErrValidation) {
				return fmt.Errorf("unknown style %q (use freestyle, backstroke, breaststroke, butterfly, medley, unknown)", args[1])
			}
			return err
		}

		style, _ := models.ParseStrokeStyle(args[1])
		color.Green("✓ Segment %s is now %s", shortID(seg.ID), style.Label())
		return nil
	},
}

var splitCmd = &cobra.Command{
	Use:   "split <segment-id> <distance>",
	Short: "Fastest split of a segment for a distance",
	Long: `Find the fastest run of consecutive laps inside a segment that covers
the given distance. Useful for pulling a 100 m time out of a 400 m swim.

EXAMPLES:

  swim split 3f2a9c1b 100
  swim split 3f2a9c1b 200`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		out := cmd.OutOrStdout()

		seg, err := resolveSegment(ctx, args[0])
		if err != nil {
			return err
		}
		distance, err := strconv.Atoi(args[1])
		if err != nil || distance <= 0 {
			return fmt.Errorf("invalid distance: %s", args[1])
		}

		pool := store.PoolLength(ctx, seg, cfg.GetPoolLength())
		best, ok := records.BestWindowTime(seg.Laps, distance, pool)
		if !ok {
			return fmt.Errorf("segment has %d laps; %d m needs %d", len(seg.Laps), distance, records.LapsNeeded(distance, pool))
		}

		fmt.Fprintf(out, "Best %d m in %s %d m: %s\n",
			distance, seg.StrokeStyle.Label(), seg.DistanceMeters, records.FormatElapsed(best))
		return nil
	},
}

func init() {
	styleCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 1 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		styles := make([]string, 0, len(models.AllStrokeStyles))
		for _, st := range models.AllStrokeStyles {
			styles = append(styles, string(st))
		}
		return styles, cobra.ShellCompDirectiveNoFileComp
	}

	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(styleCmd)
	rootCmd.AddCommand(splitCmd)
}
