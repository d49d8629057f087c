// ABOUTME: CLI command for listing and showing workouts.
// ABOUTME: Without an ID lists recent workouts; with one shows its segments.
package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harperreed/swimbook/internal/records"
	"github.com/spf13/cobra"
)

var workoutLimit int

var workoutCmd = &cobra.Command{
	Use:     "workout [id]",
	Aliases: []string{"w", "workouts"},
	Short:   "List workouts or show one",
	Long: `Without an argument, list recent workouts newest first.
With a workout ID (or unique prefix), show the workout and its segments.

EXAMPLES:

  swim workout              # Last 10 workouts
  swim workout -n 30        # Last 30 workouts
  swim workout 9b1c04aa     # One workout with its segments`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return showWorkout(cmd, args[0])
		}
		return listWorkouts(cmd)
	},
}

func listWorkouts(cmd *cobra.Command) error {
	ctx := cmdContext(cmd)
	out := cmd.OutOrStdout()

	workouts := store.Workouts(ctx)
	if len(workouts) == 0 {
		fmt.Fprintln(out, "No workouts found.")
		return nil
	}
	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].StartDate.After(workouts[j].StartDate)
	})
	if workoutLimit > 0 && len(workouts) > workoutLimit {
		workouts = workouts[:workoutLimit]
	}

	faint := color.New(color.Faint)
	for _, w := range workouts {
		fmt.Fprintf(out, "%s %s %s %s %s\n",
			faint.Sprint(shortID(w.ID)),
			padRight(localTime(w.StartDate).Format("2006-01-02 15:04"), 17),
			padRight(fmt.Sprintf("%d m", w.TotalDistanceMeters), 7),
			padRight(records.FormatElapsed(w.DurationSeconds), 9),
			faint.Sprint(humanize.Time(w.StartDate)))
	}
	return nil
}

func showWorkout(cmd *cobra.Command, prefix string) error {
	ctx := cmdContext(cmd)
	out := cmd.OutOrStdout()

	w, err := resolveWorkout(ctx, prefix)
	if err != nil {
		return err
	}

	color.New(color.Bold).Fprintf(out, "Workout %s\n", shortID(w.ID))
	fmt.Fprintf(out, "Start:    %s\n", records.FormatDateTime(localTime(w.StartDate)))
	fmt.Fprintf(out, "End:      %s\n", records.FormatDateTime(localTime(w.EndDate)))
	fmt.Fprintf(out, "Distance: %d m (%d m pool)\n", w.TotalDistanceMeters, w.PoolLengthMeters)
	fmt.Fprintf(out, "Time:     %s\n", records.FormatElapsed(w.DurationSeconds))

	segments := store.WorkoutSegments(ctx, w.ID)
	if len(segments) == 0 {
		return nil
	}

	holders := recordSegments(ctx)
	faint := color.New(color.Faint)
	fmt.Fprintln(out, "\nSegments:")
	for _, seg := range segments {
		mark := ""
		if holders[seg.ID.String()] {
			mark = color.New(color.FgYellow).Sprint(" ★")
		}
		fmt.Fprintf(out, "  %s %s %s %s%s\n",
			faint.Sprint(shortID(seg.ID)),
			padRight(seg.StrokeStyle.Label(), 10),
			padRight(fmt.Sprintf("%d m", seg.DistanceMeters), 6),
			records.FormatElapsed(seg.ElapsedSeconds),
			mark)
	}
	return nil
}

func init() {
	workoutCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 10, "max number of workouts to list")
	rootCmd.AddCommand(workoutCmd)
}
