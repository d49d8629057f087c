// ABOUTME: Shared helpers for resolving IDs and formatting CLI output.
// ABOUTME: IDs may be given as any unique prefix of the UUID.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/records"
)

func resolveSegment(ctx context.Context, prefix string) (models.Segment, error) {
	matches := store.MatchSegments(ctx, prefix)
	switch {
	case prefix == "" || len(matches) == 0:
		return models.Segment{}, fmt.Errorf("segment not found: %s", prefix)
	case len(matches) > 1:
		return models.Segment{}, fmt.Errorf("ambiguous segment ID prefix %q matches %d segments", prefix, len(matches))
	}
	return matches[0], nil
}

func resolveWorkout(ctx context.Context, prefix string) (models.Workout, error) {
	matches := store.MatchWorkouts(ctx, prefix)
	switch {
	case prefix == "" || len(matches) == 0:
		return models.Workout{}, fmt.Errorf("workout not found: %s", prefix)
	case len(matches) > 1:
		return models.Workout{}, fmt.Errorf("ambiguous workout ID prefix %q matches %d workouts", prefix, len(matches))
	}
	return matches[0], nil
}

// recordSegments returns the IDs of segments currently holding a record.
func recordSegments(ctx context.Context) map[string]bool {
	ids := make(map[string]bool)
	for _, r := range store.Records(ctx) {
		ids[r.BestSegmentID.String()] = true
	}
	return ids
}

func shortID(id fmt.Stringer) string {
	return id.String()[:8]
}

func localTime(t time.Time) time.Time {
	return t.In(location)
}

func formatClock(t time.Time) string {
	return localTime(t).Format("15:04")
}

func formatDay(t time.Time) string {
	return records.FormatDate(localTime(t))
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
