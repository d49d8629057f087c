// ABOUTME: Test fixtures for building segments and laps.
// ABOUTME: Shared across the records package tests.
package records

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/swimbook/internal/models"
)

// seg builds a consistent segment of 50 m laps.
func seg(style models.StrokeStyle, start time.Time, lapTimes ...float64) models.Segment {
	s := models.Segment{
		ID:            uuid.New(),
		WorkoutID:     uuid.New(),
		StartDateTime: start,
		StrokeStyle:   style,
		LapRange:      [2]int{0, len(lapTimes) - 1},
	}
	lapStart := start
	for i, lt := range lapTimes {
		s.Laps = append(s.Laps, models.Lap{
			ID:             uuid.New(),
			SegmentID:      s.ID,
			LapIndex:       i,
			StartDateTime:  lapStart,
			DistanceMeters: models.DefaultPoolLength,
			ElapsedSeconds: lt,
			StrokeStyle:    style,
		})
		s.ElapsedSeconds += lt
		lapStart = lapStart.Add(time.Duration(lt * float64(time.Second)))
	}
	s.DistanceMeters = len(lapTimes) * models.DefaultPoolLength
	return s
}

func laps(times ...float64) []models.Lap {
	return seg(models.StrokeFreestyle, time.Now(), times...).Laps
}
