// ABOUTME: Tests for the sample dataset generator.
// ABOUTME: Asserts structure and invariants, never randomized values.
package records

import (
	"math/rand"
	"testing"
	"time"

	"github.com/harperreed/swimbook/internal/models"
)

func TestGenerateSampleDatasetInvariants(t *testing.T) {
	now := time.Date(2025, 6, 30, 23, 30, 0, 0, time.UTC)

	for seed := int64(1); seed <= 20; seed++ {
		ds := GenerateSampleDataset(now, rand.New(rand.NewSource(seed)))

		if len(ds.Workouts) < 8 || len(ds.Workouts) > 15 {
			t.Errorf("seed %d: %d workouts outside 30-day cadence", seed, len(ds.Workouts))
		}

		perWorkout := make(map[string]int)
		for _, s := range ds.Segments {
			perWorkout[s.WorkoutID.String()]++

			if err := s.Validate(models.DefaultPoolLength); err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			if !models.IsRecordDistance(s.DistanceMeters) {
				t.Errorf("seed %d: distance %d not in allowed set", seed, s.DistanceMeters)
			}
			if s.StrokeStyle == models.StrokeUnknown {
				t.Errorf("seed %d: generated unknown style", seed)
			}
			for _, lap := range s.Laps {
				if lap.ElapsedSeconds < minLapSeconds {
					t.Errorf("seed %d: lap time %v below floor", seed, lap.ElapsedSeconds)
				}
				if lap.StrokeStyle != s.StrokeStyle {
					t.Errorf("seed %d: lap style %s != segment style %s", seed, lap.StrokeStyle, s.StrokeStyle)
				}
			}
			if s.StartDateTime.After(now) || now.Sub(s.StartDateTime) > 31*24*time.Hour {
				t.Errorf("seed %d: segment at %v outside trailing window", seed, s.StartDateTime)
			}
		}

		for _, w := range ds.Workouts {
			n := perWorkout[w.ID.String()]
			if n < 3 || n > 7 {
				t.Errorf("seed %d: workout has %d segments", seed, n)
			}
			if err := w.Validate(ds.Segments); err != nil {
				t.Errorf("seed %d: %v", seed, err)
			}
			if w.StartDate.Hour() != 6 || w.PoolLengthMeters != models.DefaultPoolLength {
				t.Errorf("seed %d: unexpected workout start/pool %v %d", seed, w.StartDate, w.PoolLengthMeters)
			}
		}

		for i := 1; i < len(ds.Workouts); i++ {
			gap := ds.Workouts[i-1].StartDate.Sub(ds.Workouts[i].StartDate)
			if gap < 2*24*time.Hour || gap > 4*24*time.Hour {
				t.Errorf("seed %d: workout gap %v outside 2-4 days", seed, gap)
			}
		}

		if len(ds.Records) == 0 {
			t.Errorf("seed %d: no records", seed)
		}
	}
}

func TestGenerateSampleDatasetNilRNG(t *testing.T) {
	ds := GenerateSampleDataset(time.Now(), nil)
	if len(ds.Workouts) == 0 || len(ds.Segments) == 0 {
		t.Fatal("expected generated data")
	}
}
