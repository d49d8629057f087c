// ABOUTME: Synthetic workout generator for first-run seeding and demos.
// ABOUTME: Produces internally consistent workouts, segments, laps and records.
package records

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/swimbook/internal/models"
)

// Dataset bundles the three derived collections.
type Dataset struct {
	Workouts []models.Workout
	Segments []models.Segment
	Records  []models.SwimmingRecord
}

const (
	sampleWindowDays = 30
	minLapSeconds    = 20
	lapJitterSeconds = 8
)

// sampleStyles excludes unknown: generated data always has a known stroke.
var sampleStyles = []models.StrokeStyle{
	models.StrokeFreestyle,
	models.StrokeBackstroke,
	models.StrokeBreaststroke,
	models.StrokeButterfly,
	models.StrokeMedley,
}

var baseLapSeconds = map[models.StrokeStyle]float64{
	models.StrokeFreestyle:    28,
	models.StrokeBackstroke:   32,
	models.StrokeBreaststroke: 38,
	models.StrokeButterfly:    30,
	models.StrokeMedley:       35,
	models.StrokeUnknown:      40,
}

// GenerateSampleDataset builds a pseudo-random dataset over the 30 days before now.
// Workouts happen every 2 to 4 days at 06:00 with 3 to 7 segments each.
// A nil rng seeds one from the clock.
func GenerateSampleDataset(now time.Time, rng *rand.Rand) Dataset {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var ds Dataset
	for dayOffset := 0; dayOffset < sampleWindowDays; dayOffset += 2 + rng.Intn(3) {
		workoutID := uuid.New()
		workoutStart := time.Date(now.Year(), now.Month(), now.Day()-dayOffset, 6, 0, 0, 0, now.Location())

		numSegments := 3 + rng.Intn(5)
		var duration float64
		var distance int
		for i := 0; i < numSegments; i++ {
			style := sampleStyles[rng.Intn(len(sampleStyles))]
			dist := models.Distances[rng.Intn(len(models.Distances))]
			start := time.Date(workoutStart.Year(), workoutStart.Month(), workoutStart.Day(), 6+i, rng.Intn(60), 0, 0, now.Location())

			seg := generateSegment(rng, workoutID, dist, style, start)
			ds.Segments = append(ds.Segments, seg)
			duration += seg.ElapsedSeconds
			distance += seg.DistanceMeters
		}

		ds.Workouts = append(ds.Workouts, models.Workout{
			ID:                  workoutID,
			StartDate:           workoutStart,
			EndDate:             workoutStart.Add(seconds(duration)),
			DurationSeconds:     duration,
			TotalDistanceMeters: distance,
			PoolLengthMeters:    models.DefaultPoolLength,
		})
	}

	ds.Records = ComputeRecords(ds.Segments)
	return ds
}

func generateSegment(rng *rand.Rand, workoutID uuid.UUID, distance int, style models.StrokeStyle, start time.Time) models.Segment {
	numLaps := distance / models.DefaultPoolLength
	seg := models.Segment{
		ID:             uuid.New(),
		WorkoutID:      workoutID,
		StartDateTime:  start,
		DistanceMeters: distance,
		StrokeStyle:    style,
		LapRange:       [2]int{0, numLaps - 1},
		Laps:           make([]models.Lap, 0, numLaps),
	}

	current := start
	for i := 0; i < numLaps; i++ {
		elapsed := lapTime(rng, style)
		seg.Laps = append(seg.Laps, models.Lap{
			ID:             uuid.New(),
			SegmentID:      seg.ID,
			LapIndex:       i,
			StartDateTime:  current,
			DistanceMeters: models.DefaultPoolLength,
			ElapsedSeconds: elapsed,
			StrokeStyle:    style,
		})
		seg.ElapsedSeconds += elapsed
		current = current.Add(seconds(elapsed))
	}
	return seg
}

func lapTime(rng *rand.Rand, style models.StrokeStyle) float64 {
	jitter := (rng.Float64() - 0.5) * lapJitterSeconds
	return math.Max(minLapSeconds, baseLapSeconds[style]+jitter)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
