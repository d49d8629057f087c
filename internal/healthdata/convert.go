// ABOUTME: Conversion of raw health-data lap samples into swim models.
// ABOUTME: Splits each workout into segments of contiguous stroke style.
package healthdata

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/swimbook/internal/models"
)

// RawLap is one pool length as reported by the health-data source.
type RawLap struct {
	Start          time.Time `json:"start"`
	ElapsedSeconds float64   `json:"elapsedSeconds"`
	StrokeCode     int       `json:"strokeStyle"`
}

// RawWorkout is a pool swim with its lap samples in order.
type RawWorkout struct {
	Start            time.Time `json:"start"`
	PoolLengthMeters int       `json:"lapLength"`
	Laps             []RawLap  `json:"laps"`
}

// BuildSwimmingData converts raw workouts into workouts and segments.
// Consecutive laps with the same stroke form a run, cut into segments of
// record distances by splitRun. Laps without a positive time are dropped,
// and workouts left with no laps are skipped.
// IDs derive from start times, so converting the same samples twice yields
// the same IDs and a repeated sync imports nothing new.
func BuildSwimmingData(raw []RawWorkout) *SwimmingData {
	data := &SwimmingData{Workouts: []models.Workout{}, Segments: []models.Segment{}}

	for _, rw := range raw {
		pool := rw.PoolLengthMeters
		if pool <= 0 {
			pool = models.DefaultPoolLength
		}

		laps := make([]RawLap, 0, len(rw.Laps))
		for _, l := range rw.Laps {
			if l.ElapsedSeconds > 0 {
				laps = append(laps, l)
			}
		}
		if len(laps) == 0 {
			continue
		}

		workout := models.Workout{
			StartDate:        rw.Start,
			PoolLengthMeters: pool,
		}
		if workout.StartDate.IsZero() {
			workout.StartDate = laps[0].Start
		}
		workout.ID = derivedID(uuid.NameSpaceURL, "healthkit:workout:"+workout.StartDate.UTC().Format(time.RFC3339Nano))

		for start := 0; start < len(laps); {
			end := start + 1
			for end < len(laps) && laps[end].StrokeCode == laps[start].StrokeCode {
				end++
			}
			for _, chunk := range splitRun(laps[start:end], pool) {
				seg := buildSegment(workout.ID, pool, chunk)
				workout.DurationSeconds += seg.ElapsedSeconds
				workout.TotalDistanceMeters += seg.DistanceMeters
				data.Segments = append(data.Segments, seg)
			}
			start = end
		}

		workout.EndDate = workout.StartDate.Add(time.Duration(workout.DurationSeconds * float64(time.Second)))
		data.Workouts = append(data.Workouts, workout)
	}

	return data
}

// splitRun cuts a run of same-stroke laps into record-distance pieces,
// longest first, so every imported swim lands on a records-book distance.
// A remainder shorter than any record distance stays as its own piece, and
// a pool length that no record distance is a multiple of keeps the run whole.
func splitRun(run []RawLap, pool int) [][]RawLap {
	var chunks [][]RawLap
	for len(run) > 0 {
		n := len(run)
		for i := len(models.Distances) - 1; i >= 0; i-- {
			d := models.Distances[i]
			if d%pool == 0 && d/pool <= len(run) {
				n = d / pool
				break
			}
		}
		chunks = append(chunks, run[:n])
		run = run[n:]
	}
	return chunks
}

func buildSegment(workoutID uuid.UUID, pool int, run []RawLap) models.Segment {
	style := MapStroke(run[0].StrokeCode)
	seg := models.Segment{
		ID:             derivedID(workoutID, "segment:"+run[0].Start.UTC().Format(time.RFC3339Nano)),
		WorkoutID:      workoutID,
		StartDateTime:  run[0].Start,
		DistanceMeters: len(run) * pool,
		StrokeStyle:    style,
		LapRange:       [2]int{0, len(run) - 1},
		Laps:           make([]models.Lap, 0, len(run)),
	}
	for i, l := range run {
		seg.Laps = append(seg.Laps, models.Lap{
			ID:             derivedID(seg.ID, "lap:"+strconv.Itoa(i)),
			SegmentID:      seg.ID,
			LapIndex:       i,
			StartDateTime:  l.Start,
			DistanceMeters: pool,
			ElapsedSeconds: l.ElapsedSeconds,
			StrokeStyle:    style,
		})
		seg.ElapsedSeconds += l.ElapsedSeconds
	}
	return seg
}

func derivedID(space uuid.UUID, name string) uuid.UUID {
	return uuid.NewSHA1(space, []byte(name))
}
