// ABOUTME: Tests for Segment and Workout invariant validation.
// ABOUTME: Covers lap sums, lap indexes, and workout totals.
package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func makeSegment(workoutID uuid.UUID, style StrokeStyle, start time.Time, lapTimes ...float64) Segment {
	seg := Segment{
		ID:            uuid.New(),
		WorkoutID:     workoutID,
		StartDateTime: start,
		StrokeStyle:   style,
	}
	for i, lt := range lapTimes {
		seg.Laps = append(seg.Laps, Lap{
			ID:             uuid.New(),
			SegmentID:      seg.ID,
			LapIndex:       i,
			StartDateTime:  start,
			DistanceMeters: DefaultPoolLength,
			ElapsedSeconds: lt,
			StrokeStyle:    style,
		})
		seg.ElapsedSeconds += lt
	}
	seg.DistanceMeters = len(lapTimes) * DefaultPoolLength
	seg.LapRange = [2]int{0, len(lapTimes) - 1}
	return seg
}

func TestSegmentValidate(t *testing.T) {
	start := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)

	valid := makeSegment(uuid.New(), StrokeFreestyle, start, 30.1, 31.2)
	if err := valid.Validate(DefaultPoolLength); err != nil {
		t.Fatalf("valid segment rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(s *Segment)
		errPart string
	}{
		{"wrong total", func(s *Segment) { s.ElapsedSeconds += 1 }, "lap sum"},
		{"wrong distance", func(s *Segment) { s.DistanceMeters = 150 }, "distance"},
		{"gap in lap index", func(s *Segment) { s.Laps[1].LapIndex = 2 }, "index"},
		{"foreign lap", func(s *Segment) { s.Laps[0].SegmentID = uuid.New() }, "belongs"},
		{"zero lap time", func(s *Segment) {
			s.ElapsedSeconds -= s.Laps[0].ElapsedSeconds
			s.Laps[0].ElapsedSeconds = 0
		}, "non-positive"},
		{"bad lap range", func(s *Segment) { s.LapRange = [2]int{0, 5} }, "lap range"},
		{"no laps", func(s *Segment) { s.Laps = nil }, "no laps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := makeSegment(uuid.New(), StrokeFreestyle, start, 30.1, 31.2)
			tt.mutate(&seg)
			err := seg.Validate(DefaultPoolLength)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q should mention %q", err, tt.errPart)
			}
		})
	}
}

func TestSegmentValidateIgnoresLapStyle(t *testing.T) {
	seg := makeSegment(uuid.New(), StrokeFreestyle, time.Now(), 30, 30)
	seg.StrokeStyle = StrokeButterfly
	if err := seg.Validate(DefaultPoolLength); err != nil {
		t.Errorf("edited segment style should not invalidate laps: %v", err)
	}
}

func TestWorkoutValidate(t *testing.T) {
	start := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)
	w := Workout{ID: uuid.New(), StartDate: start, PoolLengthMeters: DefaultPoolLength}
	segs := []Segment{
		makeSegment(w.ID, StrokeFreestyle, start, 30, 31),
		makeSegment(w.ID, StrokeMedley, start, 40),
		makeSegment(uuid.New(), StrokeMedley, start, 99),
	}
	w.DurationSeconds = 101
	w.TotalDistanceMeters = 150
	w.EndDate = start.Add(101 * time.Second)

	if err := w.Validate(segs); err != nil {
		t.Fatalf("valid workout rejected: %v", err)
	}

	w.EndDate = start
	if err := w.Validate(segs); err == nil {
		t.Error("expected end date mismatch")
	}
}

func TestSegmentKey(t *testing.T) {
	seg := makeSegment(uuid.New(), StrokeBackstroke, time.Now(), 30, 30)
	key := seg.Key()
	if key.StrokeStyle != StrokeBackstroke || key.DistanceMeters != 100 {
		t.Errorf("Key() = %+v", key)
	}
	if key.String() != "backstroke-100" {
		t.Errorf("String() = %q", key.String())
	}
}
