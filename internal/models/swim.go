// ABOUTME: Lap, Segment, Workout, SwimmingRecord and DayGroup models.
// ABOUTME: JSON tags match the persisted document layout.
package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Lap is one pool length swum at one stroke style.
type Lap struct {
	ID             uuid.UUID   `json:"id" yaml:"id"`
	SegmentID      uuid.UUID   `json:"segmentId" yaml:"segment_id"`
	LapIndex       int         `json:"lapIndex" yaml:"lap_index"`
	StartDateTime  time.Time   `json:"startDateTime" yaml:"start_date_time"`
	DistanceMeters int         `json:"distanceMeters" yaml:"distance_meters"`
	ElapsedSeconds float64     `json:"elapsedSeconds" yaml:"elapsed_seconds"`
	StrokeStyle    StrokeStyle `json:"strokeStyle" yaml:"stroke_style"`
}

// Segment is a continuous swim of one stroke style and distance.
type Segment struct {
	ID             uuid.UUID   `json:"id" yaml:"id"`
	WorkoutID      uuid.UUID   `json:"workoutId" yaml:"workout_id"`
	StartDateTime  time.Time   `json:"startDateTime" yaml:"start_date_time"`
	DistanceMeters int         `json:"distanceMeters" yaml:"distance_meters"`
	ElapsedSeconds float64     `json:"elapsedSeconds" yaml:"elapsed_seconds"`
	StrokeStyle    StrokeStyle `json:"strokeStyle" yaml:"stroke_style"`
	LapRange       [2]int      `json:"lapRange" yaml:"lap_range"`
	Laps           []Lap       `json:"laps" yaml:"laps"`
}

// Key returns the record key this segment competes under.
func (s Segment) Key() RecordKey {
	return RecordKey{StrokeStyle: s.StrokeStyle, DistanceMeters: s.DistanceMeters}
}

// elapsedTolerance absorbs float summation order differences.
const elapsedTolerance = 1e-6

// Validate checks the segment's structural invariants for the given pool length.
// Lap stroke styles are not compared with the segment style: the segment style
// may be corrected after the fact without touching its laps.
func (s Segment) Validate(poolLength int) error {
	if len(s.Laps) == 0 {
		return fmt.Errorf("segment %s has no laps", s.ID)
	}
	if s.DistanceMeters != len(s.Laps)*poolLength {
		return fmt.Errorf("segment %s distance %d m != %d laps x %d m", s.ID, s.DistanceMeters, len(s.Laps), poolLength)
	}
	var total float64
	for i, lap := range s.Laps {
		if lap.LapIndex != i {
			return fmt.Errorf("segment %s lap %d has index %d", s.ID, i, lap.LapIndex)
		}
		if lap.SegmentID != s.ID {
			return fmt.Errorf("segment %s lap %d belongs to segment %s", s.ID, i, lap.SegmentID)
		}
		if !(lap.ElapsedSeconds > 0) {
			return fmt.Errorf("segment %s lap %d has non-positive time %v", s.ID, i, lap.ElapsedSeconds)
		}
		total += lap.ElapsedSeconds
	}
	if math.Abs(total-s.ElapsedSeconds) > elapsedTolerance {
		return fmt.Errorf("segment %s elapsed %.3f s != lap sum %.3f s", s.ID, s.ElapsedSeconds, total)
	}
	if s.LapRange != [2]int{0, len(s.Laps) - 1} {
		return fmt.Errorf("segment %s lap range %v does not cover %d laps", s.ID, s.LapRange, len(s.Laps))
	}
	return nil
}

// Workout is a training session grouping one or more segments.
type Workout struct {
	ID                  uuid.UUID `json:"id" yaml:"id"`
	StartDate           time.Time `json:"startDate" yaml:"start_date"`
	EndDate             time.Time `json:"endDate" yaml:"end_date"`
	DurationSeconds     float64   `json:"durationSeconds" yaml:"duration_seconds"`
	TotalDistanceMeters int       `json:"totalDistanceMeters" yaml:"total_distance_meters"`
	PoolLengthMeters    int       `json:"poolLengthMeters" yaml:"pool_length_meters"`
}

// Validate checks the workout against the segments that belong to it.
func (w Workout) Validate(segments []Segment) error {
	var duration float64
	var distance int
	for _, s := range segments {
		if s.WorkoutID != w.ID {
			continue
		}
		duration += s.ElapsedSeconds
		distance += s.DistanceMeters
	}
	if math.Abs(duration-w.DurationSeconds) > elapsedTolerance {
		return fmt.Errorf("workout %s duration %.3f s != segment sum %.3f s", w.ID, w.DurationSeconds, duration)
	}
	if distance != w.TotalDistanceMeters {
		return fmt.Errorf("workout %s distance %d m != segment sum %d m", w.ID, w.TotalDistanceMeters, distance)
	}
	wantEnd := w.StartDate.Add(time.Duration(w.DurationSeconds * float64(time.Second)))
	if d := w.EndDate.Sub(wantEnd); d > time.Millisecond || d < -time.Millisecond {
		return fmt.Errorf("workout %s end %s != start + duration %s", w.ID, w.EndDate, wantEnd)
	}
	return nil
}

// RecordKey identifies a record: one stroke style at one distance.
type RecordKey struct {
	StrokeStyle    StrokeStyle
	DistanceMeters int
}

func (k RecordKey) String() string {
	return fmt.Sprintf("%s-%d", k.StrokeStyle, k.DistanceMeters)
}

// SwimmingRecord is the fastest segment for a stroke style and distance.
// Records are derived from segments and never authored directly.
type SwimmingRecord struct {
	ID                 uuid.UUID   `json:"id" yaml:"id"`
	StrokeStyle        StrokeStyle `json:"strokeStyle" yaml:"stroke_style"`
	DistanceMeters     int         `json:"distanceMeters" yaml:"distance_meters"`
	BestElapsedSeconds float64     `json:"bestElapsedSeconds" yaml:"best_elapsed_seconds"`
	BestDate           time.Time   `json:"bestDate" yaml:"best_date"`
	BestSegmentID      uuid.UUID   `json:"bestSegmentId" yaml:"best_segment_id"`
}

// Key returns the record's composite key.
func (r SwimmingRecord) Key() RecordKey {
	return RecordKey{StrokeStyle: r.StrokeStyle, DistanceMeters: r.DistanceMeters}
}

// DayGroup collects the segments swum on one calendar day.
type DayGroup struct {
	Date     time.Time `json:"date"`
	BestTime float64   `json:"bestTime"`
	Segments []Segment `json:"segments"`
}
