// ABOUTME: StrokeStyle enum and record distance set for swimming data.
// ABOUTME: Parsing is strict: unknown style strings are rejected, never coerced.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// StrokeStyle is the swimming technique of a lap or segment.
type StrokeStyle string

const (
	StrokeFreestyle    StrokeStyle = "freestyle"
	StrokeBackstroke   StrokeStyle = "backstroke"
	StrokeBreaststroke StrokeStyle = "breaststroke"
	StrokeButterfly    StrokeStyle = "butterfly"
	StrokeMedley       StrokeStyle = "medley"
	StrokeUnknown      StrokeStyle = "unknown"
)

// AllStrokeStyles lists every stroke style in records-book display order.
var AllStrokeStyles = []StrokeStyle{
	StrokeFreestyle,
	StrokeBackstroke,
	StrokeBreaststroke,
	StrokeButterfly,
	StrokeMedley,
	StrokeUnknown,
}

// StrokeLabels maps stroke styles to their display labels.
var StrokeLabels = map[StrokeStyle]string{
	StrokeFreestyle:    "Kraul",
	StrokeBackstroke:   "Znak",
	StrokeBreaststroke: "Prsa",
	StrokeButterfly:    "Motýl",
	StrokeMedley:       "Mix",
	StrokeUnknown:      "Neznámý",
}

// ErrInvalidStrokeStyle is returned when a string does not name a stroke style.
var ErrInvalidStrokeStyle = errors.New("invalid stroke style")

// ParseStrokeStyle converts s to a StrokeStyle.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseStrokeStyle(s string) (StrokeStyle, error) {
	candidate := StrokeStyle(strings.ToLower(strings.TrimSpace(s)))
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q (valid: freestyle, backstroke, breaststroke, butterfly, medley, unknown)", ErrInvalidStrokeStyle, s)
}

// IsValid reports whether st is one of the known stroke styles.
func (st StrokeStyle) IsValid() bool {
	for _, known := range AllStrokeStyles {
		if st == known {
			return true
		}
	}
	return false
}

// Label returns the display label, falling back to the raw value.
func (st StrokeStyle) Label() string {
	if label, ok := StrokeLabels[st]; ok {
		return label
	}
	return string(st)
}

// DefaultPoolLength is the length of one lap in meters.
const DefaultPoolLength = 50

// Distances are the segment distances a record can be held for, in meters.
var Distances = []int{50, 100, 200, 300, 400, 500, 600}

// IsRecordDistance reports whether meters is one of Distances.
func IsRecordDistance(meters int) bool {
	for _, d := range Distances {
		if d == meters {
			return true
		}
	}
	return false
}
