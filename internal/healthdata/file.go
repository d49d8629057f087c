// ABOUTME: Source backed by a JSON file of exported HealthKit lap samples.
// ABOUTME: Lets swims recorded on a phone be imported on any platform.
package healthdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// FileSource reads raw workouts from a JSON array on disk. The user chose
// the file, so it is always available and authorized.
type FileSource struct {
	path string
}

var _ Source = (*FileSource)(nil)

// NewFileSource returns a Source reading raw workouts from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Status(ctx context.Context) Status {
	if _, err := os.Stat(f.path); err != nil {
		return Status{ErrorMessage: err.Error()}
	}
	return Status{IsAvailable: true, IsAuthorized: true}
}

func (f *FileSource) RequestAuthorization(ctx context.Context) bool {
	return f.Status(ctx).IsAvailable
}

// FetchSwimmingWorkouts converts the workouts starting within [start, end).
// A zero end means no upper bound.
func (f *FileSource) FetchSwimmingWorkouts(ctx context.Context, start, end time.Time) (*SwimmingData, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	var workouts []RawWorkout
	if err := json.Unmarshal(raw, &workouts); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}

	var inRange []RawWorkout
	for _, w := range workouts {
		at := w.Start
		if at.IsZero() && len(w.Laps) > 0 {
			at = w.Laps[0].Start
		}
		if at.Before(start) || (!end.IsZero() && !at.Before(end)) {
			continue
		}
		inRange = append(inRange, w)
	}
	return BuildSwimmingData(inRange), nil
}
