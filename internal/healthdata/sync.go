// ABOUTME: Orchestrates fetching swims from a Source and importing them.
// ABOUTME: Gated on the user's settings and the source's status.
package healthdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/swimbook/internal/models"
)

var (
	// ErrDisabled is returned when health-data integration is turned off in settings.
	ErrDisabled = errors.New("health data integration is disabled")
	// ErrUnavailable is returned when the source cannot be used on this platform.
	ErrUnavailable = errors.New("health data is not available")
	// ErrNotAuthorized is returned before the user granted access.
	ErrNotAuthorized = errors.New("health data access is not authorized")
)

// Importer receives fetched swims. storage.Store implements it.
type Importer interface {
	Settings(ctx context.Context) models.Settings
	ImportSwimmingData(ctx context.Context, workouts []models.Workout, segments []models.Segment) int
}

// Sync fetches swims between since and until and imports them.
// It returns the number of newly imported segments.
func Sync(ctx context.Context, src Source, dst Importer, since, until time.Time) (int, error) {
	if !dst.Settings(ctx).UseHealthData {
		return 0, ErrDisabled
	}

	status := src.Status(ctx)
	if !status.IsAvailable {
		return 0, fmt.Errorf("%w: %s", ErrUnavailable, status.ErrorMessage)
	}
	if !status.IsAuthorized {
		return 0, ErrNotAuthorized
	}

	data, err := src.FetchSwimmingWorkouts(ctx, since, until)
	if err != nil {
		return 0, fmt.Errorf("fetch swimming workouts: %w", err)
	}
	if data == nil {
		return 0, nil
	}

	return dst.ImportSwimmingData(ctx, data.Workouts, data.Segments), nil
}
