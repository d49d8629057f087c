// ABOUTME: Capability-gated adapter for an external health-data source.
// ABOUTME: Reports availability, persists authorization and fetches swims.
package healthdata

import (
	"context"
	"runtime"
	"time"

	"github.com/harperreed/swimbook/internal/models"
	"go.uber.org/zap"
)

// Status describes whether the health-data source can be used.
type Status struct {
	IsAvailable  bool   `json:"isAvailable"`
	IsAuthorized bool   `json:"isAuthorized"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// SwimmingData is a batch of workouts and segments fetched from the source.
type SwimmingData struct {
	Workouts []models.Workout
	Segments []models.Segment
}

// Source is the capability surface consumed by settings and sync.
type Source interface {
	Status(ctx context.Context) Status
	RequestAuthorization(ctx context.Context) bool
	FetchSwimmingWorkouts(ctx context.Context, start, end time.Time) (*SwimmingData, error)
}

// AuthStore persists the authorization flag across sessions.
type AuthStore interface {
	HealthDataAuthorized(ctx context.Context) bool
	SetHealthDataAuthorized(ctx context.Context, authorized bool)
}

// Platform describes where the process runs.
type Platform struct {
	OS          string
	NativeBuild bool
}

// CurrentPlatform returns the running platform. No native health
// integration is compiled into this binary.
func CurrentPlatform() Platform {
	return Platform{OS: runtime.GOOS, NativeBuild: false}
}

const (
	msgNotIOS         = "HealthKit je dostupný pouze na iOS"
	msgNotNativeBuild = "HealthKit vyžaduje nativní build"
)

// Service is the HealthKit-backed Source.
type Service struct {
	platform Platform
	auth     AuthStore
	logger   *zap.Logger
}

var _ Source = (*Service)(nil)

// NewService creates a Service for platform. A nil logger is a no-op logger.
func NewService(platform Platform, auth AuthStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{platform: platform, auth: auth, logger: logger}
}

// Status reports availability and the persisted authorization flag.
func (s *Service) Status(ctx context.Context) Status {
	if s.platform.OS != "ios" {
		return Status{ErrorMessage: msgNotIOS}
	}
	if !s.platform.NativeBuild {
		return Status{ErrorMessage: msgNotNativeBuild}
	}
	return Status{IsAvailable: true, IsAuthorized: s.auth.HealthDataAuthorized(ctx)}
}

// RequestAuthorization grants access when the source is available.
func (s *Service) RequestAuthorization(ctx context.Context) bool {
	status := s.Status(ctx)
	if !status.IsAvailable {
		s.logger.Info("health data not available", zap.String("reason", status.ErrorMessage))
		return false
	}
	s.auth.SetHealthDataAuthorized(ctx, true)
	return true
}

// FetchSwimmingWorkouts returns swims between start and end. It returns nil
// data when the source is unavailable or not authorized, and also when it is,
// since no native query is wired into this build.
func (s *Service) FetchSwimmingWorkouts(ctx context.Context, start, end time.Time) (*SwimmingData, error) {
	status := s.Status(ctx)
	if !status.IsAvailable || !status.IsAuthorized {
		return nil, nil
	}
	s.logger.Debug("health data fetch has no native query",
		zap.Time("start", start), zap.Time("end", end))
	return nil, nil
}

// strokeCodes follows HKSwimmingStrokeStyle.
var strokeCodes = map[int]models.StrokeStyle{
	0: models.StrokeUnknown,
	1: models.StrokeFreestyle,
	2: models.StrokeBackstroke,
	3: models.StrokeBreaststroke,
	4: models.StrokeButterfly,
	5: models.StrokeMedley,
}

// MapStroke converts a HealthKit stroke style code into a StrokeStyle.
// Unrecognized codes map to unknown.
func MapStroke(code int) models.StrokeStyle {
	if st, ok := strokeCodes[code]; ok {
		return st
	}
	return models.StrokeUnknown
}

// RequiredPermissions lists the HealthKit types a native build must request.
func RequiredPermissions() []string {
	return []string{
		"HKWorkoutTypeIdentifier",
		"HKQuantityTypeIdentifierSwimmingStrokeCount",
		"HKQuantityTypeIdentifierDistanceSwimming",
		"HKWorkoutRouteTypeIdentifier",
	}
}

// NativeBuildInstructions explains how to obtain a build with HealthKit access.
func NativeBuildInstructions() string {
	return `Pro přístup k HealthKit datům potřebujete:

1. Apple Developer účet ($99/rok)
   https://developer.apple.com/programs/

2. Nativní iOS build s HealthKit entitlements:
   com.apple.developer.healthkit = true
   com.apple.developer.healthkit.background-delivery = true

3. Popisy použití v Info.plist:
   NSHealthShareUsageDescription: "Kniha rekordů potřebuje přístup k vašim plaveckým datům pro zobrazení rekordů."
   NSHealthUpdateUsageDescription: "Kniha rekordů neukládá data do Health."

4. Implementaci healthdata.Source, která načítá plavecké tréninky
   a převádí je přes healthdata.BuildSwimmingData.`
}
