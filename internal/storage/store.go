// ABOUTME: Persistence gateway over a key-value backend for swim data.
// ABOUTME: Storage failures are logged and degrade to empty results, never raised.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/swimbook/internal/kv"
	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/records"
	"go.uber.org/zap"
)

// Document keys. Every document is stored whole as JSON.
const (
	keyPrefix           = "swim:"
	KeyWorkouts         = keyPrefix + "workouts"
	KeySegments         = keyPrefix + "segments"
	KeyRecords          = keyPrefix + "records"
	KeySettings         = keyPrefix + "settings"
	KeyInitialized      = keyPrefix + "initialized"
	KeyHealthAuthorized = keyPrefix + "healthdata-authorized"
)

// AllKeys lists every key the gateway owns.
var AllKeys = []string{
	KeyWorkouts, KeySegments, KeyRecords, KeySettings, KeyInitialized, KeyHealthAuthorized,
}

// ErrValidation marks input rejected before any write.
var ErrValidation = errors.New("validation failed")

// Store is the persistence gateway for workouts, segments, records and settings.
type Store struct {
	kv     kv.Store
	logger *zap.Logger
	now    func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed storage errors.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for seeding and sync stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRand sets the random source for sample data generation.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) {
		s.rng = rng
	}
}

// New creates a gateway over backend.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     backend,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.now().UnixNano()))
	}
	return s
}

// Backend returns the underlying key-value store.
func (s *Store) Backend() kv.Store {
	return s.kv
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// Initialize seeds a sample dataset and default settings on first run.
// It returns true only when seeding happened; later calls and failures return false.
func (s *Store) Initialize(ctx context.Context) bool {
	raw, err := s.kv.Get(ctx, KeyInitialized)
	switch {
	case err == nil && string(raw) == "true":
		return false
	case err != nil && !errors.Is(err, kv.ErrNotFound):
		s.logger.Error("read initialized marker", zap.Error(err))
		return false
	}

	s.rngMu.Lock()
	ds := records.GenerateSampleDataset(s.now(), s.rng)
	s.rngMu.Unlock()

	writes := []struct {
		key string
		doc any
	}{
		{KeyWorkouts, ds.Workouts},
		{KeySegments, ds.Segments},
		{KeyRecords, ds.Records},
		{KeySettings, models.DefaultSettings()},
		{KeyInitialized, true},
	}
	for _, w := range writes {
		if err := s.write(ctx, w.key, w.doc); err != nil {
			s.logger.Error("initialize data", zap.String("key", w.key), zap.Error(err))
			return false
		}
	}

	s.logger.Info("seeded sample data",
		zap.Int("workouts", len(ds.Workouts)),
		zap.Int("segments", len(ds.Segments)),
		zap.Int("records", len(ds.Records)))
	return true
}

// Workouts returns every stored workout.
func (s *Store) Workouts(ctx context.Context) []models.Workout {
	out, _ := readDoc[[]models.Workout](ctx, s, KeyWorkouts)
	if out == nil {
		out = []models.Workout{}
	}
	return out
}

// Segments returns every stored segment with its laps.
func (s *Store) Segments(ctx context.Context) []models.Segment {
	out, _ := readDoc[[]models.Segment](ctx, s, KeySegments)
	if out == nil {
		out = []models.Segment{}
	}
	return out
}

// Records returns the stored records.
func (s *Store) Records(ctx context.Context) []models.SwimmingRecord {
	out, _ := readDoc[[]models.SwimmingRecord](ctx, s, KeyRecords)
	if out == nil {
		out = []models.SwimmingRecord{}
	}
	return out
}

// Settings returns the stored settings, or defaults when none are readable.
func (s *Store) Settings(ctx context.Context) models.Settings {
	out, ok := readDoc[models.Settings](ctx, s, KeySettings)
	if !ok {
		return models.DefaultSettings()
	}
	return out
}

// SegmentByID returns the segment with id, or nil.
func (s *Store) SegmentByID(ctx context.Context, id uuid.UUID) *models.Segment {
	for _, seg := range s.Segments(ctx) {
		if seg.ID == id {
			seg := seg
			return &seg
		}
	}
	return nil
}

// WorkoutByID returns the workout with id, or nil.
func (s *Store) WorkoutByID(ctx context.Context, id uuid.UUID) *models.Workout {
	for _, w := range s.Workouts(ctx) {
		if w.ID == id {
			w := w
			return &w
		}
	}
	return nil
}

// WorkoutSegments returns the segments of one workout in stored order.
func (s *Store) WorkoutSegments(ctx context.Context, workoutID uuid.UUID) []models.Segment {
	var out []models.Segment
	for _, seg := range s.Segments(ctx) {
		if seg.WorkoutID == workoutID {
			out = append(out, seg)
		}
	}
	return out
}

// PoolLength returns the pool length of the workout seg belongs to, or
// fallback when the workout is missing or has none.
func (s *Store) PoolLength(ctx context.Context, seg models.Segment, fallback int) int {
	if w := s.WorkoutByID(ctx, seg.WorkoutID); w != nil && w.PoolLengthMeters > 0 {
		return w.PoolLengthMeters
	}
	return fallback
}

// RecordHistory returns every segment swum at key, grouped by day in loc.
func (s *Store) RecordHistory(ctx context.Context, key models.RecordKey, loc *time.Location) []models.DayGroup {
	return records.GroupByDay(records.FilterByKey(s.Segments(ctx), key), loc)
}

// SaveSettings overwrites the settings document.
// Invalid settings are rejected with ErrValidation; storage failures are logged.
func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.write(ctx, KeySettings, settings); err != nil {
		s.logger.Error("save settings", zap.Error(err))
	}
	return nil
}

// UpdateSegmentStyle changes one segment's stroke style and rebuilds records.
//
// The style string is parsed strictly; an unknown value returns ErrValidation
// and nothing is written. Lap styles are left as recorded. Segments are written
// before records, so a failure between the two leaves records stale until the
// next RecalculateRecords.
func (s *Store) UpdateSegmentStyle(ctx context.Context, segmentID uuid.UUID, style string) error {
	newStyle, err := models.ParseStrokeStyle(style)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	segments, ok := s.readSegmentsForUpdate(ctx)
	if !ok {
		return nil
	}

	for i := range segments {
		if segments[i].ID == segmentID {
			segments[i].StrokeStyle = newStyle
		}
	}

	if err := s.write(ctx, KeySegments, segments); err != nil {
		s.logger.Error("update segment style", zap.String("segment", segmentID.String()), zap.Error(err))
		return nil
	}
	s.writeRecords(ctx, segments)
	return nil
}

// RecalculateRecords rebuilds the records document from stored segments.
func (s *Store) RecalculateRecords(ctx context.Context) {
	segments, ok := s.readSegmentsForUpdate(ctx)
	if !ok {
		return
	}
	s.writeRecords(ctx, segments)
}

// ResetAll clears the initialized marker and seeds a fresh dataset.
func (s *Store) ResetAll(ctx context.Context) bool {
	if err := s.kv.Delete(ctx, KeyInitialized); err != nil {
		s.logger.Error("reset data", zap.Error(err))
		return false
	}
	s.logger.Info("reset all data")
	return s.Initialize(ctx)
}

// ImportSwimmingData appends workouts and segments not already stored,
// rebuilds records and stamps the last health-data sync time.
// It returns how many segments were added.
func (s *Store) ImportSwimmingData(ctx context.Context, workouts []models.Workout, segments []models.Segment) int {
	storedSegments, ok := s.readSegmentsForUpdate(ctx)
	if !ok {
		return 0
	}
	storedWorkouts, ok := readForUpdate[[]models.Workout](ctx, s, KeyWorkouts)
	if !ok {
		return 0
	}

	knownWorkouts := make(map[uuid.UUID]bool, len(storedWorkouts))
	for _, w := range storedWorkouts {
		knownWorkouts[w.ID] = true
	}
	for _, w := range workouts {
		if !knownWorkouts[w.ID] {
			knownWorkouts[w.ID] = true
			storedWorkouts = append(storedWorkouts, w)
		}
	}

	knownSegments := make(map[uuid.UUID]bool, len(storedSegments))
	for _, seg := range storedSegments {
		knownSegments[seg.ID] = true
	}
	added := 0
	for _, seg := range segments {
		if knownSegments[seg.ID] {
			continue
		}
		knownSegments[seg.ID] = true
		storedSegments = append(storedSegments, seg)
		added++
	}

	if err := s.write(ctx, KeyWorkouts, storedWorkouts); err != nil {
		s.logger.Error("import workouts", zap.Error(err))
		return 0
	}
	if err := s.write(ctx, KeySegments, storedSegments); err != nil {
		s.logger.Error("import segments", zap.Error(err))
		return 0
	}
	s.writeRecords(ctx, storedSegments)

	s.stampHealthDataSync(ctx)

	s.logger.Info("imported swimming data", zap.Int("segments", added))
	return added
}

// stampHealthDataSync records the sync time in settings. A failed settings
// read skips the stamp rather than overwriting settings with defaults.
func (s *Store) stampHealthDataSync(ctx context.Context) {
	stored, ok := readForUpdate[*models.Settings](ctx, s, KeySettings)
	if !ok {
		s.logger.Warn("skip health data sync stamp", zap.String("key", KeySettings))
		return
	}
	settings := models.DefaultSettings()
	if stored != nil {
		settings = *stored
	}
	synced := s.now()
	settings.LastHealthDataSync = &synced
	if err := s.write(ctx, KeySettings, settings); err != nil {
		s.logger.Error("stamp health data sync", zap.Error(err))
	}
}

// HealthDataAuthorized reports the persisted health-data authorization flag.
func (s *Store) HealthDataAuthorized(ctx context.Context) bool {
	authorized, _ := readDoc[bool](ctx, s, KeyHealthAuthorized)
	return authorized
}

// SetHealthDataAuthorized persists the health-data authorization flag.
func (s *Store) SetHealthDataAuthorized(ctx context.Context, authorized bool) {
	if err := s.write(ctx, KeyHealthAuthorized, authorized); err != nil {
		s.logger.Error("save health data authorization", zap.Error(err))
	}
}

// readSegmentsForUpdate reads segments ahead of a rewrite.
func (s *Store) readSegmentsForUpdate(ctx context.Context) ([]models.Segment, bool) {
	segments, ok := readForUpdate[[]models.Segment](ctx, s, KeySegments)
	if ok && segments == nil {
		segments = []models.Segment{}
	}
	return segments, ok
}

func (s *Store) writeRecords(ctx context.Context, segments []models.Segment) {
	if err := s.write(ctx, KeyRecords, records.ComputeRecords(segments)); err != nil {
		s.logger.Error("write records", zap.Error(err))
	}
}

func (s *Store) write(ctx context.Context, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, data)
}

// readDoc decodes the document at key. ok is false when the key is missing,
// unreadable or corrupt; only the latter two are logged.
func readDoc[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var out T
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return out, false
	}
	if err != nil {
		s.logger.Error("read document", zap.String("key", key), zap.Error(err))
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Error("decode document", zap.String("key", key), zap.Error(err))
		var zero T
		return zero, false
	}
	return out, true
}

// readForUpdate reads the document at key ahead of a rewrite. A missing
// document is the zero value; any other failure aborts so stored data is not
// replaced by an empty collection.
func readForUpdate[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var out T
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return out, true
	}
	if err != nil {
		s.logger.Error("read document", zap.String("key", key), zap.Error(err))
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.Error("decode document", zap.String("key", key), zap.Error(err))
		return out, false
	}
	return out, true
}

// MatchSegments returns segments whose ID starts with prefix.
func (s *Store) MatchSegments(ctx context.Context, prefix string) []models.Segment {
	var out []models.Segment
	for _, seg := range s.Segments(ctx) {
		if strings.HasPrefix(seg.ID.String(), strings.ToLower(prefix)) {
			out = append(out, seg)
		}
	}
	return out
}

// MatchWorkouts returns workouts whose ID starts with prefix.
func (s *Store) MatchWorkouts(ctx context.Context, prefix string) []models.Workout {
	var out []models.Workout
	for _, w := range s.Workouts(ctx) {
		if strings.HasPrefix(w.ID.String(), strings.ToLower(prefix)) {
			out = append(out, w)
		}
	}
	return out
}
