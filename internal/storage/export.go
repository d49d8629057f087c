// ABOUTME: Export and import functionality for swim data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats; JSON import.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/records"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

// ExportData represents the full export format for swim data.
type ExportData struct {
	Version    string                  `json:"version" yaml:"version"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool       string                  `json:"tool" yaml:"tool"`
	Settings   models.Settings         `json:"settings" yaml:"settings"`
	Workouts   []models.Workout        `json:"workouts" yaml:"workouts"`
	Segments   []models.Segment        `json:"segments" yaml:"segments"`
	Records    []models.SwimmingRecord `json:"records" yaml:"records"`
}

// Export collects every stored document.
func (s *Store) Export(ctx context.Context) *ExportData {
	return &ExportData{
		Version:    exportVersion,
		ExportedAt: s.now(),
		Tool:       "swim",
		Settings:   s.Settings(ctx),
		Workouts:   s.Workouts(ctx),
		Segments:   s.Segments(ctx),
		Records:    s.Records(ctx),
	}
}

// ExportJSON exports all data as JSON.
func (s *Store) ExportJSON(ctx context.Context) ([]byte, error) {
	return json.MarshalIndent(s.Export(ctx), "", "  ")
}

// ExportYAML exports a compact, human-readable view: records and segments
// without lap detail.
func (s *Store) ExportYAML(ctx context.Context) ([]byte, error) {
	data := s.Export(ctx)

	yamlData := struct {
		Version    string                  `yaml:"version"`
		ExportedAt string                  `yaml:"exported_at"`
		Tool       string                  `yaml:"tool"`
		Records    map[string][]yamlRecord `yaml:"records"`
		Segments   []yamlSegment           `yaml:"segments"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Records:    make(map[string][]yamlRecord),
		Segments:   make([]yamlSegment, 0, len(data.Segments)),
	}

	for _, r := range data.Records {
		style := string(r.StrokeStyle)
		yamlData.Records[style] = append(yamlData.Records[style], yamlRecord{
			Distance: r.DistanceMeters,
			Time:     records.FormatElapsed(r.BestElapsedSeconds),
			Seconds:  r.BestElapsedSeconds,
			Date:     r.BestDate.Format(time.RFC3339),
			Segment:  r.BestSegmentID.String()[:8],
		})
	}
	for style := range yamlData.Records {
		rs := yamlData.Records[style]
		sort.Slice(rs, func(i, j int) bool { return rs[i].Distance < rs[j].Distance })
	}

	for _, seg := range data.Segments {
		yamlData.Segments = append(yamlData.Segments, yamlSegment{
			ID:       seg.ID.String()[:8],
			Workout:  seg.WorkoutID.String()[:8],
			Start:    seg.StartDateTime.Format(time.RFC3339),
			Style:    string(seg.StrokeStyle),
			Distance: seg.DistanceMeters,
			Time:     records.FormatElapsed(seg.ElapsedSeconds),
			Laps:     len(seg.Laps),
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlRecord struct {
	Distance int     `yaml:"distance"`
	Time     string  `yaml:"time"`
	Seconds  float64 `yaml:"seconds"`
	Date     string  `yaml:"date"`
	Segment  string  `yaml:"segment"`
}

type yamlSegment struct {
	ID       string `yaml:"id"`
	Workout  string `yaml:"workout"`
	Start    string `yaml:"start"`
	Style    string `yaml:"style"`
	Distance int    `yaml:"distance"`
	Time     string `yaml:"time"`
	Laps     int    `yaml:"laps"`
}

// ExportMarkdown renders the records book as Markdown tables, one per
// visible stroke style, followed by a workout log.
func (s *Store) ExportMarkdown(ctx context.Context, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	data := s.Export(ctx)
	book := records.BuildBook(data.Records, data.Settings.VisibleStrokeStyles())

	var sb strings.Builder
	now := data.ExportedAt.In(loc)
	sb.WriteString(fmt.Sprintf("# Kniha rekordů - %s\n\n", data.Settings.DisplayName))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, style := range book.Styles {
		sb.WriteString(fmt.Sprintf("## %s\n\n", style.Label()))
		if book.Count(style) == 0 {
			sb.WriteString("_No records yet._\n\n")
			continue
		}
		sb.WriteString("| Distance | Time | Date |\n")
		sb.WriteString("|----------|------|------|\n")
		for _, d := range models.Distances {
			rec := book.Slots[style][d]
			if rec == nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("| %d m | %s | %s |\n",
				d, records.FormatElapsed(rec.BestElapsedSeconds), records.FormatDate(rec.BestDate.In(loc))))
		}
		sb.WriteString("\n")
	}

	if len(data.Workouts) > 0 {
		workouts := append([]models.Workout(nil), data.Workouts...)
		sort.Slice(workouts, func(i, j int) bool { return workouts[i].StartDate.After(workouts[j].StartDate) })

		sb.WriteString("## Workouts\n\n")
		sb.WriteString("| Date | Distance | Duration | Pool |\n")
		sb.WriteString("|------|----------|----------|------|\n")
		for _, w := range workouts {
			sb.WriteString(fmt.Sprintf("| %s | %d m | %s | %d m |\n",
				w.StartDate.In(loc).Format("2006-01-02 15:04"),
				w.TotalDistanceMeters, records.FormatElapsed(w.DurationSeconds), w.PoolLengthMeters))
		}
	}

	return sb.String(), nil
}

// ImportJSON replaces all stored swim data with a previously exported JSON
// document. Workouts and segments are validated first and records are rebuilt from them,
// so exported records are never trusted as-is.
func (s *Store) ImportJSON(ctx context.Context, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: unmarshal JSON: %v", ErrValidation, err)
	}
	return s.ImportData(ctx, &data)
}

// ImportData validates data and writes it over the stored documents.
func (s *Store) ImportData(ctx context.Context, data *ExportData) error {
	poolLengths := make(map[string]int, len(data.Workouts))
	for _, w := range data.Workouts {
		poolLengths[w.ID.String()] = w.PoolLengthMeters
	}
	for _, seg := range data.Segments {
		pool, known := poolLengths[seg.WorkoutID.String()]
		if !known {
			return fmt.Errorf("%w: segment %s references unknown workout %s", ErrValidation, seg.ID, seg.WorkoutID)
		}
		if pool <= 0 {
			pool = models.DefaultPoolLength
		}
		if !seg.StrokeStyle.IsValid() {
			return fmt.Errorf("%w: segment %s: %v", ErrValidation, seg.ID, models.ErrInvalidStrokeStyle)
		}
		if err := seg.Validate(pool); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	for _, w := range data.Workouts {
		if err := w.Validate(data.Segments); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	settings := data.Settings
	if settings.ThemeMode == "" {
		settings = models.DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	workouts := data.Workouts
	if workouts == nil {
		workouts = []models.Workout{}
	}
	segments := data.Segments
	if segments == nil {
		segments = []models.Segment{}
	}

	writes := []struct {
		key string
		doc any
	}{
		{KeyWorkouts, workouts},
		{KeySegments, segments},
		{KeyRecords, records.ComputeRecords(segments)},
		{KeySettings, settings},
		{KeyInitialized, true},
	}
	for _, w := range writes {
		if err := s.write(ctx, w.key, w.doc); err != nil {
			return fmt.Errorf("import %s: %w", w.key, err)
		}
	}

	s.logger.Info("imported export", zap.Int("workouts", len(workouts)), zap.Int("segments", len(segments)))
	return nil
}
