// ABOUTME: MCP tool implementations for the swim records book.
// ABOUTME: Exposes records, history, segments, style edits, splits and settings.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/swimbook/internal/healthdata"
	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/records"
	"github.com/harperreed/swimbook/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_records",
		Description: "List best times per stroke style and distance",
	}, s.handleListRecords)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_history",
		Description: "List every swim for one stroke style and distance, grouped by day",
	}, s.handleRecordHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_segment",
		Description: "Get a segment with its laps, workout and best splits",
	}, s.handleGetSegment)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with all its segments",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_segment_style",
		Description: "Correct the stroke style of a segment and rebuild records",
	}, s.handleUpdateSegmentStyle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recalculate_records",
		Description: "Rebuild all records from stored segments",
	}, s.handleRecalculateRecords)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "best_split",
		Description: "Fastest contiguous split of a segment for a target distance",
	}, s.handleBestSplit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_settings",
		Description: "Get user settings",
	}, s.handleGetSettings)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_settings",
		Description: "Update user settings; omitted fields are left unchanged",
	}, s.handleUpdateSettings)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_data",
		Description: "Delete all swims and settings and reseed sample data",
	}, s.handleResetData)

	if s.health != nil {
		mcp.AddTool(s.mcpServer, &mcp.Tool{
			Name:        "healthdata_status",
			Description: "Report whether health data import is available and authorized",
		}, s.handleHealthDataStatus)
	}
}

// Tool input/output types

type listRecordsInput struct {
	Style string `json:"style,omitempty" jsonschema:"Filter by stroke style (freestyle, backstroke, breaststroke, butterfly, medley, unknown)"`
}

type recordEntry struct {
	ID        string  `json:"id"`
	Style     string  `json:"style"`
	Label     string  `json:"label"`
	Distance  int     `json:"distance"`
	Time      string  `json:"time"`
	Seconds   float64 `json:"seconds"`
	Date      string  `json:"date"`
	SegmentID string  `json:"segment_id"`
}

type recordsOutput struct {
	Count   int           `json:"count"`
	Records []recordEntry `json:"records"`
	Message string        `json:"message,omitempty"`
}

type recordHistoryInput struct {
	Style    string `json:"style" jsonschema:"Stroke style"`
	Distance int    `json:"distance" jsonschema:"Distance in meters (50, 100, 200, 300, 400, 500, 600)"`
}

type segmentEntry struct {
	ID      string  `json:"id"`
	Start   string  `json:"start"`
	Time    string  `json:"time"`
	Seconds float64 `json:"seconds"`
}

type dayEntry struct {
	Date     string         `json:"date"`
	BestTime string         `json:"best_time"`
	Segments []segmentEntry `json:"segments"`
}

type historyOutput struct {
	Style    string     `json:"style"`
	Distance int        `json:"distance"`
	Days     []dayEntry `json:"days"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"ID or unique ID prefix"`
}

type segmentOutput struct {
	Segment models.Segment  `json:"segment"`
	Workout *models.Workout `json:"workout,omitempty"`
	Splits  []records.Split `json:"splits"`
}

type workoutOutput struct {
	Workout  models.Workout   `json:"workout"`
	Segments []models.Segment `json:"segments"`
}

type updateStyleInput struct {
	ID    string `json:"id" jsonschema:"Segment ID or unique prefix"`
	Style string `json:"style" jsonschema:"New stroke style"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type recalcOutput struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type bestSplitInput struct {
	SegmentID string `json:"segment_id" jsonschema:"Segment ID or unique prefix"`
	Distance  int    `json:"distance" jsonschema:"Target distance in meters"`
}

type splitOutput struct {
	SegmentID string  `json:"segment_id"`
	Distance  int     `json:"distance"`
	Found     bool    `json:"found"`
	Time      string  `json:"time,omitempty"`
	Seconds   float64 `json:"seconds,omitempty"`
	Message   string  `json:"message"`
}

type emptyInput struct{}

type updateSettingsInput struct {
	DisplayName        *string `json:"display_name,omitempty" jsonschema:"Name shown on the records book"`
	AvatarIndex        *int    `json:"avatar_index,omitempty" jsonschema:"Avatar number 0-5"`
	ShowUnknownRecords *bool   `json:"show_unknown_records,omitempty" jsonschema:"Show records with unknown stroke style"`
	ThemeMode          *string `json:"theme_mode,omitempty" jsonschema:"light, dark or system"`
	UseHealthData      *bool   `json:"use_health_data,omitempty" jsonschema:"Enable health data import"`
}

type resetInput struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true to delete all data"`
}

// Tool handlers

func (s *Server) handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input listRecordsInput) (*mcp.CallToolResult, recordsOutput, error) {
	styles := s.store.Settings(ctx).VisibleStrokeStyles()
	if input.Style != "" {
		style, err := models.ParseStrokeStyle(input.Style)
		if err != nil {
			return nil, recordsOutput{}, err
		}
		styles = []models.StrokeStyle{style}
	}

	book := records.BuildBook(s.store.Records(ctx), styles)
	out := recordsOutput{Records: []recordEntry{}}
	for _, style := range book.Styles {
		for _, d := range models.Distances {
			if rec := book.Slots[style][d]; rec != nil {
				out.Records = append(out.Records, s.recordEntry(*rec))
			}
		}
	}
	out.Count = len(out.Records)
	if out.Count == 0 {
		out.Message = "No records found."
	}
	return nil, out, nil
}

func (s *Server) handleRecordHistory(ctx context.Context, req *mcp.CallToolRequest, input recordHistoryInput) (*mcp.CallToolResult, historyOutput, error) {
	style, err := models.ParseStrokeStyle(input.Style)
	if err != nil {
		return nil, historyOutput{}, err
	}
	if !models.IsRecordDistance(input.Distance) {
		return nil, historyOutput{}, fmt.Errorf("unsupported distance: %d", input.Distance)
	}

	key := models.RecordKey{StrokeStyle: style, DistanceMeters: input.Distance}
	out := historyOutput{Style: string(style), Distance: input.Distance, Days: []dayEntry{}}
	for _, g := range s.store.RecordHistory(ctx, key, s.loc) {
		day := dayEntry{
			Date:     records.FormatDate(g.Date.In(s.loc)),
			BestTime: records.FormatElapsed(g.BestTime),
		}
		for _, seg := range g.Segments {
			day.Segments = append(day.Segments, segmentEntry{
				ID:      seg.ID.String()[:8],
				Start:   records.FormatDateTime(seg.StartDateTime.In(s.loc)),
				Time:    records.FormatElapsed(seg.ElapsedSeconds),
				Seconds: seg.ElapsedSeconds,
			})
		}
		out.Days = append(out.Days, day)
	}
	return nil, out, nil
}

func (s *Server) handleGetSegment(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, segmentOutput, error) {
	seg, err := s.resolveSegment(ctx, input.ID)
	if err != nil {
		return nil, segmentOutput{}, err
	}

	return nil, segmentOutput{
		Segment: seg,
		Workout: s.store.WorkoutByID(ctx, seg.WorkoutID),
		Splits:  records.BestSplits(seg, s.store.PoolLength(ctx, seg, s.poolLength)),
	}, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, workoutOutput, error) {
	matches := s.store.MatchWorkouts(ctx, input.ID)
	switch {
	case input.ID == "" || len(matches) == 0:
		return nil, workoutOutput{}, fmt.Errorf("workout not found: %s", input.ID)
	case len(matches) > 1:
		return nil, workoutOutput{}, fmt.Errorf("ambiguous workout ID prefix: %s", input.ID)
	}

	w := matches[0]
	return nil, workoutOutput{Workout: w, Segments: s.store.WorkoutSegments(ctx, w.ID)}, nil
}

func (s *Server) handleUpdateSegmentStyle(ctx context.Context, req *mcp.CallToolRequest, input updateStyleInput) (*mcp.CallToolResult, simpleOutput, error) {
	seg, err := s.resolveSegment(ctx, input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.store.UpdateSegmentStyle(ctx, seg.ID, input.Style); err != nil {
		if errors.Is(err, storage.ErrValidation) {
			return nil, simpleOutput{}, fmt.Errorf("invalid style %q: expected one of freestyle, backstroke, breaststroke, butterfly, medley, unknown", input.Style)
		}
		return nil, simpleOutput{}, err
	}

	updated := s.store.SegmentByID(ctx, seg.ID)
	if updated == nil {
		return nil, simpleOutput{}, fmt.Errorf("segment %s could not be re-read", seg.ID.String()[:8])
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Segment %s is now %s", seg.ID.String()[:8], updated.StrokeStyle.Label()),
	}, nil
}

func (s *Server) handleRecalculateRecords(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, recalcOutput, error) {
	s.store.RecalculateRecords(ctx)
	count := len(s.store.Records(ctx))
	return nil, recalcOutput{
		Message: fmt.Sprintf("Recalculated %d records", count),
		Count:   count,
	}, nil
}

func (s *Server) handleBestSplit(ctx context.Context, req *mcp.CallToolRequest, input bestSplitInput) (*mcp.CallToolResult, splitOutput, error) {
	seg, err := s.resolveSegment(ctx, input.SegmentID)
	if err != nil {
		return nil, splitOutput{}, err
	}
	if input.Distance <= 0 {
		return nil, splitOutput{}, fmt.Errorf("distance must be positive, got %d", input.Distance)
	}

	out := splitOutput{SegmentID: seg.ID.String()[:8], Distance: input.Distance}
	pool := s.store.PoolLength(ctx, seg, s.poolLength)
	best, ok := records.BestWindowTime(seg.Laps, input.Distance, pool)
	if !ok {
		out.Message = fmt.Sprintf("Segment has only %d laps; %d m needs %d",
			len(seg.Laps), input.Distance, records.LapsNeeded(input.Distance, pool))
		return nil, out, nil
	}

	out.Found = true
	out.Seconds = best
	out.Time = records.FormatElapsed(best)
	out.Message = fmt.Sprintf("Best %d m: %s", input.Distance, out.Time)
	return nil, out, nil
}

func (s *Server) handleGetSettings(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, models.Settings, error) {
	return nil, s.store.Settings(ctx), nil
}

func (s *Server) handleUpdateSettings(ctx context.Context, req *mcp.CallToolRequest, input updateSettingsInput) (*mcp.CallToolResult, models.Settings, error) {
	settings := s.store.Settings(ctx)

	if input.DisplayName != nil {
		settings.DisplayName = *input.DisplayName
	}
	if input.AvatarIndex != nil {
		settings.AvatarIndex = *input.AvatarIndex
	}
	if input.ShowUnknownRecords != nil {
		settings.ShowUnknownRecords = *input.ShowUnknownRecords
	}
	if input.ThemeMode != nil {
		mode, err := models.ParseThemeMode(*input.ThemeMode)
		if err != nil {
			return nil, models.Settings{}, err
		}
		settings.ThemeMode = mode
	}
	if input.UseHealthData != nil {
		settings.UseHealthData = *input.UseHealthData
	}

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return nil, models.Settings{}, err
	}
	return nil, s.store.Settings(ctx), nil
}

func (s *Server) handleResetData(ctx context.Context, req *mcp.CallToolRequest, input resetInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !input.Confirm {
		return nil, simpleOutput{}, fmt.Errorf("reset requires confirm=true")
	}
	if !s.store.ResetAll(ctx) {
		return nil, simpleOutput{}, fmt.Errorf("reset failed; see server log")
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Reset complete: %d segments, %d records", len(s.store.Segments(ctx)), len(s.store.Records(ctx))),
	}, nil
}

func (s *Server) handleHealthDataStatus(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, healthdata.Status, error) {
	return nil, s.health.Status(ctx), nil
}

func (s *Server) resolveSegment(ctx context.Context, prefix string) (models.Segment, error) {
	if prefix == "" {
		return models.Segment{}, fmt.Errorf("segment ID is required")
	}
	matches := s.store.MatchSegments(ctx, prefix)
	switch len(matches) {
	case 0:
		return models.Segment{}, fmt.Errorf("segment not found: %s", prefix)
	case 1:
		return matches[0], nil
	default:
		return models.Segment{}, fmt.Errorf("ambiguous segment ID prefix: %s", prefix)
	}
}

func (s *Server) recordEntry(r models.SwimmingRecord) recordEntry {
	return recordEntry{
		ID:        r.ID.String()[:8],
		Style:     string(r.StrokeStyle),
		Label:     r.StrokeStyle.Label(),
		Distance:  r.DistanceMeters,
		Time:      records.FormatElapsed(r.BestElapsedSeconds),
		Seconds:   r.BestElapsedSeconds,
		Date:      records.FormatDate(r.BestDate.In(s.loc)),
		SegmentID: r.BestSegmentID.String()[:8],
	}
}
