// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers over seeded data.
package mcp

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/swimbook/internal/healthdata"
	"github.com/harperreed/swimbook/internal/kv"
	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/records"
	"github.com/harperreed/swimbook/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestServer creates a server over a seeded in-memory store.
func setupTestServer(t *testing.T, seed bool) (*Server, *storage.Store) {
	t.Helper()

	store := storage.New(kv.NewMemory(), storage.WithRand(rand.New(rand.NewSource(7))))
	if seed && !store.Initialize(context.Background()) {
		t.Fatal("Initialize did not seed data")
	}

	server, err := NewServer(store, Options{
		Location: time.UTC,
		Health:   healthdata.NewService(healthdata.Platform{OS: "linux"}, store, nil),
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, store
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t, false)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.store == nil {
		t.Error("Expected non-nil store")
	}
	if server.poolLength != models.DefaultPoolLength {
		t.Errorf("poolLength = %d, want default %d", server.poolLength, models.DefaultPoolLength)
	}
}

func TestHandleListRecords(t *testing.T) {
	server, store := setupTestServer(t, true)
	ctx := context.Background()

	_, out, err := server.handleListRecords(ctx, &mcp.CallToolRequest{}, listRecordsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Count != len(store.Records(ctx)) {
		t.Errorf("Count = %d, want %d", out.Count, len(store.Records(ctx)))
	}

	_, out, err = server.handleListRecords(ctx, &mcp.CallToolRequest{}, listRecordsInput{Style: "Freestyle"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, r := range out.Records {
		if r.Style != "freestyle" {
			t.Errorf("Filtered record has style %s", r.Style)
		}
	}

	if _, _, err := server.handleListRecords(ctx, &mcp.CallToolRequest{}, listRecordsInput{Style: "crawl"}); err == nil {
		t.Error("Expected error for unknown style")
	}
}

func TestHandleListRecordsEmpty(t *testing.T) {
	server, _ := setupTestServer(t, false)

	_, out, err := server.handleListRecords(context.Background(), &mcp.CallToolRequest{}, listRecordsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Count != 0 || out.Message == "" {
		t.Errorf("Expected empty result with message, got %+v", out)
	}
}

func TestHandleRecordHistory(t *testing.T) {
	server, store := setupTestServer(t, true)
	ctx := context.Background()
	rec := store.Records(ctx)[0]

	_, out, err := server.handleRecordHistory(ctx, &mcp.CallToolRequest{}, recordHistoryInput{
		Style:    string(rec.StrokeStyle),
		Distance: rec.DistanceMeters,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.Days) == 0 {
		t.Fatal("Expected at least one day")
	}

	want := records.FormatElapsed(rec.BestElapsedSeconds)
	found := false
	for _, d := range out.Days {
		if d.BestTime == want {
			found = true
		}
	}
	if !found {
		t.Errorf("No day has the record time %s", want)
	}
}

func TestHandleRecordHistoryInvalid(t *testing.T) {
	server, _ := setupTestServer(t, true)
	ctx := context.Background()

	tests := []recordHistoryInput{
		{Style: "doggy", Distance: 100},
		{Style: "freestyle", Distance: 150},
	}
	for _, in := range tests {
		if _, _, err := server.handleRecordHistory(ctx, &mcp.CallToolRequest{}, in); err == nil {
			t.Errorf("Expected error for %+v", in)
		}
	}
}

func TestHandleGetSegment(t *testing.T) {
	server, store := setupTestServer(t, true)
	ctx := context.Background()
	seg := store.Segments(ctx)[0]

	_, out, err := server.handleGetSegment(ctx, &mcp.CallToolRequest{}, idInput{ID: seg.ID.String()})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Segment.ID != seg.ID {
		t.Errorf("Segment ID = %s, want %s", out.Segment.ID, seg.ID)
	}
	if out.Workout == nil || out.Workout.ID != seg.WorkoutID {
		t.Error("Expected owning workout")
	}
	if len(out.Splits) != len(records.QualifyingDistances(seg.DistanceMeters)) {
		t.Errorf("Splits = %d, want one per qualifying distance", len(out.Splits))
	}
}

func TestHandleGetSegmentNotFound(t *testing.T) {
	server, _ := setupTestServer(t, true)

	_, _, err := server.handleGetSegment(context.Background(), &mcp.CallToolRequest{}, idInput{ID: "zzzzzzzz"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestHandleGetWorkout(t *testing.T) {
	server, store := setupTestServer(t, true)
	ctx := context.Background()
	w := store.Workouts(ctx)[0]

	_, out, err := server.handleGetWorkout(ctx, &mcp.CallToolRequest{}, idInput{ID: w.ID.String()[:13]})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Workout.ID != w.ID {
		t.Errorf("Workout ID = %s, want %s", out.Workout.ID, w.ID)
	}
	if len(out.Segments) == 0 {
		t.Error("Expected workout segments")
	}
	for _, seg := range out.Segments {
		if seg.WorkoutID != w.ID {
			t.Errorf("Segment %s belongs to another workout", seg.ID)
		}
	}

	if _, _, err := server.handleGetWorkout(ctx, &mcp.CallToolRequest{}, idInput{}); err == nil {
		t.Error("Expected error for empty ID")
	}
}

func TestHandleUpdateSegmentStyle(t *testing.T) {
	server, store := setupTestServer(t, true)
	ctx := context.Background()
	seg := store.Segments(ctx)[0]

	_, out, err := server.handleUpdateSegmentStyle(ctx, &mcp.CallToolRequest{}, updateStyleInput{
		ID:    seg.ID.String(),
		Style: "butterfly",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.Message, models.StrokeButterfly.Label()) {
		t.Errorf("Message %q should name the new style", out.Message)
	}
	if got := store.SegmentByID(ctx, seg.ID).StrokeStyle; got != models.StrokeButterfly {
		t.Errorf("StrokeStyle = %s, want butterfly", got)
	}

	_, _, err = server.handleUpdateSegmentStyle(ctx, &mcp.CallToolRequest{}, updateStyleInput{
		ID:    seg.ID.String(),
		Style: "doggy paddle",
	})
	if err == nil || !strings.Contains(err.Error(), "invalid style") {
		t.Errorf("Expected invalid style error, got %v", err)
	}
}

func TestHandleRecalculateRecords(t *testing.T) {
	server, store := setupTestServer(t, true)
	ctx := context.Background()

	_, out, err := server.handleRecalculateRecords(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Count != len(records.ComputeRecords(store.Segments(ctx))) {
		t.Errorf("Count = %d, want %d", out.Count, len(records.ComputeRecords(store.Segments(ctx))))
	}
}

func TestHandleBestSplit(t *testing.T) {
	server, store := setupTestServer(t, true)
	ctx := context.Background()

	var seg models.Segment
	for _, s := range store.Segments(ctx) {
		if s.DistanceMeters >= 200 {
			seg = s
			break
		}
	}
	if len(seg.Laps) == 0 {
		t.Skip("no segment of 200 m or more in sample data")
	}

	_, out, err := server.handleBestSplit(ctx, &mcp.CallToolRequest{}, bestSplitInput{SegmentID: seg.ID.String(), Distance: 100})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want, _ := records.BestWindowTime(seg.Laps, 100, models.DefaultPoolLength)
	if !out.Found || out.Seconds != want {
		t.Errorf("Split = %+v, want %.2f", out, want)
	}

	_, out, err = server.handleBestSplit(ctx, &mcp.CallToolRequest{}, bestSplitInput{SegmentID: seg.ID.String(), Distance: seg.DistanceMeters + 50})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Found {
		t.Error("Expected no split longer than the segment")
	}

	if _, _, err := server.handleBestSplit(ctx, &mcp.CallToolRequest{}, bestSplitInput{SegmentID: seg.ID.String()}); err == nil {
		t.Error("Expected error for zero distance")
	}
}

func TestHandleSettings(t *testing.T) {
	server, _ := setupTestServer(t, true)
	ctx := context.Background()

	_, got, err := server.handleGetSettings(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != models.DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults", got)
	}

	name := "Bára"
	avatar := 2
	theme := "dark"
	_, got, err = server.handleUpdateSettings(ctx, &mcp.CallToolRequest{}, updateSettingsInput{
		DisplayName: &name,
		AvatarIndex: &avatar,
		ThemeMode:   &theme,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.DisplayName != name || got.AvatarIndex != avatar || got.ThemeMode != models.ThemeDark {
		t.Errorf("Settings not updated: %+v", got)
	}
	if !got.ShowUnknownRecords {
		t.Error("Omitted fields should be left unchanged")
	}
}

func TestHandleUpdateSettingsInvalid(t *testing.T) {
	server, _ := setupTestServer(t, true)
	ctx := context.Background()

	avatar := 9
	if _, _, err := server.handleUpdateSettings(ctx, &mcp.CallToolRequest{}, updateSettingsInput{AvatarIndex: &avatar}); err == nil {
		t.Error("Expected error for avatar out of range")
	}
	theme := "sepia"
	if _, _, err := server.handleUpdateSettings(ctx, &mcp.CallToolRequest{}, updateSettingsInput{ThemeMode: &theme}); err == nil {
		t.Error("Expected error for unknown theme")
	}
}

func TestHandleResetData(t *testing.T) {
	server, store := setupTestServer(t, true)
	ctx := context.Background()
	before := store.Segments(ctx)[0].ID

	if _, _, err := server.handleResetData(ctx, &mcp.CallToolRequest{}, resetInput{}); err == nil {
		t.Error("Expected error without confirm")
	}
	if store.SegmentByID(ctx, before) == nil {
		t.Fatal("Data should survive an unconfirmed reset")
	}

	if _, _, err := server.handleResetData(ctx, &mcp.CallToolRequest{}, resetInput{Confirm: true}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if store.SegmentByID(ctx, before) != nil {
		t.Error("Old segment survived reset")
	}
}

func TestHandleHealthDataStatus(t *testing.T) {
	server, _ := setupTestServer(t, false)

	_, status, err := server.handleHealthDataStatus(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if status.IsAvailable || status.ErrorMessage == "" {
		t.Errorf("Expected unavailable status with reason, got %+v", status)
	}
}

func TestHandleRecordsResource(t *testing.T) {
	server, store := setupTestServer(t, true)
	ctx := context.Background()

	result, err := server.handleRecordsResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].URI != "swim://records" {
		t.Errorf("URI = %s", result.Contents[0].URI)
	}

	var book bookResource
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &book); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(book.Styles) != len(models.AllStrokeStyles) {
		t.Errorf("Styles = %d, want %d", len(book.Styles), len(models.AllStrokeStyles))
	}
	total := 0
	for _, st := range book.Styles {
		total += len(st.Records)
	}
	if total != len(store.Records(ctx)) {
		t.Errorf("Book holds %d records, want %d", total, len(store.Records(ctx)))
	}
}

func TestHandleRecentResource(t *testing.T) {
	server, _ := setupTestServer(t, true)

	result, err := server.handleRecentResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var data struct {
		Segments []recentSegment `json:"segments"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(data.Segments) == 0 || len(data.Segments) > recentSegmentLimit {
		t.Errorf("Recent segments = %d, want 1..%d", len(data.Segments), recentSegmentLimit)
	}
}

func TestHandleRecentResourceEmpty(t *testing.T) {
	server, _ := setupTestServer(t, false)

	result, err := server.handleRecentResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, `"segments": []`) {
		t.Errorf("Expected empty segments list, got %s", result.Contents[0].Text)
	}
}

func TestHandleSettingsResource(t *testing.T) {
	server, _ := setupTestServer(t, true)

	result, err := server.handleSettingsResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var settings models.Settings
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &settings); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if settings.DisplayName != "Plavec" {
		t.Errorf("DisplayName = %q", settings.DisplayName)
	}
}
