// ABOUTME: MCP resource implementations for the swim records book.
// ABOUTME: Provides swim://records, swim://recent, and swim://settings resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/records"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const recentSegmentLimit = 10

func (s *Server) registerResources() {
	// swim://records - records book laid out per visible style
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "swim://records",
		Name:        "Records Book",
		Description: "Best time for every stroke style and distance",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)

	// swim://recent - latest swims
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "swim://recent",
		Name:        "Recent Swims",
		Description: "Last 10 segments, newest first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "swim://settings",
		Name:        "Settings",
		Description: "User settings for the records book",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

type bookStyle struct {
	Style   string        `json:"style"`
	Label   string        `json:"label"`
	Records []recordEntry `json:"records"`
}

type bookResource struct {
	DisplayName string      `json:"display_name"`
	Styles      []bookStyle `json:"styles"`
}

type recentSegment struct {
	ID       string `json:"id"`
	Start    string `json:"start"`
	Style    string `json:"style"`
	Distance int    `json:"distance"`
	Time     string `json:"time"`
	IsRecord bool   `json:"is_record"`
}

// Resource handlers

func (s *Server) handleRecordsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	settings := s.store.Settings(ctx)
	book := records.BuildBook(s.store.Records(ctx), settings.VisibleStrokeStyles())

	result := bookResource{DisplayName: settings.DisplayName, Styles: []bookStyle{}}
	for _, style := range book.Styles {
		row := bookStyle{Style: string(style), Label: style.Label(), Records: []recordEntry{}}
		for _, d := range models.Distances {
			if rec := book.Slots[style][d]; rec != nil {
				row.Records = append(row.Records, s.recordEntry(*rec))
			}
		}
		result.Styles = append(result.Styles, row)
	}

	return jsonResource("swim://records", result)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	segments := s.store.Segments(ctx)
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].StartDateTime.After(segments[j].StartDateTime)
	})
	if len(segments) > recentSegmentLimit {
		segments = segments[:recentSegmentLimit]
	}

	best := make(map[string]bool)
	for _, r := range s.store.Records(ctx) {
		best[r.BestSegmentID.String()] = true
	}

	recent := make([]recentSegment, 0, len(segments))
	for _, seg := range segments {
		recent = append(recent, recentSegment{
			ID:       seg.ID.String()[:8],
			Start:    records.FormatDateTime(seg.StartDateTime.In(s.loc)),
			Style:    seg.StrokeStyle.Label(),
			Distance: seg.DistanceMeters,
			Time:     records.FormatElapsed(seg.ElapsedSeconds),
			IsRecord: best[seg.ID.String()],
		})
	}

	return jsonResource("swim://recent", map[string]interface{}{"segments": recent})
}

func (s *Server) handleSettingsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource("swim://settings", s.store.Settings(ctx))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
