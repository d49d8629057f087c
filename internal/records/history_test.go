// ABOUTME: Tests for calendar-day grouping of segments.
// ABOUTME: Verifies partitioning, ordering and best times.
package records

import (
	"testing"
	"time"

	"github.com/harperreed/swimbook/internal/models"
)

func TestGroupByDay(t *testing.T) {
	loc := time.UTC
	mon := time.Date(2025, 3, 3, 7, 0, 0, 0, loc)
	wed := time.Date(2025, 3, 5, 6, 30, 0, 0, loc)

	a := seg(models.StrokeFreestyle, mon, 31, 31)
	b := seg(models.StrokeFreestyle, mon.Add(2*time.Hour), 29, 30)
	c := seg(models.StrokeFreestyle, wed, 33, 33)

	groups := GroupByDay([]models.Segment{a, b, c}, loc)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	// Most recent day first
	if !groups[0].Date.Equal(wed) {
		t.Errorf("groups[0].Date = %v, want %v", groups[0].Date, wed)
	}
	if groups[0].BestTime != 66 {
		t.Errorf("groups[0].BestTime = %v, want 66", groups[0].BestTime)
	}

	mondays := groups[1]
	if !mondays.Date.Equal(a.StartDateTime) {
		t.Errorf("group date should be the first member in input order, got %v", mondays.Date)
	}
	if mondays.BestTime != 59 {
		t.Errorf("BestTime = %v, want 59", mondays.BestTime)
	}
	if mondays.Segments[0].ID != b.ID || mondays.Segments[1].ID != a.ID {
		t.Error("segments within a day should be sorted fastest first")
	}
}

func TestGroupByDayPartitionsAll(t *testing.T) {
	base := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)
	var segs []models.Segment
	for i := 0; i < 20; i++ {
		segs = append(segs, seg(models.StrokeMedley, base.Add(time.Duration(i*7)*time.Hour), float64(30+i%5)))
	}

	groups := GroupByDay(segs, time.UTC)
	count := make(map[string]int)
	for _, g := range groups {
		lowest := g.Segments[0].ElapsedSeconds
		for _, s := range g.Segments {
			count[s.ID.String()]++
			if s.ElapsedSeconds < lowest {
				lowest = s.ElapsedSeconds
			}
		}
		if g.BestTime != lowest {
			t.Errorf("BestTime %v != member minimum %v", g.BestTime, lowest)
		}
	}
	if len(count) != len(segs) {
		t.Fatalf("grouped %d segments, want %d", len(count), len(segs))
	}
	for id, n := range count {
		if n != 1 {
			t.Errorf("segment %s appears %d times", id, n)
		}
	}
	for i := 1; i < len(groups); i++ {
		if groups[i].Date.After(groups[i-1].Date) {
			t.Error("groups are not sorted most recent first")
		}
	}
}

func TestGroupByDaySingleSegment(t *testing.T) {
	s := seg(models.StrokeBackstroke, time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), 35)
	groups := GroupByDay([]models.Segment{s}, time.UTC)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].BestTime != 35 || !groups[0].Date.Equal(s.StartDateTime) {
		t.Errorf("unexpected group %+v", groups[0])
	}
}

func TestGroupByDayUsesLocation(t *testing.T) {
	prague := time.FixedZone("CET", 3600)
	// 23:30 UTC on the 1st is 00:30 on the 2nd in CET
	late := seg(models.StrokeFreestyle, time.Date(2025, 5, 1, 23, 30, 0, 0, time.UTC), 30)
	early := seg(models.StrokeFreestyle, time.Date(2025, 5, 2, 6, 0, 0, 0, time.UTC), 30)

	if n := len(GroupByDay([]models.Segment{late, early}, time.UTC)); n != 2 {
		t.Errorf("UTC groups = %d, want 2", n)
	}
	if n := len(GroupByDay([]models.Segment{late, early}, prague)); n != 1 {
		t.Errorf("CET groups = %d, want 1", n)
	}
}

func TestFilterByKey(t *testing.T) {
	now := time.Now()
	a := seg(models.StrokeFreestyle, now, 30, 30)
	b := seg(models.StrokeFreestyle, now, 30)
	c := seg(models.StrokeBackstroke, now, 30, 30)
	d := seg(models.StrokeFreestyle, now, 28, 28)

	got := FilterByKey([]models.Segment{a, b, c, d}, models.RecordKey{StrokeStyle: models.StrokeFreestyle, DistanceMeters: 100})
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != d.ID {
		t.Errorf("FilterByKey returned %d segments in wrong order", len(got))
	}
}
