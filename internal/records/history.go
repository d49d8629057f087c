// ABOUTME: Calendar-day grouping of segments for record history.
// ABOUTME: Groups are sorted most recent first, members fastest first.
package records

import (
	"sort"
	"time"

	"github.com/harperreed/swimbook/internal/models"
)

// FilterByKey returns the segments swum at the key's style and distance, in input order.
func FilterByKey(segments []models.Segment, key models.RecordKey) []models.Segment {
	var out []models.Segment
	for _, seg := range segments {
		if seg.Key() == key {
			out = append(out, seg)
		}
	}
	return out
}

// GroupByDay buckets segments by the calendar date of their start time in loc.
// A nil loc means time.Local.
//
// Within a bucket segments are sorted by elapsed time, fastest first. A
// bucket's Date is the start time of its first member in input order and its
// BestTime is the fastest member's time. Buckets are sorted by Date, most
// recent first.
func GroupByDay(segments []models.Segment, loc *time.Location) []models.DayGroup {
	if loc == nil {
		loc = time.Local
	}

	type dayKey struct {
		year  int
		month time.Month
		day   int
	}

	var order []dayKey
	buckets := make(map[dayKey][]models.Segment)
	for _, seg := range segments {
		t := seg.StartDateTime.In(loc)
		k := dayKey{t.Year(), t.Month(), t.Day()}
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], seg)
	}

	groups := make([]models.DayGroup, 0, len(order))
	for _, k := range order {
		members := buckets[k]
		date := members[0].StartDateTime

		sorted := make([]models.Segment, len(members))
		copy(sorted, members)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ElapsedSeconds < sorted[j].ElapsedSeconds
		})

		groups = append(groups, models.DayGroup{
			Date:     date,
			BestTime: sorted[0].ElapsedSeconds,
			Segments: sorted,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})

	return groups
}
