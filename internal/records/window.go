// ABOUTME: Sliding-window best split over a segment's lap sequence.
// ABOUTME: Finds the fastest contiguous run of laps covering a target distance.
package records

import (
	"math"

	"github.com/google/uuid"
	"github.com/harperreed/swimbook/internal/models"
)

// LapsNeeded returns how many pool lengths cover targetDistance.
func LapsNeeded(targetDistance, poolLength int) int {
	return int(math.Ceil(float64(targetDistance) / float64(poolLength)))
}

// bestWindow returns the start index and time of the fastest window of k
// consecutive laps. ok is false when there are fewer than k laps.
func bestWindow(laps []models.Lap, k int) (start int, best float64, ok bool) {
	if k <= 0 || len(laps) < k {
		return 0, 0, false
	}

	best = math.Inf(1)
	for s := 0; s+k <= len(laps); s++ {
		var sum float64
		for _, lap := range laps[s : s+k] {
			sum += lap.ElapsedSeconds
		}
		if sum < best {
			best = sum
			start = s
		}
	}
	return start, best, true
}

// BestWindowTime returns the fastest time over any contiguous run of laps
// that covers targetDistance. ok is false when there are not enough laps,
// or when either length is not positive.
func BestWindowTime(laps []models.Lap, targetDistance, poolLength int) (float64, bool) {
	if targetDistance <= 0 || poolLength <= 0 {
		return 0, false
	}
	_, best, ok := bestWindow(laps, LapsNeeded(targetDistance, poolLength))
	return best, ok
}

// QualifyingDistances returns the record distances a segment of the given
// length could hold a split for.
func QualifyingDistances(segmentDistance int) []int {
	var out []int
	for _, d := range models.Distances {
		if segmentDistance >= d {
			out = append(out, d)
		}
	}
	return out
}

// Split is the fastest sub-run of a segment covering one record distance.
type Split struct {
	SegmentID      uuid.UUID          `json:"segmentId"`
	StrokeStyle    models.StrokeStyle `json:"strokeStyle"`
	DistanceMeters int                `json:"distanceMeters"`
	ElapsedSeconds float64            `json:"elapsedSeconds"`
	FirstLap       int                `json:"firstLap"`
	LastLap        int                `json:"lastLap"`
}

// BestSplits computes the fastest split of seg for each qualifying distance.
func BestSplits(seg models.Segment, poolLength int) []Split {
	if poolLength <= 0 {
		return nil
	}
	var splits []Split
	for _, d := range QualifyingDistances(seg.DistanceMeters) {
		k := LapsNeeded(d, poolLength)
		start, best, ok := bestWindow(seg.Laps, k)
		if !ok {
			continue
		}
		splits = append(splits, Split{
			SegmentID:      seg.ID,
			StrokeStyle:    seg.StrokeStyle,
			DistanceMeters: d,
			ElapsedSeconds: best,
			FirstLap:       seg.Laps[start].LapIndex,
			LastLap:        seg.Laps[start+k-1].LapIndex,
		})
	}
	return splits
}
