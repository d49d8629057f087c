// ABOUTME: Tests for the sliding-window best split calculation.
// ABOUTME: Compares against brute force over every window.
package records

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/harperreed/swimbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestWindowTime(t *testing.T) {
	tests := []struct {
		name     string
		laps     []models.Lap
		distance int
		pool     int
		want     float64
		wantOK   bool
	}{
		{"single lap", laps(30), 50, 50, 30, true},
		{"not enough laps", laps(30), 100, 50, 0, false},
		{"no laps", nil, 50, 50, 0, false},
		{"fastest middle pair", laps(35, 30, 29, 34), 100, 50, 59, true},
		{"whole segment", laps(35, 30, 29, 34), 200, 50, 128, true},
		{"partial lap rounds up", laps(30, 31, 32), 75, 50, 61, true},
		{"short pool", laps(15, 14, 16, 13), 50, 25, 29, true},
		{"zero pool length", laps(30), 50, 0, 0, false},
		{"zero distance", laps(30), 0, 50, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BestWindowTime(tt.laps, tt.distance, tt.pool)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestBestWindowTimeIsMinimumOfAllWindows(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(12)
		times := make([]float64, n)
		for i := range times {
			times[i] = 20 + rng.Float64()*20
		}
		ls := laps(times...)
		dist := models.Distances[rng.Intn(len(models.Distances))]
		k := LapsNeeded(dist, 50)

		got, ok := BestWindowTime(ls, dist, 50)
		if n < k {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)

		want := math.Inf(1)
		for s := 0; s+k <= n; s++ {
			var sum float64
			for _, v := range times[s : s+k] {
				sum += v
			}
			assert.LessOrEqual(t, got, sum+1e-9)
			want = math.Min(want, sum)
		}
		assert.InDelta(t, want, got, 1e-9)
	}
}

func TestQualifyingDistances(t *testing.T) {
	assert.Equal(t, []int{50, 100, 200}, QualifyingDistances(250))
	assert.Equal(t, models.Distances, QualifyingDistances(600))
	assert.Empty(t, QualifyingDistances(25))
}

func TestBestSplits(t *testing.T) {
	s := seg(models.StrokeBreaststroke, time.Now(), 40, 38, 37, 41)
	splits := BestSplits(s, 50)
	require.Len(t, splits, 3)

	assert.Equal(t, 50, splits[0].DistanceMeters)
	assert.InDelta(t, 37.0, splits[0].ElapsedSeconds, 1e-9)
	assert.Equal(t, 2, splits[0].FirstLap)
	assert.Equal(t, 2, splits[0].LastLap)

	assert.Equal(t, 100, splits[1].DistanceMeters)
	assert.InDelta(t, 75.0, splits[1].ElapsedSeconds, 1e-9)
	assert.Equal(t, 1, splits[1].FirstLap)
	assert.Equal(t, 2, splits[1].LastLap)

	assert.Equal(t, 200, splits[2].DistanceMeters)
	assert.InDelta(t, s.ElapsedSeconds, splits[2].ElapsedSeconds, 1e-9)
	assert.Equal(t, models.StrokeBreaststroke, splits[2].StrokeStyle)
	assert.Equal(t, s.ID, splits[2].SegmentID)

	assert.Nil(t, BestSplits(s, 0))
}
