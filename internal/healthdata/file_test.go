// ABOUTME: Tests for the JSON file health-data source.
// ABOUTME: Covers status, date filtering and end-to-end Sync import.
package healthdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/swimbook/internal/kv"
	"github.com/harperreed/swimbook/internal/models"
	"github.com/harperreed/swimbook/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fileFixture = `[
  {"start": "2025-06-01T07:00:00Z", "lapLength": 25, "laps": [
    {"start": "2025-06-01T07:00:00Z", "elapsedSeconds": 15, "strokeStyle": 1},
    {"start": "2025-06-01T07:00:15Z", "elapsedSeconds": 16, "strokeStyle": 1},
    {"start": "2025-06-01T07:00:31Z", "elapsedSeconds": 20, "strokeStyle": 3}
  ]},
  {"start": "2025-06-20T07:00:00Z", "lapLength": 50, "laps": [
    {"start": "2025-06-20T07:00:00Z", "elapsedSeconds": 33, "strokeStyle": 2}
  ]}
]`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "laps.json")
	require.NoError(t, os.WriteFile(path, []byte(fileFixture), 0600))
	return path
}

func TestFileSourceStatus(t *testing.T) {
	ctx := context.Background()

	src := NewFileSource(writeFixture(t))
	assert.Equal(t, Status{IsAvailable: true, IsAuthorized: true}, src.Status(ctx))
	assert.True(t, src.RequestAuthorization(ctx))

	missing := NewFileSource(filepath.Join(t.TempDir(), "nope.json"))
	status := missing.Status(ctx)
	assert.False(t, status.IsAvailable)
	assert.NotEmpty(t, status.ErrorMessage)
	assert.False(t, missing.RequestAuthorization(ctx))
}

func TestFileSourceFiltersByDate(t *testing.T) {
	src := NewFileSource(writeFixture(t))
	since := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	data, err := src.FetchSwimmingWorkouts(context.Background(), since, time.Time{})
	require.NoError(t, err)
	require.Len(t, data.Workouts, 1)
	require.Len(t, data.Segments, 1)
	assert.Equal(t, models.StrokeBackstroke, data.Segments[0].StrokeStyle)

	all, err := src.FetchSwimmingWorkouts(context.Background(), time.Time{}, since)
	require.NoError(t, err)
	require.Len(t, all.Workouts, 1)
	assert.Equal(t, 75, all.Workouts[0].TotalDistanceMeters)
	assert.Len(t, all.Segments, 2)
}

func TestFileSourceMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))

	_, err := NewFileSource(path).FetchSwimmingWorkouts(context.Background(), time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestSyncFromFile(t *testing.T) {
	ctx := context.Background()
	store := storage.New(kv.NewMemory())
	s := models.DefaultSettings()
	s.UseHealthData = true
	require.NoError(t, store.SaveSettings(ctx, s))

	src := NewFileSource(writeFixture(t))
	n, err := Sync(ctx, src, store, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = Sync(ctx, src, store, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, n, "second sync should import nothing new")
}
