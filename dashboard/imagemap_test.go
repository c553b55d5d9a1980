package dashboard_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agrovision/portal/dashboard"
)

func TestLoad(t *testing.T) {
	t.Run("parses the nested map", func(t *testing.T) {
		dir := t.TempDir()
		content := `{
			"Fricke": {
				"promotions": {"1": "fallback-id", "15": "mid-month-id"},
				"stock": {"1": "stock-id"}
			}
		}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "image_maps.json"), []byte(content), 0600))

		set, err := dashboard.Load(dir)
		require.NoError(t, err)
		require.Equal(t, "mid-month-id", set["Fricke"]["promotions"][15])
		require.Equal(t, []string{"promotions", "stock"}, set["Fricke"].Types())
	})

	t.Run("missing file yields an empty set", func(t *testing.T) {
		set, err := dashboard.Load(t.TempDir())
		require.NoError(t, err)
		require.Empty(t, set)
	})

	t.Run("bad day index is an error", func(t *testing.T) {
		dir := t.TempDir()
		content := `{"Fricke": {"promotions": {"not-a-number": "id"}}}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "image_maps.json"), []byte(content), 0600))

		_, err := dashboard.Load(dir)
		require.Error(t, err)
	})
}

func TestDayIndex(t *testing.T) {
	// Indexing is day of month plus one, matching the hosted numbering.
	require.Equal(t, 2, dashboard.DayIndex(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 16, dashboard.DayIndex(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 32, dashboard.DayIndex(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))
}

func TestWindow(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	min, max := dashboard.Window(now)

	require.Equal(t, time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC), max, "window ends yesterday")
	require.Equal(t, time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC), min, "28 selectable days")
}

func TestImageID(t *testing.T) {
	maps := dashboard.ImageMaps{
		"promotions": {1: "fallback-id", 16: "day-15-id"},
	}

	t.Run("resolves by day index", func(t *testing.T) {
		date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
		require.Equal(t, "day-15-id", maps.ImageID("promotions", date))
	})

	t.Run("missing day falls back to index 1", func(t *testing.T) {
		date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		require.Equal(t, "fallback-id", maps.ImageID("promotions", date))
	})

	t.Run("unknown type is empty", func(t *testing.T) {
		date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
		require.Empty(t, maps.ImageID("stock", date))
	})
}

func TestImageURL(t *testing.T) {
	require.Equal(t, "https://images.example/abc", dashboard.ImageURL("https://images.example/", "abc"))
	require.Empty(t, dashboard.ImageURL("https://images.example/", ""))
}
