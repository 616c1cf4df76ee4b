package geo_test

import (
	"testing"

	"github.com/UnknownOlympus/wayfinder/internal/geo"
	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	t.Parallel()

	t.Run("origin maps to plane origin", func(t *testing.T) {
		t.Parallel()
		p := geo.Project(models.Coordinate{})

		assert.InDelta(t, 0, p.X, 1e-6)
		assert.InDelta(t, 0, p.Y, 1e-6)
	})

	t.Run("ordering is preserved", func(t *testing.T) {
		t.Parallel()
		west := geo.Project(models.Coordinate{Latitude: 50, Longitude: 30})
		east := geo.Project(models.Coordinate{Latitude: 50, Longitude: 31})
		south := geo.Project(models.Coordinate{Latitude: 49, Longitude: 30})

		assert.Less(t, west.X, east.X)
		assert.Less(t, south.Y, west.Y)
	})

	t.Run("polar latitudes are clamped", func(t *testing.T) {
		t.Parallel()
		pole := geo.Project(models.Coordinate{Latitude: 90, Longitude: 0})
		clamped := geo.Project(models.Coordinate{Latitude: 85.05112878, Longitude: 0})

		assert.InDelta(t, clamped.Y, pole.Y, 1e-6)
	})
}

func TestBounds(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields zero rect", func(t *testing.T) {
		t.Parallel()
		assert.True(t, geo.Bounds(nil).IsZero())
	})

	t.Run("envelope covers all points", func(t *testing.T) {
		t.Parallel()
		points := []models.Point{
			{X: 3, Y: -2},
			{X: -1, Y: 7},
			{X: 5, Y: 0},
		}

		rect := geo.Bounds(points)

		assert.Equal(t, models.Rect{X: -1, Y: -2, Width: 6, Height: 9}, rect)
		for _, p := range points {
			assert.True(t, rect.Contains(p))
		}
	})

	t.Run("single point yields degenerate rect", func(t *testing.T) {
		t.Parallel()
		rect := geo.Bounds([]models.Point{{X: 2, Y: 3}})

		assert.Equal(t, models.Rect{X: 2, Y: 3, Width: 0, Height: 0}, rect)
		assert.True(t, rect.Contains(models.Point{X: 2, Y: 3}))
	})
}
