// Package geo holds the pure geometry and formatting helpers the navigation
// core is built on: the route-plane projection, envelope and viewport math,
// and distance rendering.
package geo

import (
	"math"

	"github.com/UnknownOlympus/wayfinder/internal/models"
)

const (
	earthRadiusMeters = 6378137.0
	// maxMercatorLat is the latitude beyond which the Web Mercator
	// projection diverges.
	maxMercatorLat = 85.05112878
)

// Project converts a geographic coordinate into the route plane using the
// spherical Web Mercator projection. Latitudes are clamped to the projectable
// range.
func Project(c models.Coordinate) models.Point {
	lat := math.Max(-maxMercatorLat, math.Min(maxMercatorLat, c.Latitude))

	x := earthRadiusMeters * c.Longitude * math.Pi / 180
	y := earthRadiusMeters * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))

	return models.Point{X: x, Y: y}
}

// Bounds returns the minimal rectangle covering the given points. A nil or
// empty slice yields the zero rectangle.
func Bounds(points []models.Point) models.Rect {
	if len(points) == 0 {
		return models.Rect{}
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	return models.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ProjectAll projects a polyline into the route plane.
func ProjectAll(coords []models.Coordinate) []models.Point {
	points := make([]models.Point, len(coords))
	for i, c := range coords {
		points[i] = Project(c)
	}
	return points
}
