// Package routing wraps external driving-route providers. A router turns an
// origin/destination pair into an ordered step sequence with distances and
// route-plane extents, plus the polyline the viewport is derived from.
package routing

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/wayfinder/internal/models"
)

// Router is the routing contract the session depends on. Only the best
// route is returned; alternates are ignored.
type Router interface {
	Route(ctx context.Context, origin, destination models.Coordinate) (*models.Route, error)
}

// ErrNoRoute is returned when the provider cannot connect the two points.
var ErrNoRoute = errors.New("no route between origin and destination")

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
