package routing

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/wayfinder/internal/geo"
	"github.com/UnknownOlympus/wayfinder/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleRouter fetches driving routes through the Google Directions API.
type GoogleRouter struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of the Google Maps client the router uses,
// kept narrow so tests can mock it.
type GoogleAPIClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// NewGoogleRouter wraps an already-configured Google Maps client.
func NewGoogleRouter(client GoogleAPIClient, log *slog.Logger) *GoogleRouter {
	return &GoogleRouter{client: client, log: log}
}

// Route requests a driving route and converts the first returned route into
// the session model. Step extents are the route-plane envelopes of each
// step's polyline, so overlapping maneuvers keep their own geometry.
func (gr *GoogleRouter) Route(
	ctx context.Context,
	origin, destination models.Coordinate,
) (*models.Route, error) {
	gr.log.DebugContext(ctx, "Routing using Google Directions",
		"origin", origin, "destination", destination)

	req := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude),
		Destination: fmt.Sprintf("%f,%f", destination.Latitude, destination.Longitude),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := gr.client.Directions(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directions: %w", err)
	}
	if len(routes) == 0 {
		return nil, ErrNoRoute
	}

	best := routes[0]
	overview, _ := best.OverviewPolyline.Decode()
	route := &models.Route{
		Geometry: toCoordinates(overview),
	}

	for _, leg := range best.Legs {
		route.Distance += float64(leg.Distance.Meters)
		for _, step := range leg.Steps {
			points, _ := step.Polyline.Decode()
			route.Steps = append(route.Steps, models.RouteStep{
				Instruction: stripInstructionHTML(step.HTMLInstructions),
				Distance:    float64(step.Distance.Meters),
				Extent:      geo.Bounds(geo.ProjectAll(toCoordinates(points))),
			})
		}
	}

	return route, nil
}

func toCoordinates(path []maps.LatLng) []models.Coordinate {
	coords := make([]models.Coordinate, len(path))
	for i, p := range path {
		coords[i] = models.Coordinate{Latitude: p.Lat, Longitude: p.Lng}
	}
	return coords
}

// stripInstructionHTML flattens the HTML markup Directions embeds in its
// instruction text into plain display text.
func stripInstructionHTML(instruction string) string {
	var b strings.Builder
	inTag := false
	for _, r := range instruction {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(html.UnescapeString(b.String()))
}
