package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/wayfinder/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider geocodes destinations through the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of the Google Maps client the provider uses,
// kept narrow so tests can mock it.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider wraps an already-configured Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Geocode resolves the address through the Google Maps Geocoding API and
// returns the coordinate of the first result. An empty response maps to
// ErrNoMatch so callers can distinguish "nothing there" from provider
// failure.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinate, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNoMatch
	}
	loc := results[0].Geometry.Location

	return &models.Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
