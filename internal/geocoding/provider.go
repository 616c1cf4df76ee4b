package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/wayfinder/internal/models"
)

// Provider resolves free-text destination input to a single coordinate.
// Implementations return ErrNoMatch when the text matches nothing.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinate, error)
}

// ErrNoMatch is returned when the provider finds no coordinate for the text.
var ErrNoMatch = errors.New("no geocoding match for address")

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
