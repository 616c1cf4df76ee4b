// Package completion wraps external address-completion providers: a text
// fragment fans out to suggestion records, and a chosen suggestion resolves
// to a destination coordinate.
package completion

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/wayfinder/internal/models"
)

// Provider is the address-completion contract the resolver depends on.
type Provider interface {
	// Complete returns suggestion records for a free-text fragment, best
	// match first.
	Complete(ctx context.Context, fragment string) ([]models.Suggestion, error)
	// Resolve turns a previously returned suggestion into a destination
	// coordinate. Returns ErrNoMatch when the provider no longer knows
	// the place.
	Resolve(ctx context.Context, suggestion models.Suggestion) (*models.Coordinate, error)
}

// ErrNoMatch is returned when a selection yields no coordinate.
var ErrNoMatch = errors.New("no match for suggestion")

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
