package completion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/wayfinder/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider serves completions through the Google Places API:
// autocomplete for suggestions, place details for the selected coordinate.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of the Google Maps client the provider uses,
// kept narrow so tests can mock it.
type GoogleAPIClient interface {
	PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
}

// NewGoogleProvider wraps an already-configured Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Complete forwards the fragment to Places autocomplete and maps the
// predictions to suggestion records. An empty fragment yields no
// suggestions without a provider round trip.
func (gp *GoogleProvider) Complete(ctx context.Context, fragment string) ([]models.Suggestion, error) {
	if fragment == "" {
		return nil, nil
	}

	gp.log.DebugContext(ctx, "Completing using Google Places", "fragment", fragment)

	resp, err := gp.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{Input: fragment})
	if err != nil {
		return nil, fmt.Errorf("failed to autocomplete fragment: %w", err)
	}

	suggestions := make([]models.Suggestion, 0, len(resp.Predictions))
	for _, prediction := range resp.Predictions {
		title := prediction.StructuredFormatting.MainText
		if title == "" {
			title = prediction.Description
		}
		suggestions = append(suggestions, models.Suggestion{
			Title:    title,
			Subtitle: prediction.StructuredFormatting.SecondaryText,
			PlaceID:  prediction.PlaceID,
		})
	}

	return suggestions, nil
}

// Resolve looks up the suggestion's place and returns its coordinate.
func (gp *GoogleProvider) Resolve(ctx context.Context, suggestion models.Suggestion) (*models.Coordinate, error) {
	if suggestion.PlaceID == "" {
		return nil, ErrNoMatch
	}

	gp.log.DebugContext(ctx, "Resolving suggestion using Google Places", "place_id", suggestion.PlaceID)

	details, err := gp.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: suggestion.PlaceID,
		Fields:  []maps.PlaceDetailsFieldMask{maps.PlaceDetailsFieldMaskGeometry},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch place details: %w", err)
	}

	loc := details.Geometry.Location
	return &models.Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
