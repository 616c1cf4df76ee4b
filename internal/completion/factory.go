package completion

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of completion provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents the Google Places completion provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents the OpenStreetMap Nominatim provider.
	ProviderTypeNominatim ProviderType = "nominatim"
)

// ProviderConfig holds configuration for creating a completion provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (used by Google provider)
	BaseURL   string       // Base URL override (used by Nominatim provider)
	RateLimit int          // Rate limit for requests per second (used by Google provider)
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates a completion provider based on the provided
// configuration.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		if config.APIKey == "" {
			return nil, errors.New("API key is required for Google provider")
		}
		clientOpts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
		if config.RateLimit > 0 {
			clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
		}
		client, err := maps.NewClient(clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
		}
		return NewGoogleProvider(client, config.Logger), nil
	case ProviderTypeNominatim:
		return NewNominatimProvider(config.BaseURL, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider type: %s", config.Type)
	}
}
