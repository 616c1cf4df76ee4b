package routing

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// RouterType represents the type of routing provider.
type RouterType string

const (
	// RouterTypeGoogle represents the Google Directions routing provider.
	RouterTypeGoogle RouterType = "google"
	// RouterTypeOSRM represents an OSRM routing instance.
	RouterTypeOSRM RouterType = "osrm"
)

// RouterConfig holds configuration for creating a routing provider.
type RouterConfig struct {
	Type      RouterType   // Type of router to create
	APIKey    string       // API key (used by Google router)
	BaseURL   string       // Base URL (used by OSRM router)
	RateLimit int          // Rate limit for requests per second
	Logger    *slog.Logger // Logger for the router
}

// NewRouter creates a routing provider based on the provided configuration.
func NewRouter(config RouterConfig) (Router, error) {
	switch config.Type {
	case RouterTypeGoogle:
		if config.APIKey == "" {
			return nil, errors.New("API key is required for Google router")
		}
		clientOpts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
		if config.RateLimit > 0 {
			clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
		}
		client, err := maps.NewClient(clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
		}
		return NewGoogleRouter(client, config.Logger), nil
	case RouterTypeOSRM:
		return NewOSRMRouter(config.BaseURL, config.RateLimit, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported router type: %s", config.Type)
	}
}
