package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/wayfinder/internal/models"
	"golang.org/x/time/rate"
)

// NominatimProvider geocodes through OpenStreetMap's Nominatim API.
// Nominatim's fair-use policy allows 1 request/second, enforced here with a
// rate limiter rather than left to the caller.
type NominatimProvider struct {
	client    HTTPClient    // HTTP client for making requests
	baseURL   string        // Base URL for the Nominatim search endpoint
	log       *slog.Logger  // Logger for logging operations
	limiter   *rate.Limiter // Rate limiter per Nominatim usage policy
	userAgent string        // userAgent is required by Nominatim usage policy
}

// ErrInvalidCoords is returned when Nominatim responds with coordinates that
// do not parse as numbers.
var ErrInvalidCoords = errors.New("nominatim API returned invalid coordinates")

// nominatimResult represents one entry of the Nominatim search response.
type nominatimResult struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

// NewNominatimProvider creates a Nominatim geocoding provider against the
// given base URL (the public endpoint when empty).
func NewNominatimProvider(baseURL string, log *slog.Logger) *NominatimProvider {
	const timeout = 10 * time.Second
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org/search"
	}

	return &NominatimProvider{
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		log:       log,
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
		userAgent: "Wayfinder/1.0 (https://github.com/UnknownOlympus/wayfinder)",
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom
// HTTP client and limiter. Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *NominatimProvider {
	p := NewNominatimProvider(baseURL, log)
	p.client = client
	p.limiter = limiter
	return p
}

// Geocode resolves the address to the coordinate of the top search result.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinate, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var results []nominatimResult
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: latitude %q", ErrInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: longitude %q", ErrInvalidCoords, results[0].Lon)
	}

	return &models.Coordinate{Latitude: lat, Longitude: lon}, nil
}
