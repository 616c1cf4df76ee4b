package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/wayfinder/internal/models"
	"golang.org/x/time/rate"
)

// NominatimProvider serves completions from OpenStreetMap's Nominatim search
// endpoint. Nominatim returns coordinates with every hit, so Resolve never
// needs a second network call.
type NominatimProvider struct {
	client    HTTPClient    // HTTP client for making requests
	baseURL   string        // Base URL for the Nominatim search endpoint
	log       *slog.Logger  // Logger for logging operations
	limiter   *rate.Limiter // Rate limiter per Nominatim usage policy
	userAgent string        // userAgent is required by Nominatim usage policy
}

// maxSuggestions caps how many candidates one fragment produces.
const maxSuggestions = 5

type nominatimSearchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// NewNominatimProvider creates a Nominatim completion provider against the
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

// Complete searches Nominatim for the fragment and maps the hits to
// suggestion records carrying their coordinates inline.
func (np *NominatimProvider) Complete(ctx context.Context, fragment string) ([]models.Suggestion, error) {
	if fragment == "" {
		return nil, nil
	}

	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	np.log.DebugContext(ctx, "Completing using Nominatim", "fragment", fragment)

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", fragment)
	query.Set("format", "json")
	query.Set("limit", strconv.Itoa(maxSuggestions))
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", np.userAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimSearchResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	suggestions := make([]models.Suggestion, 0, len(results))
	for _, result := range results {
		lat, latErr := strconv.ParseFloat(result.Lat, 64)
		lon, lonErr := strconv.ParseFloat(result.Lon, 64)
		if latErr != nil || lonErr != nil {
			np.log.WarnContext(ctx, "Skipping result with invalid coordinates",
				"lat", result.Lat, "lon", result.Lon)
			continue
		}

		title, subtitle := splitDisplayName(result.DisplayName)
		suggestions = append(suggestions, models.Suggestion{
			Title:    title,
			Subtitle: subtitle,
			Location: &models.Coordinate{Latitude: lat, Longitude: lon},
		})
	}

	return suggestions, nil
}

// Resolve returns the coordinate captured at completion time.
func (np *NominatimProvider) Resolve(_ context.Context, suggestion models.Suggestion) (*models.Coordinate, error) {
	if suggestion.Location == nil {
		return nil, ErrNoMatch
	}
	loc := *suggestion.Location
	return &loc, nil
}

// splitDisplayName turns Nominatim's comma-joined display name into a short
// title and the remaining address as subtitle.
func splitDisplayName(displayName string) (string, string) {
	title, subtitle, found := strings.Cut(displayName, ",")
	if !found {
		return displayName, ""
	}
	return strings.TrimSpace(title), strings.TrimSpace(subtitle)
}
