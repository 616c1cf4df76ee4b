package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/UnknownOlympus/wayfinder/internal/geo"
	"github.com/UnknownOlympus/wayfinder/internal/models"
	"golang.org/x/time/rate"
)

// OSRMRouter fetches driving routes from an OSRM instance. OSRM does not
// ship instruction strings, so they are synthesized from the maneuver type,
// modifier and road name; plain continuation segments end up with an empty
// instruction and stay in the tracking sequence without a display row.
type OSRMRouter struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL of the OSRM instance
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter for the shared demo server
}

type osrmGeometry struct {
	Coordinates [][]float64 `json:"coordinates"` // [lon, lat] pairs
}

type osrmManeuver struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier"`
}

type osrmStep struct {
	Distance float64      `json:"distance"`
	Name     string       `json:"name"`
	Maneuver osrmManeuver `json:"maneuver"`
	Geometry osrmGeometry `json:"geometry"`
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64      `json:"distance"`
		Geometry osrmGeometry `json:"geometry"`
		Legs     []struct {
			Steps []osrmStep `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// NewOSRMRouter creates a router against the given OSRM base URL (the public
// demo server when empty).
func NewOSRMRouter(baseURL string, rateLimit int, log *slog.Logger) *OSRMRouter {
	const timeout = 15 * time.Second
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}
	if rateLimit == 0 {
		rateLimit = 1
	}

	return &OSRMRouter{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewOSRMRouterWithClient allows injecting a custom HTTP client and limiter.
// Useful for testing with mocked HTTP clients.
func NewOSRMRouterWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *OSRMRouter {
	r := NewOSRMRouter(baseURL, 1, log)
	r.client = client
	r.limiter = limiter
	return r
}

// Route requests a driving route with per-step geometry and converts the
// first returned route into the session model.
func (or *OSRMRouter) Route(
	ctx context.Context,
	origin, destination models.Coordinate,
) (*models.Route, error) {
	if err := or.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	// OSRM takes lon,lat order.
	reqURL := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson&steps=true",
		or.baseURL, origin.Longitude, origin.Latitude, destination.Longitude, destination.Latitude)

	or.log.DebugContext(ctx, "Routing using OSRM", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := or.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute routing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		or.log.ErrorContext(ctx, "OSRM API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("OSRM returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed osrmResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode OSRM response: %w", err)
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, ErrNoRoute
	}

	best := parsed.Routes[0]
	route := &models.Route{
		Distance: best.Distance,
		Geometry: toRouteCoordinates(best.Geometry.Coordinates),
	}

	for _, leg := range best.Legs {
		for _, step := range leg.Steps {
			stepCoords := toRouteCoordinates(step.Geometry.Coordinates)
			route.Steps = append(route.Steps, models.RouteStep{
				Instruction: instructionFor(step),
				Distance:    step.Distance,
				Extent:      geo.Bounds(geo.ProjectAll(stepCoords)),
			})
		}
	}

	return route, nil
}

func toRouteCoordinates(pairs [][]float64) []models.Coordinate {
	coords := make([]models.Coordinate, 0, len(pairs))
	for _, pair := range pairs {
		if len(pair) < 2 {
			continue
		}
		coords = append(coords, models.Coordinate{Longitude: pair[0], Latitude: pair[1]})
	}
	return coords
}

// instructionFor builds display text from an OSRM maneuver. Steps that are
// plain continuations of an unnamed road yield an empty instruction.
func instructionFor(step osrmStep) string {
	var verb string
	switch step.Maneuver.Type {
	case "depart":
		verb = "Head out"
	case "arrive":
		return "Arrive at your destination"
	case "turn", "end of road", "fork":
		verb = "Turn"
		if step.Maneuver.Modifier != "" {
			verb = "Turn " + step.Maneuver.Modifier
		}
	case "merge":
		verb = "Merge"
	case "on ramp":
		verb = "Take the ramp"
	case "off ramp":
		verb = "Take the exit"
	case "roundabout", "rotary":
		verb = "Enter the roundabout"
	case "continue":
		if step.Name == "" {
			return ""
		}
		verb = "Continue"
	default:
		if step.Name == "" {
			return ""
		}
		verb = "Continue"
	}

	if step.Name == "" {
		return verb
	}
	return fmt.Sprintf("%s onto %s", verb, step.Name)
}
