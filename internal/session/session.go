// Package session owns all navigation state: the current destination, the
// active route, the traveler's step index, the unit preference and the
// derived display viewport. Every mutation is serialized through one owner;
// asynchronous provider responses are re-applied under the session lock and
// superseded ones are rejected by a monotonic request sequence.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/wayfinder/internal/geo"
	"github.com/UnknownOlympus/wayfinder/internal/location"
	"github.com/UnknownOlympus/wayfinder/internal/metrics"
	"github.com/UnknownOlympus/wayfinder/internal/models"
	"github.com/UnknownOlympus/wayfinder/internal/routing"
	"github.com/UnknownOlympus/wayfinder/internal/tracking"
)

// State is the session's lifecycle phase.
type State int

const (
	// StateNoDestination is the initial state, before any destination is set.
	StateNoDestination State = iota
	// StateRouteRequested means a destination is set and a route fetch is
	// outstanding or has failed.
	StateRouteRequested
	// StateRouteActive means a route is stored and tracking is live.
	StateRouteActive
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateNoDestination:
		return "no_destination"
	case StateRouteRequested:
		return "route_requested"
	case StateRouteActive:
		return "route_active"
	default:
		return "unknown"
	}
}

// ErrNoKnownPosition is reported when a destination is set before any
// position fix has arrived, so there is no origin to route from.
var ErrNoKnownPosition = errors.New("no known position to route from")

// liveSpanMeters is the half-span of the region kept around the live
// position.
const liveSpanMeters = 500.0

// noSelection marks the absence of a user-selected step.
const noSelection = -1

// displayEntry pairs a visible instruction with the canonical step index it
// came from; empty-instruction steps never produce an entry but keep their
// index slot in the route.
type displayEntry struct {
	canonical   int
	instruction string
	distance    string
}

// Session is the navigation orchestrator. All exported methods are safe for
// concurrent use.
type Session struct {
	log     *slog.Logger
	router  routing.Router
	metrics *metrics.Metrics
	onError func(error)

	mu           sync.Mutex
	state        State
	units        models.UnitSystem
	destination  *models.Coordinate
	route        *models.Route
	display      []displayEntry
	tracker      *tracking.Tracker
	selected     int
	viewport     models.Rect
	liveRegion   models.Rect
	lastPosition *models.Position
	auth         location.AuthStatus
	routeSeq     uint64
}

// Option configures a Session.
type Option func(*Session)

// WithRouteErrorHandler installs a callback for route-fetch failures. The
// callback runs outside the session lock.
func WithRouteErrorHandler(fn func(error)) Option {
	return func(s *Session) { s.onError = fn }
}

// NewSession creates a session in StateNoDestination with step index 0 and
// no selection.
func NewSession(
	log *slog.Logger,
	router routing.Router,
	m *metrics.Metrics,
	units models.UnitSystem,
	opts ...Option,
) *Session {
	s := &Session{
		log:      log,
		router:   router,
		metrics:  m,
		units:    units,
		tracker:  tracking.NewTracker(),
		selected: noSelection,
		onError:  func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetDestination installs a new destination and issues a route request from
// the last known position. The prior route, step index and selection are
// invalidated immediately; any still-outstanding fetch for an earlier
// destination is superseded and its response will be discarded.
func (s *Session) SetDestination(ctx context.Context, dest models.Coordinate) {
	s.mu.Lock()
	s.destination = &dest
	s.state = StateRouteRequested
	s.route = nil
	s.display = nil
	s.viewport = models.Rect{}
	s.tracker.Reset()
	s.selected = noSelection
	s.routeSeq++
	seq := s.routeSeq

	if s.lastPosition == nil {
		s.mu.Unlock()
		s.log.WarnContext(ctx, "Destination set before first position fix")
		s.metrics.RouteRequests.WithLabelValues("failure").Inc()
		s.onError(ErrNoKnownPosition)
		return
	}
	origin := s.lastPosition.Coordinate
	s.mu.Unlock()

	s.log.InfoContext(ctx, "Requesting route", "destination", dest, "seq", seq)

	go func() {
		start := time.Now()
		route, err := s.router.Route(ctx, origin, dest)
		s.metrics.RequestSeconds.WithLabelValues("routing").Observe(time.Since(start).Seconds())
		s.applyRoute(ctx, seq, route, err)
	}()
}

// applyRoute installs a routing response unless a newer destination has
// superseded the request it answers. Supersession is normal operation, not
// an error, so it is swallowed after counting.
func (s *Session) applyRoute(ctx context.Context, seq uint64, route *models.Route, err error) {
	s.mu.Lock()

	if seq != s.routeSeq {
		s.metrics.StaleDiscarded.WithLabelValues("route").Inc()
		s.log.DebugContext(ctx, "Discarding superseded route response", "seq", seq, "latest", s.routeSeq)
		s.mu.Unlock()
		return
	}

	if err != nil {
		s.metrics.RouteRequests.WithLabelValues("failure").Inc()
		s.log.ErrorContext(ctx, "Route request failed", "error", err)
		s.mu.Unlock()
		s.onError(err)
		return
	}

	s.metrics.RouteRequests.WithLabelValues("success").Inc()
	s.state = StateRouteActive
	s.route = route
	s.viewport = geo.PadViewport(geo.Bounds(geo.ProjectAll(route.Geometry)))
	s.rebuildDisplay(ctx)
	s.metrics.CurrentStep.Set(float64(s.tracker.Current()))
	s.log.InfoContext(ctx, "Route active", "steps", len(route.Steps), "distance_m", route.Distance)
	s.mu.Unlock()
}

// rebuildDisplay derives the visible instruction list from the stored route.
// Steps with an empty instruction are filtered here and only here; the
// tracking sequence keeps every step. Caller must hold s.mu.
func (s *Session) rebuildDisplay(ctx context.Context) {
	s.display = s.display[:0]
	if s.route == nil {
		return
	}

	for i, step := range s.route.Steps {
		if step.Instruction == "" {
			continue
		}
		formatted, err := geo.FormatDistance(step.Distance, s.units)
		if err != nil {
			s.log.WarnContext(ctx, "Skipping step with invalid distance", "step", i, "error", err)
			continue
		}
		s.display = append(s.display, displayEntry{
			canonical:   i,
			instruction: step.Instruction,
			distance:    formatted,
		})
	}
}

// OnPositionUpdate feeds a live fix into the session. The live-position
// region is refreshed in every state; step tracking runs only while a route
// is active. Safe to call at arbitrary frequency.
func (s *Session) OnPositionUpdate(ctx context.Context, pos models.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.PositionUpdates.Inc()
	s.lastPosition = &pos
	s.liveRegion = regionAround(pos.Coordinate)

	if s.state != StateRouteActive || s.route == nil {
		return
	}

	idx := s.tracker.Update(s.route.Steps, pos.Coordinate)
	s.metrics.CurrentStep.Set(float64(idx))
}

// SetUnitSystem switches the display unit preference and re-derives the
// formatted distances from the stored route. Nothing is refetched and no
// other state changes; without a route this is a no-op.
func (s *Session) SetUnitSystem(ctx context.Context, units models.UnitSystem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if units == s.units {
		return
	}
	s.units = units
	if s.route != nil {
		s.rebuildDisplay(ctx)
	}
}

// SelectStep records a user-chosen step for highlighting, independent of
// tracked progress. Indexes outside the canonical step sequence are ignored.
func (s *Session) SelectStep(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.route == nil || index < 0 || index >= len(s.route.Steps) {
		return
	}
	s.selected = index
}

// SetAuthorization records the location authorization state. Denial stops
// update consumption but leaves the last-known display state intact.
func (s *Session) SetAuthorization(ctx context.Context, auth location.AuthStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if auth == s.auth {
		return
	}
	s.auth = auth
	if !auth.Authorized() {
		s.log.WarnContext(ctx, "Location authorization lost", "status", auth)
	}
}

// authorized reports whether updates may currently be consumed.
func (s *Session) authorized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth.Authorized()
}

// Run consumes a location provider until the context is canceled or the
// provider's channels close. Updates arriving while unauthorized are
// dropped.
func (s *Session) Run(ctx context.Context, provider location.Provider) {
	updates := provider.Updates()
	authChanges := provider.AuthChanges()

	s.log.InfoContext(ctx, "Navigation session started")

	for updates != nil || authChanges != nil {
		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "Navigation session stopped")
			return
		case auth, ok := <-authChanges:
			if !ok {
				authChanges = nil
				continue
			}
			s.SetAuthorization(ctx, auth)
		case pos, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			if !s.authorized() {
				continue
			}
			s.OnPositionUpdate(ctx, pos)
		}
	}
}

// regionAround builds the fixed-span display region kept around the live
// position.
func regionAround(c models.Coordinate) models.Rect {
	p := geo.Project(c)
	return models.Rect{
		X:      p.X - liveSpanMeters,
		Y:      p.Y - liveSpanMeters,
		Width:  2 * liveSpanMeters,
		Height: 2 * liveSpanMeters,
	}
}
