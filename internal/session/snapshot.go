package session

import "github.com/UnknownOlympus/wayfinder/internal/models"

// DisplayStep is one row of the user-visible instruction list.
type DisplayStep struct {
	Instruction string // Instruction is the maneuver text.
	Distance    string // Distance formatted in the session's unit system.
	StepIndex   int    // StepIndex is the canonical index the row maps to.
	Current     bool   // Current marks the row the traveler occupies.
	Selected    bool   // Selected marks the row the user highlighted.
}

// Snapshot is an immutable view of the session for rendering. Whether a row
// is current derives purely from the tracked index, never from the row
// itself.
type Snapshot struct {
	State       State
	Destination *models.Coordinate
	Steps       []DisplayStep
	CurrentStep int
	Units       models.UnitSystem
	Viewport    models.Rect
	LiveRegion  models.Rect
}

// RouteGeometry returns a copy of the active route's polyline, or nil when
// no route is stored.
func (s *Session) RouteGeometry() []models.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.route == nil {
		return nil
	}
	geometry := make([]models.Coordinate, len(s.route.Geometry))
	copy(geometry, s.route.Geometry)
	return geometry
}

// Snapshot returns a copy of the displayable session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.tracker.Current()
	steps := make([]DisplayStep, len(s.display))
	for i, entry := range s.display {
		steps[i] = DisplayStep{
			Instruction: entry.instruction,
			Distance:    entry.distance,
			StepIndex:   entry.canonical,
			Current:     entry.canonical == current,
			Selected:    entry.canonical == s.selected,
		}
	}

	var dest *models.Coordinate
	if s.destination != nil {
		d := *s.destination
		dest = &d
	}

	return Snapshot{
		State:       s.state,
		Destination: dest,
		Steps:       steps,
		CurrentStep: current,
		Units:       s.units,
		Viewport:    s.viewport,
		LiveRegion:  s.liveRegion,
	}
}
