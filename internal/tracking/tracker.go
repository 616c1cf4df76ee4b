// Package tracking determines which route step a traveler currently
// occupies from their live coordinate.
package tracking

import (
	"github.com/UnknownOlympus/wayfinder/internal/geo"
	"github.com/UnknownOlympus/wayfinder/internal/models"
)

// Tracker scans a route's ordered steps for the one whose extent contains
// the traveler's position. It keeps the last matched index when no extent
// contains the position, so a momentary GPS excursion off the route never
// clears progress.
//
// Tracker is not safe for concurrent use; the session serializes all calls.
type Tracker struct {
	current int
}

// NewTracker returns a tracker positioned at step 0.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Current returns the tracked step index. The index is into the full,
// unfiltered step sequence.
func (t *Tracker) Current() int {
	return t.current
}

// Reset returns the tracker to step 0, for use when a new route replaces
// the old one.
func (t *Tracker) Reset() {
	t.current = 0
}

// Update projects the position into the route plane and scans the steps in
// travel order. The first step whose extent contains the point wins, which
// favors earlier steps when extents overlap. On a miss the previous index is
// kept. Returns the tracked index after the update.
func (t *Tracker) Update(steps []models.RouteStep, position models.Coordinate) int {
	point := geo.Project(position)
	for i, step := range steps {
		if step.Extent.Contains(point) {
			t.current = i
			break
		}
	}
	return t.current
}
