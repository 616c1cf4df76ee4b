package location

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/wayfinder/internal/models"
)

// Simulator replays a fixed path as a stream of position fixes at a steady
// interval. It implements Provider.
type Simulator struct {
	path     []models.Coordinate
	interval time.Duration
	log      *slog.Logger

	updates chan models.Position
	auth    chan AuthStatus
}

// NewSimulator creates a simulator that will walk the given path, emitting
// one fix per interval.
func NewSimulator(path []models.Coordinate, interval time.Duration, log *slog.Logger) *Simulator {
	return &Simulator{
		path:     path,
		interval: interval,
		log:      log,
		updates:  make(chan models.Position, 1),
		auth:     make(chan AuthStatus, 1),
	}
}

// Updates implements Provider.
func (s *Simulator) Updates() <-chan models.Position {
	return s.updates
}

// AuthChanges implements Provider.
func (s *Simulator) AuthChanges() <-chan AuthStatus {
	return s.auth
}

// Run walks the path until it ends or the context is canceled, then closes
// both channels. The simulated user always grants access.
func (s *Simulator) Run(ctx context.Context) {
	defer close(s.updates)
	defer close(s.auth)

	select {
	case s.auth <- AuthAlways:
	case <-ctx.Done():
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for _, coord := range s.path {
		select {
		case <-ctx.Done():
			s.log.DebugContext(ctx, "Location simulator stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
			fix := models.Position{Coordinate: coord, Timestamp: time.Now()}
			select {
			case s.updates <- fix:
			case <-ctx.Done():
				return
			}
		}
	}

	s.log.DebugContext(ctx, "Location simulator finished path", "fixes", len(s.path))
}
