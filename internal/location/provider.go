// Package location defines the contract for live position sources and ships
// a simulator that replays a route geometry for demos and tests.
package location

import "github.com/UnknownOlympus/wayfinder/internal/models"

// AuthStatus mirrors the authorization states a platform location service
// moves through.
type AuthStatus int

const (
	// AuthNotDetermined means the user has not answered the permission prompt yet.
	AuthNotDetermined AuthStatus = iota
	// AuthDenied means the user refused location access.
	AuthDenied
	// AuthWhenInUse grants access while the application is in use.
	AuthWhenInUse
	// AuthAlways grants unconditional access.
	AuthAlways
)

// Authorized reports whether position updates may be consumed in this state.
func (s AuthStatus) Authorized() bool {
	return s == AuthWhenInUse || s == AuthAlways
}

// Provider emits a stream of position fixes and authorization changes. The
// consumer owns all state mutation; the provider never reaches back into it.
type Provider interface {
	// Updates delivers position fixes. The channel closes when the
	// provider stops.
	Updates() <-chan models.Position
	// AuthChanges delivers authorization transitions, starting with the
	// current state.
	AuthChanges() <-chan AuthStatus
}
