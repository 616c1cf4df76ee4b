package models

// Suggestion is a single address-completion candidate. Providers that return
// coordinates inline set Location; providers that require a follow-up lookup
// set PlaceID instead.
type Suggestion struct {
	Title    string      // Title is the primary display line.
	Subtitle string      // Subtitle is the secondary display line.
	PlaceID  string      // PlaceID identifies the place at the provider.
	Location *Coordinate // Location, when known at completion time.
}
