package models

import "time"

// Coordinate represents a geographical point in degrees. It is a value type;
// two coordinates are equal only on exact numeric match.
type Coordinate struct {
	Latitude  float64 // Latitude of the geographical point, -90..90.
	Longitude float64 // Longitude of the geographical point, -180..180.
}

// Position is a single fix from a location provider.
type Position struct {
	Coordinate Coordinate // Coordinate is the reported location.
	Timestamp  time.Time  // Timestamp is when the fix was taken.
}
