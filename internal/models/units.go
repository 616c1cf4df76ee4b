package models

import "fmt"

// UnitSystem selects how distances are rendered.
type UnitSystem string

const (
	// UnitsMetric renders distances in kilometers.
	UnitsMetric UnitSystem = "metric"
	// UnitsImperial renders distances in miles.
	UnitsImperial UnitSystem = "imperial"
)

// ParseUnitSystem converts a configuration string into a UnitSystem.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case UnitsMetric:
		return UnitsMetric, nil
	case UnitsImperial:
		return UnitsImperial, nil
	default:
		return "", fmt.Errorf("unknown unit system: %q", s)
	}
}
