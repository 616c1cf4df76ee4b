package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/wayfinder/internal/models"
)

const (
	metersPerKilometer = 1000.0
	metersPerMile      = 1609.34
)

// ErrInvalidDistance is returned when a distance is negative or not finite.
var ErrInvalidDistance = errors.New("distance must be a non-negative finite number")

// FormatDistance renders a distance in meters as a display string in the
// requested unit system, always with two fractional digits.
func FormatDistance(meters float64, units models.UnitSystem) (string, error) {
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters < 0 {
		return "", fmt.Errorf("%w: %v", ErrInvalidDistance, meters)
	}

	if units == models.UnitsImperial {
		return fmt.Sprintf("%.2f mi", meters/metersPerMile), nil
	}
	return fmt.Sprintf("%.2f km", meters/metersPerKilometer), nil
}
