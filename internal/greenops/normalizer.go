package greenops

import (
	"math"
	"strings"
)

// unitFactor returns the conversion factor to grams for a unit and whether the
// unit is recognized. Matching is case-insensitive and accepts a "co2" or
// "co2e" suffix: g, kg, t, lb, gCO2, kgCO2e, and so on.
func unitFactor(unit string) (float64, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, "co2e")
	u = strings.TrimSuffix(u, "co2")
	switch u {
	case "g", "":
		return GramsToGrams, true
	case "kg":
		return KgToGrams, true
	case "t":
		return TonsToGrams, true
	case "lb":
		return PoundsToGrams, true
	default:
		return 0, false
	}
}

// NormalizeToGrams converts a carbon quantity in the given unit to grams.
// An empty unit means grams.
//
// Returns ErrCalculationOverflow for non-finite input or an overflowing result,
// ErrNegativeValue for negative input and ErrInvalidUnit for unknown units.
func NormalizeToGrams(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}

	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}

	return result, nil
}
