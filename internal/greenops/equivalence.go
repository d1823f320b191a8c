package greenops

import (
	"fmt"
	"math"
)

// BandFor returns the equivalence band for a value in grams.
// Negative and NaN values fall in BandBreathing.
func BandFor(grams float64) Band {
	switch {
	case math.IsNaN(grams) || grams < PhoneSecondsMinGrams:
		return BandBreathing
	case grams < PhoneMinutesMinGrams:
		return BandPhoneSeconds
	case grams < CarMetersMinGrams:
		return BandPhoneMinutes
	case grams < CarKilometersMinGrams:
		return BandCarMeters
	case grams < SignificantMinGrams:
		return BandCarKilometers
	default:
		return BandSignificant
	}
}

// Equivalence maps grams of CO₂ to an everyday comparison.
//
//	< 1 g         "< 1 second of breathing"
//	[1, 5)        round(g × 2) seconds of phone charging
//	[5, 50)       round(g / 5) minutes of phone charging
//	[50, 500)     round(g / 100) meters driving a car
//	[500, 5000)   round(g / 1000) km driving a car
//	>= 5000       kilograms to one decimal, "(significant impact)"
func Equivalence(grams float64) string {
	switch BandFor(grams) {
	case BandBreathing:
		return "< 1 second of breathing"
	case BandPhoneSeconds:
		return fmt.Sprintf("%d seconds of phone charging", roundInt(grams*2))
	case BandPhoneMinutes:
		return fmt.Sprintf("%d minutes of phone charging", roundInt(grams/5))
	case BandCarMeters:
		return fmt.Sprintf("%d meters driving a car", roundInt(grams/100))
	case BandCarKilometers:
		return fmt.Sprintf("%d km driving a car", roundInt(grams/1000))
	default:
		return fmt.Sprintf("%.1f kg CO₂ (significant impact)", grams/KgToGrams)
	}
}

// Trees returns the tree-years needed to absorb grams of CO₂.
func Trees(grams float64) float64 {
	if math.IsNaN(grams) || grams <= 0 {
		return 0
	}
	return grams / KgToGrams / TreeKgPerYear
}

// TreeOffset formats Trees for display: two decimals below one tree,
// otherwise the whole number of trees rounded up.
func TreeOffset(grams float64) string {
	trees := Trees(grams)
	if trees < 1 {
		return fmt.Sprintf("%.2f tree", trees)
	}
	n := ceilInt(trees)
	if n == 1 {
		return "1 tree"
	}
	return FormatNumber(n) + " trees"
}

// Describe returns the equivalence phrase followed by the tree-offset note.
func Describe(grams float64) string {
	unit := "g CO₂"
	if grams >= KilogramDisplayMinGrams {
		unit = "kg CO₂"
	}
	return fmt.Sprintf("%s • ≈%s need to be planted to offset this %s emission (1 tree offsets ~%g kg/year).",
		Equivalence(grams), TreeOffset(grams), unit, TreeKgPerYear)
}

// Calculate normalizes input to grams and returns every equivalence view of it.
// It returns ErrNegativeValue, ErrInvalidUnit or ErrCalculationOverflow for
// inputs NormalizeToGrams rejects.
func Calculate(input CarbonInput) (EquivalenceOutput, error) {
	grams, err := NormalizeToGrams(input.Value, input.Unit)
	if err != nil {
		return EquivalenceOutput{}, err
	}

	band := BandFor(grams)
	return EquivalenceOutput{
		InputGrams:  grams,
		Band:        band,
		BandName:    band.String(),
		Phrase:      Equivalence(grams),
		Trees:       Trees(grams),
		TreesText:   TreeOffset(grams),
		DisplayText: Describe(grams),
	}, nil
}

// ceilInt rounds up, saturating at the int64 range.
func ceilInt(v float64) int64 {
	c := math.Ceil(v)
	if c >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(c)
}

// roundInt rounds half away from zero, saturating at the int64 range.
func roundInt(v float64) int64 {
	r := math.Round(v)
	if r >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(r)
}
