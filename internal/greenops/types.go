// Package greenops derives human-facing metrics from a CO₂ estimate:
// everyday equivalences with a tree-offset note, and a heuristic green score
// that blends task performance with energy efficiency.
//
// Every function here is pure and works on grams of CO₂.
package greenops

import "fmt"

// Band is a magnitude band of the equivalence step function.
type Band int

const (
	// BandBreathing covers values below one gram.
	BandBreathing Band = iota

	// BandPhoneSeconds covers [1, 5) grams.
	BandPhoneSeconds

	// BandPhoneMinutes covers [5, 50) grams.
	BandPhoneMinutes

	// BandCarMeters covers [50, 500) grams.
	BandCarMeters

	// BandCarKilometers covers [500, 5000) grams.
	BandCarKilometers

	// BandSignificant covers 5000 grams and above.
	BandSignificant
)

// String returns a human-readable representation of the Band.
func (b Band) String() string {
	switch b {
	case BandBreathing:
		return "Breathing"
	case BandPhoneSeconds:
		return "PhoneSeconds"
	case BandPhoneMinutes:
		return "PhoneMinutes"
	case BandCarMeters:
		return "CarMeters"
	case BandCarKilometers:
		return "CarKilometers"
	case BandSignificant:
		return "Significant"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// CarbonInput is a carbon quantity in any recognized unit.
type CarbonInput struct {
	// Value is the numeric carbon emission amount.
	Value float64 `json:"value"`

	// Unit is the measurement unit (g, kg, t, lb, optionally suffixed CO2 or CO2e).
	Unit string `json:"unit"`
}

// EquivalenceOutput holds every equivalence view of one carbon value.
type EquivalenceOutput struct {
	// InputGrams is the normalized input in grams of CO₂.
	InputGrams float64 `json:"input_grams" yaml:"input_grams"`

	// Band is the magnitude band the value falls in.
	Band Band `json:"-" yaml:"-"`

	// BandName is Band as text, for serialized output.
	BandName string `json:"band" yaml:"band"`

	// Phrase is the everyday comparison, e.g. "8 seconds of phone charging".
	Phrase string `json:"phrase" yaml:"phrase"`

	// Trees is the number of tree-years needed to absorb the value.
	Trees float64 `json:"trees" yaml:"trees"`

	// TreesText is Trees formatted for display, e.g. "0.05 tree" or "3 trees".
	TreesText string `json:"trees_text" yaml:"trees_text"`

	// DisplayText is the full sentence combining Phrase and the tree offset.
	DisplayText string `json:"display_text" yaml:"display_text"`
}
