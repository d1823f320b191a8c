package greenops

// Equivalence band boundaries, in grams of CO₂. Each band covers
// [lower bound, next bound).
const (
	// PhoneSecondsMinGrams starts the phone-charging seconds band.
	PhoneSecondsMinGrams = 1.0

	// PhoneMinutesMinGrams starts the phone-charging minutes band.
	PhoneMinutesMinGrams = 5.0

	// CarMetersMinGrams starts the car-driving meters band.
	CarMetersMinGrams = 50.0

	// CarKilometersMinGrams starts the car-driving kilometers band.
	CarKilometersMinGrams = 500.0

	// SignificantMinGrams starts the "significant impact" band, shown in kilograms.
	SignificantMinGrams = 5000.0
)

// Tree offset constants.
const (
	// TreeKgPerYear is the CO₂ one mature tree absorbs in a year, in kilograms.
	TreeKgPerYear = 22.0

	// KilogramDisplayMinGrams is the value from which descriptions switch to kg CO₂.
	KilogramDisplayMinGrams = 1000.0
)

// Green score defaults.
const (
	// DefaultEnergyThresholdKWh is the energy per inference below which no penalty applies.
	DefaultEnergyThresholdKWh = 0.001

	// DefaultDecayRate is the exponential penalty rate above the threshold.
	DefaultDecayRate = 0.5
)

// Unit conversion constants for normalizing carbon values to grams.
const (
	// GramsToGrams is the identity conversion.
	GramsToGrams = 1.0

	// KgToGrams converts kilograms to grams.
	KgToGrams = 1000.0

	// TonsToGrams converts metric tons to grams.
	TonsToGrams = 1_000_000.0

	// PoundsToGrams converts pounds to grams.
	PoundsToGrams = 453.592
)

// Grid intensity bands used to colour regions, in g CO₂ per kWh.
const (
	// LowIntensityMaxGPerKWh is the upper bound of a low-carbon grid.
	LowIntensityMaxGPerKWh = 200.0

	// MediumIntensityMaxGPerKWh is the upper bound of a medium-carbon grid.
	MediumIntensityMaxGPerKWh = 400.0
)
