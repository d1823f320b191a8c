package greenops

import (
	"fmt"
	"math"
	"strings"
)

// Blend selects how the green score combines performance and efficiency.
type Blend string

const (
	// BlendMultiplicative returns performance × efficiency.
	BlendMultiplicative Blend = "multiplicative"

	// BlendHarmonic returns the harmonic mean of performance and efficiency.
	BlendHarmonic Blend = "harmonic"
)

// ParseBlend maps a blend name to a Blend. An empty name is multiplicative.
func ParseBlend(s string) (Blend, error) {
	switch Blend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BlendMultiplicative:
		return BlendMultiplicative, nil
	case BlendHarmonic:
		return BlendHarmonic, nil
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidBlend, s, BlendMultiplicative, BlendHarmonic)
	}
}

// ScoreOptions tunes the efficiency penalty of GreenScore.
type ScoreOptions struct {
	// EnergyThresholdKWh is the energy at or below which efficiency is 1.
	EnergyThresholdKWh float64 `json:"energy_threshold_kwh" yaml:"energy_threshold_kwh"`

	// DecayRate is the exponential penalty rate above the threshold.
	DecayRate float64 `json:"decay_rate" yaml:"decay_rate"`

	// Blend combines performance and efficiency.
	Blend Blend `json:"blend" yaml:"blend"`
}

// DefaultScoreOptions returns a 0.001 kWh threshold, 0.5 decay and a multiplicative blend.
func DefaultScoreOptions() ScoreOptions {
	return ScoreOptions{
		EnergyThresholdKWh: DefaultEnergyThresholdKWh,
		DecayRate:          DefaultDecayRate,
		Blend:              BlendMultiplicative,
	}
}

// Validate rejects a negative or non-finite threshold or decay rate and an
// unknown blend. A negative decay would turn the penalty into a reward.
func (o ScoreOptions) Validate() error {
	if !isNonNegativeFinite(o.EnergyThresholdKWh) {
		return fmt.Errorf("%w: energy threshold %g must be a non-negative number", ErrInvalidScoreOptions, o.EnergyThresholdKWh)
	}
	if !isNonNegativeFinite(o.DecayRate) {
		return fmt.Errorf("%w: decay rate %g must be a non-negative number", ErrInvalidScoreOptions, o.DecayRate)
	}
	if _, err := ParseBlend(string(o.Blend)); err != nil {
		return err
	}
	return nil
}

// ValidatePerformance returns ErrInvalidPerformance unless p is in [0, 1].
func ValidatePerformance(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidPerformance, p)
	}
	return nil
}

func isNonNegativeFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// EnergyFromGrams recovers energy in kWh from grams of CO₂ through the grid
// intensity and PUE that produced them. Returns 0 when intensity × PUE is not positive.
func EnergyFromGrams(grams, carbonIntensity, pue float64) float64 {
	denom := carbonIntensity * pue
	if denom <= 0 || math.IsNaN(denom) || math.IsNaN(grams) || grams <= 0 {
		return 0
	}
	return grams / KgToGrams / denom
}

// Efficiency returns 1 at or below the threshold and decays exponentially above it.
func Efficiency(energyKWh float64, opts ScoreOptions) float64 {
	if energyKWh <= opts.EnergyThresholdKWh {
		return 1
	}
	return math.Exp(-opts.DecayRate * (energyKWh - opts.EnergyThresholdKWh))
}

// GreenScore blends task performance with a CO₂-derived efficiency factor.
//
// It is a relative heuristic, not a measured quantity:
//  1. Energy (kWh) = grams / 1000 / (carbon intensity × PUE)
//  2. Efficiency g = 1 if energy <= threshold, else exp(-decay × (energy - threshold))
//  3. Multiplicative: performance × g. Harmonic: 2 / (1/performance + 1/g).
//
// Performance is clamped to [0, 1]. The harmonic blend is 0 when either side is 0.
// The score is 0 when carbon intensity × PUE is not positive, since no energy
// can be recovered. An unknown blend is treated as multiplicative; use
// ParseBlend to reject it earlier.
func GreenScore(grams, performance, carbonIntensity, pue float64, opts ScoreOptions) float64 {
	if !(carbonIntensity*pue > 0) {
		return 0
	}
	perf := Clamp(performance, 0, 1)
	g := Efficiency(EnergyFromGrams(grams, carbonIntensity, pue), opts)
	if math.IsNaN(g) {
		g = 0
	}

	if opts.Blend == BlendHarmonic {
		if perf <= 0 || g <= 0 {
			return 0
		}
		return 2 / (1/perf + 1/g)
	}
	return perf * g
}

// Clamp returns v limited to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// IntensityLevel classifies a grid carbon intensity as "low", "medium" or "high".
func IntensityLevel(carbonIntensity float64) string {
	switch {
	case carbonIntensity <= LowIntensityMaxGPerKWh:
		return "low"
	case carbonIntensity <= MediumIntensityMaxGPerKWh:
		return "medium"
	default:
		return "high"
	}
}
