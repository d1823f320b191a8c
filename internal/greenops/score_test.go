package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreenScore(t *testing.T) {
	harmonic := DefaultScoreOptions()
	harmonic.Blend = BlendHarmonic

	// 2 t at 400 g/kWh and PUE 1.25 is exactly 4 kWh.
	heavyG := math.Exp(-0.5 * (4 - 0.001))

	tests := []struct {
		name    string
		grams   float64
		perf    float64
		ci      float64
		pue     float64
		opts    ScoreOptions
		want    float64
		epsilon float64
	}{
		{
			name: "below threshold keeps performance",
			grams: 50, perf: 0.9, ci: 350, pue: 1.2,
			opts: DefaultScoreOptions(), want: 0.9,
		},
		{
			name: "harmonic below threshold",
			grams: 50, perf: 0.5, ci: 350, pue: 1.2,
			opts: harmonic, want: 2 / (1/0.5 + 1.0),
		},
		{
			name: "penalty above threshold",
			grams: 2_000_000, perf: 0.8, ci: 400, pue: 1.25,
			opts: DefaultScoreOptions(), want: 0.8 * heavyG,
		},
		{
			name: "harmonic above threshold",
			grams: 2_000_000, perf: 0.8, ci: 400, pue: 1.25,
			opts: harmonic, want: 2 / (1/0.8 + 1/heavyG),
		},
		{
			name: "harmonic with zero performance",
			grams: 50, perf: 0, ci: 350, pue: 1.2,
			opts: harmonic, want: 0,
		},
		{
			name: "performance clamped high",
			grams: 50, perf: 1.7, ci: 350, pue: 1.2,
			opts: DefaultScoreOptions(), want: 1,
		},
		{
			name: "performance clamped low",
			grams: 50, perf: -0.3, ci: 350, pue: 1.2,
			opts: DefaultScoreOptions(), want: 0,
		},
		{
			name: "zero intensity",
			grams: 50, perf: 0.9, ci: 0, pue: 1.2,
			opts: DefaultScoreOptions(), want: 0,
		},
		{
			name: "zero grams",
			grams: 0, perf: 0.7, ci: 350, pue: 1.2,
			opts: harmonic, want: 2 / (1/0.7 + 1.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eps := tt.epsilon
			if eps == 0 {
				eps = 1e-12
			}
			assert.InDelta(t, tt.want, GreenScore(tt.grams, tt.perf, tt.ci, tt.pue, tt.opts), eps)
		})
	}
}

func TestGreenScore_HarmonicUnderflowIsZero(t *testing.T) {
	opts := ScoreOptions{EnergyThresholdKWh: 0, DecayRate: 1e6, Blend: BlendHarmonic}
	got := GreenScore(1e9, 0.9, 100, 1, opts)
	assert.Zero(t, got)
	assert.False(t, math.IsNaN(got))
}

func TestEnergyFromGrams(t *testing.T) {
	assert.InDelta(t, 50.0/1000/(350*1.2), EnergyFromGrams(50, 350, 1.2), 1e-15)
	assert.Zero(t, EnergyFromGrams(50, 0, 1.2))
	assert.Zero(t, EnergyFromGrams(-1, 350, 1.2))
}

func TestParseBlend(t *testing.T) {
	tests := []struct {
		in      string
		want    Blend
		wantErr bool
	}{
		{"", BlendMultiplicative, false},
		{"multiplicative", BlendMultiplicative, false},
		{" Harmonic ", BlendHarmonic, false},
		{"geometric", "", true},
	}

	for _, tt := range tests {
		got, err := ParseBlend(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrInvalidBlend)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestScoreOptionsValidate(t *testing.T) {
	require.NoError(t, DefaultScoreOptions().Validate())

	tests := []struct {
		name    string
		mutate  func(*ScoreOptions)
		wantErr error
	}{
		{"negative decay", func(o *ScoreOptions) { o.DecayRate = -1 }, ErrInvalidScoreOptions},
		{"NaN decay", func(o *ScoreOptions) { o.DecayRate = math.NaN() }, ErrInvalidScoreOptions},
		{"negative threshold", func(o *ScoreOptions) { o.EnergyThresholdKWh = -0.1 }, ErrInvalidScoreOptions},
		{"infinite threshold", func(o *ScoreOptions) { o.EnergyThresholdKWh = math.Inf(1) }, ErrInvalidScoreOptions},
		{"unknown blend", func(o *ScoreOptions) { o.Blend = "geometric" }, ErrInvalidBlend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultScoreOptions()
			tt.mutate(&opts)
			require.ErrorIs(t, opts.Validate(), tt.wantErr)
		})
	}
}

func TestValidatePerformance(t *testing.T) {
	for _, p := range []float64{0, 0.5, 1} {
		require.NoError(t, ValidatePerformance(p), "performance=%v", p)
	}
	for _, p := range []float64{-0.1, 1.1, math.NaN(), math.Inf(1)} {
		require.ErrorIs(t, ValidatePerformance(p), ErrInvalidPerformance, "performance=%v", p)
	}
}

func TestIntensityLevel(t *testing.T) {
	assert.Equal(t, "low", IntensityLevel(30))
	assert.Equal(t, "low", IntensityLevel(200))
	assert.Equal(t, "medium", IntensityLevel(350))
	assert.Equal(t, "high", IntensityLevel(700))
}
