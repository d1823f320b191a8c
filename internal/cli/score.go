package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
	"github.com/Yasharm4x/CarbonSense-v5/internal/emissions"
	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
)

// ErrMissingGrid is returned by score without a region or an explicit carbon
// intensity and PUE, or when only one of the two is given.
var ErrMissingGrid = errors.New("score needs --region or both --carbon-intensity and --pue")

// scoreResult is the serialized output of the score command.
type scoreResult struct {
	Grams           float64               `json:"grams_co2"        yaml:"grams_co2"`
	Performance     float64               `json:"performance"      yaml:"performance"`
	CarbonIntensity float64               `json:"carbon_intensity" yaml:"carbon_intensity"`
	PUE             float64               `json:"pue"              yaml:"pue"`
	EnergyKWh       float64               `json:"energy_kwh"       yaml:"energy_kwh"`
	Efficiency      float64               `json:"efficiency"       yaml:"efficiency"`
	Score           float64               `json:"score"            yaml:"score"`
	Options         greenops.ScoreOptions `json:"options"          yaml:"options"`
}

// newScoreCmd creates the score command.
func newScoreCmd(s *session) *cobra.Command {
	var (
		grams       float64
		performance float64
		region      string
		intensity   float64
		pue         float64
		threshold   float64
		decay       float64
		blend       string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Blend task performance with CO₂ efficiency into a green score",
		Long: `Compute a heuristic green score in [0, 1].

Energy is recovered from grams through the grid (carbon intensity × PUE).
Efficiency is 1 up to the energy threshold and decays exponentially above
it. The multiplicative blend is performance × efficiency; the harmonic blend
is their harmonic mean.`,
		Example: `  carbonsense score --grams 40 --performance 0.92 --region eu-west
  carbonsense score --grams 5000 --performance 0.8 --carbon-intensity 300 --pue 1.1 --blend harmonic`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := greenops.ValidatePerformance(performance); err != nil {
				return err
			}
			if math.IsNaN(grams) || math.IsInf(grams, 0) {
				return fmt.Errorf("%w: --grams %g", greenops.ErrCalculationOverflow, grams)
			}
			if grams < 0 {
				return fmt.Errorf("%w: --grams %g", greenops.ErrNegativeValue, grams)
			}
			format, err := outputFormat(s, output)
			if err != nil {
				return err
			}

			opts := s.cfg.ScoreOptions()
			if cmd.Flags().Changed("threshold") {
				opts.EnergyThresholdKWh = threshold
			}
			if cmd.Flags().Changed("decay") {
				opts.DecayRate = decay
			}
			if blend != "" {
				if opts.Blend, err = greenops.ParseBlend(blend); err != nil {
					return err
				}
			}
			if err = opts.Validate(); err != nil {
				return err
			}

			ci, p, err := scoreGrid(s, cmd, region, intensity, pue)
			if err != nil {
				return err
			}

			energy := greenops.EnergyFromGrams(grams, ci, p)
			res := scoreResult{
				Grams:           grams,
				Performance:     performance,
				CarbonIntensity: ci,
				PUE:             p,
				EnergyKWh:       energy,
				Efficiency:      greenops.Efficiency(energy, opts),
				Score:           greenops.GreenScore(grams, performance, ci, p, opts),
				Options:         opts,
			}

			switch format {
			case report.FormatJSON:
				return report.WriteJSON(cmd.OutOrStdout(), res, true)
			case report.FormatNDJSON:
				return report.WriteJSON(cmd.OutOrStdout(), res, false)
			case report.FormatYAML:
				return report.WriteYAML(cmd.OutOrStdout(), res)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Green score: %.3f (%s blend)\n", res.Score, opts.Blend)
			fmt.Fprintf(w, "Performance: %.3f\n", res.Performance)
			fmt.Fprintf(w, "Efficiency:  %.3f at %s\n", res.Efficiency, greenops.FormatEnergy(res.EnergyKWh))
			return nil
		},
	}

	cmd.Flags().Float64Var(&grams, "grams", 0, "grams of CO₂ emitted")
	cmd.Flags().Float64Var(&performance, "performance", 0, "task performance in [0, 1], e.g. accuracy")
	cmd.Flags().StringVar(&region, "region", "", "region key supplying carbon intensity and PUE")
	cmd.Flags().Float64Var(&intensity, "carbon-intensity", 0, "grid carbon intensity in g CO₂/kWh")
	cmd.Flags().Float64Var(&pue, "pue", 0, "data-centre power usage effectiveness")
	cmd.Flags().Float64Var(&threshold, "threshold", greenops.DefaultEnergyThresholdKWh,
		"energy in kWh at or below which efficiency is 1 (default from config)")
	cmd.Flags().Float64Var(&decay, "decay", greenops.DefaultDecayRate,
		"exponential decay rate above the threshold (default from config)")
	cmd.Flags().StringVar(&blend, "blend", "", "multiplicative or harmonic (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")
	_ = cmd.MarkFlagRequired("grams")
	_ = cmd.MarkFlagRequired("performance")

	return cmd
}

// scoreGrid resolves carbon intensity and PUE. Explicit flags win over the
// region, which defaults to the configured one.
func scoreGrid(s *session, cmd *cobra.Command, region string, intensity, pue float64) (float64, float64, error) {
	hasIntensity, hasPUE := cmd.Flags().Changed("carbon-intensity"), cmd.Flags().Changed("pue")
	if hasIntensity != hasPUE {
		return 0, 0, ErrMissingGrid
	}
	if hasIntensity {
		if math.IsNaN(intensity) || math.IsInf(intensity, 0) || intensity <= 0 {
			return 0, 0, fmt.Errorf("%w: --carbon-intensity %g", catalog.ErrInvalidCarbonIntensity, intensity)
		}
		if math.IsNaN(pue) || math.IsInf(pue, 0) || pue < 1 {
			return 0, 0, fmt.Errorf("%w: --pue %g", catalog.ErrInvalidPUE, pue)
		}
		return intensity, pue, nil
	}
	if region == "" {
		region = s.cfg.Defaults.Region
	}
	if region == "" {
		return 0, 0, ErrMissingGrid
	}
	r, ok := s.catalog.Region(region)
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown region %q; %s", ErrInvalidSelection, region,
			unresolvedHint(s.catalog, emissions.Selection{}, "region"))
	}
	return r.CarbonIntensity, r.PUE, nil
}
