package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yasharm4x/CarbonSense-v5/internal/config"
	"github.com/Yasharm4x/CarbonSense-v5/internal/emissions"
	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
)

// estimateParams holds the flags of the estimate command.
type estimateParams struct {
	selectionFlags

	Output      string
	Copy        bool
	Performance float64
	Blend       string
}

// newEstimateCmd creates the estimate command.
func newEstimateCmd(s *session) *cobra.Command {
	var params estimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate grams of CO₂ for one inference workload",
		Long: `Estimate the CO₂ emitted by running a model over a workload in a region.

Token categories (llm, generative) take --tokens. Data-point categories
(ml, quantized) take --rows and --columns, plus optional --dataset-type and
--task multipliers. --hardware scales energy by the average power draw of a
hardware profile; "none" disables the factor.

With --performance the report also carries a green score blending task
performance with CO₂ efficiency.`,
		Example: `  carbonsense estimate --model gpt-4o --tokens 1000 --region us-west --hardware none
  carbonsense estimate --category ml --model random-forest --rows 5000 --columns 30 --task classification
  carbonsense estimate --model llama-3-70b --tokens 2000 --performance 0.85 --output json --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEstimate(cmd, s, params)
		},
	}

	params.bind(cmd)
	cmd.Flags().StringVarP(&params.Output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")
	cmd.Flags().BoolVar(&params.Copy, "copy", false, "copy a text summary to the clipboard")
	cmd.Flags().Float64Var(&params.Performance, "performance", 0, "task performance in [0, 1]; enables the green score")
	cmd.Flags().StringVar(&params.Blend, "blend", "", "green score blend: multiplicative or harmonic (default from config)")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func executeEstimate(cmd *cobra.Command, s *session, params estimateParams) error {
	sel, err := params.selection(s, cmd)
	if err != nil {
		return err
	}
	format, err := outputFormat(s, params.Output)
	if err != nil {
		return err
	}

	opts := report.Options{Score: s.cfg.ScoreOptions()}
	if params.Blend != "" {
		blend, blendErr := greenops.ParseBlend(params.Blend)
		if blendErr != nil {
			return blendErr
		}
		opts.Score.Blend = blend
	}
	if cmd.Flags().Changed("performance") {
		if err := greenops.ValidatePerformance(params.Performance); err != nil {
			return err
		}
		perf := params.Performance
		opts.Performance = &perf
	}

	est := s.estimator()
	r, err := report.Build(s.catalog, est, sel, opts)
	if err != nil {
		return explainIncomplete(s, est, sel, err)
	}

	logger.Debug().Ctx(cmd.Context()).
		Str("report_id", r.ID).
		Float64("grams_co2", r.Grams).
		Msg("estimate complete")

	if err = report.Render(cmd.OutOrStdout(), format, r, s.cfg.Output.Precision); err != nil {
		return err
	}

	if params.Copy {
		if copyErr := report.Copy(r); copyErr != nil {
			cmd.PrintErrf("Warning: %v\n", copyErr)
		} else {
			cmd.PrintErrln("Summary copied to clipboard.")
		}
	}
	return nil
}

// explainIncomplete adds the valid keys of the first unresolved field to an
// incomplete-selection error.
func explainIncomplete(s *session, est *emissions.Estimator, sel emissions.Selection, err error) error {
	if !errors.Is(err, report.ErrIncompleteSelection) {
		return err
	}
	missing := est.Unresolved(sel)
	if len(missing) == 0 {
		return err
	}
	if hint := unresolvedHint(s.catalog, sel, missing[0]); hint != "" {
		return fmt.Errorf("%w; %s", err, hint)
	}
	return err
}

// outputFormat resolves the --output flag against the configured default.
func outputFormat(s *session, flag string) (string, error) {
	format := flag
	if format == "" {
		format = s.cfg.Output.DefaultFormat
	}
	if !config.IsValidFormat(format) {
		return "", fmt.Errorf("%w: %q (want table, json, ndjson or yaml)", report.ErrUnsupportedFormat, format)
	}
	return format, nil
}
