package cli

import (
	"github.com/spf13/cobra"

	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
)

// newCompareCmd creates the compare command.
func newCompareCmd(s *session) *cobra.Command {
	var (
		flags  selectionFlags
		by     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank regions or hardware profiles for the same workload",
		Long: `Estimate one workload in every catalog region (or on every hardware
profile with --by hardware) and print them from lowest to highest CO₂.
The varied field of the selection is ignored.`,
		Example: `  carbonsense compare --model gpt-4o --tokens 1000
  carbonsense compare --category ml --model resnet-152 --rows 1000 --columns 224 --by hardware`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dim, err := report.ParseDimension(by)
			if err != nil {
				return err
			}
			sel, err := flags.selection(s, cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat(s, output)
			if err != nil {
				return err
			}

			est := s.estimator()
			rows, err := report.Compare(cmd.Context(), s.catalog, est, sel, dim)
			if err != nil {
				return explainIncomplete(s, est, sel, err)
			}

			logger.Debug().Ctx(cmd.Context()).
				Str("by", string(dim)).
				Int("rows", len(rows)).
				Msg("comparison complete")

			return report.RenderComparison(cmd.OutOrStdout(), format, dim, rows, s.cfg.Output.Precision)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&by, "by", string(report.ByRegion), "dimension to vary: region or hardware")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}
