package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
)

// newEquivalenceCmd creates the equivalence command.
func newEquivalenceCmd(s *session) *cobra.Command {
	var (
		unit   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "equivalence AMOUNT",
		Short: "Express an amount of CO₂ as an everyday equivalent",
		Example: `  carbonsense equivalence 110.25
  carbonsense equivalence 2.5 --unit kg
  carbonsense equivalence 1 --unit t --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[0], err)
			}
			format, err := outputFormat(s, output)
			if err != nil {
				return err
			}

			out, err := greenops.Calculate(greenops.CarbonInput{Value: value, Unit: unit})
			if err != nil {
				return err
			}

			switch format {
			case report.FormatJSON:
				return report.WriteJSON(cmd.OutOrStdout(), out, true)
			case report.FormatNDJSON:
				return report.WriteJSON(cmd.OutOrStdout(), out, false)
			case report.FormatYAML:
				return report.WriteYAML(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s CO₂\n", greenops.FormatGrams(out.InputGrams))
			fmt.Fprintf(w, "Equivalent:  %s\n", out.Phrase)
			fmt.Fprintf(w, "Tree offset: %s for one year\n", out.TreesText)
			return nil
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "g", "unit of AMOUNT: g, kg, t or lb")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")

	return cmd
}
