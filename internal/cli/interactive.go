package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
	"github.com/Yasharm4x/CarbonSense-v5/internal/tui"
)

// ErrNotTerminal is returned by interactive when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("interactive mode requires a terminal; use estimate instead")

// newInteractiveCmd creates the interactive command.
func newInteractiveCmd(s *session) *cobra.Command {
	var (
		flags       selectionFlags
		noForm      bool
		performance float64
	)

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"tui"},
		Short:   "Pick a workload in a form and explore it in a live calculator",
		Long: `Choose category, model, workload, region and hardware in a terminal form,
then adjust the estimate live: arrows scale the workload and switch region,
w cycles hardware, e edits the workload, c copies a summary.

Selection flags pre-fill the form. With --no-form the form is skipped.`,
		Example: `  carbonsense interactive
  carbonsense interactive --model gpt-4o --tokens 1000 --no-form`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}
			ctx := cmd.Context()

			sel, err := flags.selection(s, cmd)
			if err != nil {
				return err
			}
			if !noForm {
				sel, err = tui.RunSelectionForm(ctx, s.catalog, sel)
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("selection form: %w", err)
				}
			}

			opts := report.Options{Score: s.cfg.ScoreOptions()}
			if cmd.Flags().Changed("performance") {
				if err := greenops.ValidatePerformance(performance); err != nil {
					return err
				}
				opts.Performance = &performance
			}

			m := tui.NewCalculatorModel(ctx, s.catalog, s.estimator(), sel, opts)
			final, err := tui.Run(ctx, m)
			if err != nil {
				return fmt.Errorf("running calculator: %w", err)
			}

			if r := final.Report(); r != nil {
				cmd.Println(r.Summary())
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&noForm, "no-form", false, "skip the selection form and open the calculator directly")
	cmd.Flags().Float64Var(&performance, "performance", 0, "task performance in [0, 1]; enables the green score")

	return cmd
}
