// Package cli implements the carbonsense command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
	"github.com/Yasharm4x/CarbonSense-v5/internal/config"
	"github.com/Yasharm4x/CarbonSense-v5/internal/emissions"
	"github.com/Yasharm4x/CarbonSense-v5/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// session holds what PersistentPreRunE resolves for every subcommand.
type session struct {
	cfg        *config.Config
	configPath string
	catalog    *catalog.Catalog
	logResult  *logging.LogPathResult
}

// estimator returns an estimator over the session catalog that traces to the CLI logger.
func (s *session) estimator() *emissions.Estimator {
	return emissions.NewEstimator(s.catalog, emissions.WithLogger(logging.ComponentLogger(logger, "emissions")))
}

// NewRootCmd creates the root Cobra command for the carbonsense CLI.
// It loads configuration, sets up logging and resolves the catalog before
// any subcommand runs.
func NewRootCmd(ver string) *cobra.Command {
	s := &session{}

	var (
		configPath     string
		catalogPath    string
		replaceCatalog bool
	)

	cmd := &cobra.Command{
		Use:           "carbonsense",
		Short:         "Estimate the CO₂ footprint of ML inference workloads",
		Long:          "CarbonSense: estimate grams of CO₂ for a model, workload, region and hardware",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, used, err := config.Load(configPath)
			if err != nil {
				return err
			}
			config.SetGlobalConfig(cfg)
			s.cfg, s.configPath = cfg, used

			result := setupLogging(cmd)
			s.logResult = &result

			if !cmd.Flags().Changed("catalog") {
				catalogPath = cfg.Catalog.Path
			}
			if !cmd.Flags().Changed("replace-catalog") {
				replaceCatalog = cfg.Catalog.Replace
			}
			c, err := catalog.Resolve(catalogPath, replaceCatalog)
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			s.catalog = c

			logger.Debug().Ctx(cmd.Context()).
				Str("config", used).
				Str("catalog", catalogPath).
				Str("catalog_version", c.Version()).
				Msg("session ready")
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, s.logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default $CARBONSENSE_HOME/config.yaml or ~/.carbonsense/config.yaml)")
	cmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"YAML catalog merged over the built-in one")
	cmd.PersistentFlags().BoolVar(&replaceCatalog, "replace-catalog", false,
		"use --catalog instead of the built-in catalog rather than merging")

	cmd.AddCommand(
		newEstimateCmd(s),
		newCompareCmd(s),
		newEquivalenceCmd(s),
		newScoreCmd(s),
		newCatalogCmd(s),
		newConfigCmd(s),
		newInteractiveCmd(s),
	)

	return cmd
}

const rootCmdExample = `  # Estimate 1,000 GPT-4o tokens served from the US West Coast
  carbonsense estimate --model gpt-4o --tokens 1000 --region us-west --hardware none

  # Estimate a classical ML model over a 10,000 × 20 table on CPU
  carbonsense estimate --category ml --model xgboost --rows 10000 --columns 20 \
    --dataset-type structured --task classification --hardware cpu

  # Rank every region for the same workload
  carbonsense compare --model claude-3 --tokens 5000

  # Everyday equivalence for 2.5 kg of CO₂
  carbonsense equivalence 2.5 --unit kg

  # Green score for an 0.92-accuracy model emitting 40 g
  carbonsense score --grams 40 --performance 0.92 --region eu-west

  # Pick everything interactively
  carbonsense interactive`

// newConfigCmd creates the config command group.
func newConfigCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(newConfigInitCmd(), newConfigShowCmd(s), newConfigPathCmd())
	return cmd
}

// newCatalogCmd creates the catalog command group.
func newCatalogCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "catalog", Short: "Inspect and validate the reference catalog"}
	cmd.AddCommand(newCatalogListCmd(s), newCatalogValidateCmd(), newCatalogExportCmd(s))
	return cmd
}
