package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yasharm4x/CarbonSense-v5/internal/config"
	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
)

// newConfigInitCmd creates the config init command.
func newConfigInitCmd() *cobra.Command {
	var (
		force bool
		path  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Example: `  carbonsense config init
  carbonsense config init --path ./carbonsense.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := path
			if target == "" {
				var err error
				if target, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}
			if err := config.WriteFile(config.New(), target, force); err != nil {
				return err
			}
			cmd.Printf("Configuration initialized at %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	cmd.Flags().StringVar(&path, "path", "", "file to write (default $CARBONSENSE_HOME/config.yaml)")

	return cmd
}

// newConfigShowCmd creates the config show command.
func newConfigShowCmd(s *session) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and CARBONSENSE_*
environment variables are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch output {
			case config.FormatJSON:
				return report.WriteJSON(cmd.OutOrStdout(), s.cfg, true)
			case "", config.FormatYAML:
				data, err := config.Marshal(s.cfg)
				if err != nil {
					return err
				}
				source := s.configPath
				if source == "" {
					source = "built-in defaults"
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n%s", source, data)
				return err
			default:
				return fmt.Errorf("%w: %q (want yaml or json)", report.ErrUnsupportedFormat, output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.FormatYAML, "output format: yaml or json")

	return cmd
}

// newConfigPathCmd creates the config path command.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}
