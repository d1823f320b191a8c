package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
	"github.com/Yasharm4x/CarbonSense-v5/internal/emissions"
	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
)

const tabPadding = 2

// modelRow is a model with the category it belongs to, for listing.
type modelRow struct {
	Category string `json:"category" yaml:"category"`
	catalog.Model `yaml:",inline"`
}

// newCatalogListCmd creates the catalog list command.
func newCatalogListCmd(s *session) *cobra.Command {
	var (
		category string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "list [categories|models|datasets|tasks|regions|hardware]",
		Short: "List a catalog table",
		Example: `  carbonsense catalog list
  carbonsense catalog list models --category quantized
  carbonsense catalog list regions --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := catalog.KindCategories
			if len(args) == 1 {
				var err error
				if kind, err = catalog.ParseKind(args[0]); err != nil {
					return err
				}
			}
			format, err := outputFormat(s, output)
			if err != nil {
				return err
			}
			if category != "" {
				if _, ok := s.catalog.Category(category); !ok {
					return fmt.Errorf("%w: unknown category %q; %s", ErrInvalidSelection, category,
						unresolvedHint(s.catalog, emissions.Selection{}, "category"))
				}
			}

			rows := catalogRows(s.catalog, kind, category)
			switch format {
			case report.FormatJSON:
				return report.WriteJSON(cmd.OutOrStdout(), rows, true)
			case report.FormatNDJSON:
				return report.WriteJSON(cmd.OutOrStdout(), rows, false)
			case report.FormatYAML:
				return report.WriteYAML(cmd.OutOrStdout(), rows)
			}
			return writeCatalogTable(cmd.OutOrStdout(), s.catalog, kind, category)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list models of this category")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json, ndjson, yaml (default from config)")

	return cmd
}

// catalogRows returns the entries of one table for serialized output.
func catalogRows(c *catalog.Catalog, kind catalog.Kind, category string) any {
	switch kind {
	case catalog.KindModels:
		return modelRows(c, category)
	case catalog.KindDatasetTypes:
		return c.DatasetTypes()
	case catalog.KindTasks:
		return c.Tasks()
	case catalog.KindRegions:
		return c.Regions()
	case catalog.KindHardware:
		return c.HardwareProfiles()
	default:
		return c.Categories()
	}
}

func modelRows(c *catalog.Catalog, category string) []modelRow {
	var rows []modelRow
	for _, cat := range c.Categories() {
		if category != "" && cat.Key != category {
			continue
		}
		for _, m := range cat.Models {
			rows = append(rows, modelRow{Category: cat.Key, Model: m})
		}
	}
	return rows
}

func writeCatalogTable(out io.Writer, c *catalog.Catalog, kind catalog.Kind, category string) error {
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)

	switch kind {
	case catalog.KindModels:
		fmt.Fprintln(w, "Category\tKey\tName\tParams (B)\tCompany\tMultiplier")
		fmt.Fprintln(w, "--------\t---\t----\t----------\t-------\t----------")
		for _, r := range modelRows(c, category) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%s\t%g\n",
				r.Category, r.Key, r.Name, r.ParamsBillions, r.Company, r.EnergyMultiplier)
		}
	case catalog.KindDatasetTypes:
		fmt.Fprintln(w, "Key\tName\tMultiplier\tDescription")
		fmt.Fprintln(w, "---\t----\t----------\t-----------")
		for _, d := range c.DatasetTypes() {
			fmt.Fprintf(w, "%s\t%s\t%g\t%s\n", d.Key, d.Name, d.EnergyMultiplier, d.Description)
		}
	case catalog.KindTasks:
		fmt.Fprintln(w, "Key\tName\tMultiplier")
		fmt.Fprintln(w, "---\t----\t----------")
		for _, t := range c.Tasks() {
			fmt.Fprintf(w, "%s\t%s\t%g\n", t.Key, t.Name, t.EnergyMultiplier)
		}
	case catalog.KindRegions:
		fmt.Fprintln(w, "Key\tName\tg CO₂/kWh\tPUE\tGrid")
		fmt.Fprintln(w, "---\t----\t---------\t---\t----")
		for _, r := range c.Regions() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%s\n", r.Key, r.Name,
				greenops.FormatFloat(r.CarbonIntensity, 0), r.PUE, greenops.IntensityLevel(r.CarbonIntensity))
		}
	case catalog.KindHardware:
		fmt.Fprintln(w, "Key\tName\tPower (kW)\tUtilization\tAvg draw (kW)")
		fmt.Fprintln(w, "---\t----\t----------\t-----------\t-------------")
		for _, h := range c.HardwareProfiles() {
			fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%.3f\n", h.Key, h.Name, h.PowerKW, h.Utilization, h.Factor())
		}
	default:
		fmt.Fprintln(w, "Key\tName\tWorkload\tModels")
		fmt.Fprintln(w, "---\t----\t--------\t------")
		for _, cat := range c.Categories() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", cat.Key, cat.Name, cat.Workload, len(cat.Models))
		}
	}

	return w.Flush()
}

// newCatalogValidateCmd creates the catalog validate command.
func newCatalogValidateCmd() *cobra.Command {
	var overlay bool

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a catalog file",
		Long: `Parse and validate a YAML catalog. Every problem is reported at once.
With --overlay the file is validated as an overlay merged over the built-in catalog.`,
		Example: `  carbonsense catalog validate my-catalog.yaml
  carbonsense catalog validate extra-regions.yaml --overlay`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var (
				c   *catalog.Catalog
				err error
			)
			if overlay {
				c, err = validateOverlay(path)
			} else {
				c, err = catalog.LoadFile(path)
			}
			if err != nil {
				return err
			}

			models := 0
			for _, cat := range c.Categories() {
				models += len(cat.Models)
			}
			cmd.Printf("%s is valid (version %s): %d categories, %d models, %d regions, %d hardware profiles\n",
				path, c.Version(), len(c.Categories()), models, len(c.Regions()), len(c.HardwareProfiles()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&overlay, "overlay", false, "validate as an overlay merged over the built-in catalog")

	return cmd
}

func validateOverlay(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	doc, err := catalog.DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return catalog.Merge(catalog.Default(), doc)
}

// newCatalogExportCmd creates the catalog export command.
func newCatalogExportCmd(s *session) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the effective catalog",
		Long: `Print the catalog in use, after any --catalog overlay, as YAML or JSON.
The YAML output is a valid catalog file and a starting point for overlays.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := s.catalog.Document()
			switch output {
			case "", report.FormatYAML:
				return catalog.Encode(cmd.OutOrStdout(), doc)
			case report.FormatJSON:
				return report.WriteJSON(cmd.OutOrStdout(), doc, true)
			default:
				return fmt.Errorf("%w: %q (want yaml or json)", report.ErrUnsupportedFormat, output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", report.FormatYAML, "output format: yaml or json")

	return cmd
}
