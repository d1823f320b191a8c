package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
	"github.com/Yasharm4x/CarbonSense-v5/internal/emissions"
	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
	"github.com/Yasharm4x/CarbonSense-v5/internal/report"
)

// ErrInvalidQuantity is returned for a workload quantity that is not a
// non-negative number.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Catalog is the catalog surface the interactive calculator reads.
type Catalog interface {
	report.Catalog
	Categories() []catalog.Category
	Models(category string) []catalog.Model
	DatasetTypes() []catalog.DatasetType
	Tasks() []catalog.Task
}

// FormValues holds the raw form answers. Quantities stay strings until
// Selection parses them.
type FormValues struct {
	Category    string
	Model       string
	Region      string
	Hardware    string
	DatasetType string
	Task        string
	Tokens      string
	Rows        string
	Columns     string
}

// NewFormValues seeds the form from an initial selection.
func NewFormValues(sel emissions.Selection) *FormValues {
	return &FormValues{
		Category:    sel.Category,
		Model:       sel.Model,
		Region:      sel.Region,
		Hardware:    sel.Hardware,
		DatasetType: sel.DatasetType,
		Task:        sel.Task,
		Tokens:      formatQuantity(sel.Tokens),
		Rows:        formatQuantity(sel.Rows),
		Columns:     formatQuantity(sel.Columns),
	}
}

// Selection parses the answers into an estimator selection. Blank quantities are zero.
func (v *FormValues) Selection() (emissions.Selection, error) {
	sel := emissions.Selection{
		Category:    v.Category,
		Model:       v.Model,
		Region:      v.Region,
		Hardware:    v.Hardware,
		DatasetType: v.DatasetType,
		Task:        v.Task,
	}
	var err error
	if sel.Tokens, err = parseQuantity("tokens", v.Tokens); err != nil {
		return emissions.Selection{}, err
	}
	if sel.Rows, err = parseQuantity("rows", v.Rows); err != nil {
		return emissions.Selection{}, err
	}
	if sel.Columns, err = parseQuantity("columns", v.Columns); err != nil {
		return emissions.Selection{}, err
	}
	return sel, nil
}

// NewSelectionForm builds the selection form. The model list follows the
// chosen category, and the workload group switches between tokens and
// rows × columns with the category's workload kind.
func NewSelectionForm(cat Catalog, v *FormValues) *huh.Form {
	tokens := func() bool { return isTokenCategory(cat, v.Category) }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(CategoryOptions(cat)...).
				Value(&v.Category),
			huh.NewSelect[string]().
				Title("Model").
				OptionsFunc(func() []huh.Option[string] {
					return ModelOptions(cat, v.Category)
				}, &v.Category).
				Value(&v.Model),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tokens").
				Description("Tokens processed per inference.").
				Value(&v.Tokens).
				Validate(validateQuantity),
		).WithHideFunc(func() bool { return !tokens() }),
		huh.NewGroup(
			huh.NewInput().
				Title("Rows").
				Value(&v.Rows).
				Validate(validateQuantity),
			huh.NewInput().
				Title("Columns").
				Value(&v.Columns).
				Validate(validateQuantity),
			huh.NewSelect[string]().
				Title("Data type").
				Options(DatasetOptions(cat)...).
				Value(&v.DatasetType),
			huh.NewSelect[string]().
				Title("Task").
				Options(TaskOptions(cat)...).
				Value(&v.Task),
		).WithHideFunc(tokens),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Options(RegionOptions(cat)...).
				Value(&v.Region),
			huh.NewSelect[string]().
				Title("Hardware").
				Options(HardwareOptions(cat)...).
				Value(&v.Hardware),
		),
	).WithTheme(huh.ThemeCharm())
}

// RunSelectionForm runs the form on the terminal and returns the parsed selection.
// It returns huh.ErrUserAborted when the user cancels.
func RunSelectionForm(ctx context.Context, cat Catalog, initial emissions.Selection) (emissions.Selection, error) {
	v := NewFormValues(initial)
	if err := NewSelectionForm(cat, v).RunWithContext(ctx); err != nil {
		return emissions.Selection{}, err
	}
	return v.Selection()
}

// CategoryOptions lists the catalog categories.
func CategoryOptions(cat Catalog) []huh.Option[string] {
	cats := cat.Categories()
	opts := make([]huh.Option[string], 0, len(cats))
	for _, c := range cats {
		opts = append(opts, huh.NewOption(c.Name, c.Key))
	}
	return opts
}

// ModelOptions lists the models of a category with their size and maker.
func ModelOptions(cat Catalog, category string) []huh.Option[string] {
	models := cat.Models(category)
	opts := make([]huh.Option[string], 0, len(models))
	for _, m := range models {
		label := fmt.Sprintf("%s (%sB params", m.Name, greenops.FormatFloat(m.ParamsBillions, paramsPrecision(m.ParamsBillions)))
		if m.Company != "" {
			label += ", " + m.Company
		}
		opts = append(opts, huh.NewOption(label+")", m.Key))
	}
	return opts
}

// RegionOptions lists the regions with their grid intensity.
func RegionOptions(cat Catalog) []huh.Option[string] {
	regions := cat.Regions()
	opts := make([]huh.Option[string], 0, len(regions))
	for _, r := range regions {
		label := fmt.Sprintf("%s (%s g/kWh)", r.Name, greenops.FormatFloat(r.CarbonIntensity, 0))
		opts = append(opts, huh.NewOption(label, r.Key))
	}
	return opts
}

// HardwareOptions lists the hardware profiles, led by a no-hardware choice.
func HardwareOptions(cat Catalog) []huh.Option[string] {
	profiles := cat.HardwareProfiles()
	opts := make([]huh.Option[string], 0, len(profiles)+1)
	opts = append(opts, huh.NewOption("None (no hardware factor)", ""))
	for _, h := range profiles {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%.3f kW avg)", h.Name, h.Factor()), h.Key))
	}
	return opts
}

// DatasetOptions lists the dataset types, led by a none choice.
func DatasetOptions(cat Catalog) []huh.Option[string] {
	types := cat.DatasetTypes()
	opts := make([]huh.Option[string], 0, len(types)+1)
	opts = append(opts, huh.NewOption("None", ""))
	for _, d := range types {
		opts = append(opts, huh.NewOption(d.Name, d.Key))
	}
	return opts
}

// TaskOptions lists the tasks, led by a none choice.
func TaskOptions(cat Catalog) []huh.Option[string] {
	tasks := cat.Tasks()
	opts := make([]huh.Option[string], 0, len(tasks)+1)
	opts = append(opts, huh.NewOption("None", ""))
	for _, t := range tasks {
		opts = append(opts, huh.NewOption(t.Name, t.Key))
	}
	return opts
}

func isTokenCategory(cat Catalog, key string) bool {
	c, ok := cat.Category(key)
	return ok && c.Workload == catalog.WorkloadTokens
}

func validateQuantity(s string) error {
	_, err := parseQuantity("value", s)
	return err
}

func parseQuantity(name, s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be a non-negative number, got %q", ErrInvalidQuantity, name, s)
	}
	return f, nil
}

func formatQuantity(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// paramsPrecision keeps small parameter counts readable.
func paramsPrecision(billions float64) int {
	switch {
	case billions >= 10:
		return 0
	case billions >= 1:
		return 1
	case billions >= 0.01:
		return 2
	default:
		return 4
	}
}
