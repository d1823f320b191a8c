package cli

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
	"github.com/Yasharm4x/CarbonSense-v5/internal/emissions"
)

// hardwareNone selects no hardware factor.
const hardwareNone = "none"

// ErrInvalidSelection is returned for selection flags the catalog cannot resolve.
var ErrInvalidSelection = errors.New("invalid selection")

// selectionFlags are the flags shared by estimate, compare and interactive.
type selectionFlags struct {
	Category    string
	Model       string
	Tokens      float64
	Rows        float64
	Columns     float64
	DatasetType string
	Task        string
	Region      string
	Hardware    string
}

func (f *selectionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Category, "category", "",
		"model category (llm, generative, ml, quantized); inferred from --model when unique")
	cmd.Flags().StringVar(&f.Model, "model", "", "model key, e.g. gpt-4o")
	cmd.Flags().Float64Var(&f.Tokens, "tokens", 0, "tokens per inference (token categories)")
	cmd.Flags().Float64Var(&f.Rows, "rows", 0, "dataset rows (data-point categories)")
	cmd.Flags().Float64Var(&f.Columns, "columns", 0, "dataset columns (data-point categories)")
	cmd.Flags().StringVar(&f.DatasetType, "dataset-type", "", "dataset type key (data-point categories)")
	cmd.Flags().StringVar(&f.Task, "task", "", "ML task key (data-point categories)")
	cmd.Flags().StringVar(&f.Region, "region", "", "region key (default from config)")
	cmd.Flags().StringVar(&f.Hardware, "hardware", "",
		"hardware key, or \"none\" for no hardware factor (default from config)")
}

// selection validates the flags against the session catalog and applies config defaults for
// region and hardware when the flags were not given.
func (f *selectionFlags) selection(s *session, cmd *cobra.Command) (emissions.Selection, error) {
	quantities := []struct {
		name  string
		value float64
	}{{"tokens", f.Tokens}, {"rows", f.Rows}, {"columns", f.Columns}}
	for _, q := range quantities {
		if q.value < 0 || math.IsNaN(q.value) || math.IsInf(q.value, 0) {
			return emissions.Selection{}, fmt.Errorf("%w: --%s must be a non-negative number", ErrInvalidSelection, q.name)
		}
	}

	sel := emissions.Selection{
		Category:    f.Category,
		Model:       f.Model,
		DatasetType: f.DatasetType,
		Task:        f.Task,
		Region:      f.Region,
		Hardware:    f.Hardware,
		Tokens:      f.Tokens,
		Rows:        f.Rows,
		Columns:     f.Columns,
	}
	if !cmd.Flags().Changed("region") && sel.Region == "" {
		sel.Region = s.cfg.Defaults.Region
	}
	if !cmd.Flags().Changed("hardware") && sel.Hardware == "" {
		sel.Hardware = s.cfg.Defaults.Hardware
	}
	if strings.EqualFold(sel.Hardware, hardwareNone) {
		sel.Hardware = ""
	}

	if sel.Category == "" && sel.Model != "" {
		category, err := inferCategory(s.catalog, sel.Model)
		if err != nil {
			return emissions.Selection{}, err
		}
		sel.Category = category
	}
	return sel, nil
}

// inferCategory returns the only category containing model.
func inferCategory(c *catalog.Catalog, model string) (string, error) {
	var matches []string
	for _, cat := range c.Categories() {
		if _, ok := c.Model(cat.Key, model); ok {
			matches = append(matches, cat.Key)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: unknown model %q (see 'carbonsense catalog list models')", ErrInvalidSelection, model)
	default:
		return "", fmt.Errorf("%w: model %q exists in categories %s; pass --category",
			ErrInvalidSelection, model, strings.Join(matches, ", "))
	}
}

// unresolvedHint lists the valid keys for the first unresolved field.
func unresolvedHint(c *catalog.Catalog, sel emissions.Selection, field string) string {
	var keys []string
	switch field {
	case "category":
		for _, v := range c.Categories() {
			keys = append(keys, v.Key)
		}
	case "model":
		for _, v := range c.Models(sel.Category) {
			keys = append(keys, v.Key)
		}
	case "region":
		for _, v := range c.Regions() {
			keys = append(keys, v.Key)
		}
	case "hardware":
		keys = append(keys, hardwareNone)
		for _, v := range c.HardwareProfiles() {
			keys = append(keys, v.Key)
		}
	case "dataset type":
		for _, v := range c.DatasetTypes() {
			keys = append(keys, v.Key)
		}
	case "task":
		for _, v := range c.Tasks() {
			keys = append(keys, v.Key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return fmt.Sprintf("valid %s keys: %s", field, strings.Join(keys, ", "))
}
