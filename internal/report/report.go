// Package report turns an emissions estimate into a presentable result:
// resolved names, a workload description, derived metrics, renderers and the
// plain-text summary used for clipboard export.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
	"github.com/Yasharm4x/CarbonSense-v5/internal/emissions"
	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
)

// ErrIncompleteSelection is returned by Build when a required key does not resolve.
var ErrIncompleteSelection = errors.New("incomplete selection")

// Estimator is the part of emissions.Estimator a report needs.
type Estimator interface {
	EstimateDetailed(sel emissions.Selection) (emissions.Breakdown, bool)
	Unresolved(sel emissions.Selection) []string
}

// Ref is a resolved catalog reference.
type Ref struct {
	Key  string `json:"key"  yaml:"key"`
	Name string `json:"name" yaml:"name"`
}

// Score is the green score section of a report.
type Score struct {
	Performance float64               `json:"performance" yaml:"performance"`
	Value       float64               `json:"value"       yaml:"value"`
	Options     greenops.ScoreOptions `json:"options"     yaml:"options"`
}

// Report is one estimate, ready to render.
type Report struct {
	ID string `json:"id" yaml:"id"`

	Category    Ref    `json:"category"               yaml:"category"`
	Model       Ref    `json:"model"                  yaml:"model"`
	Company     string `json:"company,omitempty"      yaml:"company,omitempty"`
	Region      Ref    `json:"region"                 yaml:"region"`
	Hardware    *Ref   `json:"hardware,omitempty"     yaml:"hardware,omitempty"`
	DatasetType *Ref   `json:"dataset_type,omitempty" yaml:"dataset_type,omitempty"`
	Task        *Ref   `json:"task,omitempty"         yaml:"task,omitempty"`

	Selection emissions.Selection `json:"selection" yaml:"selection"`

	// Workload describes the workload size, e.g. "1,000 tokens".
	Workload string `json:"workload" yaml:"workload"`

	Grams     float64             `json:"grams_co2"  yaml:"grams_co2"`
	EnergyKWh float64             `json:"energy_kwh" yaml:"energy_kwh"`
	Breakdown emissions.Breakdown `json:"breakdown"  yaml:"breakdown"`

	Equivalence string  `json:"equivalence" yaml:"equivalence"`
	Trees       float64 `json:"trees"       yaml:"trees"`
	TreeOffset  string  `json:"tree_offset" yaml:"tree_offset"`
	Description string  `json:"description" yaml:"description"`

	// IntensityLevel is "low", "medium" or "high" for the region's grid.
	IntensityLevel string `json:"intensity_level" yaml:"intensity_level"`

	GreenScore *Score `json:"green_score,omitempty" yaml:"green_score,omitempty"`
}

// Options adds optional sections to a report.
type Options struct {
	// Performance in [0, 1] enables the green score section when non-nil.
	Performance *float64
	Score       greenops.ScoreOptions
}

// Build estimates sel and assembles a Report.
// It returns ErrIncompleteSelection, naming the unresolved fields, when the
// estimator cannot resolve the selection.
func Build(lookup emissions.Lookup, est Estimator, sel emissions.Selection, opts Options) (*Report, error) {
	if missing := est.Unresolved(sel); len(missing) > 0 {
		return nil, fmt.Errorf("%w: unresolved %s", ErrIncompleteSelection, strings.Join(missing, ", "))
	}
	b, ok := est.EstimateDetailed(sel)
	if !ok {
		return nil, fmt.Errorf("%w: selection could not be estimated", ErrIncompleteSelection)
	}

	cat, _ := lookup.Category(sel.Category)
	model, _ := lookup.Model(sel.Category, sel.Model)
	region, _ := lookup.Region(sel.Region)

	r := &Report{
		ID:             uuid.NewString(),
		Category:       Ref{Key: cat.Key, Name: cat.Name},
		Model:          Ref{Key: model.Key, Name: model.Name},
		Company:        model.Company,
		Region:         Ref{Key: region.Key, Name: region.Name},
		Selection:      sel,
		Workload:       DescribeWorkload(cat.Workload, sel),
		Grams:          b.Grams,
		EnergyKWh:      b.EnergyKWh,
		Breakdown:      b,
		Equivalence:    greenops.Equivalence(b.Grams),
		Trees:          greenops.Trees(b.Grams),
		TreeOffset:     greenops.TreeOffset(b.Grams),
		Description:    greenops.Describe(b.Grams),
		IntensityLevel: greenops.IntensityLevel(region.CarbonIntensity),
	}

	if hw, found := lookup.Hardware(sel.Hardware); found {
		r.Hardware = &Ref{Key: hw.Key, Name: hw.Name}
	}
	if cat.Workload != catalog.WorkloadTokens {
		if dt, found := lookup.DatasetType(sel.DatasetType); found {
			r.DatasetType = &Ref{Key: dt.Key, Name: dt.Name}
		}
		if task, found := lookup.Task(sel.Task); found {
			r.Task = &Ref{Key: task.Key, Name: task.Name}
		}
	}

	if opts.Performance != nil {
		perf := greenops.Clamp(*opts.Performance, 0, 1)
		r.GreenScore = &Score{
			Performance: perf,
			Value:       greenops.GreenScore(b.Grams, perf, region.CarbonIntensity, region.PUE, opts.Score),
			Options:     opts.Score,
		}
	}

	return r, nil
}

// DescribeWorkload formats the workload size of sel for its workload kind:
// "1,000 tokens" or "1,000 × 10 = 10,000 data points".
func DescribeWorkload(kind catalog.WorkloadKind, sel emissions.Selection) string {
	if kind == catalog.WorkloadTokens {
		return formatCount(emissions.SanitizeQuantity(sel.Tokens)) + " tokens"
	}
	rows := emissions.SanitizeQuantity(sel.Rows)
	cols := emissions.SanitizeQuantity(sel.Columns)
	return fmt.Sprintf("%s × %s = %s data points", formatCount(rows), formatCount(cols), formatCount(rows*cols))
}

// Summary returns the plain-text export of the report.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ML Model Emissions: %.2fg CO₂\n", r.Grams)
	fmt.Fprintf(&sb, "Model: %s\n", r.Model.Name)
	fmt.Fprintf(&sb, "Category: %s\n", r.Category.Name)
	if r.Breakdown.Workload == catalog.WorkloadTokens {
		fmt.Fprintf(&sb, "Tokens: %s\n", strings.TrimSuffix(r.Workload, " tokens"))
	} else {
		fmt.Fprintf(&sb, "Dataset: %s\n", r.Workload)
	}
	if r.Task != nil {
		fmt.Fprintf(&sb, "Task: %s\n", r.Task.Name)
	}
	if r.DatasetType != nil {
		fmt.Fprintf(&sb, "Data Type: %s\n", r.DatasetType.Name)
	}
	fmt.Fprintf(&sb, "Region: %s\n", r.Region.Name)
	if r.Hardware != nil {
		fmt.Fprintf(&sb, "Hardware: %s\n", r.Hardware.Name)
	}
	if r.GreenScore != nil {
		fmt.Fprintf(&sb, "Green Score: %.3f\n", r.GreenScore.Value)
	}
	fmt.Fprintf(&sb, "Equivalent: %s", r.Description)
	return sb.String()
}

// formatCount shows whole counts with separators and keeps fractional ones.
func formatCount(v float64) string {
	if v == float64(int64(v)) {
		return greenops.FormatNumber(int64(v))
	}
	return greenops.FormatFloat(v, 2)
}
