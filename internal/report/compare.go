package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
	"github.com/Yasharm4x/CarbonSense-v5/internal/emissions"
	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
)

// Dimension is the selection field a comparison varies.
type Dimension string

const (
	// ByRegion varies the region across every catalog region.
	ByRegion Dimension = "region"
	// ByHardware varies the hardware across every catalog hardware profile.
	ByHardware Dimension = "hardware"
)

// ErrUnknownDimension is returned for a comparison dimension other than region or hardware.
var ErrUnknownDimension = errors.New("unknown comparison dimension")

// ParseDimension maps a flag value to a Dimension.
func ParseDimension(s string) (Dimension, error) {
	switch Dimension(s) {
	case ByRegion, "":
		return ByRegion, nil
	case ByHardware:
		return ByHardware, nil
	default:
		return "", fmt.Errorf("%w: %q (want region or hardware)", ErrUnknownDimension, s)
	}
}

// Catalog is the listing side of the catalog a comparison iterates over.
type Catalog interface {
	emissions.Lookup
	Regions() []catalog.Region
	HardwareProfiles() []catalog.Hardware
}

// Comparison is one row of a comparison, ranked by grams.
type Comparison struct {
	Rank      int     `json:"rank"       yaml:"rank"`
	Key       string  `json:"key"        yaml:"key"`
	Name      string  `json:"name"       yaml:"name"`
	Grams     float64 `json:"grams_co2"  yaml:"grams_co2"`
	EnergyKWh float64 `json:"energy_kwh" yaml:"energy_kwh"`
	// Relative is Grams divided by the lowest Grams in the comparison.
	Relative    float64 `json:"relative"    yaml:"relative"`
	Equivalence string  `json:"equivalence" yaml:"equivalence"`
}

// Compare estimates sel once per region (or hardware profile) and returns the
// results ranked from lowest to highest CO₂. Estimates run concurrently.
// The selection's own region or hardware value is ignored.
func Compare(ctx context.Context, cat Catalog, est Estimator, sel emissions.Selection, dim Dimension) ([]Comparison, error) {
	type variant struct{ key, name string }

	var variants []variant
	switch dim {
	case ByRegion:
		for _, r := range cat.Regions() {
			variants = append(variants, variant{r.Key, r.Name})
		}
	case ByHardware:
		for _, h := range cat.HardwareProfiles() {
			variants = append(variants, variant{h.Key, h.Name})
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
	}
	if len(variants) == 0 {
		return nil, nil
	}

	results := make([]Comparison, len(variants))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, v := range variants {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			s := sel
			if dim == ByRegion {
				s.Region = v.key
			} else {
				s.Hardware = v.key
			}
			b, ok := est.EstimateDetailed(s)
			if !ok {
				return fmt.Errorf("%w: unresolved %v", ErrIncompleteSelection, est.Unresolved(s))
			}
			results[i] = Comparison{
				Key:         v.key,
				Name:        v.name,
				Grams:       b.Grams,
				EnergyKWh:   b.EnergyKWh,
				Equivalence: greenops.Equivalence(b.Grams),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Grams == results[j].Grams {
			return results[i].Key < results[j].Key
		}
		return results[i].Grams < results[j].Grams
	})

	lowest := results[0].Grams
	for i := range results {
		results[i].Rank = i + 1
		if lowest > 0 {
			results[i].Relative = results[i].Grams / lowest
		} else if results[i].Grams == 0 {
			results[i].Relative = 1
		}
	}
	return results, nil
}

const tabPadding = 2

// RenderComparison writes a ranked comparison in the given format.
func RenderComparison(w io.Writer, format string, dim Dimension, rows []Comparison, precision int) error {
	switch format {
	case FormatTable, "":
	case FormatJSON:
		return WriteJSON(w, rows, true)
	case FormatNDJSON:
		for _, r := range rows {
			if err := WriteJSON(w, r, false); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML:
		return WriteYAML(w, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	header := "REGION"
	if dim == ByHardware {
		header = "HARDWARE"
	}
	fmt.Fprintf(tw, "#\t%s\tG CO₂\tENERGY\tVS BEST\tEQUIVALENT\n", header)
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2fx\t%s\n",
			r.Rank, r.Name, greenops.FormatFloat(r.Grams, precision),
			greenops.FormatEnergy(r.EnergyKWh), r.Relative, r.Equivalence)
	}
	return tw.Flush()
}
