// Package emissions converts a workload selection into an estimate of grams of
// CO₂ emitted, using the reference data in a catalog.
//
// The estimate is a heuristic: a product of independent multipliers over a
// per-token or per-data-point base energy, with no metering behind it.
package emissions

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/Yasharm4x/CarbonSense-v5/internal/catalog"
)

// Lookup is the read-only catalog view the estimator depends on.
// *catalog.Catalog implements it.
type Lookup interface {
	Category(key string) (catalog.Category, bool)
	Model(category, key string) (catalog.Model, bool)
	DatasetType(key string) (catalog.DatasetType, bool)
	Task(key string) (catalog.Task, bool)
	Region(key string) (catalog.Region, bool)
	Hardware(key string) (catalog.Hardware, bool)
}

// CarbonEstimator estimates emissions for a selection.
type CarbonEstimator interface {
	// Estimate returns grams of CO₂ for the selection.
	// Returns 0 when a required reference does not resolve.
	Estimate(sel Selection) float64

	// EstimateDetailed returns every intermediate factor of the estimate.
	// Returns (Breakdown{}, false) when a required reference does not resolve.
	EstimateDetailed(sel Selection) (Breakdown, bool)
}

// Estimator implements CarbonEstimator over a catalog.
// It holds no per-call state and is safe for concurrent use.
type Estimator struct {
	lookup Lookup
	logger zerolog.Logger
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithLogger sets the logger that receives one debug event per estimate.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Estimator) {
		e.logger = l
	}
}

// NewEstimator creates an estimator reading from lookup.
func NewEstimator(lookup Lookup, opts ...Option) *Estimator {
	e := &Estimator{
		lookup: lookup,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Estimate returns grams of CO₂ for the selection, or 0 for an incomplete one.
func (e *Estimator) Estimate(sel Selection) float64 {
	b, ok := e.EstimateDetailed(sel)
	if !ok {
		return 0
	}
	return b.Grams
}

// EstimateDetailed computes the estimate and returns its breakdown.
//
// The calculation:
//  1. Resolve model, region and (when a hardware key is given) hardware.
//  2. Hardware factor = rated power (kW) × utilization, or 1 with no hardware key.
//  3. Base energy (kWh) = workload units × params (billions) × per-unit constant × hardware factor,
//     where units are tokens for token categories and rows × columns otherwise.
//  4. Energy = base × model multiplier, then × dataset and task multipliers for
//     data-point categories when those are selected.
//  5. Grams = energy × PUE × carbon intensity.
//
// Unknown dataset type or task keys are treated as not selected.
func (e *Estimator) EstimateDetailed(sel Selection) (Breakdown, bool) {
	cat, ok := e.lookup.Category(sel.Category)
	if !ok {
		e.traceIncomplete(sel, "category")
		return Breakdown{}, false
	}
	model, ok := e.lookup.Model(sel.Category, sel.Model)
	if !ok {
		e.traceIncomplete(sel, "model")
		return Breakdown{}, false
	}
	region, ok := e.lookup.Region(sel.Region)
	if !ok {
		e.traceIncomplete(sel, "region")
		return Breakdown{}, false
	}

	hwFactor := 1.0
	if sel.Hardware != "" {
		hw, found := e.lookup.Hardware(sel.Hardware)
		if !found {
			e.traceIncomplete(sel, "hardware")
			return Breakdown{}, false
		}
		hwFactor = hw.Factor()
	}

	b := Breakdown{
		Workload:        cat.Workload,
		ParamsBillions:  model.ParamsBillions,
		HardwareFactor:  hwFactor,
		ModelMultiplier: model.EnergyMultiplier,
		PUE:             region.PUE,
		CarbonIntensity: region.CarbonIntensity,
	}

	if cat.Workload == catalog.WorkloadTokens {
		b.WorkloadUnits = SanitizeQuantity(sel.Tokens)
	} else {
		b.WorkloadUnits = SanitizeQuantity(sel.Rows) * SanitizeQuantity(sel.Columns)
	}

	b.BaseEnergyKWh = CalculateBaseEnergyKWh(cat.Workload, b.WorkloadUnits, model.ParamsBillions, hwFactor)
	energy := b.BaseEnergyKWh * model.EnergyMultiplier

	if cat.Workload != catalog.WorkloadTokens {
		if dt, found := e.lookup.DatasetType(sel.DatasetType); found {
			b.DatasetMultiplier = dt.EnergyMultiplier
			energy *= dt.EnergyMultiplier
		}
		if task, found := e.lookup.Task(sel.Task); found {
			b.TaskMultiplier = task.EnergyMultiplier
			energy *= task.EnergyMultiplier
		}
	}

	b.EnergyKWh = finiteNonNegative(energy)
	b.Grams = CalculateGrams(b.EnergyKWh, region.PUE, region.CarbonIntensity)

	e.logger.Debug().
		Str("category", sel.Category).
		Str("model", sel.Model).
		Str("region", sel.Region).
		Str("hardware", sel.Hardware).
		Str("workload", string(b.Workload)).
		Float64("workload_units", b.WorkloadUnits).
		Float64("hardware_factor", b.HardwareFactor).
		Float64("base_energy_kwh", b.BaseEnergyKWh).
		Float64("energy_kwh", b.EnergyKWh).
		Float64("grams_co2", b.Grams).
		Msg("emissions estimated")

	return b, true
}

// Unresolved returns the names of the selection fields whose keys do not
// resolve, in the order the estimator checks them. Dataset type and task are
// optional and only reported when set to an unknown key.
func (e *Estimator) Unresolved(sel Selection) []string {
	var missing []string
	if _, ok := e.lookup.Category(sel.Category); !ok {
		missing = append(missing, "category")
	}
	if _, ok := e.lookup.Model(sel.Category, sel.Model); !ok {
		missing = append(missing, "model")
	}
	if _, ok := e.lookup.Region(sel.Region); !ok {
		missing = append(missing, "region")
	}
	if sel.Hardware != "" {
		if _, ok := e.lookup.Hardware(sel.Hardware); !ok {
			missing = append(missing, "hardware")
		}
	}
	if sel.DatasetType != "" {
		if _, ok := e.lookup.DatasetType(sel.DatasetType); !ok {
			missing = append(missing, "dataset type")
		}
	}
	if sel.Task != "" {
		if _, ok := e.lookup.Task(sel.Task); !ok {
			missing = append(missing, "task")
		}
	}
	return missing
}

func (e *Estimator) traceIncomplete(sel Selection, field string) {
	e.logger.Debug().
		Str("category", sel.Category).
		Str("model", sel.Model).
		Str("region", sel.Region).
		Str("hardware", sel.Hardware).
		Str("unresolved", field).
		Msg("selection incomplete")
}

// CalculateBaseEnergyKWh returns the base energy of a workload before any
// multiplier is applied. units is a token count for WorkloadTokens and a
// data point count otherwise.
func CalculateBaseEnergyKWh(kind catalog.WorkloadKind, units, paramsBillions, hardwareFactor float64) float64 {
	perUnit := EnergyPerDataPoint
	if kind == catalog.WorkloadTokens {
		perUnit = EnergyPerToken
	}
	return finiteNonNegative(units * paramsBillions * perUnit * hardwareFactor)
}

// CalculateGrams converts energy to grams of CO₂ through datacenter overhead
// and grid intensity.
func CalculateGrams(energyKWh, pue, carbonIntensity float64) float64 {
	return finiteNonNegative(energyKWh * pue * carbonIntensity)
}

// SanitizeQuantity clamps a workload quantity to a finite non-negative value.
// Negative numbers, NaN and ±Inf become 0.
func SanitizeQuantity(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// finiteNonNegative keeps a product in [0, MaxFloat64]: NaN and negatives
// become 0 and +Inf saturates.
func finiteNonNegative(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	default:
		return v
	}
}
