package emissions

import "github.com/Yasharm4x/CarbonSense-v5/internal/catalog"

// Energy constants. These are the only empirical inputs of the model; every
// other factor comes from the catalog.
const (
	// EnergyPerToken is kWh per billion parameters per generated token.
	EnergyPerToken = 1.5e-6

	// EnergyPerDataPoint is kWh per billion parameters per input data point.
	EnergyPerDataPoint = 2e-9
)

// Selection is the caller's choice of catalog entries and workload size.
// Token categories read Tokens; data-point categories read Rows × Columns.
// DatasetType, Task and Hardware are optional.
type Selection struct {
	Category    string `json:"category"               yaml:"category"`
	Model       string `json:"model"                  yaml:"model"`
	DatasetType string `json:"dataset_type,omitempty" yaml:"dataset_type,omitempty"`
	Task        string `json:"task,omitempty"         yaml:"task,omitempty"`
	Region      string `json:"region"                 yaml:"region"`
	Hardware    string `json:"hardware,omitempty"     yaml:"hardware,omitempty"`

	Tokens  float64 `json:"tokens,omitempty"  yaml:"tokens,omitempty"`
	Rows    float64 `json:"rows,omitempty"    yaml:"rows,omitempty"`
	Columns float64 `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// Breakdown exposes every factor that went into an estimate.
// DatasetMultiplier and TaskMultiplier are 0 when not applied.
type Breakdown struct {
	Workload          catalog.WorkloadKind `json:"workload"                     yaml:"workload"`
	WorkloadUnits     float64              `json:"workload_units"               yaml:"workload_units"`
	ParamsBillions    float64              `json:"params_billions"              yaml:"params_billions"`
	HardwareFactor    float64              `json:"hardware_factor"              yaml:"hardware_factor"`
	BaseEnergyKWh     float64              `json:"base_energy_kwh"              yaml:"base_energy_kwh"`
	ModelMultiplier   float64              `json:"model_multiplier"             yaml:"model_multiplier"`
	DatasetMultiplier float64              `json:"dataset_multiplier,omitempty" yaml:"dataset_multiplier,omitempty"`
	TaskMultiplier    float64              `json:"task_multiplier,omitempty"    yaml:"task_multiplier,omitempty"`
	EnergyKWh         float64              `json:"energy_kwh"                   yaml:"energy_kwh"`
	PUE               float64              `json:"pue"                          yaml:"pue"`
	CarbonIntensity   float64              `json:"carbon_intensity"             yaml:"carbon_intensity"`
	Grams             float64              `json:"grams_co2"                    yaml:"grams_co2"`
}
