// Package catalog holds the reference data the emissions estimator reads from:
// model categories and their models, dataset types, ML tasks, datacenter
// regions and hardware profiles.
//
// A Catalog is immutable once built. Every lookup returns the record and a
// found flag; a missing key is never an error at this layer.
package catalog

import "fmt"

// WorkloadKind selects which workload size drives the base energy formula.
type WorkloadKind string

const (
	// WorkloadTokens sizes the workload by generated token count.
	WorkloadTokens WorkloadKind = "tokens"
	// WorkloadDataPoints sizes the workload by rows × columns of input data.
	WorkloadDataPoints WorkloadKind = "data_points"
)

// String returns the YAML spelling of the workload kind.
func (k WorkloadKind) String() string {
	return string(k)
}

// IsValid reports whether k is a recognized workload kind.
func (k WorkloadKind) IsValid() bool {
	return k == WorkloadTokens || k == WorkloadDataPoints
}

// Model is a single model entry inside a category.
type Model struct {
	Key  string `yaml:"key"  json:"key"`
	Name string `yaml:"name" json:"name"`

	// ParamsBillions is the parameter count in billions; fractional values are allowed.
	ParamsBillions float64 `yaml:"params" json:"params_billions"`

	Company string `yaml:"company" json:"company"`

	// EnergyMultiplier scales the base energy for architecture-specific efficiency.
	EnergyMultiplier float64 `yaml:"energy_multiplier" json:"energy_multiplier"`
}

// Category groups models that share a workload kind.
type Category struct {
	Key      string       `yaml:"key"      json:"key"`
	Name     string       `yaml:"name"     json:"name"`
	Workload WorkloadKind `yaml:"workload" json:"workload"`
	Models   []Model      `yaml:"models"   json:"models"`
}

// DatasetType scales data-point workloads by the kind of input data.
type DatasetType struct {
	Key              string  `yaml:"key"               json:"key"`
	Name             string  `yaml:"name"              json:"name"`
	Description      string  `yaml:"description"       json:"description"`
	EnergyMultiplier float64 `yaml:"energy_multiplier" json:"energy_multiplier"`
}

// Task scales data-point workloads by the ML task performed.
type Task struct {
	Key              string  `yaml:"key"               json:"key"`
	Name             string  `yaml:"name"              json:"name"`
	EnergyMultiplier float64 `yaml:"energy_multiplier" json:"energy_multiplier"`
}

// Region describes the grid and datacenter overhead of a deployment location.
type Region struct {
	Key  string `yaml:"key"  json:"key"`
	Name string `yaml:"name" json:"name"`

	// CarbonIntensity is grams of CO₂ emitted per kWh generated.
	CarbonIntensity float64 `yaml:"carbon_intensity" json:"carbon_intensity"`

	// PUE is the datacenter Power Usage Effectiveness (>= 1).
	PUE float64 `yaml:"pue" json:"pue"`
}

// Hardware is an accelerator or host profile.
type Hardware struct {
	Key  string `yaml:"key"  json:"key"`
	Name string `yaml:"name" json:"name"`

	// PowerKW is the rated power draw in kilowatts.
	PowerKW float64 `yaml:"power_kw" json:"power_kw"`

	// Utilization is the average fraction of rated power drawn (0.0 to 1.0).
	Utilization float64 `yaml:"utilization" json:"utilization"`
}

// Factor returns the average power draw in kW (rated power × utilization).
func (h Hardware) Factor() float64 {
	return h.PowerKW * h.Utilization
}

// Document is the serialized shape of a catalog, as stored in YAML.
// Slices keep the order entries are listed in.
type Document struct {
	Version      string        `yaml:"version,omitempty"       json:"version,omitempty"`
	Categories   []Category    `yaml:"categories,omitempty"    json:"categories,omitempty"`
	DatasetTypes []DatasetType `yaml:"dataset_types,omitempty" json:"dataset_types,omitempty"`
	Tasks        []Task        `yaml:"tasks,omitempty"         json:"tasks,omitempty"`
	Regions      []Region      `yaml:"regions,omitempty"       json:"regions,omitempty"`
	Hardware     []Hardware    `yaml:"hardware,omitempty"      json:"hardware,omitempty"`
}

// Kind names one of the catalog tables for listing.
type Kind int

const (
	// KindCategories lists model categories.
	KindCategories Kind = iota
	// KindModels lists models.
	KindModels
	// KindDatasetTypes lists dataset types.
	KindDatasetTypes
	// KindTasks lists ML tasks.
	KindTasks
	// KindRegions lists regions.
	KindRegions
	// KindHardware lists hardware profiles.
	KindHardware
)

// String returns the CLI spelling of the table kind.
func (k Kind) String() string {
	switch k {
	case KindCategories:
		return "categories"
	case KindModels:
		return "models"
	case KindDatasetTypes:
		return "datasets"
	case KindTasks:
		return "tasks"
	case KindRegions:
		return "regions"
	case KindHardware:
		return "hardware"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a CLI table name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "categories", "category":
		return KindCategories, nil
	case "models", "model":
		return KindModels, nil
	case "datasets", "dataset", "dataset-types":
		return KindDatasetTypes, nil
	case "tasks", "task":
		return KindTasks, nil
	case "regions", "region":
		return KindRegions, nil
	case "hardware":
		return KindHardware, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}
