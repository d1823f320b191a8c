package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersions is the range of catalog schema versions this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// Validate checks every table of doc and returns all problems found, joined.
// It returns nil for a valid document. An empty version is accepted.
func Validate(doc Document) error {
	var errs []error

	if err := validateVersion(doc.Version); err != nil {
		errs = append(errs, err)
	}

	seen := make(map[string]bool, len(doc.Categories))
	for _, cat := range doc.Categories {
		errs = append(errs, checkKey("category", cat.Key, seen)...)
		if !cat.Workload.IsValid() {
			errs = append(errs, fmt.Errorf("category %q: %w: %q", cat.Key, ErrInvalidWorkload, cat.Workload))
		}
		models := make(map[string]bool, len(cat.Models))
		for _, m := range cat.Models {
			label := fmt.Sprintf("category %q model", cat.Key)
			errs = append(errs, checkKey(label, m.Key, models)...)
			if !isFinite(m.ParamsBillions) || m.ParamsBillions < 0 {
				errs = append(errs, fmt.Errorf("%s %q: %w", label, m.Key, ErrInvalidParams))
			}
			errs = append(errs, checkMultiplier(label, m.Key, m.EnergyMultiplier)...)
		}
	}

	seen = make(map[string]bool, len(doc.DatasetTypes))
	for _, d := range doc.DatasetTypes {
		errs = append(errs, checkKey("dataset type", d.Key, seen)...)
		errs = append(errs, checkMultiplier("dataset type", d.Key, d.EnergyMultiplier)...)
	}

	seen = make(map[string]bool, len(doc.Tasks))
	for _, t := range doc.Tasks {
		errs = append(errs, checkKey("task", t.Key, seen)...)
		errs = append(errs, checkMultiplier("task", t.Key, t.EnergyMultiplier)...)
	}

	seen = make(map[string]bool, len(doc.Regions))
	for _, r := range doc.Regions {
		errs = append(errs, checkKey("region", r.Key, seen)...)
		if !isFinite(r.CarbonIntensity) || r.CarbonIntensity <= 0 {
			errs = append(errs, fmt.Errorf("region %q: %w (got %v)", r.Key, ErrInvalidCarbonIntensity, r.CarbonIntensity))
		}
		if !isFinite(r.PUE) || r.PUE < 1 {
			errs = append(errs, fmt.Errorf("region %q: %w (got %v)", r.Key, ErrInvalidPUE, r.PUE))
		}
	}

	seen = make(map[string]bool, len(doc.Hardware))
	for _, h := range doc.Hardware {
		errs = append(errs, checkKey("hardware", h.Key, seen)...)
		if !isFinite(h.PowerKW) || h.PowerKW <= 0 {
			errs = append(errs, fmt.Errorf("hardware %q: %w (got %v)", h.Key, ErrInvalidPower, h.PowerKW))
		}
		if !isFinite(h.Utilization) || h.Utilization < 0 || h.Utilization > 1 {
			errs = append(errs, fmt.Errorf("hardware %q: %w (got %v)", h.Key, ErrInvalidUtilization, h.Utilization))
		}
	}

	return errors.Join(errs...)
}

func validateVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidVersion, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing supported version range: %w", err)
	}
	if !constraint.Check(ver) {
		return fmt.Errorf("%w %s (supported: %s)", ErrUnsupportedVersion, ver, SupportedVersions)
	}
	return nil
}

func checkKey(table, key string, seen map[string]bool) []error {
	if key == "" {
		return []error{fmt.Errorf("%s: %w", table, ErrEmptyKey)}
	}
	if seen[key] {
		return []error{fmt.Errorf("%s %q: %w", table, key, ErrDuplicateKey)}
	}
	seen[key] = true
	return nil
}

func checkMultiplier(table, key string, v float64) []error {
	if !isFinite(v) || v < 0 {
		return []error{fmt.Errorf("%s %q: %w (got %v)", table, key, ErrNegativeMultiplier, v)}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
