package catalog

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors returned by catalog loading and validation.
// Compare with errors.Is; validation joins several of them with errors.Join.
var (
	// ErrEmptyKey indicates an entry without a key.
	ErrEmptyKey = constError("catalog entry has empty key")

	// ErrDuplicateKey indicates two entries of the same table share a key.
	ErrDuplicateKey = constError("duplicate catalog key")

	// ErrInvalidWorkload indicates a category with an unknown workload kind.
	ErrInvalidWorkload = constError("invalid workload kind")

	// ErrNegativeMultiplier indicates an energy multiplier below zero.
	ErrNegativeMultiplier = constError("energy multiplier must be non-negative")

	// ErrInvalidParams indicates a model parameter count that is negative or not finite.
	ErrInvalidParams = constError("parameter count must be a finite non-negative number")

	// ErrInvalidCarbonIntensity indicates a region carbon intensity that is not positive.
	ErrInvalidCarbonIntensity = constError("carbon intensity must be positive")

	// ErrInvalidPUE indicates a region PUE below 1.
	ErrInvalidPUE = constError("PUE must be at least 1")

	// ErrInvalidPower indicates a hardware power draw that is not positive.
	ErrInvalidPower = constError("hardware power draw must be positive")

	// ErrInvalidUtilization indicates a hardware utilization outside [0, 1].
	ErrInvalidUtilization = constError("hardware utilization must be between 0 and 1")

	// ErrInvalidVersion indicates a catalog version that is not a semantic version.
	ErrInvalidVersion = constError("invalid catalog version")

	// ErrUnsupportedVersion indicates a catalog schema version this build cannot read.
	ErrUnsupportedVersion = constError("unsupported catalog version")

	// ErrUnknownKind indicates an unrecognized catalog table name.
	ErrUnknownKind = constError("unknown catalog table")
)
