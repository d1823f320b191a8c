package greenops

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, compared with errors.Is().
var (
	// ErrInvalidUnit indicates an unrecognized carbon unit.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrNegativeValue indicates a negative carbon value.
	// Carbon emissions cannot be negative.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow indicates a non-finite input or result.
	ErrCalculationOverflow = constError("calculation overflow")

	// ErrInvalidBlend indicates an unknown green score blend name.
	ErrInvalidBlend = constError("invalid green score blend")

	// ErrInvalidPerformance indicates a performance value outside [0, 1].
	ErrInvalidPerformance = constError("performance must be between 0 and 1")

	// ErrInvalidScoreOptions indicates a negative or non-finite threshold or decay rate.
	ErrInvalidScoreOptions = constError("invalid green score options")
)
