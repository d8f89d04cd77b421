package field

import "errors"

// Domain errors for sample sets and grids.
var (
	// ErrInvalidCount indicates a non-positive number of sample points.
	ErrInvalidCount = errors.New("field: number of points must be at least 1")

	// ErrInvalidResolution indicates a grid resolution below 2.
	ErrInvalidResolution = errors.New("field: grid resolution must be at least 2")

	// ErrDimensionMismatch indicates arrays whose lengths or shapes disagree.
	ErrDimensionMismatch = errors.New("field: dimension mismatch")

	// ErrOutOfDomain indicates a coordinate outside the unit square.
	ErrOutOfDomain = errors.New("field: coordinate outside [0,1]")
)

// PointError wraps an error with the index of the offending sample.
type PointError struct {
	Index   int
	X, Y    float64
	Wrapped error
}

func (e *PointError) Error() string {
	return e.Wrapped.Error()
}

func (e *PointError) Unwrap() error {
	return e.Wrapped
}
