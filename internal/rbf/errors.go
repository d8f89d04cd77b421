package rbf

import "errors"

var (
	// ErrSingular indicates that the kernel system has no unique solution.
	ErrSingular = errors.New("rbf: kernel matrix is singular")

	// ErrDegenerate indicates coincident sample points.
	ErrDegenerate = errors.New("rbf: coincident sample points")
)
