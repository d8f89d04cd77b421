// Package field provides the data model shared by the interpolation pipeline.
//
// The package defines the scattered samples, the evaluation grid and the
// target scalar field they are drawn from:
//
//   - [Samples]: N scattered points (X, Y) with values Z
//   - [Grid]: R×R meshgrid over the unit square
//   - [Target]: the function z = cos(πx)·sin(πy)
//
// # Example
//
//	s := field.NewSamples(xs, ys)
//	g, _ := grid.New(100)
//	if err := g.Validate(); err != nil {
//	    // grid is malformed
//	}
//
// Samples and grids are immutable once built. Callers that need to modify
// the values must [Samples.Clone] first.
package field
