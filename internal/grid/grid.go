// Package grid builds regular evaluation grids over the unit square.
package grid

import (
	"github.com/san-kum/rbfviz/internal/field"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	axis := floats.Span(make([]float64, n), lo, hi)
	// Span accumulates rounding error; pin the end point.
	axis[n-1] = hi
	return axis
}

// Meshgrid enumerates every (xs[j], ys[i]) pair. Rows follow ys and
// columns follow xs.
func Meshgrid(xs, ys []float64) *field.Grid {
	rows, cols := len(ys), len(xs)
	xi := mat.NewDense(rows, cols, nil)
	yi := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		xi.SetRow(i, xs)
		for j := 0; j < cols; j++ {
			yi.Set(i, j, ys[i])
		}
	}
	return &field.Grid{XI: xi, YI: yi}
}

// New returns the resolution×resolution meshgrid of the unit square.
func New(resolution int) (*field.Grid, error) {
	if resolution < 2 {
		return nil, field.ErrInvalidResolution
	}
	axis := Linspace(0, 1, resolution)
	return Meshgrid(axis, axis), nil
}

// Axis recovers the 1D coordinate vectors of a meshgrid.
func Axis(g *field.Grid) (xs, ys []float64) {
	xs = mat.Row(nil, 0, g.XI)
	ys = mat.Col(nil, 0, g.YI)
	return xs, ys
}
