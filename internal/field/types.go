package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Samples holds N scattered points and their target values.
type Samples struct {
	X, Y, Z []float64
}

// NewSamples evaluates [Target] at every (xs[i], ys[i]).
func NewSamples(xs, ys []float64) *Samples {
	z := make([]float64, len(xs))
	for i := range xs {
		z[i] = Target(xs[i], ys[i])
	}
	return &Samples{X: xs, Y: ys, Z: z}
}

func (s *Samples) Len() int { return len(s.X) }

func (s *Samples) Clone() *Samples {
	return &Samples{
		X: append([]float64(nil), s.X...),
		Y: append([]float64(nil), s.Y...),
		Z: append([]float64(nil), s.Z...),
	}
}

// Range returns the smallest and largest sample value.
func (s *Samples) Range() (lo, hi float64) {
	if len(s.Z) == 0 {
		return 0, 0
	}
	return floats.Min(s.Z), floats.Max(s.Z)
}

// Validate checks the length and domain invariants.
func (s *Samples) Validate() error {
	if len(s.X) == 0 {
		return ErrInvalidCount
	}
	if len(s.Y) != len(s.X) || len(s.Z) != len(s.X) {
		return fmt.Errorf("%w: len(x)=%d len(y)=%d len(z)=%d", ErrDimensionMismatch, len(s.X), len(s.Y), len(s.Z))
	}
	for i := range s.X {
		if !inUnit(s.X[i]) || !inUnit(s.Y[i]) {
			return &PointError{Index: i, X: s.X[i], Y: s.Y[i], Wrapped: ErrOutOfDomain}
		}
	}
	return nil
}

// Grid is a meshgrid: XI[i,j] varies with j only, YI[i,j] with i only.
type Grid struct {
	XI, YI *mat.Dense
}

// Resolution returns the number of nodes along each axis.
func (g *Grid) Resolution() int {
	r, _ := g.XI.Dims()
	return r
}

// Validate checks that both coordinate arrays are square, equally shaped
// and lie in the unit square.
func (g *Grid) Validate() error {
	if g.XI == nil || g.YI == nil {
		return ErrDimensionMismatch
	}
	xr, xc := g.XI.Dims()
	yr, yc := g.YI.Dims()
	if xr != xc || xr != yr || yr != yc {
		return fmt.Errorf("%w: xi %dx%d, yi %dx%d", ErrDimensionMismatch, xr, xc, yr, yc)
	}
	if xr < 2 {
		return ErrInvalidResolution
	}
	for i := 0; i < xr; i++ {
		for j := 0; j < xc; j++ {
			if !inUnit(g.XI.At(i, j)) || !inUnit(g.YI.At(i, j)) {
				return ErrOutOfDomain
			}
		}
	}
	return nil
}

// MatchesGrid reports whether f has the same R×R shape as g.
func MatchesGrid(f mat.Matrix, g *Grid) bool {
	if f == nil || g == nil || g.XI == nil {
		return false
	}
	fr, fc := f.Dims()
	gr, gc := g.XI.Dims()
	return fr == gr && fc == gc
}

// Range returns the smallest and largest finite value of f.
func Range(f mat.Matrix) (lo, hi float64) {
	r, c := f.Dims()
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := f.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
