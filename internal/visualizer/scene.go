package visualizer

import (
	"math"

	"github.com/san-kum/rbfviz/internal/contour"
	"github.com/san-kum/rbfviz/internal/field"
	"github.com/san-kum/rbfviz/internal/grid"
	"gonum.org/v1/gonum/mat"
)

// Figure labels shared by every renderer.
const (
	Title        = "2D Interpolation of a Function  " + field.TargetFormula
	ContourTitle = "Contour Plot"
	SurfaceTitle = "3D Projection Plot"
	XLabel       = "X"
	YLabel       = "Y"
	ValueLabel   = "Function values"
	LegendLabel  = "Original Data"
)

// FillAlpha is the opacity of the contour fill and the surface.
const FillAlpha = 0.5

// Scene is the input of a Renderer.
type Scene struct {
	Title   string
	Samples *field.Samples
	Grid    *field.Grid
	Field   *mat.Dense
	Levels  int
}

// Validate checks the shape invariants between samples, grid and field.
func (s *Scene) Validate() error {
	if err := s.Samples.Validate(); err != nil {
		return err
	}
	if err := s.Grid.Validate(); err != nil {
		return err
	}
	if !field.MatchesGrid(s.Field, s.Grid) {
		return field.ErrDimensionMismatch
	}
	return nil
}

// Range is the joint value range of the field and the samples.
func (s *Scene) Range() (lo, hi float64) {
	lo, hi = field.Range(s.Field)
	slo, shi := s.Samples.Range()
	return math.Min(lo, slo), math.Max(hi, shi)
}

// ContourLevels returns the band boundaries over Range.
func (s *Scene) ContourLevels() []float64 {
	lo, hi := s.Range()
	n := s.Levels
	if n < 1 {
		n = contour.DefaultLevels
	}
	return contour.Levels(lo, hi, n)
}

// Axes returns the grid's 1D coordinate vectors.
func (s *Scene) Axes() (xs, ys []float64) {
	return grid.Axis(s.Grid)
}

// Resolution is the number of grid nodes per axis.
func (s *Scene) Resolution() int {
	return s.Grid.Resolution()
}
