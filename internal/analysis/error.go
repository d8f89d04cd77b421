package analysis

import (
	"math"

	"github.com/san-kum/rbfviz/internal/field"
	"github.com/san-kum/rbfviz/internal/rbf"
	"gonum.org/v1/gonum/mat"
)

// KnotResidual is max_i |s(x_i, y_i) − z_i|.
func KnotResidual(ip *rbf.Interpolant, s *field.Samples) float64 {
	worst := 0.0
	for i := range s.X {
		worst = math.Max(worst, math.Abs(ip.At(s.X[i], s.Y[i])-s.Z[i]))
	}
	return worst
}

// Residual returns f − Target at every grid node.
func Residual(f mat.Matrix, g *field.Grid) *mat.Dense {
	r, c := f.Dims()
	res := mat.NewDense(r, c, nil)
	res.Apply(func(i, j int, v float64) float64 {
		return v - field.Target(g.XI.At(i, j), g.YI.At(i, j))
	}, f)
	return res
}

// GridError returns the RMS and maximum absolute error of f against the
// target field.
func GridError(f mat.Matrix, g *field.Grid) (rms, max float64) {
	res := Residual(f, g)
	r, c := res.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := res.At(i, j)
			sum += v * v
			max = math.Max(max, math.Abs(v))
		}
	}
	return math.Sqrt(sum / float64(r*c)), max
}
