package rbf

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/rbfviz/internal/compute"
	"github.com/san-kum/rbfviz/internal/field"
	"github.com/san-kum/rbfviz/internal/logging"
	"gonum.org/v1/gonum/mat"
)

// KernelName is the only supported kernel.
const KernelName = "cubic"

// polyTerms is the size of the linear tail [1, x, y].
const polyTerms = 3

// Cubic is the radial kernel φ(r) = r³.
func Cubic(r float64) float64 {
	return r * r * r
}

type options struct {
	polynomial bool
	backend    compute.Backend
	logger     hclog.Logger
}

type Option func(*options)

// WithPolynomial augments the kernel system with a degree-1 polynomial tail.
func WithPolynomial() Option {
	return func(o *options) { o.polynomial = true }
}

// WithBackend selects the backend used for grid evaluation.
func WithBackend(b compute.Backend) Option {
	return func(o *options) { o.backend = b }
}

func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Interpolant is a fitted cubic RBF surface.
type Interpolant struct {
	cx, cy  []float64
	weights []float64
	poly    []float64
	cond    float64
	backend compute.Backend
}

// Fit solves for the interpolant passing through every sample.
func Fit(s *field.Samples, opts ...Option) (*Interpolant, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = compute.GetBackend()
	}
	log := logging.OrNull(o.logger).Named("rbf")

	n := s.Len()
	if n == 0 {
		return nil, field.ErrInvalidCount
	}
	if len(s.Y) != n || len(s.Z) != n {
		return nil, fmt.Errorf("%w: len(x)=%d len(y)=%d len(z)=%d", field.ErrDimensionMismatch, n, len(s.Y), len(s.Z))
	}
	if i, j, ok := coincident(s); ok {
		return nil, fmt.Errorf("%w: samples %d and %d at (%g, %g)", ErrDegenerate, i, j, s.X[i], s.Y[i])
	}

	start := time.Now()
	a, b := system(s, o.polynomial)

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		var cond mat.Condition
		switch {
		case errors.Is(err, mat.ErrSingular):
			return nil, ErrSingular
		case errors.As(err, &cond):
			if math.IsInf(float64(cond), 0) || math.IsNaN(float64(cond)) {
				return nil, ErrSingular
			}
			log.Warn("kernel matrix is ill-conditioned", "condition", float64(cond), "points", n)
		default:
			return nil, fmt.Errorf("rbf: solve kernel system: %w", err)
		}
	}

	raw := sol.RawVector().Data
	ip := &Interpolant{
		cx:      append([]float64(nil), s.X...),
		cy:      append([]float64(nil), s.Y...),
		weights: append([]float64(nil), raw[:n]...),
		cond:    mat.Cond(a, 2),
		backend: o.backend,
	}
	if o.polynomial {
		ip.poly = append([]float64(nil), raw[n:n+polyTerms]...)
	}
	for _, w := range ip.weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, ErrSingular
		}
	}

	log.Debug("fitted interpolant",
		"kernel", KernelName,
		"points", n,
		"polynomial", o.polynomial,
		"condition", ip.cond,
		"elapsed", time.Since(start))
	return ip, nil
}

// system assembles the (augmented) kernel matrix and right-hand side.
func system(s *field.Samples, polynomial bool) (*mat.Dense, *mat.VecDense) {
	n := s.Len()
	size := n
	if polynomial {
		size += polyTerms
	}

	a := mat.NewDense(size, size, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			phi := Cubic(math.Hypot(s.X[i]-s.X[j], s.Y[i]-s.Y[j]))
			a.Set(i, j, phi)
			a.Set(j, i, phi)
		}
	}
	if polynomial {
		for i := 0; i < n; i++ {
			row := []float64{1, s.X[i], s.Y[i]}
			for k, v := range row {
				a.Set(i, n+k, v)
				a.Set(n+k, i, v)
			}
		}
	}

	b := mat.NewVecDense(size, nil)
	for i := 0; i < n; i++ {
		b.SetVec(i, s.Z[i])
	}
	return a, b
}

func coincident(s *field.Samples) (int, int, bool) {
	seen := make(map[[2]float64]int, s.Len())
	for i := range s.X {
		key := [2]float64{s.X[i], s.Y[i]}
		if j, ok := seen[key]; ok {
			return j, i, true
		}
		seen[key] = i
	}
	return 0, 0, false
}

// At evaluates the interpolant at a single point.
func (ip *Interpolant) At(x, y float64) float64 {
	sum := ip.tail(x, y)
	for j, w := range ip.weights {
		sum += w * Cubic(math.Hypot(x-ip.cx[j], y-ip.cy[j]))
	}
	return sum
}

// Evaluate returns the interpolant at every (px[i], py[i]).
func (ip *Interpolant) Evaluate(px, py []float64) []float64 {
	out := ip.backend.KernelSum(px, py, ip.cx, ip.cy, ip.weights, Cubic)
	if ip.poly != nil {
		for i := range out {
			out[i] += ip.tail(px[i], py[i])
		}
	}
	return out
}

// EvaluateGrid returns the interpolant at every node of g, shaped like g.
func (ip *Interpolant) EvaluateGrid(g *field.Grid) (*mat.Dense, error) {
	if g == nil || g.XI == nil || g.YI == nil {
		return nil, field.ErrDimensionMismatch
	}
	r, c := g.XI.Dims()
	if yr, yc := g.YI.Dims(); yr != r || yc != c {
		return nil, fmt.Errorf("%w: xi %dx%d, yi %dx%d", field.ErrDimensionMismatch, r, c, yr, yc)
	}

	px := make([]float64, 0, r*c)
	py := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			px = append(px, g.XI.At(i, j))
			py = append(py, g.YI.At(i, j))
		}
	}
	return mat.NewDense(r, c, ip.Evaluate(px, py)), nil
}

func (ip *Interpolant) tail(x, y float64) float64 {
	if ip.poly == nil {
		return 0
	}
	return ip.poly[0] + ip.poly[1]*x + ip.poly[2]*y
}

// Weights returns a copy of the kernel weights.
func (ip *Interpolant) Weights() []float64 {
	return append([]float64(nil), ip.weights...)
}

// Polynomial returns the linear tail coefficients [a, b, c], or nil.
func (ip *Interpolant) Polynomial() []float64 {
	if ip.poly == nil {
		return nil
	}
	return append([]float64(nil), ip.poly...)
}

// Condition is the 2-norm condition number of the solved system.
func (ip *Interpolant) Condition() float64 {
	return ip.cond
}

// Len returns the number of centres.
func (ip *Interpolant) Len() int {
	return len(ip.weights)
}
