// Package sampling draws scattered points in the unit square.
//
// [Halton] is the default sampler: a scrambled, seeded Halton sequence whose
// points cover [0,1]² with low discrepancy. [Random] draws ordinary
// pseudo-random points and exists as a baseline for comparisons.
package sampling

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/san-kum/rbfviz/internal/field"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"
)

// ErrUnknownSampler is returned by New for unregistered sampler names.
var ErrUnknownSampler = errors.New("sampling: unknown sampler")

// Stream selectors keep the two samplers independent for the same seed.
const (
	haltonStream = 0x9e3779b97f4a7c15
	randomStream = 0xbf58476d1ce4e5b9
)

// Sampler generates n points in [0,1)².
type Sampler interface {
	Name() string
	Points(n int) (x, y []float64, err error)
}

// Halton draws Owen-scrambled Halton points. The same seed yields the same
// points.
type Halton struct {
	seed uint64
}

func NewHalton(seed uint64) *Halton {
	return &Halton{seed: seed}
}

func (h *Halton) Name() string { return "halton" }

func (h *Halton) Points(n int) ([]float64, []float64, error) {
	if n < 1 {
		return nil, nil, field.ErrInvalidCount
	}
	src := rand.NewPCG(h.seed, haltonStream)
	batch := mat.NewDense(n, 2, nil)
	samplemv.Halton{
		Kind: samplemv.Owen,
		Q:    distmv.NewUnitUniform(2, src),
		Src:  src,
	}.Sample(batch)
	return mat.Col(nil, 0, batch), mat.Col(nil, 1, batch), nil
}

// Random draws independent uniform points.
type Random struct {
	seed uint64
}

func NewRandom(seed uint64) *Random {
	return &Random{seed: seed}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Points(n int) ([]float64, []float64, error) {
	if n < 1 {
		return nil, nil, field.ErrInvalidCount
	}
	rng := rand.New(rand.NewPCG(r.seed, randomStream))
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = rng.Float64()
		y[i] = rng.Float64()
	}
	return x, y, nil
}

var constructors = map[string]func(seed uint64) Sampler{
	"halton": func(seed uint64) Sampler { return NewHalton(seed) },
	"random": func(seed uint64) Sampler { return NewRandom(seed) },
}

// New returns the sampler registered under name.
func New(name string, seed uint64) (Sampler, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownSampler, name, Names())
	}
	return fn(seed), nil
}

// Names lists the registered samplers in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate draws n points from s and evaluates the target field at each.
func Generate(s Sampler, n int) (*field.Samples, error) {
	x, y, err := s.Points(n)
	if err != nil {
		return nil, err
	}
	return field.NewSamples(x, y), nil
}
