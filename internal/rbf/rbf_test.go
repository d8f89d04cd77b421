package rbf

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rbfviz/internal/compute"
	"github.com/san-kum/rbfviz/internal/field"
	"github.com/san-kum/rbfviz/internal/grid"
	"github.com/san-kum/rbfviz/internal/sampling"
)

func haltonSamples(t *testing.T, n int) *field.Samples {
	t.Helper()
	s, err := sampling.Generate(sampling.NewHalton(1), n)
	if err != nil {
		t.Fatalf("sampling failed: %v", err)
	}
	return s
}

func TestFit_PassesThroughKnots(t *testing.T) {
	s := haltonSamples(t, 100)

	for _, tc := range []struct {
		name string
		opts []Option
	}{
		{"plain", nil},
		{"polynomial", []Option{WithPolynomial()}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ip, err := Fit(s, tc.opts...)
			if err != nil {
				t.Fatalf("fit failed: %v", err)
			}
			for i := range s.X {
				if got := ip.At(s.X[i], s.Y[i]); math.Abs(got-s.Z[i]) > 1e-6 {
					t.Errorf("knot %d: got %v, want %v", i, got, s.Z[i])
				}
			}
		})
	}
}

func TestFit_Corners(t *testing.T) {
	s := field.NewSamples([]float64{0, 1, 0, 1}, []float64{0, 0, 1, 1})
	for i, z := range s.Z {
		if math.Abs(z) > 1e-12 {
			t.Fatalf("corner %d: expected z≈0, got %v", i, z)
		}
	}

	ip, err := Fit(s)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if got := ip.At(0.5, 0.5); math.Abs(got) > 1e-9 {
		t.Errorf("center value = %v, want ≈0", got)
	}
}

func TestFit_SingleSample(t *testing.T) {
	s := field.NewSamples([]float64{0.3}, []float64{0.6})

	if _, err := Fit(s); !errors.Is(err, ErrSingular) {
		t.Errorf("Fit with one sample = %v, want ErrSingular", err)
	}
	if _, err := Fit(s, WithPolynomial()); !errors.Is(err, ErrSingular) {
		t.Errorf("polynomial Fit with one sample = %v, want ErrSingular", err)
	}
}

func TestFit_Degenerate(t *testing.T) {
	s := field.NewSamples([]float64{0.1, 0.5, 0.1}, []float64{0.2, 0.5, 0.2})
	if _, err := Fit(s); !errors.Is(err, ErrDegenerate) {
		t.Errorf("Fit with duplicate samples = %v, want ErrDegenerate", err)
	}
}

func TestFit_InvalidInput(t *testing.T) {
	if _, err := Fit(&field.Samples{}); !errors.Is(err, field.ErrInvalidCount) {
		t.Errorf("empty samples: got %v, want ErrInvalidCount", err)
	}
	bad := &field.Samples{X: []float64{0.1, 0.2}, Y: []float64{0.1}, Z: []float64{0, 0}}
	if _, err := Fit(bad); !errors.Is(err, field.ErrDimensionMismatch) {
		t.Errorf("ragged samples: got %v, want ErrDimensionMismatch", err)
	}
}

func TestFit_PolynomialReproducesLinear(t *testing.T) {
	base := haltonSamples(t, 30)
	linear := func(x, y float64) float64 { return 2 + 3*x - y }
	s := &field.Samples{X: base.X, Y: base.Y, Z: make([]float64, base.Len())}
	for i := range s.X {
		s.Z[i] = linear(s.X[i], s.Y[i])
	}

	ip, err := Fit(s, WithPolynomial())
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	for _, p := range [][2]float64{{0.5, 0.5}, {0.05, 0.95}, {0.77, 0.13}} {
		if got, want := ip.At(p[0], p[1]), linear(p[0], p[1]); math.Abs(got-want) > 1e-6 {
			t.Errorf("at %v: got %v, want %v", p, got, want)
		}
	}
	if poly := ip.Polynomial(); len(poly) != 3 {
		t.Errorf("expected 3 tail coefficients, got %v", poly)
	}
}

func TestEvaluateGrid(t *testing.T) {
	s := haltonSamples(t, 40)
	g, _ := grid.New(25)

	for _, backend := range []compute.Backend{compute.NewSerialBackend(), compute.NewCPUBackend(4)} {
		ip, err := Fit(s, WithBackend(backend))
		if err != nil {
			t.Fatalf("fit failed: %v", err)
		}
		zi, err := ip.EvaluateGrid(g)
		if err != nil {
			t.Fatalf("%s: evaluate failed: %v", backend.Name(), err)
		}
		if !field.MatchesGrid(zi, g) {
			t.Fatalf("%s: field shape does not match grid", backend.Name())
		}
		for i := 0; i < 25; i += 6 {
			for j := 0; j < 25; j += 4 {
				want := ip.At(g.XI.At(i, j), g.YI.At(i, j))
				if math.Abs(zi.At(i, j)-want) > 1e-10 {
					t.Errorf("%s: zi[%d,%d] = %v, want %v", backend.Name(), i, j, zi.At(i, j), want)
				}
			}
		}
	}
}

func TestInterpolant_Accuracy(t *testing.T) {
	s := haltonSamples(t, 100)
	ip, err := Fit(s)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	g, _ := grid.New(50)
	zi, _ := ip.EvaluateGrid(g)

	sum := 0.0
	for i := 0; i < 50; i++ {
		for j := 0; j < 50; j++ {
			d := zi.At(i, j) - field.Target(g.XI.At(i, j), g.YI.At(i, j))
			sum += d * d
		}
	}
	if rms := math.Sqrt(sum / 2500); rms > 0.05 {
		t.Errorf("rms error %v too large", rms)
	}
	if c := ip.Condition(); c < 1 || math.IsInf(c, 0) {
		t.Errorf("unexpected condition number %v", c)
	}
	if ip.Len() != 100 || len(ip.Weights()) != 100 {
		t.Errorf("expected 100 weights, got %d", ip.Len())
	}
}

func TestCubic(t *testing.T) {
	for _, r := range []float64{0, 0.5, 1, 2} {
		if got := Cubic(r); got != r*r*r {
			t.Errorf("Cubic(%v) = %v", r, got)
		}
	}
}
