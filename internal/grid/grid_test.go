package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/san-kum/rbfviz/internal/field"
)

func TestLinspace(t *testing.T) {
	tests := []struct {
		n        int
		expected []float64
	}{
		{0, nil},
		{1, []float64{0}},
		{2, []float64{0, 1}},
		{5, []float64{0, 0.25, 0.5, 0.75, 1}},
	}

	approx := cmpopts.EquateApprox(0, 1e-12)
	for _, tt := range tests {
		if diff := cmp.Diff(tt.expected, Linspace(0, 1, tt.n), approx); diff != "" {
			t.Errorf("Linspace(0, 1, %d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestNew_MeshgridSemantics(t *testing.T) {
	for _, r := range []int{2, 3, 10, 100} {
		g, err := New(r)
		if err != nil {
			t.Fatalf("New(%d): %v", r, err)
		}
		if err := g.Validate(); err != nil {
			t.Fatalf("New(%d) produced invalid grid: %v", r, err)
		}
		if g.Resolution() != r {
			t.Fatalf("expected resolution %d, got %d", r, g.Resolution())
		}

		step := 1 / float64(r-1)
		for i := 0; i < r; i++ {
			for j := 0; j < r; j++ {
				if math.Abs(g.XI.At(i, j)-float64(j)*step) > 1e-12 {
					t.Fatalf("r=%d: xi[%d,%d] = %v, want %v", r, i, j, g.XI.At(i, j), float64(j)*step)
				}
				if math.Abs(g.YI.At(i, j)-float64(i)*step) > 1e-12 {
					t.Fatalf("r=%d: yi[%d,%d] = %v, want %v", r, i, j, g.YI.At(i, j), float64(i)*step)
				}
			}
		}
		if g.XI.At(0, 0) != 0 || g.XI.At(0, r-1) != 1 || g.YI.At(r-1, 0) != 1 {
			t.Errorf("r=%d: grid does not span [0,1] inclusive", r)
		}
	}
}

func TestNew_InvalidResolution(t *testing.T) {
	for _, r := range []int{-1, 0, 1} {
		if _, err := New(r); !errors.Is(err, field.ErrInvalidResolution) {
			t.Errorf("New(%d) = %v, want ErrInvalidResolution", r, err)
		}
	}
}

func TestMeshgrid_Rectangular(t *testing.T) {
	g := Meshgrid([]float64{0, 0.5, 1}, []float64{0.2, 0.8})
	r, c := g.XI.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("expected 2x3 grid, got %dx%d", r, c)
	}
	xs, ys := Axis(g)
	if diff := cmp.Diff([]float64{0, 0.5, 1}, xs); diff != "" {
		t.Errorf("x axis mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.2, 0.8}, ys); diff != "" {
		t.Errorf("y axis mismatch (-want +got):\n%s", diff)
	}
}
