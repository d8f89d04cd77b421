package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/rbfviz/internal/rbf"
	"github.com/san-kum/rbfviz/internal/sampling"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if diff := cmp.Diff([]string{"halton", "random"}, r.ListSamplers()); diff != "" {
		t.Errorf("samplers (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cpu", "serial"}, r.ListBackends()); diff != "" {
		t.Errorf("backends (-want +got):\n%s", diff)
	}
	if _, err := r.GetSampler("sobol", 0); !errors.Is(err, sampling.ErrUnknownSampler) {
		t.Errorf("unknown sampler error = %v", err)
	}
	if _, err := r.GetBackend("cuda", 0); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestRun(t *testing.T) {
	cfg := Config{Sampler: "halton", NumPoints: 50, Resolution: 30, Seed: 1}
	report, err := New(cfg, nil, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.Summary.Points != 50 || report.Summary.Resolution != 30 {
		t.Errorf("summary sizes = %d/%d", report.Summary.Points, report.Summary.Resolution)
	}
	if report.Summary.KnotResidual > 1e-6 {
		t.Errorf("knot residual = %g", report.Summary.KnotResidual)
	}
	if report.Config.Backend != "cpu" {
		t.Errorf("default backend = %q", report.Config.Backend)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"unknown sampler", Config{Sampler: "grid", NumPoints: 10, Resolution: 10}, sampling.ErrUnknownSampler},
		{"single point", Config{Sampler: "halton", NumPoints: 1, Resolution: 10}, rbf.ErrSingular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, nil, nil).Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{Sampler: "halton", NumPoints: 10, Resolution: 10}, nil, nil).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestCompareAndBest(t *testing.T) {
	base := Config{NumPoints: 80, Resolution: 25, Seed: 4}
	reports, err := Compare(context.Background(), base, []string{"halton", "random"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports", len(reports))
	}
	if reports[0].Config.Sampler != "halton" || reports[1].Config.Sampler != "random" {
		t.Errorf("order = %s, %s", reports[0].Config.Sampler, reports[1].Config.Sampler)
	}
	best := Best(reports)
	for _, r := range reports {
		if r.Summary.RMSError < best.Summary.RMSError {
			t.Errorf("best rms %g is not minimal", best.Summary.RMSError)
		}
	}
	if Best(nil) != nil {
		t.Error("Best(nil) should be nil")
	}
}

func TestSweepImproves(t *testing.T) {
	base := Config{Sampler: "halton", Resolution: 30, Seed: 2}
	reports, err := Sweep(context.Background(), base, []int{10, 200}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if reports[1].Summary.RMSError >= reports[0].Summary.RMSError {
		t.Errorf("rms did not improve with more points: %g -> %g",
			reports[0].Summary.RMSError, reports[1].Summary.RMSError)
	}
}

func TestCounts(t *testing.T) {
	tests := []struct {
		name      string
		lo, hi, n int
		want      []int
	}{
		{"single", 10, 100, 1, []int{10}},
		{"decade", 10, 1000, 3, []int{10, 100, 1000}},
		{"dedup", 2, 4, 6, []int{2, 3, 4}},
		{"invalid", 10, 5, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Counts(tt.lo, tt.hi, tt.n)); diff != "" {
				t.Errorf("Counts (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnsemble(t *testing.T) {
	base := Config{Sampler: "random", NumPoints: 40, Resolution: 20, Seed: 10}
	reports, err := Ensemble(context.Background(), base, 4, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 4 {
		t.Fatalf("got %d reports", len(reports))
	}
	for i, r := range reports {
		if r.Config.Seed != 10+uint64(i) {
			t.Errorf("report %d seed = %d", i, r.Config.Seed)
		}
	}

	s := RMSStats(reports)
	if s.Mean <= 0 || s.StdDev <= 0 {
		t.Errorf("rms stats = %+v", s)
	}
	if d := DiscrepancyStats(reports[:1]); d.StdDev != 0 || d.Mean != reports[0].Summary.Discrepancy {
		t.Errorf("single report stats = %+v", d)
	}
	if (RMSStats(nil) != Stats{}) {
		t.Error("empty stats should be zero")
	}
}

func TestEnsembleError(t *testing.T) {
	base := Config{Sampler: "halton", NumPoints: 1, Resolution: 10}
	if _, err := Ensemble(context.Background(), base, 3, nil, nil); !errors.Is(err, rbf.ErrSingular) {
		t.Errorf("err = %v, want ErrSingular", err)
	}
}

func TestCompareBackend(t *testing.T) {
	base := Config{NumPoints: 40, Resolution: 20, Seed: 3, Workers: 2}
	cpu, err := Compare(context.Background(), base, []string{"halton"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	base.Backend = "serial"
	serial, err := Compare(context.Background(), base, []string{"halton"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if serial[0].Config.Backend != "serial" {
		t.Errorf("backend = %q", serial[0].Config.Backend)
	}
	if d := math.Abs(cpu[0].Summary.RMSError - serial[0].Summary.RMSError); d > 1e-12 {
		t.Errorf("backends disagree on rms by %g", d)
	}

	base.Backend = "gpu"
	if _, err := Compare(context.Background(), base, []string{"halton"}, nil, nil); err == nil {
		t.Error("expected error for unknown backend")
	}
}
