package experiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/rbfviz/internal/analysis"
	"github.com/san-kum/rbfviz/internal/logging"
	"github.com/san-kum/rbfviz/internal/visualizer"
)

type Config struct {
	Sampler    string
	Backend    string
	NumPoints  int
	Resolution int
	Seed       uint64
	Polynomial bool
	Workers    int
}

// Report is the outcome of one experiment run.
type Report struct {
	Config  Config
	Summary analysis.Summary
	Elapsed time.Duration
}

type Experiment struct {
	cfg      Config
	registry *Registry
	log      hclog.Logger
}

func New(cfg Config, registry *Registry, log hclog.Logger) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	if cfg.Backend == "" {
		cfg.Backend = "cpu"
	}
	return &Experiment{
		cfg:      cfg,
		registry: registry,
		log:      logging.OrNull(log).Named("experiment"),
	}
}

func (e *Experiment) Run(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sampler, err := e.registry.GetSampler(e.cfg.Sampler, e.cfg.Seed)
	if err != nil {
		return nil, err
	}
	backend, err := e.registry.GetBackend(e.cfg.Backend, e.cfg.Workers)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	v, err := visualizer.New(e.cfg.NumPoints, e.cfg.Resolution,
		visualizer.WithSampler(sampler),
		visualizer.WithPolynomial(e.cfg.Polynomial),
		visualizer.WithBackend(backend),
		visualizer.WithLogger(e.log))
	if err != nil {
		return nil, err
	}
	ip, zi, err := v.Interpolate()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Config:  e.cfg,
		Summary: analysis.Summarize(ip, v.Samples(), v.Grid(), zi),
		Elapsed: time.Since(start),
	}
	e.log.Debug("experiment done", "sampler", e.cfg.Sampler, "points", e.cfg.NumPoints,
		"rms", report.Summary.RMSError, "elapsed", report.Elapsed)
	return report, nil
}

// Compare runs base once per sampler name.
func Compare(ctx context.Context, base Config, samplers []string, registry *Registry, log hclog.Logger) ([]*Report, error) {
	reports := make([]*Report, 0, len(samplers))
	for _, name := range samplers {
		cfg := base
		cfg.Sampler = name
		r, err := New(cfg, registry, log).Run(ctx)
		if err != nil {
			return reports, fmt.Errorf("sampler %s: %w", name, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Sweep runs base once per point count.
func Sweep(ctx context.Context, base Config, counts []int, registry *Registry, log hclog.Logger) ([]*Report, error) {
	reports := make([]*Report, 0, len(counts))
	for _, n := range counts {
		cfg := base
		cfg.NumPoints = n
		r, err := New(cfg, registry, log).Run(ctx)
		if err != nil {
			return reports, fmt.Errorf("num_points=%d: %w", n, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Best returns the report with the lowest RMS error, or nil.
func Best(reports []*Report) *Report {
	var best *Report
	bestRMS := math.Inf(1)
	for _, r := range reports {
		if r.Summary.RMSError < bestRMS {
			best, bestRMS = r, r.Summary.RMSError
		}
	}
	return best
}

// Counts returns n geometrically spaced point counts from lo to hi.
func Counts(lo, hi, n int) []int {
	if n < 1 || lo < 1 || hi < lo {
		return nil
	}
	if n == 1 || lo == hi {
		return []int{lo}
	}
	ratio := math.Pow(float64(hi)/float64(lo), 1/float64(n-1))
	counts := make([]int, 0, n)
	for i := 0; i < n; i++ {
		c := int(math.Round(float64(lo) * math.Pow(ratio, float64(i))))
		if len(counts) > 0 && c <= counts[len(counts)-1] {
			continue
		}
		counts = append(counts, c)
	}
	counts[len(counts)-1] = hi
	return counts
}
