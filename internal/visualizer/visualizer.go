package visualizer

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/rbfviz/internal/compute"
	"github.com/san-kum/rbfviz/internal/contour"
	"github.com/san-kum/rbfviz/internal/field"
	"github.com/san-kum/rbfviz/internal/grid"
	"github.com/san-kum/rbfviz/internal/logging"
	"github.com/san-kum/rbfviz/internal/rbf"
	"github.com/san-kum/rbfviz/internal/sampling"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultNumPoints      = 100
	DefaultGridResolution = 100
)

// Renderer presents a scene. Implementations may block until the user
// closes the display.
type Renderer interface {
	Render(scene *Scene) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(scene *Scene) error

func (f RendererFunc) Render(scene *Scene) error { return f(scene) }

type config struct {
	sampler    sampling.Sampler
	seed       uint64
	polynomial bool
	backend    compute.Backend
	logger     hclog.Logger
	levels     int
}

type Option func(*config)

// WithSampler replaces the default seeded Halton sampler.
func WithSampler(s sampling.Sampler) Option {
	return func(c *config) { c.sampler = s }
}

// WithSeed seeds the default Halton sampler.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}

func WithPolynomial(on bool) Option {
	return func(c *config) { c.polynomial = on }
}

func WithBackend(b compute.Backend) Option {
	return func(c *config) { c.backend = b }
}

func WithLogger(l hclog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithLevels sets the number of filled-contour bands.
func WithLevels(n int) Option {
	return func(c *config) { c.levels = n }
}

// Visualizer owns one sample set and one evaluation grid.
type Visualizer struct {
	numPoints      int
	gridResolution int
	samples        *field.Samples
	grid           *field.Grid
	cfg            config
	log            hclog.Logger
}

// New samples numPoints points and builds a gridResolution² grid.
func New(numPoints, gridResolution int, opts ...Option) (*Visualizer, error) {
	cfg := config{levels: contour.DefaultLevels}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sampler == nil {
		cfg.sampler = sampling.NewHalton(cfg.seed)
	}
	if cfg.levels < 1 {
		cfg.levels = contour.DefaultLevels
	}
	log := logging.OrNull(cfg.logger).Named("visualizer")

	if numPoints < 1 {
		return nil, fmt.Errorf("num_points=%d: %w", numPoints, field.ErrInvalidCount)
	}
	if gridResolution < 2 {
		return nil, fmt.Errorf("grid_resolution=%d: %w", gridResolution, field.ErrInvalidResolution)
	}

	samples, err := sampling.Generate(cfg.sampler, numPoints)
	if err != nil {
		return nil, fmt.Errorf("sample %s points: %w", cfg.sampler.Name(), err)
	}
	g, err := grid.New(gridResolution)
	if err != nil {
		return nil, err
	}

	log.Debug("generated samples", "sampler", cfg.sampler.Name(), "points", numPoints, "resolution", gridResolution)
	return &Visualizer{
		numPoints:      numPoints,
		gridResolution: gridResolution,
		samples:        samples,
		grid:           g,
		cfg:            cfg,
		log:            log,
	}, nil
}

// Default returns New(DefaultNumPoints, DefaultGridResolution).
func Default(opts ...Option) (*Visualizer, error) {
	return New(DefaultNumPoints, DefaultGridResolution, opts...)
}

func (v *Visualizer) NumPoints() int          { return v.numPoints }
func (v *Visualizer) GridResolution() int     { return v.gridResolution }
func (v *Visualizer) Samples() *field.Samples { return v.samples }
func (v *Visualizer) Grid() *field.Grid       { return v.grid }
func (v *Visualizer) SamplerName() string     { return v.cfg.sampler.Name() }

// Interpolate fits a fresh interpolant and evaluates it on the grid.
func (v *Visualizer) Interpolate() (*rbf.Interpolant, *mat.Dense, error) {
	opts := []rbf.Option{rbf.WithLogger(v.cfg.logger)}
	if v.cfg.polynomial {
		opts = append(opts, rbf.WithPolynomial())
	}
	if v.cfg.backend != nil {
		opts = append(opts, rbf.WithBackend(v.cfg.backend))
	}

	ip, err := rbf.Fit(v.samples, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("fit %s interpolant: %w", rbf.KernelName, err)
	}
	zi, err := ip.EvaluateGrid(v.grid)
	if err != nil {
		return nil, nil, fmt.Errorf("evaluate grid: %w", err)
	}
	return ip, zi, nil
}

// Scene interpolates and packages everything a renderer needs.
func (v *Visualizer) Scene() (*Scene, error) {
	_, zi, err := v.Interpolate()
	if err != nil {
		return nil, err
	}
	return &Scene{
		Title:   Title,
		Samples: v.samples,
		Grid:    v.grid,
		Field:   zi,
		Levels:  v.cfg.levels,
	}, nil
}

// InterpolateAndPlot interpolates and renders the result.
func (v *Visualizer) InterpolateAndPlot(r Renderer) error {
	scene, err := v.Scene()
	if err != nil {
		return err
	}
	v.log.Debug("rendering scene", "renderer", fmt.Sprintf("%T", r))
	if err := r.Render(scene); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
