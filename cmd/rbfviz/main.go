package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/rbfviz/internal/analysis"
	"github.com/san-kum/rbfviz/internal/compute"
	"github.com/san-kum/rbfviz/internal/config"
	"github.com/san-kum/rbfviz/internal/experiment"
	"github.com/san-kum/rbfviz/internal/export"
	"github.com/san-kum/rbfviz/internal/grid"
	"github.com/san-kum/rbfviz/internal/gui"
	"github.com/san-kum/rbfviz/internal/logging"
	"github.com/san-kum/rbfviz/internal/sampling"
	"github.com/san-kum/rbfviz/internal/visualizer"
	"github.com/san-kum/rbfviz/internal/viz"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	logLevel   string
	numPoints  int
	resolution int
	seed       uint64
	sampler    string
	polynomial bool
	levels     int
	theme      string
	workers    int

	sweepFrom  int
	sweepTo    int
	sweepSteps int

	compareRuns int
	backend     string

	logger hclog.Logger
	cfg    *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "rbfviz",
		Short:         "scattered-data interpolation of cos(πx)·sin(πy) on the unit square",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = logging.New(logLevel, os.Stderr)
			var err error
			if cfg, err = resolveConfig(cmd); err != nil {
				return err
			}
			compute.SetBackend(compute.ByName("cpu", cfg.Workers))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return show(cfg.Renderer)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.IntVarP(&numPoints, "points", "n", config.DefaultNumPoints, "number of sample points")
	pf.IntVarP(&resolution, "resolution", "r", config.DefaultGridResolution, "grid nodes per axis")
	pf.Uint64Var(&seed, "seed", config.DefaultSeed, "sampler seed")
	pf.StringVar(&sampler, "sampler", config.DefaultSampler, "sampler ("+strings.Join(sampling.Names(), ", ")+")")
	pf.BoolVar(&polynomial, "polynomial", false, "augment the cubic kernel with a linear polynomial")
	pf.IntVar(&levels, "levels", config.DefaultLevels, "contour levels")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "terminal theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	pf.IntVar(&workers, "workers", 0, "grid evaluation workers (0 = all CPUs)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "interpolate and open the plot window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show("window")
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interpolate and explore the result in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return show("terminal")
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [file.svg]",
		Short: "interpolate and write the figure as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cfg.Output = args[0]
			}
			return show("svg")
		},
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "print accuracy and conditioning diagnostics",
		Args:  cobra.NoArgs,
		RunE:  inspect,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [sampler] ...",
		Short: "compare samplers on the same point budget",
		RunE:  compare,
	}
	compareCmd.Flags().IntVar(&compareRuns, "runs", 1, "seeds per sampler, run concurrently")
	compareCmd.Flags().StringVar(&backend, "backend", "cpu", "compute backend (cpu, serial)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure interpolation error against the number of points",
		Args:  cobra.NoArgs,
		RunE:  sweep,
	}
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 10, "smallest point count")
	sweepCmd.Flags().IntVar(&sweepTo, "to", 400, "largest point count")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of point counts")
	sweepCmd.Flags().StringVar(&backend, "backend", "cpu", "compute backend (cpu, serial)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPOINTS\tRESOLUTION\tSAMPLER\tPOLYNOMIAL\tLEVELS\tRENDERER")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%t\t%d\t%s\n",
					name, p.NumPoints, p.GridResolution, p.Sampler, p.Polynomial, p.Levels, p.Renderer)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(showCmd, tuiCmd, exportCmd, inspectCmd, compareCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = logging.New(logLevel, os.Stderr)
		}
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicit flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(config.ListPresets(), ", "))
		}
		c = p
	}
	if configFile != "" {
		if err := config.Merge(configFile, c); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("points") {
		c.NumPoints = numPoints
	}
	if flags.Changed("resolution") {
		c.GridResolution = resolution
	}
	if flags.Changed("seed") {
		c.Seed = seed
	}
	if flags.Changed("sampler") {
		c.Sampler = sampler
	}
	if flags.Changed("polynomial") {
		c.Polynomial = polynomial
	}
	if flags.Changed("levels") {
		c.Levels = levels
	}
	if flags.Changed("theme") {
		c.Theme = theme
	}
	if flags.Changed("workers") {
		c.Workers = workers
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("configuration", "points", c.NumPoints, "resolution", c.GridResolution,
		"sampler", c.Sampler, "seed", c.Seed, "polynomial", c.Polynomial)
	return c, nil
}

func newVisualizer(c *config.Config) (*visualizer.Visualizer, error) {
	s, err := sampling.New(c.Sampler, c.Seed)
	if err != nil {
		return nil, err
	}
	return visualizer.New(c.NumPoints, c.GridResolution,
		visualizer.WithSampler(s),
		visualizer.WithPolynomial(c.Polynomial),
		visualizer.WithLevels(c.Levels),
		visualizer.WithLogger(logger))
}

func rendererFor(name string, c *config.Config) (visualizer.Renderer, error) {
	switch name {
	case "window":
		return gui.NewWindow(logger), nil
	case "terminal":
		return viz.NewTerminal(c.Theme), nil
	case "svg":
		return export.NewSVG(afero.NewOsFs(), c.Output, logger), nil
	}
	return nil, fmt.Errorf("unknown renderer: %s (available: %s)", name, strings.Join(config.Renderers, ", "))
}

func show(renderer string) error {
	r, err := rendererFor(renderer, cfg)
	if err != nil {
		return err
	}
	v, err := newVisualizer(cfg)
	if err != nil {
		return err
	}
	return v.InterpolateAndPlot(r)
}

func inspect(cmd *cobra.Command, args []string) error {
	v, err := newVisualizer(cfg)
	if err != nil {
		return err
	}
	ip, zi, err := v.Interpolate()
	if err != nil {
		return err
	}
	sum := analysis.Summarize(ip, v.Samples(), v.Grid(), zi)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "sampler\t%s (seed %d)\n", v.SamplerName(), cfg.Seed)
	fmt.Fprintf(w, "points\t%d\n", sum.Points)
	fmt.Fprintf(w, "grid\t%d×%d\n", sum.Resolution, sum.Resolution)
	fmt.Fprintf(w, "polynomial tail\t%t\n", cfg.Polynomial)
	fmt.Fprintf(w, "discrepancy (CD2)\t%.4e\n", sum.Discrepancy)
	fmt.Fprintf(w, "condition number\t%.4e\n", sum.Condition)
	fmt.Fprintf(w, "field range\t[%.4f, %.4f]\n", sum.FieldMin, sum.FieldMax)
	fmt.Fprintf(w, "knot residual\t%.4e\n", sum.KnotResidual)
	fmt.Fprintf(w, "rms error\t%.4e\n", sum.RMSError)
	fmt.Fprintf(w, "max error\t%.4e\n", sum.MaxError)
	fmt.Fprintf(w, "dominant residual frequency\t%d\n", sum.DominantFrequency)
	if err := w.Flush(); err != nil {
		return err
	}

	mid := sum.Resolution / 2
	_, ys := grid.Axis(v.Grid())
	fmt.Println()
	fmt.Println(analysis.CrossSectionPlot(zi, mid, 70, 10, ys[mid]))
	fmt.Println()
	fmt.Println(asciigraph.Plot(sum.Spectrum,
		asciigraph.Height(8),
		asciigraph.Width(70),
		asciigraph.Caption("residual spectrum (cycles per unit)")))
	return nil
}

func compare(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	names := args
	if len(names) == 0 {
		names = registry.ListSamplers()
	}
	if compareRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", compareRuns)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("comparing samplers (points=%d, grid=%d, seeds=%d..%d)\n\n",
		cfg.NumPoints, cfg.GridResolution, cfg.Seed, cfg.Seed+uint64(compareRuns)-1)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SAMPLER\tCD2\tRMS\tRMS STDDEV\tMAX\tCONDITION")
	runs := make(map[string][]*experiment.Report, len(names))
	errs := make(map[string]error)
	if compareRuns == 1 {
		reports, err := experiment.Compare(ctx, baseExperiment(), names, registry, logger)
		if err != nil {
			return err
		}
		for i, r := range reports {
			runs[names[i]] = []*experiment.Report{r}
		}
	} else {
		for _, name := range names {
			base := baseExperiment()
			base.Sampler = name
			runs[name], errs[name] = experiment.Ensemble(ctx, base, compareRuns, registry, logger)
		}
	}

	var best string
	bestRMS := math.Inf(1)
	for _, name := range names {
		reports := runs[name]
		if err := errs[name]; err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		rms, cd := experiment.RMSStats(reports), experiment.DiscrepancyStats(reports)
		worst := reports[0]
		for _, r := range reports {
			if r.Summary.MaxError > worst.Summary.MaxError {
				worst = r
			}
		}
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%.1e\t%.3e\t%.3e\n", name,
			cd.Mean, rms.Mean, rms.StdDev, worst.Summary.MaxError, worst.Summary.Condition)
		if rms.Mean < bestRMS {
			best, bestRMS = name, rms.Mean
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if best != "" {
		fmt.Printf("\nlowest mean rms error: %s\n", best)
	}
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	counts := experiment.Counts(sweepFrom, sweepTo, sweepSteps)
	if len(counts) == 0 {
		return fmt.Errorf("invalid sweep range: from=%d to=%d steps=%d", sweepFrom, sweepTo, sweepSteps)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reports, err := experiment.Sweep(ctx, baseExperiment(), counts, nil, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINTS\tCD2\tCONDITION\tRMS\tMAX\tTIME")
	logRMS := make([]float64, len(reports))
	for i, r := range reports {
		fmt.Fprintf(w, "%d\t%.3e\t%.3e\t%.3e\t%.3e\t%s\n", r.Config.NumPoints,
			r.Summary.Discrepancy, r.Summary.Condition, r.Summary.RMSError, r.Summary.MaxError, r.Elapsed.Round(time.Millisecond))
		logRMS[i] = math.Log10(r.Summary.RMSError)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best := experiment.Best(reports); best != nil {
		fmt.Printf("\nlowest rms error at %d points\n", best.Config.NumPoints)
	}
	if len(logRMS) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(logRMS,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("log10 rms error vs sweep step")))
	}
	return nil
}

func baseExperiment() experiment.Config {
	return experiment.Config{
		Sampler:    cfg.Sampler,
		NumPoints:  cfg.NumPoints,
		Resolution: cfg.GridResolution,
		Seed:       cfg.Seed,
		Backend:    backend,
		Polynomial: cfg.Polynomial,
		Workers:    cfg.Workers,
	}
}
