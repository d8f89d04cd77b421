package experiment

import (
	"context"
	"sync"

	"github.com/hashicorp/go-hclog"
	"gonum.org/v1/gonum/stat"
)

// Ensemble runs base once per seed in [base.Seed, base.Seed+runs)
// concurrently. Results are ordered by seed.
func Ensemble(ctx context.Context, base Config, runs int, registry *Registry, log hclog.Logger) ([]*Report, error) {
	if registry == nil {
		registry = NewRegistry()
	}
	reports := make([]*Report, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			cfg := base
			cfg.Seed = base.Seed + uint64(idx)
			reports[idx], errs[idx] = New(cfg, registry, log).Run(ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}

// Stats summarises one metric across an ensemble.
type Stats struct {
	Mean, StdDev float64
}

// RMSStats returns the mean and standard deviation of the RMS error.
func RMSStats(reports []*Report) Stats {
	return statsOf(reports, func(r *Report) float64 { return r.Summary.RMSError })
}

// DiscrepancyStats returns the mean and standard deviation of CD2.
func DiscrepancyStats(reports []*Report) Stats {
	return statsOf(reports, func(r *Report) float64 { return r.Summary.Discrepancy })
}

func statsOf(reports []*Report, metric func(*Report) float64) Stats {
	xs := make([]float64, len(reports))
	for i, r := range reports {
		xs[i] = metric(r)
	}
	if len(xs) < 2 {
		if len(xs) == 1 {
			return Stats{Mean: xs[0]}
		}
		return Stats{}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return Stats{Mean: mean, StdDev: std}
}
