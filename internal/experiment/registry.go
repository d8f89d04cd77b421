package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/rbfviz/internal/compute"
	"github.com/san-kum/rbfviz/internal/sampling"
)

// Registry resolves sampler and backend names used by experiments.
type Registry struct {
	samplers map[string]func(seed uint64) sampling.Sampler
	backends map[string]func(workers int) compute.Backend
}

func NewRegistry() *Registry {
	r := &Registry{
		samplers: make(map[string]func(uint64) sampling.Sampler),
		backends: make(map[string]func(int) compute.Backend),
	}

	r.samplers["halton"] = func(seed uint64) sampling.Sampler { return sampling.NewHalton(seed) }
	r.samplers["random"] = func(seed uint64) sampling.Sampler { return sampling.NewRandom(seed) }

	r.backends["cpu"] = func(workers int) compute.Backend { return compute.NewCPUBackend(workers) }
	r.backends["serial"] = func(int) compute.Backend { return compute.NewSerialBackend() }

	return r
}

// RegisterSampler adds or replaces a named sampler.
func (r *Registry) RegisterSampler(name string, fn func(seed uint64) sampling.Sampler) {
	r.samplers[name] = fn
}

func (r *Registry) GetSampler(name string, seed uint64) (sampling.Sampler, error) {
	fn, ok := r.samplers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sampling.ErrUnknownSampler, name)
	}
	return fn(seed), nil
}

func (r *Registry) GetBackend(name string, workers int) (compute.Backend, error) {
	fn, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
	return fn(workers), nil
}

func (r *Registry) ListSamplers() []string {
	names := make([]string, 0, len(r.samplers))
	for name := range r.samplers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListBackends() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
