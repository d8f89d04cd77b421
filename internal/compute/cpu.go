package compute

import (
	"math"
	"runtime"
	"sync"
)

// minParallel is the query count below which the CPU backend runs serially.
const minParallel = 256

type CPUBackend struct {
	workers int
}

// NewCPUBackend uses one worker per core when workers <= 0.
func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{
		workers: workers,
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) KernelSum(px, py, cx, cy, w []float64, kernel Kernel) []float64 {
	n := len(px)
	out := make([]float64, n)

	if n < minParallel || c.workers <= 1 {
		kernelSum(px, py, cx, cy, w, kernel, out, 0, n)
		return out
	}

	ParallelFor(n, c.workers, func(start, end int) {
		kernelSum(px, py, cx, cy, w, kernel, out, start, end)
	})
	return out
}

type SerialBackend struct{}

func NewSerialBackend() *SerialBackend { return &SerialBackend{} }

func (s *SerialBackend) Name() string    { return "serial" }
func (s *SerialBackend) Available() bool { return true }
func (s *SerialBackend) Cleanup()        {}

func (s *SerialBackend) KernelSum(px, py, cx, cy, w []float64, kernel Kernel) []float64 {
	out := make([]float64, len(px))
	kernelSum(px, py, cx, cy, w, kernel, out, 0, len(px))
	return out
}

func kernelSum(px, py, cx, cy, w []float64, kernel Kernel, out []float64, start, end int) {
	for i := start; i < end; i++ {
		sum := 0.0
		for j := range w {
			rx := px[i] - cx[j]
			ry := py[i] - cy[j]
			sum += w[j] * kernel(math.Sqrt(rx*rx+ry*ry))
		}
		out[i] = sum
	}
}

// ParallelFor executes fn over [0, n) split into one contiguous chunk per
// worker. Chunks never overlap.
func ParallelFor(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
