package compute

import "runtime"

// Kernel maps a distance to a basis function value.
type Kernel func(r float64) float64

type Backend interface {
	Name() string
	Available() bool
	// KernelSum returns, for every query point (px[i], py[i]), the sum over
	// centres j of w[j]·kernel(|p_i − c_j|).
	KernelSum(px, py, cx, cy, w []float64, kernel Kernel) []float64
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelectBackend() Backend {
	if runtime.NumCPU() > 1 {
		return NewCPUBackend(0)
	}
	return NewSerialBackend()
}

// ByName returns the backend with the given name; workers only applies to
// the cpu backend.
func ByName(name string, workers int) Backend {
	switch name {
	case "serial":
		return NewSerialBackend()
	case "cpu":
		return NewCPUBackend(workers)
	default:
		return AutoSelectBackend()
	}
}
