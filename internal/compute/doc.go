// Package compute provides the backends that evaluate radial-basis sums.
//
// The package automatically selects the best available backend:
//
//   - CPU: splits the query points into chunks across all cores
//   - Serial: single goroutine, used on one-core machines and for small inputs
//
// # Kernel sums
//
// Evaluating an interpolant on an R×R grid is an (R²×N) kernel matrix times
// the weight vector. Backends compute it without materialising the matrix:
//
//	backend := compute.GetBackend()
//	z := backend.KernelSum(px, py, cx, cy, w, kernel)
package compute
