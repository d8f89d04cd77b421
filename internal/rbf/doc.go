// Package rbf fits and evaluates cubic radial-basis-function interpolants.
//
// Given N scattered samples (x_i, y_i, z_i) the interpolant is
//
//	s(p) = Σ_j w_j φ(|p − c_j|),   φ(r) = r³
//
// with weights solving Φw = z, Φ_ij = φ(|c_i − c_j|). The fitted surface
// passes through every sample. [WithPolynomial] adds a linear tail
// a + b·x + c·y together with the usual side conditions Σw_j = Σw_j x_j =
// Σw_j y_j = 0, which reproduces linear fields exactly.
//
// # Degenerate inputs
//
// Coincident sample points yield [ErrDegenerate]. A singular kernel system,
// such as the one of a single sample, yields [ErrSingular]. Systems that are
// solvable but badly conditioned are accepted and logged as warnings.
package rbf
