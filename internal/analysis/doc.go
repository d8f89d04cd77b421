// Package analysis provides accuracy and uniformity diagnostics for the
// interpolation pipeline.
//
// The package includes tools for judging a fitted surface and the point set
// it was fitted to:
//
//   - [KnotResidual]: largest deviation of the interpolant at its own samples
//   - [GridError]: RMS and maximum error against the true target field
//   - [ResidualSpectrum]: row-averaged FFT magnitude of the grid residual
//   - [CenteredL2Discrepancy]: uniformity of a 2D point set
//   - [CrossSection], [CrossSectionPlot]: a single grid row as a line plot
//
// # Sampling quality
//
// Low-discrepancy samples have a smaller centred L2 discrepancy than
// pseudo-random ones of the same size:
//
//	cd := analysis.CenteredL2Discrepancy(s.X, s.Y)
package analysis
