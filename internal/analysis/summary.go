package analysis

import (
	"github.com/san-kum/rbfviz/internal/field"
	"github.com/san-kum/rbfviz/internal/rbf"
	"gonum.org/v1/gonum/mat"
)

// Summary collects the diagnostics reported by `rbfviz inspect`.
type Summary struct {
	Points            int
	Resolution        int
	FieldMin          float64
	FieldMax          float64
	KnotResidual      float64
	RMSError          float64
	MaxError          float64
	Condition         float64
	Discrepancy       float64
	DominantFrequency int
	Spectrum          []float64
}

// Summarize computes every diagnostic for one fitted field.
func Summarize(ip *rbf.Interpolant, s *field.Samples, g *field.Grid, f *mat.Dense) Summary {
	lo, hi := field.Range(f)
	rms, max := GridError(f, g)
	spectrum := ResidualSpectrum(Residual(f, g))
	return Summary{
		Points:            s.Len(),
		Resolution:        g.Resolution(),
		FieldMin:          lo,
		FieldMax:          hi,
		KnotResidual:      KnotResidual(ip, s),
		RMSError:          rms,
		MaxError:          max,
		Condition:         ip.Condition(),
		Discrepancy:       CenteredL2Discrepancy(s.X, s.Y),
		DominantFrequency: DominantFrequency(spectrum),
		Spectrum:          spectrum,
	}
}
