package field

import "math"

// TargetFormula is the display form of [Target].
const TargetFormula = "cos(πx)·sin(πy)"

// Target is the scalar field sampled by the pipeline.
func Target(x, y float64) float64 {
	return math.Cos(math.Pi*x) * math.Sin(math.Pi*y)
}
