package analysis

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/mat"
)

// CrossSection returns row i of f, clamped to the valid row range.
func CrossSection(f mat.Matrix, row int) []float64 {
	r, _ := f.Dims()
	if row < 0 {
		row = 0
	}
	if row >= r {
		row = r - 1
	}
	return mat.Row(nil, row, f)
}

// CrossSectionPlot renders a row of the field as an ASCII line plot.
func CrossSectionPlot(f mat.Matrix, row, width, height int, y float64) string {
	data := CrossSection(f, row)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("z(x, y=%.2f)", y)))
}
