package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/rbfviz/internal/colormap"
	"github.com/san-kum/rbfviz/internal/contour"
	"github.com/san-kum/rbfviz/internal/visualizer"
)

const (
	halfBlock    = "▀"
	sampleGlyph  = "•"
	colorbarCell = "█"
)

// Heatmap renders the filled contour plot as cols×rows terminal cells, two
// field pixels per cell, with y growing upwards and samples marked.
func Heatmap(scene *visualizer.Scene, cols, rows int, cmap *colormap.Map, marker string) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	levels := scene.ContourLevels()
	bands := len(levels) - 1
	n := scene.Resolution()
	pixRows := rows * 2

	color := func(px, py int) string {
		j := scale(px, cols, n)
		i := scale(pixRows-1-py, pixRows, n)
		t := contour.Fraction(contour.Band(scene.Field.At(i, j), levels), bands)
		return cmap.Hex(t)
	}

	marks := make(map[[2]int]bool, scene.Samples.Len())
	for k := range scene.Samples.X {
		c := int(math.Min(float64(cols-1), scene.Samples.X[k]*float64(cols)))
		r := int(math.Min(float64(rows-1), (1-scene.Samples.Y[k])*float64(rows)))
		marks[[2]int{r, c}] = true
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			top, bottom := color(c, 2*r), color(c, 2*r+1)
			style := lipgloss.NewStyle().Background(lipgloss.Color(bottom))
			if marks[[2]int{r, c}] {
				b.WriteString(style.Foreground(lipgloss.Color(marker)).Bold(true).Render(sampleGlyph))
				continue
			}
			b.WriteString(style.Foreground(lipgloss.Color(top)).Render(halfBlock))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// scale maps pixel p of size pixels onto a grid index in [0, n).
func scale(p, size, n int) int {
	if size <= 1 {
		return 0
	}
	i := int(math.Round(float64(p) * float64(n-1) / float64(size-1)))
	return max(0, min(n-1, i))
}

// Colorbar renders the contour levels as a labelled strip of width cells.
func Colorbar(scene *visualizer.Scene, width int, cmap *colormap.Map) string {
	if width < 1 {
		return ""
	}
	levels := scene.ContourLevels()
	bands := len(levels) - 1
	var b strings.Builder
	for c := 0; c < width; c++ {
		band := c * bands / width
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cmap.Hex(contour.Fraction(band, bands)))).Render(colorbarCell))
	}
	lo, hi := levels[0], levels[len(levels)-1]
	return fmt.Sprintf("%s\n%-*.2f%*.2f", b.String(), width/2, lo, width-width/2, hi)
}
