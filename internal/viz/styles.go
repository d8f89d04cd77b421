package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header lipgloss.Style
	panel  lipgloss.Style
	stats  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	hint   lipgloss.Style
	spark  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),
		stats: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1).
			Width(statsWidth),
		label: lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		hint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		spark: lipgloss.NewStyle().Foreground(t.Accent),
	}
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline squeezes values into width bar glyphs, keeping the peak of
// each bucket.
func Sparkline(values []float64, width int) string {
	if width < 1 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if width > len(values) {
		width = len(values)
	}

	buckets := make([]float64, width)
	for k := range buckets {
		buckets[k] = math.Inf(-1)
	}
	for i, v := range values {
		k := i * width / len(values)
		buckets[k] = max(buckets[k], v)
	}
	lo, hi := buckets[0], buckets[0]
	for _, v := range buckets {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range buckets {
		idx := int((v - lo) / rng * float64(len(sparkChars)-1))
		b.WriteRune(sparkChars[max(0, min(len(sparkChars)-1, idx))])
	}
	return b.String()
}
