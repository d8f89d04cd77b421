// Package colormap maps scalar values to colours.
package colormap

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// viridisStops are ten evenly spaced samples of the viridis map.
var viridisStops = []string{
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// Map is a piecewise Lab blend between evenly spaced colour stops.
type Map struct {
	Name  string
	stops []colorful.Color
}

// Viridis is the default map for every renderer.
var Viridis = mustMap("viridis", viridisStops)

func mustMap(name string, hex []string) *Map {
	m, err := New(name, hex)
	if err != nil {
		panic(err)
	}
	return m
}

// New builds a map from at least two hex colour stops.
func New(name string, hex []string) (*Map, error) {
	stops := make([]colorful.Color, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, err
		}
		stops[i] = c
	}
	if len(stops) < 2 {
		stops = append(stops, stops...)
	}
	return &Map{Name: name, stops: stops}, nil
}

// At returns the colour at t, clamped to [0,1].
func (m *Map) At(t float64) colorful.Color {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	seg := t * float64(len(m.stops)-1)
	i := int(seg)
	if i >= len(m.stops)-1 {
		return m.stops[len(m.stops)-1]
	}
	return m.stops[i].BlendLab(m.stops[i+1], seg-float64(i)).Clamped()
}

// Scale maps v in [lo, hi] onto the map.
func (m *Map) Scale(v, lo, hi float64) colorful.Color {
	if hi <= lo {
		return m.At(0.5)
	}
	return m.At((v - lo) / (hi - lo))
}

// Hex is At formatted as "#rrggbb".
func (m *Map) Hex(t float64) string {
	return m.At(t).Hex()
}

// RGBA converts a map colour to image/color with the given alpha in [0,1].
func RGBA(c colorful.Color, alpha float64) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: uint8(math.Round(math.Max(0, math.Min(1, alpha)) * 255))}
}
