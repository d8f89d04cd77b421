// Package contour quantises gridded fields into filled-contour bands and
// traces iso-lines with marching squares.
package contour

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultLevels is the number of filled bands drawn by every renderer.
const DefaultLevels = 20

// Levels returns n+1 evenly spaced band boundaries from lo to hi.
func Levels(lo, hi float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	if hi <= lo {
		hi = lo + 1
	}
	out := make([]float64, n+1)
	step := (hi - lo) / float64(n)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n] = hi
	return out
}

// Band returns the index of the band holding v, clamped to [0, len(levels)-2].
func Band(v float64, levels []float64) int {
	n := len(levels) - 1
	if n < 1 || math.IsNaN(v) || v <= levels[0] {
		return 0
	}
	if v >= levels[n] {
		return n - 1
	}
	step := (levels[n] - levels[0]) / float64(n)
	b := int((v - levels[0]) / step)
	if b > n-1 {
		b = n - 1
	}
	return b
}

// Fraction maps a band index to the centre of its colour interval in [0,1].
func Fraction(band, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return (float64(band) + 0.5) / float64(n)
}

// Bands quantises every value of f.
func Bands(f mat.Matrix, levels []float64) [][]int {
	r, c := f.Dims()
	out := make([][]int, r)
	for i := 0; i < r; i++ {
		out[i] = make([]int, c)
		for j := 0; j < c; j++ {
			out[i][j] = Band(f.At(i, j), levels)
		}
	}
	return out
}

// Segment is one piece of an iso-line in data coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

type point struct{ x, y float64 }

// IsoLines traces the level set f == level. Row i of f lies at ys[i] and
// column j at xs[j].
func IsoLines(f mat.Matrix, xs, ys []float64, level float64) []Segment {
	r, c := f.Dims()
	var segs []Segment
	for i := 0; i+1 < r; i++ {
		for j := 0; j+1 < c; j++ {
			v00, v01 := f.At(i, j), f.At(i, j+1)
			v11, v10 := f.At(i+1, j+1), f.At(i+1, j)

			x0, x1, y0, y1 := xs[j], xs[j+1], ys[i], ys[i+1]
			// bottom, right, top, left
			edges := [4][2]struct {
				v float64
				p point
			}{
				{{v00, point{x0, y0}}, {v01, point{x1, y0}}},
				{{v01, point{x1, y0}}, {v11, point{x1, y1}}},
				{{v11, point{x1, y1}}, {v10, point{x0, y1}}},
				{{v10, point{x0, y1}}, {v00, point{x0, y0}}},
			}

			var hits []point
			for _, e := range edges {
				a, b := e[0], e[1]
				if (a.v >= level) == (b.v >= level) {
					continue
				}
				t := (level - a.v) / (b.v - a.v)
				hits = append(hits, point{a.p.x + t*(b.p.x-a.p.x), a.p.y + t*(b.p.y-a.p.y)})
			}

			switch len(hits) {
			case 2:
				segs = append(segs, seg(hits[0], hits[1]))
			case 4:
				centre := (v00 + v01 + v11 + v10) / 4
				if (centre >= level) == (v00 >= level) {
					segs = append(segs, seg(hits[0], hits[1]), seg(hits[2], hits[3]))
				} else {
					segs = append(segs, seg(hits[0], hits[3]), seg(hits[1], hits[2]))
				}
			}
		}
	}
	return segs
}

func seg(a, b point) Segment {
	return Segment{X1: a.x, Y1: a.y, X2: b.x, Y2: b.y}
}
