package gui

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/rbfviz/internal/colormap"
	"github.com/san-kum/rbfviz/internal/contour"
	"github.com/san-kum/rbfviz/internal/visualizer"
	"github.com/san-kum/rbfviz/internal/viz"
)

// worldScale converts the unit surface into raylib world units.
const worldScale = 10

var white = colorful.Color{R: 1, G: 1, B: 1}

// Triangle is one face of the surface mesh in world units. T is the
// normalised height used for colouring.
type Triangle struct {
	A, B, C viz.Vec3
	T       float64
}

// SurfaceTriangles splits every stride×stride cell of the grid into two
// triangles.
func SurfaceTriangles(scene *visualizer.Scene, stride int) []Triangle {
	if stride < 1 {
		stride = 1
	}
	lo, hi := scene.Range()
	xs, ys := scene.Axes()
	n := scene.Resolution()

	node := func(i, j int) viz.Vec3 {
		return viz.World(xs[j], ys[i], scene.Field.At(i, j), lo, hi).Scale(worldScale)
	}
	height := func(vals ...float64) float64 {
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		if hi <= lo {
			return 0.5
		}
		return (sum/float64(len(vals)) - lo) / (hi - lo)
	}

	var tris []Triangle
	for i := 0; i < n-1; i += stride {
		i2 := min(n-1, i+stride)
		for j := 0; j < n-1; j += stride {
			j2 := min(n-1, j+stride)
			f := scene.Field
			tris = append(tris,
				Triangle{node(i, j), node(i, j2), node(i2, j2), height(f.At(i, j), f.At(i, j2), f.At(i2, j2))},
				Triangle{node(i, j), node(i2, j2), node(i2, j), height(f.At(i, j), f.At(i2, j2), f.At(i2, j))},
			)
		}
	}
	return tris
}

// SamplePoints returns the samples in world units.
func SamplePoints(scene *visualizer.Scene) []viz.Vec3 {
	lo, hi := scene.Range()
	s := scene.Samples
	pts := make([]viz.Vec3, s.Len())
	for k := range s.X {
		pts[k] = viz.World(s.X[k], s.Y[k], s.Z[k], lo, hi).Scale(worldScale)
	}
	return pts
}

// ContourImage rasterises the filled contour plot at size×size pixels,
// composited over white at the fill alpha. Row 0 is the top (y = 1).
func ContourImage(scene *visualizer.Scene, size int, cmap *colormap.Map) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	levels := scene.ContourLevels()
	nb := len(levels) - 1
	n := scene.Resolution()

	palette := make([]color.RGBA, nb)
	for b := range palette {
		c := cmap.At(contour.Fraction(b, nb)).BlendRgb(white, 1-visualizer.FillAlpha)
		palette[b] = colormap.RGBA(c, 1)
	}

	for py := 0; py < size; py++ {
		i := nodeIndex(size-1-py, size, n)
		for px := 0; px < size; px++ {
			j := nodeIndex(px, size, n)
			img.SetRGBA(px, py, palette[contour.Band(scene.Field.At(i, j), levels)])
		}
	}
	return img
}

func nodeIndex(p, size, n int) int {
	if size <= 1 {
		return 0
	}
	return int(math.Round(float64(p) * float64(n-1) / float64(size-1)))
}

// Orbit is a camera orbiting the origin.
type Orbit struct {
	Yaw, Pitch, Distance float64
}

const (
	defaultYaw      = -2.2
	defaultPitch    = 0.6
	defaultDistance = 22
	minPitch        = -1.5
	maxPitch        = 1.5
	minDistance     = 5
	maxDistance     = 80
)

func NewOrbit() Orbit {
	return Orbit{Yaw: defaultYaw, Pitch: defaultPitch, Distance: defaultDistance}
}

func (o *Orbit) Rotate(dYaw, dPitch float64) {
	o.Yaw += dYaw
	o.Pitch = math.Max(minPitch, math.Min(maxPitch, o.Pitch+dPitch))
}

func (o *Orbit) Zoom(delta float64) {
	o.Distance = math.Max(minDistance, math.Min(maxDistance, o.Distance-delta))
}

// Position is the camera position in world units, y up.
func (o Orbit) Position() viz.Vec3 {
	return viz.Vec3{
		X: o.Distance * math.Cos(o.Pitch) * math.Cos(o.Yaw),
		Y: o.Distance * math.Sin(o.Pitch),
		Z: o.Distance * math.Cos(o.Pitch) * math.Sin(o.Yaw),
	}
}
