package viz

import (
	"sort"

	"github.com/san-kum/rbfviz/internal/colormap"
	"github.com/san-kum/rbfviz/internal/visualizer"
)

// surfaceHeight is the world-space height of the z range.
const surfaceHeight = 0.6

// Edge is a mesh segment. T is its normalised height in [0, 1].
type Edge struct {
	Start, End Vec3
	T          float64
}

// Mesh is a wireframe of the interpolated surface plus its sample points.
type Mesh struct {
	Edges   []Edge
	Samples []Vec3
}

// World maps a field coordinate into the camera's world space: x right,
// z up, y into the screen, all centred on the origin.
func World(x, y, z, lo, hi float64) Vec3 {
	return Vec3{X: x - 0.5, Y: (norm(z, lo, hi) - 0.5) * surfaceHeight, Z: y - 0.5}
}

func norm(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

// SurfaceMesh builds a wireframe with roughly lines grid lines per axis.
func SurfaceMesh(scene *visualizer.Scene, lines int) *Mesh {
	lo, hi := scene.Range()
	xs, ys := scene.Axes()
	n := scene.Resolution()
	stride := 1
	if lines > 1 && n > lines {
		stride = (n - 1) / (lines - 1)
	}

	at := func(i, j int) Vec3 { return World(xs[j], ys[i], scene.Field.At(i, j), lo, hi) }
	height := func(i, j int) float64 { return norm(scene.Field.At(i, j), lo, hi) }

	m := &Mesh{}
	for _, i := range strided(n, stride) {
		for j := 0; j+1 < n; j++ {
			m.Edges = append(m.Edges, Edge{at(i, j), at(i, j+1), (height(i, j) + height(i, j+1)) / 2})
		}
	}
	for _, j := range strided(n, stride) {
		for i := 0; i+1 < n; i++ {
			m.Edges = append(m.Edges, Edge{at(i, j), at(i+1, j), (height(i, j) + height(i+1, j)) / 2})
		}
	}

	s := scene.Samples
	for k := range s.X {
		m.Samples = append(m.Samples, World(s.X[k], s.Y[k], s.Z[k], lo, hi))
	}
	return m
}

// strided returns 0, stride, 2*stride, ... always ending at n-1.
func strided(n, stride int) []int {
	var idx []int
	for i := 0; i < n-1; i += stride {
		idx = append(idx, i)
	}
	return append(idx, n-1)
}

// ProjectedEdge is an edge in viewport coordinates.
type ProjectedEdge struct {
	X1, Y1, X2, Y2 float64
	Depth          float64
	T              float64
}

// ProjectEdges projects the mesh edges onto a w×h viewport, farthest first.
func ProjectEdges(m *Mesh, cam *Camera, w, h float64) []ProjectedEdge {
	proj := make([]ProjectedEdge, 0, len(m.Edges))
	for _, e := range m.Edges {
		x1, y1, d1, ok1 := cam.Project(e.Start, w, h)
		x2, y2, d2, ok2 := cam.Project(e.End, w, h)
		if ok1 && ok2 {
			proj = append(proj, ProjectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.T})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	return proj
}

// RenderSurface draws the mesh onto the canvas, coloured by height, with
// the samples drawn on top in marker.
func RenderSurface(c *Canvas, m *Mesh, cam *Camera, cmap *colormap.Map, marker string) {
	if c == nil || m == nil || cam == nil {
		return
	}
	dw, dh := c.Dots()
	w, h := float64(dw), float64(dh)
	for _, e := range ProjectEdges(m, cam, w, h) {
		c.DrawLine(int(e.X1), int(e.Y1), int(e.X2), int(e.Y2), cmap.Hex(e.T))
	}
	for _, p := range m.Samples {
		if x, y, _, ok := cam.Project(p, w, h); ok {
			c.Set(int(x), int(y), marker)
			c.Set(int(x)+1, int(y), marker)
		}
	}
}
