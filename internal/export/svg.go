package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"

	svg "github.com/ajstarks/svgo"
	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/rbfviz/internal/colormap"
	"github.com/san-kum/rbfviz/internal/contour"
	"github.com/san-kum/rbfviz/internal/logging"
	"github.com/san-kum/rbfviz/internal/visualizer"
	"github.com/san-kum/rbfviz/internal/viz"
	"github.com/spf13/afero"
)

const (
	DefaultWidth  = 1400
	DefaultHeight = 600

	margin      = 60
	titleHeight = 50
	colorbarW   = 18
	surfaceGrid = 30
	markerR     = 4
)

const (
	background = "fill:#ffffff"
	textStyle  = "font-family:sans-serif;font-size:13px;fill:#222222"
	titleStyle = "font-family:sans-serif;font-size:15px;font-weight:bold;fill:#111111;text-anchor:middle"
	axisStyle  = "stroke:#333333;stroke-width:1;fill:none"
	isoStyle   = "stroke:#000000;stroke-opacity:0.35;stroke-width:0.6;fill:none"
)

// SVG renders a scene into an SVG file with the contour plot on the left
// and the 3D projection on the right.
type SVG struct {
	Fs            afero.Fs
	Path          string
	Width, Height int
	Camera        *viz.Camera
	Colormap      *colormap.Map
	log           hclog.Logger
}

func NewSVG(fs afero.Fs, path string, log hclog.Logger) *SVG {
	return &SVG{
		Fs:       fs,
		Path:     path,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Camera:   viz.NewCamera(),
		Colormap: colormap.Viridis,
		log:      logging.OrNull(log).Named("svg"),
	}
}

func (s *SVG) Render(scene *visualizer.Scene) error {
	if err := scene.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := s.Fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := s.Fs.Create(s.Path)
	if err != nil {
		return err
	}
	if err := s.Write(f, scene); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.log.Info("wrote figure", "path", s.Path, "width", s.Width, "height", s.Height)
	return nil
}

// Write renders the figure to w.
func (s *SVG) Write(w io.Writer, scene *visualizer.Scene) error {
	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	canvas.Start(s.Width, s.Height)
	canvas.Title(scene.Title)
	canvas.Rect(0, 0, s.Width, s.Height, background)
	canvas.Text(s.Width/2, 24, scene.Title, titleStyle)

	half := s.Width / 2
	p := panel{x: margin, y: titleHeight + 10, size: min(half-2*margin-colorbarW-40, s.Height-titleHeight-2*margin)}
	s.contourPanel(canvas, scene, p)
	s.surfacePanel(canvas, scene, rect{x: half, y: titleHeight, w: half, h: s.Height - titleHeight})

	canvas.End()
	return bw.Flush()
}

// panel is a square plot area in pixels.
type panel struct{ x, y, size int }

// px maps unit coordinates into the panel, y up.
func (p panel) px(x, y float64) (int, int) {
	return p.x + round(x*float64(p.size)), p.y + p.size - round(y*float64(p.size))
}

type rect struct{ x, y, w, h int }

func (s *SVG) contourPanel(canvas *svg.SVG, scene *visualizer.Scene, p panel) {
	levels := scene.ContourLevels()
	nb := len(levels) - 1
	xs, ys := scene.Axes()
	n := scene.Resolution()
	fill := fmt.Sprintf("fill-opacity:%.2f;stroke:none", visualizer.FillAlpha)

	canvas.Text(p.x+p.size/2, p.y-10, visualizer.ContourTitle, titleStyle)
	canvas.Gstyle(fill)
	for i := 0; i+1 < n; i++ {
		for j := 0; j+1 < n; j++ {
			v := (scene.Field.At(i, j) + scene.Field.At(i+1, j) + scene.Field.At(i, j+1) + scene.Field.At(i+1, j+1)) / 4
			x0, y1 := p.px(xs[j], ys[i])
			x1, y0 := p.px(xs[j+1], ys[i+1])
			t := contour.Fraction(contour.Band(v, levels), nb)
			canvas.Rect(x0, y0, max(1, x1-x0), max(1, y1-y0), "fill:"+s.Colormap.Hex(t))
		}
	}
	canvas.Gend()

	canvas.Gstyle(isoStyle)
	for _, level := range levels[1:nb] {
		for _, seg := range contour.IsoLines(scene.Field, xs, ys, level) {
			x1, y1 := p.px(seg.X1, seg.Y1)
			x2, y2 := p.px(seg.X2, seg.Y2)
			canvas.Line(x1, y1, x2, y2)
		}
	}
	canvas.Gend()

	lo, hi := scene.Range()
	smp := scene.Samples
	for k := range smp.X {
		x, y := p.px(smp.X[k], smp.Y[k])
		canvas.Circle(x, y, markerR, "stroke:#000000;stroke-width:0.8;fill:"+s.Colormap.Scale(smp.Z[k], lo, hi).Hex())
	}

	canvas.Rect(p.x, p.y, p.size, p.size, axisStyle)
	for _, tick := range []float64{0, 0.25, 0.5, 0.75, 1} {
		x, y := p.px(tick, 0)
		canvas.Line(x, y, x, y+5, axisStyle)
		canvas.Text(x, y+18, fmt.Sprintf("%.2f", tick), textStyle+";text-anchor:middle")
		x, y = p.px(0, tick)
		canvas.Line(x-5, y, x, y, axisStyle)
		canvas.Text(x-8, y+4, fmt.Sprintf("%.2f", tick), textStyle+";text-anchor:end")
	}
	canvas.Text(p.x+p.size/2, p.y+p.size+36, visualizer.XLabel, textStyle+";text-anchor:middle")
	canvas.Text(p.x-46, p.y+p.size/2, visualizer.YLabel, textStyle)

	lx, ly := p.x+p.size-110, p.y+16
	canvas.Rect(lx-8, ly-12, 116, 22, "fill:#ffffff;fill-opacity:0.8;stroke:#999999")
	canvas.Circle(lx+2, ly, markerR, "stroke:#000000;fill:"+s.Colormap.Hex(0.5))
	canvas.Text(lx+12, ly+4, visualizer.LegendLabel, textStyle)

	s.colorbar(canvas, levels, p.x+p.size+20, p.y, p.size)
}

func (s *SVG) colorbar(canvas *svg.SVG, levels []float64, x, y, h int) {
	nb := len(levels) - 1
	for b := 0; b < nb; b++ {
		y0 := y + h - (b+1)*h/nb
		y1 := y + h - b*h/nb
		canvas.Rect(x, y0, colorbarW, y1-y0, fmt.Sprintf("fill:%s;fill-opacity:%.2f", s.Colormap.Hex(contour.Fraction(b, nb)), visualizer.FillAlpha))
	}
	canvas.Rect(x, y, colorbarW, h, axisStyle)
	for _, b := range []int{0, nb / 2, nb} {
		ty := y + h - b*h/nb
		canvas.Text(x+colorbarW+4, ty+4, fmt.Sprintf("%.2f", levels[b]), textStyle)
	}
	canvas.TranslateRotate(x+colorbarW+52, y+h/2, 90)
	canvas.Text(0, 0, visualizer.ValueLabel, textStyle+";text-anchor:middle")
	canvas.Gend()
}

type quad struct {
	xs, ys []int
	depth  float64
	t      float64
}

func (s *SVG) surfacePanel(canvas *svg.SVG, scene *visualizer.Scene, r rect) {
	canvas.Text(r.x+r.w/2, r.y, visualizer.SurfaceTitle, titleStyle)

	lo, hi := scene.Range()
	xs, ys := scene.Axes()
	n := scene.Resolution()
	stride := max(1, (n-1)/surfaceGrid)
	cam := s.Camera
	w, h := float64(r.w), float64(r.h)

	project := func(p viz.Vec3) (int, int, float64, bool) {
		x, y, d, ok := cam.Project(p, w, h)
		return r.x + round(x), r.y + round(y), d, ok
	}
	node := func(i, j int) viz.Vec3 { return viz.World(xs[j], ys[i], scene.Field.At(i, j), lo, hi) }

	var quads []quad
	for i := 0; i < n-1; i += stride {
		i2 := min(n-1, i+stride)
		for j := 0; j < n-1; j += stride {
			j2 := min(n-1, j+stride)
			idx := [4][2]int{{i, j}, {i, j2}, {i2, j2}, {i2, j}}
			q := quad{xs: make([]int, 4), ys: make([]int, 4)}
			visible := true
			sum := 0.0
			for k, c := range idx {
				x, y, d, ok := project(node(c[0], c[1]))
				visible = visible && ok
				q.xs[k], q.ys[k] = x, y
				q.depth += d / 4
				sum += scene.Field.At(c[0], c[1])
			}
			if !visible {
				continue
			}
			q.t = (sum/4 - lo) / (hi - lo)
			quads = append(quads, q)
		}
	}
	sort.SliceStable(quads, func(a, b int) bool { return quads[a].depth < quads[b].depth })

	s.surfaceAxes(canvas, project, lo, hi)

	canvas.Gstyle(fmt.Sprintf("fill-opacity:%.2f;stroke:#333333;stroke-opacity:0.25;stroke-width:0.5", visualizer.FillAlpha))
	for _, q := range quads {
		canvas.Polygon(q.xs, q.ys, "fill:"+s.Colormap.Hex(q.t))
	}
	canvas.Gend()

	smp := scene.Samples
	for k := range smp.X {
		if x, y, _, ok := project(viz.World(smp.X[k], smp.Y[k], smp.Z[k], lo, hi)); ok {
			canvas.Circle(x, y, markerR, "stroke:#000000;stroke-width:0.8;fill:"+s.Colormap.Scale(smp.Z[k], lo, hi).Hex())
		}
	}
}

func (s *SVG) surfaceAxes(canvas *svg.SVG, project func(viz.Vec3) (int, int, float64, bool), lo, hi float64) {
	corner := func(x, y, z float64) viz.Vec3 { return viz.World(x, y, z, lo, hi) }
	edges := [][2]viz.Vec3{
		{corner(0, 0, lo), corner(1, 0, lo)},
		{corner(1, 0, lo), corner(1, 1, lo)},
		{corner(1, 1, lo), corner(0, 1, lo)},
		{corner(0, 1, lo), corner(0, 0, lo)},
		{corner(0, 0, lo), corner(0, 0, hi)},
	}
	for _, e := range edges {
		x1, y1, _, ok1 := project(e[0])
		x2, y2, _, ok2 := project(e[1])
		if ok1 && ok2 {
			canvas.Line(x1, y1, x2, y2, axisStyle)
		}
	}
	labels := []struct {
		p    viz.Vec3
		text string
	}{
		{corner(0.5, -0.12, lo), visualizer.XLabel},
		{corner(-0.12, 0.5, lo), visualizer.YLabel},
		{corner(-0.05, -0.05, hi), visualizer.ValueLabel},
	}
	for _, l := range labels {
		if x, y, _, ok := project(l.p); ok {
			canvas.Text(x, y, l.text, textStyle+";text-anchor:middle")
		}
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
