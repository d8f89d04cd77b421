package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/rbfviz/internal/colormap"
	"github.com/san-kum/rbfviz/internal/contour"
	"github.com/san-kum/rbfviz/internal/logging"
	"github.com/san-kum/rbfviz/internal/visualizer"
	"github.com/san-kum/rbfviz/internal/viz"
)

const (
	WindowWidth  = 1400
	WindowHeight = 600

	plotX, plotY, plotSize = 70, 70, 460
	barX, barW             = plotX + plotSize + 24, 18
	surfX, surfY           = 700, 40
	surfW, surfH           = 680, 520

	meshStride = 2
	sampleR    = 0.18
)

var (
	ColBg     = rl.NewColor(255, 255, 255, 255)
	ColText   = rl.NewColor(34, 34, 34, 255)
	ColAxis   = rl.NewColor(60, 60, 60, 255)
	ColIso    = rl.NewColor(0, 0, 0, 80)
	ColMarker = rl.NewColor(0, 0, 0, 255)
)

// Window renders a scene in a raylib window and blocks until it is closed.
type Window struct {
	Title string
	log   hclog.Logger
}

func NewWindow(log hclog.Logger) *Window {
	return &Window{Title: visualizer.Title, log: logging.OrNull(log).Named("gui")}
}

func (w *Window) Render(scene *visualizer.Scene) error {
	if err := scene.Validate(); err != nil {
		return err
	}
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(WindowWidth, WindowHeight, w.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	app := newApp(scene, colormap.Viridis)
	defer app.unload()
	w.log.Debug("window open", "triangles", len(app.tris), "samples", len(app.samples))

	for !rl.WindowShouldClose() && !app.quit {
		app.update()
		app.draw()
	}
	return nil
}

type app struct {
	scene   *visualizer.Scene
	cmap    *colormap.Map
	orbit   Orbit
	tris    []Triangle
	samples []viz.Vec3
	colors  []rl.Color
	levels  []float64
	iso     [][]contour.Segment
	floor   float32
	ceiling float32
	quit    bool

	contourTex rl.Texture2D
	surfaceTex rl.RenderTexture2D
}

func newApp(scene *visualizer.Scene, cmap *colormap.Map) *app {
	a := &app{
		scene:   scene,
		cmap:    cmap,
		orbit:   NewOrbit(),
		tris:    SurfaceTriangles(scene, meshStride),
		samples: SamplePoints(scene),
		levels:  scene.ContourLevels(),
	}

	lo, hi := scene.Range()
	a.floor = float32(viz.World(0, 0, lo, lo, hi).Y * worldScale)
	a.ceiling = float32(viz.World(0, 0, hi, lo, hi).Y * worldScale)
	for _, z := range scene.Samples.Z {
		a.colors = append(a.colors, toColor(cmap, (z-lo)/(hi-lo), 1))
	}
	xs, ys := scene.Axes()
	for _, level := range a.levels[1 : len(a.levels)-1] {
		a.iso = append(a.iso, contour.IsoLines(scene.Field, xs, ys, level))
	}

	img := rl.NewImageFromImage(ContourImage(scene, plotSize, cmap))
	a.contourTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	a.surfaceTex = rl.LoadRenderTexture(surfW, surfH)
	return a
}

func (a *app) unload() {
	rl.UnloadTexture(a.contourTex)
	rl.UnloadRenderTexture(a.surfaceTex)
}

func toColor(cmap *colormap.Map, t, alpha float64) rl.Color {
	c := colormap.RGBA(cmap.At(t), alpha)
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func (a *app) update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		d := rl.GetMouseDelta()
		a.orbit.Rotate(float64(d.X)*0.01, float64(d.Y)*0.01)
	}
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		a.orbit.Rotate(-0.03, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		a.orbit.Rotate(0.03, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		a.orbit.Rotate(0, 0.02)
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		a.orbit.Rotate(0, -0.02)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.orbit.Zoom(float64(wheel) * 2)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.orbit = NewOrbit()
	}
}

func (a *app) draw() {
	a.drawSurface()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	drawCentered(a.scene.Title, WindowWidth/2, 12, 20, ColText)
	a.drawContour()
	a.drawColorbar()
	drawCentered(visualizer.SurfaceTitle, surfX+surfW/2, surfY, 18, ColText)
	rl.DrawTextureRec(a.surfaceTex.Texture, rl.NewRectangle(0, 0, surfW, -surfH), rl.NewVector2(surfX, surfY+20), rl.White)
	rl.DrawText("[DRAG/ARROWS] ORBIT  [WHEEL] ZOOM  [R] RESET  [Q/ESC] CLOSE", surfX+20, WindowHeight-24, 12, ColAxis)
	rl.EndDrawing()
}

func (a *app) drawContour() {
	drawCentered(visualizer.ContourTitle, plotX+plotSize/2, plotY-28, 18, ColText)
	rl.DrawTexture(a.contourTex, plotX, plotY, rl.White)

	for _, segs := range a.iso {
		for _, s := range segs {
			rl.DrawLineV(toPlot(s.X1, s.Y1), toPlot(s.X2, s.Y2), ColIso)
		}
	}

	smp := a.scene.Samples
	for k := range smp.X {
		p := toPlot(smp.X[k], smp.Y[k])
		rl.DrawCircleV(p, 4, a.colors[k])
		rl.DrawCircleLines(int32(p.X), int32(p.Y), 4, ColMarker)
	}

	rl.DrawRectangleLines(plotX, plotY, plotSize, plotSize, ColAxis)
	for _, tick := range []float64{0, 0.25, 0.5, 0.75, 1} {
		label := fmt.Sprintf("%.2f", tick)
		p := toPlot(tick, 0)
		drawCentered(label, int32(p.X), plotY+plotSize+6, 12, ColText)
		p = toPlot(0, tick)
		rl.DrawText(label, plotX-8-rl.MeasureText(label, 12), int32(p.Y)-6, 12, ColText)
	}
	drawCentered(visualizer.XLabel, plotX+plotSize/2, plotY+plotSize+24, 16, ColText)
	rl.DrawText(visualizer.YLabel, plotX-56, plotY+plotSize/2, 16, ColText)

	lx, ly := int32(plotX+plotSize-124), int32(plotY+8)
	rl.DrawRectangle(lx, ly, 116, 22, rl.NewColor(255, 255, 255, 220))
	rl.DrawRectangleLines(lx, ly, 116, 22, ColAxis)
	rl.DrawCircle(lx+12, ly+11, 4, toColor(a.cmap, 0.5, 1))
	rl.DrawText(visualizer.LegendLabel, lx+22, ly+5, 12, ColText)
}

func (a *app) drawColorbar() {
	nb := len(a.levels) - 1
	for b := 0; b < nb; b++ {
		y0 := plotY + plotSize - (b+1)*plotSize/nb
		y1 := plotY + plotSize - b*plotSize/nb
		rl.DrawRectangle(barX, int32(y0), barW, int32(y1-y0), toColor(a.cmap, contour.Fraction(b, nb), visualizer.FillAlpha))
	}
	rl.DrawRectangleLines(barX, plotY, barW, plotSize, ColAxis)
	for _, b := range []int{0, nb / 2, nb} {
		y := plotY + plotSize - b*plotSize/nb
		rl.DrawText(fmt.Sprintf("%.2f", a.levels[b]), barX+barW+4, int32(y)-6, 12, ColText)
	}
	rl.DrawText(visualizer.ValueLabel, barX-20, plotY+plotSize+24, 12, ColText)
}

func (a *app) drawSurface() {
	pos := a.orbit.Position()
	cam := rl.NewCamera3D(vec(pos), rl.NewVector3(0, 0, 0), rl.NewVector3(0, 1, 0), 45, rl.CameraPerspective)

	rl.BeginTextureMode(a.surfaceTex)
	rl.ClearBackground(ColBg)
	rl.BeginMode3D(cam)

	base := a.floor
	half := float32(worldScale / 2)
	corners := []rl.Vector3{
		rl.NewVector3(-half, base, -half), rl.NewVector3(half, base, -half),
		rl.NewVector3(half, base, half), rl.NewVector3(-half, base, half),
	}
	for i := range corners {
		rl.DrawLine3D(corners[i], corners[(i+1)%len(corners)], ColAxis)
	}
	rl.DrawLine3D(corners[0], rl.NewVector3(-half, a.ceiling, -half), ColAxis)

	for _, t := range a.tris {
		col := toColor(a.cmap, t.T, visualizer.FillAlpha)
		p1, p2, p3 := vec(t.A), vec(t.B), vec(t.C)
		rl.DrawTriangle3D(p1, p2, p3, col)
		rl.DrawTriangle3D(p1, p3, p2, col)
	}
	for k, p := range a.samples {
		rl.DrawSphere(vec(p), sampleR, a.colors[k])
	}

	rl.EndMode3D()
	a.drawAxisLabels(cam, half)
	rl.EndTextureMode()
}

func (a *app) drawAxisLabels(cam rl.Camera3D, half float32) {
	base := a.floor
	labels := []struct {
		at   rl.Vector3
		text string
	}{
		{rl.NewVector3(0, base, -half-1.2), visualizer.XLabel},
		{rl.NewVector3(-half-1.2, base, 0), visualizer.YLabel},
		{rl.NewVector3(-half, a.ceiling+0.8, -half), visualizer.ValueLabel},
	}
	for _, l := range labels {
		p := rl.GetWorldToScreenEx(l.at, cam, surfW, surfH)
		drawCentered(l.text, int32(p.X), int32(p.Y), 14, ColText)
	}
}

func vec(v viz.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func toPlot(x, y float64) rl.Vector2 {
	return rl.NewVector2(float32(plotX+x*plotSize), float32(plotY+(1-y)*plotSize))
}

func drawCentered(text string, cx, y, size int32, col rl.Color) {
	rl.DrawText(text, cx-rl.MeasureText(text, size)/2, y, size, col)
}

var _ visualizer.Renderer = (*Window)(nil)
