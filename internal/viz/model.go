package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/rbfviz/internal/analysis"
	"github.com/san-kum/rbfviz/internal/colormap"
	"github.com/san-kum/rbfviz/internal/visualizer"
)

const (
	statsWidth  = 30
	meshLines   = 24
	rotateStep  = math.Pi / 24
	minCanvasW  = 20
	minCanvasH  = 8
	defaultCols = 100
	defaultRows = 32
)

type view int

const (
	viewSplit view = iota
	viewContour
	viewSurface
	viewSection
	viewCount
)

func (v view) String() string {
	switch v {
	case viewSplit:
		return "Overview"
	case viewContour:
		return visualizer.ContourTitle
	case viewSurface:
		return visualizer.SurfaceTitle
	default:
		return "Cross Section"
	}
}

// Model is the bubbletea model of the terminal renderer.
type Model struct {
	scene    *visualizer.Scene
	cmap     *colormap.Map
	mesh     *Mesh
	cam      *Camera
	theme    int
	st       styles
	view     view
	row      int
	width    int
	height   int
	showHelp bool

	rms, maxErr float64
	spectrum    []float64
	dominant    int
}

func NewModel(scene *visualizer.Scene, theme string) Model {
	idx := themeIndex(theme)
	rms, maxErr := analysis.GridError(scene.Field, scene.Grid)
	spectrum := analysis.ResidualSpectrum(analysis.Residual(scene.Field, scene.Grid))
	return Model{
		scene:    scene,
		cmap:     colormap.Viridis,
		mesh:     SurfaceMesh(scene, meshLines),
		cam:      NewCamera(),
		theme:    idx,
		st:       newStyles(Themes[idx]),
		row:      scene.Resolution() / 2,
		width:    defaultCols,
		height:   defaultRows,
		rms:      rms,
		maxErr:   maxErr,
		spectrum: spectrum,
		dominant: analysis.DominantFrequency(spectrum),
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Theme is the name of the active theme.
func (m Model) Theme() string { return Themes[m.theme].Name }

// Row is the grid row shown by the cross-section view.
func (m Model) Row() int { return m.row }

func (m Model) Camera() *Camera { return m.cam }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.view = (m.view + 1) % viewCount
		case "1":
			m.view = viewSplit
		case "2":
			m.view = viewContour
		case "3":
			m.view = viewSurface
		case "4":
			m.view = viewSection
		case "x":
			m.cam.RotateX(rotateStep)
		case "X":
			m.cam.RotateX(-rotateStep)
		case "y", "right", "l":
			m.cam.RotateY(rotateStep)
		case "Y", "left", "h":
			m.cam.RotateY(-rotateStep)
		case "z":
			m.cam.RotateZ(rotateStep)
		case "Z":
			m.cam.RotateZ(-rotateStep)
		case "+", "=":
			m.cam.ZoomIn()
		case "-", "_":
			m.cam.ZoomOut()
		case "r":
			m.cam.Reset()
		case "k", "up":
			m.row = min(m.scene.Resolution()-1, m.row+1)
		case "j", "down":
			m.row = max(0, m.row-1)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.st = newStyles(Themes[m.theme])
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m Model) canvasSize() (int, int) {
	w := max(minCanvasW, m.width-statsWidth-6)
	h := max(minCanvasH, m.height-6)
	return w, h
}

func (m Model) View() string {
	if m.showHelp {
		return m.help()
	}
	w, h := m.canvasSize()
	theme := Themes[m.theme]

	var body string
	switch m.view {
	case viewSplit:
		body = m.split(w, h, theme)
	case viewContour:
		body = Heatmap(m.scene, w, h-2, m.cmap, string(theme.Marker)) + Colorbar(m.scene, w, m.cmap)
	case viewSurface:
		c := NewCanvas(w, h)
		RenderSurface(c, m.mesh, m.cam, m.cmap, string(theme.Marker))
		body = c.Render()
	case viewSection:
		_, ys := m.scene.Axes()
		body = analysis.CrossSectionPlot(m.scene.Field, m.row, w-8, h-3, ys[m.row])
	}

	header := m.st.header.Render(m.scene.Title + "  ·  " + m.view.String())
	content := lipgloss.JoinHorizontal(lipgloss.Top, m.st.panel.Render(body), m.stats())
	return header + "\n" + content + "\n" + m.st.hint.Render("tab:view  x/y/z:rotate  +/-:zoom  j/k:row  t:theme  ?:help  q:quit")
}

// split puts the contour heat map and the surface wireframe side by side.
func (m Model) split(w, h int, theme Theme) string {
	half := max(minCanvasW/2, (w-1)/2)
	left := m.st.value.Render(visualizer.ContourTitle) + "\n" +
		Heatmap(m.scene, half, h-3, m.cmap, string(theme.Marker)) + Colorbar(m.scene, half, m.cmap)
	c := NewCanvas(half, h-1)
	RenderSurface(c, m.mesh, m.cam, m.cmap, string(theme.Marker))
	right := m.st.value.Render(visualizer.SurfaceTitle) + "\n" + c.Render()
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m Model) stats() string {
	lo, hi := m.scene.Range()
	_, ys := m.scene.Axes()
	line := func(label, value string) string {
		return m.st.label.Render(label) + m.st.value.Render(value) + "\n"
	}

	var s strings.Builder
	s.WriteString(line("Points", fmt.Sprintf("%d", m.scene.Samples.Len())))
	s.WriteString(line("Grid", fmt.Sprintf("%d×%d", m.scene.Resolution(), m.scene.Resolution())))
	s.WriteString(line("Range", fmt.Sprintf("[%.3f, %.3f]", lo, hi)))
	s.WriteString(line("Levels", fmt.Sprintf("%d", len(m.scene.ContourLevels())-1)))
	s.WriteString(line("RMS err", fmt.Sprintf("%.2e", m.rms)))
	s.WriteString(line("Max err", fmt.Sprintf("%.2e", m.maxErr)))
	s.WriteString(line("Row", fmt.Sprintf("%d (y=%.2f)", m.row, ys[m.row])))
	s.WriteString(line("Theme", Themes[m.theme].Name))
	s.WriteString("\n" + m.st.label.Render("Residual") + "\n")
	s.WriteString(m.st.spark.Render(Sparkline(m.spectrum, statsWidth-4)) + "\n")
	s.WriteString(m.st.hint.Render(fmt.Sprintf("peak at k=%d", m.dominant)))
	return m.st.stats.Render(s.String())
}

func (m Model) help() string {
	return m.st.panel.Render(strings.Join([]string{
		"KEYBOARD SHORTCUTS",
		"",
		"Tab / 1-4     switch view",
		"x X           tilt surface",
		"y Y  ← →      turn surface",
		"z Z           roll surface",
		"+ -           zoom",
		"r             reset camera",
		"j k  ↓ ↑      cross-section row",
		"t             cycle themes",
		"?             toggle this help",
		"q             quit",
	}, "\n"))
}
