package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBase = 0x2800

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille dot canvas. Its dot resolution is (Width*2)x(Height*4)
// and each cell carries the colour of the last dot drawn into it.
type Canvas struct {
	Width, Height int
	cells         [][]rune
	colors        [][]string
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([][]rune, h), colors: make([][]string, h)}
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
		c.colors[i] = make([]string, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) locate(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, dotBits[y%4][x%2], true
}

// Set lights the dot at (x, y) with the given hex colour ("" keeps the
// cell's colour).
func (c *Canvas) Set(x, y int, color string) {
	row, col, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.cells[row][col] |= bit
	if color != "" {
		c.colors[row][col] = color
	}
}

func (c *Canvas) Unset(x, y int) {
	row, col, bit, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.cells[row][col] &^= bit
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.locate(x, y)
	return ok && c.cells[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBase
			c.colors[i][j] = ""
		}
	}
}

// DrawLine draws a Bresenham line between two dots.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, color string) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render renders the canvas with per-cell foreground colours.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.cells {
		for j, r := range row {
			if r == brailleBase || c.colors[i][j] == "" {
				b.WriteRune(r)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.colors[i][j])).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
