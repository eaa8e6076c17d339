package viz

import (
	"math"
	"strings"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBase = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid of braille cells, each holding 2x4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = []rune(strings.Repeat(string(rune(brailleBase)), w))
	}
	return c
}

// PixelSize is the canvas size in dots.
func (c *Canvas) PixelSize() (w, h int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	return row, col, col < c.Width && row < c.Height
}

// Set lights the dot at (x, y), counted from the top-left corner.
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps the simulation rectangle [0,XMax]x[0,YMax] onto a canvas,
// with y pointing up.
type Viewport struct {
	XMax, YMax float64
	canvas     *Canvas
}

func NewViewport(c *Canvas, xMax, yMax float64) Viewport {
	return Viewport{XMax: xMax, YMax: yMax, canvas: c}
}

func (v Viewport) Project(p dynamo.Vec2) (x, y int) {
	w, h := v.canvas.PixelSize()
	x = int(math.Floor(p.X / v.XMax * float64(w)))
	y = h - 1 - int(math.Floor(p.Y/v.YMax*float64(h)))
	return x, y
}

func (v Viewport) DrawPolyline(poly dynamo.Polyline) {
	for k := 1; k < len(poly); k++ {
		x0, y0 := v.Project(poly[k-1])
		x1, y1 := v.Project(poly[k])
		v.canvas.DrawLine(x0, y0, x1, y1)
	}
}

// DrawMarker draws a small plus centred on p, arm length in dots.
func (v Viewport) DrawMarker(p dynamo.Vec2, arm int) {
	x, y := v.Project(p)
	v.canvas.DrawLine(x-arm, y, x+arm, y)
	v.canvas.DrawLine(x, y-arm, x, y+arm)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
