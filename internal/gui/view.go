package gui

import (
	"image/color"
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
)

// view maps simulation coordinates onto the window, y pointing up.
type view struct {
	w, h       int
	xMax, yMax float64
}

func (v view) toScreen(p dynamo.Vec2) (float32, float32) {
	x := p.X / v.xMax * float64(v.w)
	y := float64(v.h) - p.Y/v.yMax*float64(v.h)
	return float32(x), float32(y)
}

func (v view) toWorld(px, py int) dynamo.Vec2 {
	return dynamo.Vec2{
		X: float64(px) / float64(v.w) * v.xMax,
		Y: float64(v.h-py) / float64(v.h) * v.yMax,
	}
}

func (v view) contains(px, py int) bool {
	return px >= 0 && px < v.w && py >= 0 && py < v.h
}

// pick returns the index of the charge nearest p within radius, or -1.
func pick(charges []dynamo.Charge, p dynamo.Vec2, radius float64) int {
	best, bestD := -1, radius*radius
	for i, q := range charges {
		if d := q.DistSq(p.X, p.Y); d <= bestD {
			best, bestD = i, d
		}
	}
	return best
}

// heatColor maps v onto blue (negative) through black to red (positive),
// saturating at |v| = clip.
func heatColor(v, clip float64) color.RGBA {
	if !(clip > 0) || math.IsNaN(v) {
		return color.RGBA{A: 255}
	}
	s := math.Min(math.Abs(v)/clip, 1)
	c := uint8(math.Round(s * 255))
	if v < 0 {
		return color.RGBA{B: c, G: c / 3, A: 255}
	}
	return color.RGBA{R: c, G: c / 3, A: 255}
}

// heatPixels renders one RGBA pixel per physical cell of kind, top row
// first, ready for WritePixels.
func heatPixels(f *field.Configuration, kind field.Kind, clip float64) (pix []byte, w, h int) {
	g := f.Geometry()
	nb := g.NBoundary
	w, h = g.NX-2*nb, g.NY-2*nb
	grid := f.Grids().Get(kind)

	pix = make([]byte, 4*w*h)
	for r := 0; r < h; r++ {
		j := nb + h - 1 - r
		for c := 0; c < w; c++ {
			col := heatColor(grid.At(nb+c, j), clip)
			k := 4 * (r*w + c)
			pix[k], pix[k+1], pix[k+2], pix[k+3] = col.R, col.G, col.B, col.A
		}
	}
	return pix, w, h
}

// autoClip picks a colour scale from the largest value in the physical
// region, never below floor.
func autoClip(f *field.Configuration, kind field.Kind, floor float64) float64 {
	g := f.Geometry()
	grid := f.Grids().Get(kind)
	m := 0.0
	for i := g.NBoundary; i < g.NX-g.NBoundary; i++ {
		for j := g.NBoundary; j < g.NY-g.NBoundary; j++ {
			m = math.Max(m, math.Abs(grid.At(i, j)))
		}
	}
	return math.Max(m, floor)
}

// quiverSegment centres v on its sample point with its length capped at
// pitch.
func quiverSegment(v field.Vector, pitch float64) (tail, tip dynamo.Vec2) {
	v = v.Clamped(pitch)
	tail = dynamo.Vec2{X: v.X - v.U/2, Y: v.Y - v.V/2}
	tip = dynamo.Vec2{X: v.X + v.U/2, Y: v.Y + v.V/2}
	return tail, tip
}
