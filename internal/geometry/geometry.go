// Package geometry maps physical coordinates onto the padded simulation grid.
//
// The physical region runs from 0 to XMax (and 0 to YMax). NBoundary extra
// cells on every side hold the absorbing layer, so cell i covers
// [(i-NBoundary)*DeltaX, (i-NBoundary+1)*DeltaX).
package geometry

import (
	"fmt"

	"github.com/san-kum/maxwell/internal/dynamo"
)

type Geometry struct {
	XMax      float64
	YMax      float64
	NX        int
	NY        int
	NBoundary int
}

// Cell is a grid index pair.
type Cell struct {
	I, J int
}

func New(xMax, yMax float64, nx, ny, nboundary int) (Geometry, error) {
	g := Geometry{XMax: xMax, YMax: yMax, NX: nx, NY: ny, NBoundary: nboundary}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

func (g Geometry) Validate() error {
	if g.XMax <= 0 || g.YMax <= 0 {
		return fmt.Errorf("%w: extent %gx%g must be positive", dynamo.ErrInvalidGeometry, g.XMax, g.YMax)
	}
	if g.NBoundary < 0 {
		return fmt.Errorf("%w: negative boundary width %d", dynamo.ErrInvalidGeometry, g.NBoundary)
	}
	if g.NX <= 2*g.NBoundary || g.NY <= 2*g.NBoundary {
		return fmt.Errorf("%w: %dx%d cells cannot hold a boundary of %d", dynamo.ErrInvalidGeometry, g.NX, g.NY, g.NBoundary)
	}
	return nil
}

func (g Geometry) DeltaX() float64   { return g.XMax / float64(g.NX-2*g.NBoundary) }
func (g Geometry) DeltaY() float64   { return g.YMax / float64(g.NY-2*g.NBoundary) }
func (g Geometry) CellArea() float64 { return g.DeltaX() * g.DeltaY() }

// PositionToCell returns the cell containing (x, y), or ok=false when the
// point lies outside the padded grid.
func (g Geometry) PositionToCell(x, y float64) (i, j int, ok bool) {
	i, j = g.PositionToCellUnclamped(x, y)
	if i < 0 || i >= g.NX || j < 0 || j >= g.NY {
		return 0, 0, false
	}
	return i, j, true
}

// PositionToCellUnclamped truncates toward zero, matching the host's integer
// conversion, so points just left of the padded region still map to the
// first boundary cell.
func (g Geometry) PositionToCellUnclamped(x, y float64) (i, j int) {
	i = int(x/g.XMax*float64(g.NX-2*g.NBoundary)) + g.NBoundary
	j = int(y/g.YMax*float64(g.NY-2*g.NBoundary)) + g.NBoundary
	return i, j
}

// PositionToSurroundingCells returns the 3x3 neighbourhood of the cell
// containing (x, y), dropping cells that fall outside the grid.
func (g Geometry) PositionToSurroundingCells(x, y float64) []Cell {
	ci, cj := g.PositionToCellUnclamped(x, y)
	cells := make([]Cell, 0, 9)
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			i, j := ci+di, cj+dj
			if i >= 0 && i < g.NX && j >= 0 && j < g.NY {
				cells = append(cells, Cell{i, j})
			}
		}
	}
	return cells
}

func (g Geometry) CellToCentroid(i, j int) (x, y float64) {
	x = (float64(i-g.NBoundary) + 0.5) * g.DeltaX()
	y = (float64(j-g.NBoundary) + 0.5) * g.DeltaY()
	return x, y
}

// CellToCorners returns (x0,y0), (x1,y0), (x0,y1), (x1,y1).
func (g Geometry) CellToCorners(i, j int) [4]dynamo.Vec2 {
	x0 := float64(i-g.NBoundary) * g.DeltaX()
	x1 := x0 + g.DeltaX()
	y0 := float64(j-g.NBoundary) * g.DeltaY()
	y1 := y0 + g.DeltaY()
	return [4]dynamo.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}}
}

func (g Geometry) ExtentIncludingBoundary() (w, h float64) {
	return g.DeltaX() * float64(g.NX), g.DeltaY() * float64(g.NY)
}

// InPaddingRegion reports whether (x, y) lies anywhere on the padded grid,
// boundary layer included.
func (g Geometry) InPaddingRegion(x, y float64) bool {
	minX := -float64(g.NBoundary) * g.DeltaX()
	maxX := float64(g.NX-g.NBoundary) * g.DeltaX()
	minY := -float64(g.NBoundary) * g.DeltaY()
	maxY := float64(g.NY-g.NBoundary) * g.DeltaY()
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}

// InPhysicalRegion reports whether (x, y) lies inside [0,XMax]x[0,YMax].
func (g Geometry) InPhysicalRegion(x, y float64) bool {
	return x >= 0 && x <= g.XMax && y >= 0 && y <= g.YMax
}
