package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
)

func testGeometry(t *testing.T) Geometry {
	t.Helper()
	g, err := New(10, 10, 64, 64, 8)
	if err != nil {
		t.Fatalf("new geometry: %v", err)
	}
	return g
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name           string
		xMax, yMax     float64
		nx, ny, nbound int
	}{
		{"zero extent", 0, 10, 64, 64, 8},
		{"negative extent", 10, -1, 64, 64, 8},
		{"boundary fills grid", 10, 10, 16, 64, 8},
		{"negative boundary", 10, 10, 16, 16, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.xMax, tt.yMax, tt.nx, tt.ny, tt.nbound)
			if !errors.Is(err, dynamo.ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestCellSize(t *testing.T) {
	g := testGeometry(t)
	if got, want := g.DeltaX(), 10.0/48; math.Abs(got-want) > 1e-12 {
		t.Errorf("DeltaX = %v, want %v", got, want)
	}
	if got, want := g.CellArea(), (10.0/48)*(10.0/48); math.Abs(got-want) > 1e-12 {
		t.Errorf("CellArea = %v, want %v", got, want)
	}
}

func TestPositionToCell(t *testing.T) {
	g := testGeometry(t)

	tests := []struct {
		name   string
		x, y   float64
		i, j   int
		wantOK bool
	}{
		{"origin", 0, 0, 8, 8, true},
		{"centre", 5, 5, 32, 32, true},
		{"far edge", 9.99, 9.99, 55, 55, true},
		{"inside padding", 11, 1, 60, 12, true},
		{"beyond padding", 20, 5, 0, 0, false},
		{"negative beyond padding", -5, 5, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, j, ok := g.PositionToCell(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (i != tt.i || j != tt.j) {
				t.Errorf("cell = (%d,%d), want (%d,%d)", i, j, tt.i, tt.j)
			}
		})
	}
}

func TestCentroidRoundTrip(t *testing.T) {
	g := testGeometry(t)
	for i := 0; i < g.NX; i += 7 {
		for j := 0; j < g.NY; j += 5 {
			x, y := g.CellToCentroid(i, j)
			if !g.InPaddingRegion(x, y) {
				t.Fatalf("centroid of (%d,%d) outside padded region", i, j)
			}
			if i < g.NBoundary || j < g.NBoundary {
				continue // truncation toward zero merges the first negative cell
			}
			gi, gj, ok := g.PositionToCell(x, y)
			if !ok || gi != i || gj != j {
				t.Errorf("centroid of (%d,%d) maps to (%d,%d,%v)", i, j, gi, gj, ok)
			}
		}
	}
}

func TestCellToCorners(t *testing.T) {
	g := testGeometry(t)
	c := g.CellToCorners(8, 8)
	d := g.DeltaX()
	want := [4]dynamo.Vec2{{X: 0, Y: 0}, {X: d, Y: 0}, {X: 0, Y: d}, {X: d, Y: d}}
	for k := range c {
		if math.Abs(c[k].X-want[k].X) > 1e-12 || math.Abs(c[k].Y-want[k].Y) > 1e-12 {
			t.Errorf("corner %d = %v, want %v", k, c[k], want[k])
		}
	}
}

func TestSurroundingCells(t *testing.T) {
	g := testGeometry(t)

	if got := len(g.PositionToSurroundingCells(5, 5)); got != 9 {
		t.Errorf("interior neighbourhood has %d cells, want 9", got)
	}

	// cell (0,0) sits at the corner of the padded grid
	x, y := g.CellToCentroid(0, 0)
	if got := len(g.PositionToSurroundingCells(x+1e-9, y+1e-9)); got > 9 {
		t.Errorf("corner neighbourhood has %d cells", got)
	}
}

func TestInPaddingRegion(t *testing.T) {
	g := testGeometry(t)
	pad := 8 * g.DeltaX()

	tests := []struct {
		x, y float64
		want bool
	}{
		{5, 5, true},
		{-pad, 5, true},
		{-pad - 1e-6, 5, false},
		{10 + pad - 1e-9, 10 + pad - 1e-9, true},
		{10 + pad + 1e-6, 5, false},
	}
	for _, tt := range tests {
		if got := g.InPaddingRegion(tt.x, tt.y); got != tt.want {
			t.Errorf("InPaddingRegion(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if g.InPhysicalRegion(-0.1, 5) || !g.InPhysicalRegion(10, 10) {
		t.Error("InPhysicalRegion bounds wrong")
	}
}
