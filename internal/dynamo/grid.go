package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is a dense NX x NY array of reals indexed [i][j], i along x.
type Grid struct {
	NX, NY int
	Data   []float64
}

func NewGrid(nx, ny int) *Grid {
	return &Grid{NX: nx, NY: ny, Data: make([]float64, nx*ny)}
}

func (g *Grid) At(i, j int) float64     { return g.Data[i*g.NY+j] }
func (g *Grid) Set(i, j int, v float64) { g.Data[i*g.NY+j] = v }
func (g *Grid) Add(i, j int, v float64) { g.Data[i*g.NY+j] += v }

// AtWrapped reads with periodic wrap on both axes.
func (g *Grid) AtWrapped(i, j int) float64 {
	return g.Data[wrap(i, g.NX)*g.NY+wrap(j, g.NY)]
}

// AtOrZero returns 0 for indices outside the grid.
func (g *Grid) AtOrZero(i, j int) float64 {
	if i < 0 || i >= g.NX || j < 0 || j >= g.NY {
		return 0
	}
	return g.At(i, j)
}

func (g *Grid) Fill(v float64) {
	for k := range g.Data {
		g.Data[k] = v
	}
}

func (g *Grid) Clone() *Grid {
	c := NewGrid(g.NX, g.NY)
	copy(c.Data, g.Data)
	return c
}

func (g *Grid) SameShape(o *Grid) bool {
	return o != nil && g.NX == o.NX && g.NY == o.NY
}

// Equal reports bit-identical contents.
func (g *Grid) Equal(o *Grid) bool {
	if !g.SameShape(o) {
		return false
	}
	for k, v := range g.Data {
		if math.Float64bits(v) != math.Float64bits(o.Data[k]) {
			return false
		}
	}
	return true
}

func (g *Grid) Sum() float64    { return floats.Sum(g.Data) }
func (g *Grid) MaxAbs() float64 { return floats.Norm(g.Data, math.Inf(1)) }

// Rows copies the grid into a slice of x-rows.
func (g *Grid) Rows() [][]float64 {
	rows := make([][]float64, g.NX)
	for i := range rows {
		rows[i] = make([]float64, g.NY)
		copy(rows[i], g.Data[i*g.NY:(i+1)*g.NY])
	}
	return rows
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
