// Package pml computes the damping profile of the perfectly matched layer
// that absorbs outgoing waves at the edge of the grid.
package pml

import "github.com/san-kum/maxwell/internal/geometry"

// Profile holds per-axis damping coefficients. Sigma ramps linearly from 0
// at the inner edge of the boundary layer to 1 at the outermost cell.
type Profile struct {
	nx, ny int
	sigmaX []float64
	sigmaY []float64
}

func New(g geometry.Geometry) *Profile {
	return &Profile{
		nx:     g.NX,
		ny:     g.NY,
		sigmaX: ramp(g.NX, g.NBoundary),
		sigmaY: ramp(g.NY, g.NBoundary),
	}
}

func ramp(n, width int) []float64 {
	s := make([]float64, n)
	if width <= 0 {
		return s
	}
	for i := range s {
		if i < width || i >= n-width {
			d := min(i, n-i-1)
			s[i] = 1 - float64(d)/float64(width)
		}
	}
	return s
}

func (p *Profile) Sigma(i, j int) (sigmaX, sigmaY float64) {
	return p.sigmaX[i], p.sigmaY[j]
}

func (p *Profile) SigmaX(i int) float64 { return p.sigmaX[i] }
func (p *Profile) SigmaY(j int) float64 { return p.sigmaY[j] }

// Each visits every cell in row-major order, i varying fastest.
func (p *Profile) Each(fn func(i, j int, sigmaX, sigmaY float64)) {
	for j := 0; j < p.ny; j++ {
		sy := p.sigmaY[j]
		for i := 0; i < p.nx; i++ {
			fn(i, j, p.sigmaX[i], sy)
		}
	}
}
