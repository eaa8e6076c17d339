package metrics

import (
	"math"

	"github.com/san-kum/maxwell/internal/field"
	"github.com/san-kum/maxwell/internal/stencil"
)

// GaussResidualOf compares the backward divergence of E with the
// mean-free density and returns the largest mismatch relative to the peak
// density. Cells whose stencil reaches into the absorbing layer are skipped.
func GaussResidualOf(f *field.Configuration) float64 {
	g := f.Grids()
	geom := f.Geometry()
	nb := geom.NBoundary

	div, err := f.Stencils().Divergence(g.ElecX, g.ElecY, stencil.Backward)
	if err != nil {
		return math.NaN()
	}
	mean := g.Density.Sum() / float64(len(g.Density.Data))

	worst := 0.0
	for i := nb + 1; i < geom.NX-nb-1; i++ {
		for j := nb + 1; j < geom.NY-nb-1; j++ {
			worst = math.Max(worst, math.Abs(div.At(i, j)-(g.Density.At(i, j)-mean)))
		}
	}
	if scale := g.Density.MaxAbs(); scale > 0 {
		return worst / scale
	}
	return worst
}

// GaussResidual keeps the worst Gauss-law residual seen over a run.
type GaussResidual struct {
	name  string
	worst float64
}

func NewGaussResidual() *GaussResidual {
	return &GaussResidual{name: "gauss_residual"}
}

func (r *GaussResidual) Name() string { return r.name }

func (r *GaussResidual) Observe(f *field.Configuration, t float64) {
	r.worst = math.Max(r.worst, GaussResidualOf(f))
}

func (r *GaussResidual) Value() float64 { return r.worst }
func (r *GaussResidual) Reset()         { r.worst = 0 }
