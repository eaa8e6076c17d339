package stencil

import (
	"github.com/san-kum/maxwell/internal/dynamo"
)

func (e *Engine) spacing(axis Axis) float64 {
	if axis == X {
		return e.geom.DeltaX()
	}
	return e.geom.DeltaY()
}

// GradientAt evaluates one finite difference at cell (i, j) with periodic wrap.
func (e *Engine) GradientAt(g *dynamo.Grid, i, j int, axis Axis, scheme Scheme) float64 {
	di, dj := 1, 0
	if axis == Y {
		di, dj = 0, 1
	}
	d := e.spacing(axis)

	switch scheme {
	case Forward:
		return (g.AtWrapped(i+di, j+dj) - g.At(i, j)) / d
	case Backward:
		return (g.At(i, j) - g.AtWrapped(i-di, j-dj)) / d
	default:
		return (g.AtWrapped(i+di, j+dj) - g.AtWrapped(i-di, j-dj)) / (2 * d)
	}
}

// Gradient returns a new grid holding the finite difference of g along axis.
func (e *Engine) Gradient(g *dynamo.Grid, axis Axis, scheme Scheme) (*dynamo.Grid, error) {
	if err := e.check("gradient", g); err != nil {
		return nil, err
	}
	out := dynamo.NewGrid(g.NX, g.NY)
	for i := 0; i < g.NX; i++ {
		for j := 0; j < g.NY; j++ {
			out.Set(i, j, e.GradientAt(g, i, j, axis, scheme))
		}
	}
	return out, nil
}

// Divergence returns d(gx)/dx + d(gy)/dy under the given scheme.
func (e *Engine) Divergence(gx, gy *dynamo.Grid, scheme Scheme) (*dynamo.Grid, error) {
	dx, err := e.Gradient(gx, X, scheme)
	if err != nil {
		return nil, err
	}
	dy, err := e.Gradient(gy, Y, scheme)
	if err != nil {
		return nil, err
	}
	for k := range dx.Data {
		dx.Data[k] += dy.Data[k]
	}
	return dx, nil
}
