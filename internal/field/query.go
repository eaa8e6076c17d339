package field

import (
	"math"
	"slices"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/stencil"
)

// EvaluateInterpolated samples a grid at (x, y) by bilinear interpolation
// between the containing cell's centroid and its neighbours toward the
// point. Points outside the physical region give 0.
func (c *Configuration) EvaluateInterpolated(kind Kind, x, y float64) float64 {
	if !c.inBounds(x, y) {
		return 0
	}
	g := c.Grids().Get(kind)
	if g == nil {
		dynamo.Recordf(c.diag, "no grid of kind %v", kind)
		return 0
	}
	return c.interpolate(g, x, y)
}

func (c *Configuration) ElecInterpolated(x, y float64) (ex, ey float64) {
	if !c.inBounds(x, y) {
		return 0, 0
	}
	g := c.Grids()
	return c.interpolate(g.ElecX, x, y), c.interpolate(g.ElecY, x, y)
}

func (c *Configuration) MagInterpolated(x, y float64) float64 {
	return c.EvaluateInterpolated(MagZ, x, y)
}

func (c *Configuration) DensityInterpolated(x, y float64) float64 {
	return c.EvaluateInterpolated(Density, x, y)
}

func (c *Configuration) CurrentInterpolated(x, y float64) (jx, jy float64) {
	if !c.inBounds(x, y) {
		return 0, 0
	}
	g := c.Grids()
	return c.interpolate(g.CurrentX, x, y), c.interpolate(g.CurrentY, x, y)
}

func (c *Configuration) inBounds(x, y float64) bool {
	if c.geom.InPhysicalRegion(x, y) {
		return true
	}
	dynamo.Recordf(c.diag, "point out of bounds: (%g, %g)", x, y)
	return false
}

func (c *Configuration) interpolate(g *dynamo.Grid, x, y float64) float64 {
	i0, j0 := c.geom.PositionToCellUnclamped(x, y)
	x0, y0 := c.geom.CellToCentroid(i0, j0)

	i1, j1 := i0-1, j0-1
	if x > x0 {
		i1 = i0 + 1
	}
	if y > y0 {
		j1 = j0 + 1
	}

	wx1 := math.Abs(x-x0) / c.geom.DeltaX()
	wy1 := math.Abs(y-y0) / c.geom.DeltaY()
	wx0, wy0 := 1-wx1, 1-wy1

	return g.AtOrZero(i0, j0)*wx0*wy0 +
		g.AtOrZero(i1, j0)*wx1*wy0 +
		g.AtOrZero(i0, j1)*wx0*wy1 +
		g.AtOrZero(i1, j1)*wx1*wy1
}

// fourierCache holds the electrostatic field solved spectrally for one
// charge set.
type fourierCache struct {
	charges []dynamo.Charge
	ex, ey  *dynamo.Grid
}

// ElectrostaticFourier returns the electrostatic field at (x, y) solved on
// the grid: nearest-cell deposition, Fourier softening, inverse Laplacian,
// central difference. The solution is cached until the charges change.
func (c *Configuration) ElectrostaticFourier(x, y float64) (ex, ey float64) {
	if !c.inBounds(x, y) {
		return 0, 0
	}
	if c.fourier.ex == nil || !slices.Equal(c.fourier.charges, c.charges) {
		c.solveFourier()
	}
	return c.interpolate(c.fourier.ex, x, y), c.interpolate(c.fourier.ey, x, y)
}

func (c *Configuration) solveFourier() {
	rho := dynamo.NewGrid(c.geom.NX, c.geom.NY)
	for _, q := range c.charges {
		i, j, ok := c.geom.PositionToCell(q.X, q.Y)
		if !ok || !c.geom.InPhysicalRegion(q.X, q.Y) {
			dynamo.Recordf(c.diag, "charge out of bounds: %v", q)
			continue
		}
		rho.Add(i, j, q.Strength*c.normalization)
	}

	if err := c.stencils.Soften(rho); err != nil {
		dynamo.Recordf(c.diag, "fourier solve: %v", err)
	}
	if err := c.stencils.ApplyInverseLaplacian(rho); err != nil {
		dynamo.Recordf(c.diag, "fourier solve: %v", err)
	}

	ex, _ := c.stencils.Gradient(rho, stencil.X, stencil.Central)
	ey, _ := c.stencils.Gradient(rho, stencil.Y, stencil.Central)
	c.fourier = fourierCache{charges: dynamo.CloneCharges(c.charges), ex: ex, ey: ey}
}
