package field

import (
	"cmp"
	"fmt"
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/stencil"
)

// Initialize deposits the charges and solves E = grad(lap^-1 rho) from
// scratch, zeroing B and the currents. On error the grids are left
// uninitialized.
func (c *Configuration) Initialize() error {
	g := c.fields.grids
	if g == nil {
		g = newGrids(c.geom.NX, c.geom.NY)
	}
	if err := c.depositDensity(g.Density); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	phi := g.Density.Clone()
	if err := c.stencils.ApplyInverseLaplacian(phi); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	for i := 0; i < phi.NX; i++ {
		for j := 0; j < phi.NY; j++ {
			g.ElecX.Set(i, j, c.stencils.GradientAt(phi, i, j, stencil.X, stencil.Forward))
			g.ElecY.Set(i, j, c.stencils.GradientAt(phi, i, j, stencil.Y, stencil.Forward))
		}
	}

	g.MagZ.Fill(0)
	g.MagZIntegral.Fill(0)
	g.CurrentX.Fill(0)
	g.CurrentY.Fill(0)

	c.fields.set(g)
	c.chargesAtLastTick = dynamo.CloneCharges(c.charges)
	return nil
}

func (c *Configuration) depositDensity(rho *dynamo.Grid) error {
	rho.Fill(0)
	for _, q := range c.charges {
		if !c.geom.InPhysicalRegion(q.X, q.Y) {
			dynamo.Recordf(c.diag, "charge out of bounds: %v", q)
			continue
		}
		i, j, ok := c.geom.PositionToCell(q.X, q.Y)
		if !ok {
			dynamo.Recordf(c.diag, "charge has no cell: %v", q)
			continue
		}
		if err := c.stencils.AddSoftenedPoint(rho, i, j, q.Strength*c.normalization); err != nil {
			return err
		}
	}
	return nil
}

// EnsureInitialized initializes the grids on first use and again whenever
// the number of charges or the strength of any charge has changed since the
// last tick. Either change invalidates the constraint E was solved under.
func (c *Configuration) EnsureInitialized() error {
	if c.fields.state == Uninitialized || c.constraintViolated() {
		return c.Initialize()
	}
	return nil
}

func (c *Configuration) constraintViolated() bool {
	if len(c.charges) != len(c.chargesAtLastTick) {
		return true
	}
	for k, q := range c.charges {
		if q.Strength != c.chargesAtLastTick[k].Strength {
			return true
		}
	}
	return false
}

// MakeCurrents rebuilds the current density from the motion of each charge
// since the last tick. A charge that changed cell is modelled as moving
// along x at its old row, then along y at its new column.
func (c *Configuration) MakeCurrents(dt float64) error {
	if err := c.EnsureInitialized(); err != nil {
		return err
	}
	jx, jy := c.fields.grids.CurrentX, c.fields.grids.CurrentY
	jx.Fill(0)
	jy.Fill(0)

	n := min(len(c.charges), len(c.chargesAtLastTick))
	for k := 0; k < n; k++ {
		before, now := c.chargesAtLastTick[k], c.charges[k]
		if before.Strength != now.Strength {
			dynamo.Recordf(c.diag, "charge %d changed strength since last tick: %v -> %v", k, before, now)
			continue
		}
		i0, j0, ok0 := c.geom.PositionToCell(before.X, before.Y)
		i1, j1, ok1 := c.geom.PositionToCell(now.X, now.Y)
		if !ok0 || !ok1 {
			dynamo.Recordf(c.diag, "charge %d moved outside the grid: %v -> %v", k, before, now)
			continue
		}
		if i0 == i1 && j0 == j1 {
			continue
		}

		density := now.Strength * c.normalization
		xCurrent := float64(cmp.Compare(i1, i0)) * density * c.geom.DeltaX() / dt
		yCurrent := float64(cmp.Compare(j1, j0)) * density * c.geom.DeltaY() / dt

		for i := min(i0, i1); i < max(i0, i1); i++ {
			if err := c.stencils.AddSoftenedPoint(jx, i, j0, xCurrent); err != nil {
				return fmt.Errorf("currents: %w", err)
			}
		}
		for j := min(j0, j1); j < max(j0, j1); j++ {
			if err := c.stencils.AddSoftenedPoint(jy, i1, j, yCurrent); err != nil {
				return fmt.Errorf("currents: %w", err)
			}
		}
	}
	return nil
}

// Tick advances the fields by dt. Bz is stepped first, from half a step
// behind E to half a step ahead, then E catches up. An invalid dt is
// recorded and ignored.
func (c *Configuration) Tick(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dynamo.Recordf(c.diag, "tick ignored: invalid timestep %g", dt)
		return nil
	}
	if err := c.MakeCurrents(dt); err != nil {
		return err
	}
	c.chargesAtLastTick = dynamo.CloneCharges(c.charges)

	g := c.fields.grids
	ex, ey := g.ElecX, g.ElecY
	bz, bzInt := g.MagZ, g.MagZIntegral
	jx, jy := g.CurrentX, g.CurrentY
	st := c.stencils

	c.pml.Each(func(i, j int, sx, sy float64) {
		dExDy := st.GradientAt(ex, i, j, stencil.Y, stencil.Forward)
		dEyDx := st.GradientAt(ey, i, j, stencil.X, stencil.Forward)
		bz.Add(i, j, (dExDy-dEyDx)*dt)

		b := bz.At(i, j)
		bz.Add(i, j, (-(sx+sy)*b-sx*sy*bzInt.At(i, j))*dt)
		bzInt.Add(i, j, bz.At(i, j)*dt)
	})

	c.pml.Each(func(i, j int, sx, sy float64) {
		dBDy := st.GradientAt(bz, i, j, stencil.Y, stencil.Backward)
		dBDx := st.GradientAt(bz, i, j, stencil.X, stencil.Backward)
		ex.Add(i, j, (dBDy-jx.At(i, j))*dt)
		ey.Add(i, j, (-dBDx-jy.At(i, j))*dt)

		pmlX := -sy*ex.At(i, j) + sx*st.GradientAt(bzInt, i, j, stencil.Y, stencil.Backward)
		pmlY := -sx*ey.At(i, j) - sy*st.GradientAt(bzInt, i, j, stencil.X, stencil.Backward)
		ex.Add(i, j, pmlX*dt)
		ey.Add(i, j, pmlY*dt)
	})
	return nil
}
