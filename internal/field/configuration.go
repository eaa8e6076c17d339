// Package field evolves the electromagnetic field of moving point charges on
// a padded 2-D grid.
//
// The electric field is solved from the charge density once, when the grid
// is first needed, and whenever the set of charges changes in a way that
// would break Gauss's law. After that, Tick advances E and Bz with a
// staggered leapfrog scheme driven by the currents of the moving charges,
// with a perfectly matched layer absorbing waves at the edges.
package field

import (
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/geometry"
	"github.com/san-kum/maxwell/internal/pml"
	"github.com/san-kum/maxwell/internal/stencil"
)

// chargeScale sets the deposited density per unit charge per unit area.
const chargeScale = 4000.0

type Configuration struct {
	geom          geometry.Geometry
	stencils      *stencil.Engine
	pml           *pml.Profile
	normalization float64

	charges           []dynamo.Charge
	chargesAtLastTick []dynamo.Charge

	fields  holder
	fourier fourierCache

	diag     dynamo.Diagnostics
	contours contourSettings
}

type settings struct {
	boundary int
	diag     dynamo.Diagnostics
	contours contourSettings
}

type Option func(*settings)

func WithDiagnostics(d dynamo.Diagnostics) Option {
	return func(s *settings) {
		if d != nil {
			s.diag = d
		}
	}
}

// WithBoundary overrides the absorbing layer width, which defaults to nx/8.
func WithBoundary(cells int) Option {
	return func(s *settings) { s.boundary = cells }
}

// New builds an empty configuration over [0,xMax]x[0,yMax] split into
// nx by ny cells, boundary layer included.
func New(xMax, yMax float64, nx, ny int, opts ...Option) (*Configuration, error) {
	s := settings{boundary: nx / 8, diag: dynamo.Discard, contours: defaultContourSettings()}
	for _, opt := range opts {
		opt(&s)
	}

	geom, err := geometry.New(xMax, yMax, nx, ny, s.boundary)
	if err != nil {
		return nil, err
	}
	return &Configuration{
		geom:          geom,
		stencils:      stencil.New(geom),
		pml:           pml.New(geom),
		normalization: chargeScale / geom.CellArea(),
		diag:          s.diag,
		contours:      s.contours,
	}, nil
}

func (c *Configuration) Geometry() geometry.Geometry { return c.geom }
func (c *Configuration) Stencils() *stencil.Engine   { return c.stencils }
func (c *Configuration) Diagnostics() dynamo.Diagnostics {
	return c.diag
}

// ChargeNormalization is the density deposited per unit charge.
func (c *Configuration) ChargeNormalization() float64 { return c.normalization }

func (c *Configuration) State() State { return c.fields.state }

// Charges returns a copy of the current charge set.
func (c *Configuration) Charges() []dynamo.Charge {
	return dynamo.CloneCharges(c.charges)
}

// SetCharges replaces the charge set. The grids are not touched until the
// next tick or query.
func (c *Configuration) SetCharges(charges []dynamo.Charge) {
	c.charges = dynamo.CloneCharges(charges)
}

// Reset drops all grids; the next tick or query reinitializes them.
func (c *Configuration) Reset() {
	c.fields.reset()
}

// Grids returns the live grids, initializing them first if needed. The
// returned value is owned by the configuration and changes on every tick.
func (c *Configuration) Grids() *Grids {
	if err := c.EnsureInitialized(); err != nil {
		dynamo.Recordf(c.diag, "grids: %v", err)
		if c.fields.grids == nil {
			return newGrids(c.geom.NX, c.geom.NY)
		}
	}
	return c.fields.grids
}

// ClosestCharge returns the charge nearest (x, y).
func (c *Configuration) ClosestCharge(x, y float64) (dynamo.Charge, bool) {
	best, found := dynamo.Charge{}, false
	bestSq := 0.0
	for _, q := range c.charges {
		if d := q.DistSq(x, y); !found || d < bestSq {
			best, bestSq, found = q, d, true
		}
	}
	return best, found
}
