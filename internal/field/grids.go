package field

import (
	"github.com/san-kum/maxwell/internal/dynamo"
)

// Kind selects one of the evolved grids.
type Kind int

const (
	Density Kind = iota
	ElecX
	ElecY
	CurrentX
	CurrentY
	MagZ
	MagZIntegral
)

var kindNames = [...]string{"density", "elec_x", "elec_y", "current_x", "current_y", "mag_z", "mag_z_integral"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Grids holds every field on the staggered mesh. MagZ and MagZIntegral lag
// the electric field by half a step and half a cell.
type Grids struct {
	Density      *dynamo.Grid
	ElecX        *dynamo.Grid
	ElecY        *dynamo.Grid
	CurrentX     *dynamo.Grid
	CurrentY     *dynamo.Grid
	MagZ         *dynamo.Grid
	MagZIntegral *dynamo.Grid
}

func newGrids(nx, ny int) *Grids {
	return &Grids{
		Density:      dynamo.NewGrid(nx, ny),
		ElecX:        dynamo.NewGrid(nx, ny),
		ElecY:        dynamo.NewGrid(nx, ny),
		CurrentX:     dynamo.NewGrid(nx, ny),
		CurrentY:     dynamo.NewGrid(nx, ny),
		MagZ:         dynamo.NewGrid(nx, ny),
		MagZIntegral: dynamo.NewGrid(nx, ny),
	}
}

func (g *Grids) Get(k Kind) *dynamo.Grid {
	switch k {
	case Density:
		return g.Density
	case ElecX:
		return g.ElecX
	case ElecY:
		return g.ElecY
	case CurrentX:
		return g.CurrentX
	case CurrentY:
		return g.CurrentY
	case MagZ:
		return g.MagZ
	case MagZIntegral:
		return g.MagZIntegral
	}
	return nil
}

// Clone deep-copies every grid.
func (g *Grids) Clone() *Grids {
	return &Grids{
		Density:      g.Density.Clone(),
		ElecX:        g.ElecX.Clone(),
		ElecY:        g.ElecY.Clone(),
		CurrentX:     g.CurrentX.Clone(),
		CurrentY:     g.CurrentY.Clone(),
		MagZ:         g.MagZ.Clone(),
		MagZIntegral: g.MagZIntegral.Clone(),
	}
}

// Equal reports whether every grid is bit-identical.
func (g *Grids) Equal(o *Grids) bool {
	for k := Density; k <= MagZIntegral; k++ {
		if !g.Get(k).Equal(o.Get(k)) {
			return false
		}
	}
	return true
}

// State is the lifecycle of the grids owned by a Configuration.
type State int

const (
	Uninitialized State = iota
	Initialized
)

func (s State) String() string {
	if s == Initialized {
		return "initialized"
	}
	return "uninitialized"
}

// holder owns the grids in exactly one of two states. grids is nil while
// Uninitialized.
type holder struct {
	state State
	grids *Grids
}

func (h *holder) reset() {
	h.state = Uninitialized
	h.grids = nil
}

func (h *holder) set(g *Grids) {
	h.state = Initialized
	h.grids = g
}
