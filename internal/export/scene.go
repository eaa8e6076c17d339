package export

import (
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
	"github.com/san-kum/maxwell/internal/fieldline"
)

// Scene is everything drawn for one frame, in simulation coordinates.
type Scene struct {
	XMax, YMax float64
	Charges    []dynamo.Charge
	Contours   []dynamo.Polyline
	Arrows     []dynamo.Vec2
	FieldLines []fieldline.Line
	// Quiver holds field samples on a lattice of pitch QuiverStep.
	Quiver     []field.Vector
	QuiverStep float64
}

// NewScene traces the contours at levels, their arrows and, if lines is set,
// the field lines of f's current charges.
func NewScene(f *field.Configuration, levels []float64, lines bool) Scene {
	g := f.Geometry()
	s := Scene{XMax: g.XMax, YMax: g.YMax, Charges: f.Charges()}
	s.Contours, s.Arrows = f.ContoursAndArrowsAtLevels(levels)
	if lines {
		s.FieldLines = f.FieldLines()
	}
	return s
}

// AddQuiver samples the field chosen by solver every step units.
func (s *Scene) AddQuiver(f *field.Configuration, solver field.Solver, step float64) {
	s.Quiver = f.Quiver(solver, step)
	s.QuiverStep = step
}
