package field

import (
	"github.com/san-kum/maxwell/internal/direct"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/gauss"
)

// Flux is the field-line count through a closed surface.
type Flux struct {
	Surface   dynamo.Polyline
	Enclosed  float64
	Crossings []gauss.Crossing
	// Net is outward minus inward crossings.
	Net int
	// Expected is the net count Gauss's law predicts from the lines per
	// unit charge.
	Expected float64
}

// Flux traces the field lines of the current charges and counts how they
// cut surface. The sampling offset that classifies a crossing is a fifth of a
// field line step.
func (c *Configuration) Flux(surface dynamo.Polyline) Flux {
	lines := c.FieldLines()
	polys := make([]dynamo.Polyline, len(lines))
	for k, l := range lines {
		polys[k] = l.Points
	}
	offset := c.contours.fieldline.StepSize / 5
	cs := gauss.Crossings(polys, surface, direct.New(c.charges), offset)

	enclosed := gauss.EnclosedCharge(surface, c.charges)
	return Flux{
		Surface:   surface,
		Enclosed:  enclosed,
		Crossings: cs,
		Net:       gauss.NetFlux(cs),
		Expected:  enclosed * c.contours.fieldline.LinesPerUnit,
	}
}
