// Package direct evaluates the closed-form electrostatic potential and field
// of a set of softened point charges. It is independent of the grid and is
// smooth everywhere, which makes it the scalar field of choice for contour
// and field-line tracing.
package direct

import (
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
)

const (
	// FieldScaling converts unit charge into display potential units.
	FieldScaling = 20000.0
	// Soften is added to r^2 so the field stays finite at a charge.
	Soften = 5.0
)

// Potential returns -K * sum q / sqrt(r^2 + S).
func Potential(charges []dynamo.Charge, x, y float64) float64 {
	var phi float64
	for _, c := range charges {
		dx, dy := x-c.X, y-c.Y
		phi -= FieldScaling * c.Strength / math.Sqrt(dx*dx+dy*dy+Soften)
	}
	return phi
}

// Field returns K * sum q (dx, dy) / (r^2 + S)^1.5, which is the gradient of
// Potential.
func Field(charges []dynamo.Charge, x, y float64) (u, v float64) {
	for _, c := range charges {
		dx, dy := x-c.X, y-c.Y
		r := math.Sqrt(dx*dx + dy*dy + Soften)
		k := FieldScaling * c.Strength / (r * r * r)
		u += k * dx
		v += k * dy
	}
	return u, v
}

// MagnetostaticField treats each charge as a line current along z. In the
// plane Biot-Savart reduces to z x grad(phi), a quarter turn of Field.
func MagnetostaticField(charges []dynamo.Charge, x, y float64) (u, v float64) {
	u, v = Field(charges, x, y)
	return v, -u
}

// Evaluator binds a charge set so it can be handed to the tracers.
type Evaluator struct {
	Charges []dynamo.Charge
}

func New(charges []dynamo.Charge) Evaluator {
	return Evaluator{Charges: dynamo.CloneCharges(charges)}
}

func (e Evaluator) Potential(x, y float64) float64 { return Potential(e.Charges, x, y) }

func (e Evaluator) Gradient(x, y float64) (u, v float64) { return Field(e.Charges, x, y) }

func (e Evaluator) Field(x, y float64) (u, v float64) { return Field(e.Charges, x, y) }

// Magnetostatic is the vector field of MagnetostaticField over a charge set.
type Magnetostatic struct {
	Charges []dynamo.Charge
}

func (m Magnetostatic) Field(x, y float64) (u, v float64) {
	return MagnetostaticField(m.Charges, x, y)
}
