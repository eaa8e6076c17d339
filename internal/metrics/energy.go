package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
)

// FieldEnergyOf returns (E^2 + Bz^2)/2 integrated over the physical region.
// The absorbing layer is excluded.
func FieldEnergyOf(f *field.Configuration) float64 {
	g := f.Grids()
	geom := f.Geometry()
	nb := geom.NBoundary

	sum := 0.0
	for _, grid := range []*dynamo.Grid{g.ElecX, g.ElecY, g.MagZ} {
		for i := nb; i < geom.NX-nb; i++ {
			row := grid.Data[i*grid.NY+nb : i*grid.NY+grid.NY-nb]
			sum += floats.Dot(row, row)
		}
	}
	return 0.5 * sum * geom.CellArea()
}

// FieldEnergy averages the field energy over the observed frames.
type FieldEnergy struct {
	name    string
	total   float64
	samples []float64
}

func NewFieldEnergy() *FieldEnergy {
	return &FieldEnergy{name: "field_energy"}
}

func (e *FieldEnergy) Name() string { return e.name }

func (e *FieldEnergy) Observe(f *field.Configuration, t float64) {
	u := FieldEnergyOf(f)
	e.total += u
	e.samples = append(e.samples, u)
}

func (e *FieldEnergy) Value() float64 {
	if len(e.samples) == 0 {
		return 0
	}
	return e.total / float64(len(e.samples))
}

func (e *FieldEnergy) Series() []float64 { return e.samples }

func (e *FieldEnergy) Reset() {
	e.total = 0
	e.samples = nil
}

// EnergyDrift tracks the largest relative departure of the field energy
// from its value at the first frame.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f *field.Configuration, t float64) {
	energy := FieldEnergyOf(f)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
