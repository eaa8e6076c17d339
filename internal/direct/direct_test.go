package direct

import (
	"math"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
)

func TestPotential_SingleCharge(t *testing.T) {
	cs := []dynamo.Charge{{X: 0, Y: 0, Strength: 1}}

	got := Potential(cs, 0, 0)
	want := -FieldScaling / math.Sqrt(Soften)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Potential at charge = %v, want %v", got, want)
	}

	if Potential(nil, 1, 2) != 0 {
		t.Error("empty charge set should give zero potential")
	}
}

func TestField_IsGradientOfPotential(t *testing.T) {
	cs := []dynamo.Charge{
		{X: 3, Y: 5, Strength: 1},
		{X: 7, Y: 5, Strength: -1},
		{X: 5, Y: 2, Strength: 0.5},
	}
	const h = 1e-5

	points := []struct{ x, y float64 }{
		{1, 1}, {4.2, 5.1}, {6, 7}, {5, 5}, {-2, 11},
	}
	for _, p := range points {
		u, v := Field(cs, p.x, p.y)
		du := (Potential(cs, p.x+h, p.y) - Potential(cs, p.x-h, p.y)) / (2 * h)
		dv := (Potential(cs, p.x, p.y+h) - Potential(cs, p.x, p.y-h)) / (2 * h)

		scale := math.Max(1, math.Hypot(u, v))
		if math.Abs(u-du) > 1e-4*scale || math.Abs(v-dv) > 1e-4*scale {
			t.Errorf("at (%v,%v): field (%v,%v), numeric gradient (%v,%v)", p.x, p.y, u, v, du, dv)
		}
	}
}

func TestField_PointsAwayFromPositiveCharge(t *testing.T) {
	cs := []dynamo.Charge{{X: 5, Y: 5, Strength: 1}}

	for _, a := range []float64{0, 0.7, 2, 3.5, 5} {
		x, y := 5+2*math.Cos(a), 5+2*math.Sin(a)
		u, v := Field(cs, x, y)
		if u*(x-5)+v*(y-5) <= 0 {
			t.Errorf("field at angle %v is not radial outward: (%v,%v)", a, u, v)
		}
	}
}

func TestMagnetostaticField_Perpendicular(t *testing.T) {
	cs := []dynamo.Charge{{X: 0, Y: 0, Strength: 2}, {X: 1, Y: 3, Strength: -1}}

	u, v := Field(cs, 2, 1)
	bu, bv := MagnetostaticField(cs, 2, 1)
	if math.Abs(u*bu+v*bv) > 1e-9 {
		t.Errorf("magnetostatic field not perpendicular: E=(%v,%v) B=(%v,%v)", u, v, bu, bv)
	}
	if bu != v || bv != -u {
		t.Errorf("MagnetostaticField = (%v,%v), want (%v,%v)", bu, bv, v, -u)
	}
}

func TestEvaluator_CopiesCharges(t *testing.T) {
	cs := []dynamo.Charge{{X: 1, Y: 1, Strength: 1}}
	e := New(cs)
	before := e.Potential(2, 2)

	cs[0].Strength = -1
	if e.Potential(2, 2) != before {
		t.Error("evaluator should not observe later changes to the caller's slice")
	}

	u, v := e.Gradient(2, 2)
	fu, fv := e.Field(2, 2)
	if u != fu || v != fv {
		t.Error("Gradient and Field disagree")
	}
}
