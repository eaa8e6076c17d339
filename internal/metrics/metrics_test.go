package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
	"github.com/san-kum/maxwell/internal/motion"
	"github.com/san-kum/maxwell/internal/sim"
)

var dipole = []dynamo.Charge{{X: 3, Y: 5, Strength: 1}, {X: 7, Y: 5, Strength: -1}}

func newField(t *testing.T, charges []dynamo.Charge) *field.Configuration {
	t.Helper()
	f, err := field.New(10, 10, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	f.SetCharges(charges)
	return f
}

func TestFieldEnergyOf(t *testing.T) {
	if u := FieldEnergyOf(newField(t, nil)); u != 0 {
		t.Errorf("empty field energy = %v, want 0", u)
	}

	single := FieldEnergyOf(newField(t, dipole[:1]))
	if !(single > 0) {
		t.Fatalf("single charge energy = %v, want positive", single)
	}

	doubled := FieldEnergyOf(newField(t, []dynamo.Charge{{X: 3, Y: 5, Strength: 2}}))
	if math.Abs(doubled/single-4) > 1e-9 {
		t.Errorf("doubling the charge scaled energy by %v, want 4", doubled/single)
	}
}

func TestGaussResidualOf_AfterInitialize(t *testing.T) {
	if r := GaussResidualOf(newField(t, dipole)); r > 1e-6 {
		t.Errorf("residual = %v, want < 1e-6", r)
	}
}

func TestMetricsOverStaticRun(t *testing.T) {
	f := newField(t, nil)
	s := sim.New(f, dipole, nil)

	energy := NewFieldEnergy()
	drift := NewEnergyDrift()
	residual := NewGaussResidual()
	probe := NewProbe(field.MagZ, 5, 5)
	s.AddMetric(energy)
	s.AddMetric(drift)
	s.AddMetric(residual)
	s.AddMetric(probe)

	result, err := s.Run(context.Background(), sim.Config{Dt: 0.05, Duration: 0.25})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Series["field_energy"]) != len(result.Times) {
		t.Errorf("energy series has %d samples, want %d", len(result.Series["field_energy"]), len(result.Times))
	}
	if result.Metrics["energy_drift"] > 0.1 {
		t.Errorf("static energy drift = %v", result.Metrics["energy_drift"])
	}
	if result.Metrics["gauss_residual"] > 1e-3 {
		t.Errorf("static residual = %v", result.Metrics["gauss_residual"])
	}
	if got := len(probe.Times()); got != 6 {
		t.Errorf("probe has %d samples, want 6", got)
	}
	if _, ok := result.Series["probe_mag_z"]; !ok {
		t.Error("probe series missing from result")
	}
}

func TestProbe_Value(t *testing.T) {
	p := NewProbe(field.ElecX, 5, 5)
	p.samples = []float64{3, -3, 3, -3}
	if p.Value() != 3 {
		t.Errorf("Value() = %v, want 3", p.Value())
	}
	p.Reset()
	if p.Value() != 0 || p.Series() != nil {
		t.Error("probe not cleared by Reset")
	}
}

func TestStability(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		want      float64
	}{
		{"generous", 1e12, 1},
		{"strict", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStability(tt.threshold)
			f := newField(t, dipole)
			s.Observe(f, 0)
			s.Observe(f, 1)
			if s.Value() != tt.want {
				t.Errorf("Value() = %v, want %v", s.Value(), tt.want)
			}
		})
	}
}

func TestChargeTravel(t *testing.T) {
	s := sim.New(newField(t, nil), dipole, []motion.Motion{motion.Orbit{CX: 5, CY: 5, Radius: 2, Omega: 1}})
	travel := NewChargeTravel()
	s.AddMetric(travel)

	if _, err := s.Run(context.Background(), sim.Config{Dt: 0.1, Duration: 1}); err != nil {
		t.Fatal(err)
	}

	want := 2 * 2 * math.Sin(0.05)
	if math.Abs(travel.Value()-want) > 1e-9 {
		t.Errorf("Value() = %v, want %v", travel.Value(), want)
	}
}
