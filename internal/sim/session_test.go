package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
	"github.com/san-kum/maxwell/internal/motion"
)

func newTestSession(t *testing.T, charges []dynamo.Charge, motions []motion.Motion) *Session {
	t.Helper()
	f, err := field.New(10, 10, 32, 32)
	if err != nil {
		t.Fatal(err)
	}
	return New(f, charges, motions)
}

var dipole = []dynamo.Charge{{X: 3, Y: 5, Strength: 1}, {X: 7, Y: 5, Strength: -1}}

type testMetric struct {
	count int
	last  float64
}

func (m *testMetric) Name() string { return "test" }
func (m *testMetric) Observe(f *field.Configuration, t float64) {
	m.count++
	m.last = t
}
func (m *testMetric) Value() float64 { return float64(m.count) }
func (m *testMetric) Reset() {
	m.count = 0
	m.last = 0
}

func TestSessionRun(t *testing.T) {
	s := newTestSession(t, dipole, nil)
	metric := &testMetric{}
	s.AddMetric(metric)

	frames := 0
	s.AddObserver(ObserverFunc(func(*field.Configuration, float64) { frames++ }))

	result, err := s.Run(context.Background(), Config{Dt: 0.05, Duration: 0.5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 ticks, got %d", result.StepsTaken)
	}
	if metric.count != 11 || frames != 11 {
		t.Errorf("metric saw %d frames, observer %d; want 11", metric.count, frames)
	}
	if result.Metrics["test"] != 11 {
		t.Errorf("result metric = %v, want 11", result.Metrics["test"])
	}
	if s.Field().State() != field.Initialized {
		t.Error("field not initialized after run")
	}
}

func TestSessionRun_InvalidConfig(t *testing.T) {
	s := newTestSession(t, dipole, nil)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSessionRun_MovesCharges(t *testing.T) {
	orbit := motion.Orbit{CX: 5, CY: 5, Radius: 2, Omega: 1}
	s := newTestSession(t, dipole, []motion.Motion{orbit})

	result, err := s.Run(context.Background(), Config{Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatal(err)
	}

	last := result.FinalCharges()
	want := s.ChargesAt(result.Times[len(result.Times)-1])
	if len(last) != 2 || last[0] != want[0] || last[1] != dipole[1] {
		t.Errorf("final charges = %v, want %v", last, want)
	}
	if result.Charges[0][0].X != 7 || result.Charges[0][0].Y != 5 {
		t.Errorf("first frame charge = %v, want orbit start (7, 5)", result.Charges[0][0])
	}
	if s.Field().Grids().MagZ.MaxAbs() == 0 {
		t.Error("moving charge produced no magnetic field")
	}
}

func TestSessionRun_Cancelled(t *testing.T) {
	s := newTestSession(t, dipole, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, Config{Dt: 0.05, Duration: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if result == nil || len(result.Times) != 1 {
		t.Error("expected the initial frame in the partial result")
	}
}

func TestSessionRun_BoundedPreallocation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"short run", Config{Dt: 0.5, Duration: 2}, 5},
		{"tiny dt", Config{Dt: 1e-12, Duration: 1}, maxFrameHint},
		{"step count overflows int", Config{Dt: 1e-300, Duration: 1e300}, maxFrameHint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, dipole, nil)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := s.Run(ctx, tt.cfg)
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("err = %v, want context.Canceled", err)
			}
			if cap(result.Times) != tt.want || cap(result.Charges) != tt.want {
				t.Errorf("capacity = %d/%d, want %d", cap(result.Times), cap(result.Charges), tt.want)
			}
		})
	}
}

func TestRunWithCallback_Stops(t *testing.T) {
	s := newTestSession(t, dipole, nil)

	calls := 0
	err := s.RunWithCallback(context.Background(), Config{Dt: 0.05, Duration: 10}, func(*field.Configuration, float64) bool {
		calls++
		return calls < 3
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Errorf("callback ran %d times, want 3", calls)
	}
}

func TestEnsemble(t *testing.T) {
	a := newTestSession(t, dipole, nil)
	b := newTestSession(t, dipole[:1], []motion.Motion{motion.Oscillate{AX: 1, Omega: 2}})

	results, err := NewEnsemble(a, b).Run(context.Background(), Config{Dt: 0.05, Duration: 0.25})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for i, r := range results {
		if len(r.Times) != 6 {
			t.Errorf("result %d has %d frames, want 6", i, len(r.Times))
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Dt <= 0 || cfg.Duration <= 0 {
		t.Errorf("DefaultConfig() = %+v, want positive dt and duration", cfg)
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "test error"}
	expected := "step 150 (t=1.5000): test error"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
}

func TestSessionEditCharges(t *testing.T) {
	orbit := motion.Orbit{CX: 5, CY: 5, Radius: 2, Omega: 0.1}
	s := newTestSession(t, dipole, []motion.Motion{orbit})

	if idx := s.AddCharge(dynamo.Charge{X: 5, Y: 8, Strength: 2}); idx != 2 {
		t.Fatalf("AddCharge() = %d, want 2", idx)
	}
	if got := s.ChargesAt(3)[2]; got.X != 5 || got.Y != 8 {
		t.Errorf("added charge moved to %v", got)
	}

	if !s.MoveCharge(0, 1, 1) {
		t.Fatal("MoveCharge(0) failed")
	}
	if got := s.ChargesAt(3)[0]; got.X != 1 || got.Y != 1 {
		t.Errorf("moved charge should be pinned, got %v", got)
	}

	if !s.RemoveCharge(1) {
		t.Fatal("RemoveCharge(1) failed")
	}
	base := s.Base()
	if len(base) != 2 || base[1].Strength != 2 {
		t.Errorf("unexpected charges after removal: %v", base)
	}

	if s.MoveCharge(5, 0, 0) || s.RemoveCharge(-1) {
		t.Error("out of range edits should fail")
	}

	base[0].X = 99
	if s.Base()[0].X == 99 {
		t.Error("Base() must return a copy")
	}
}

func TestSessionReplace(t *testing.T) {
	orbit := motion.Orbit{CX: 5, CY: 5, Radius: 2, Omega: 0.1}
	s := newTestSession(t, dipole, []motion.Motion{orbit})
	base, motions := s.Base(), s.Motions()

	s.RemoveCharge(0)
	s.Replace(base, motions)

	if len(s.Base()) != 2 {
		t.Fatalf("expected 2 charges after Replace, got %d", len(s.Base()))
	}
	if got := s.ChargesAt(0)[0]; got.X != 7 || got.Y != 5 {
		t.Errorf("orbit not restored, charge 0 at %v", got)
	}
}
