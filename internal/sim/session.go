package sim

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
	"github.com/san-kum/maxwell/internal/motion"
)

// maxFrameHint bounds the frames preallocated for a Result; longer runs
// grow by append.
const maxFrameHint = 1 << 12

// Session drives a field configuration the way an interactive host does:
// every frame it moves the charges, hands them to the configuration and
// ticks it once.
type Session struct {
	field     *field.Configuration
	base      []dynamo.Charge
	motions   []motion.Motion
	metrics   []Metric
	observers []Observer
}

// New binds base charges and their motions to f. motions may be shorter
// than base; the remaining charges stay put.
func New(f *field.Configuration, base []dynamo.Charge, motions []motion.Motion) *Session {
	return &Session{
		field:     f,
		base:      dynamo.CloneCharges(base),
		motions:   append([]motion.Motion(nil), motions...),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Session) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Session) Field() *field.Configuration { return s.field }

// ChargesAt evaluates every motion at time t.
func (s *Session) ChargesAt(t float64) []dynamo.Charge {
	return motion.Apply(t, s.base, s.motions)
}

// Base returns a copy of the resting charges.
func (s *Session) Base() []dynamo.Charge { return dynamo.CloneCharges(s.base) }

// Motions returns a copy of the per-charge motions.
func (s *Session) Motions() []motion.Motion {
	return append([]motion.Motion(nil), s.motions...)
}

// Replace swaps in a new set of resting charges and their motions.
func (s *Session) Replace(base []dynamo.Charge, motions []motion.Motion) {
	s.base = dynamo.CloneCharges(base)
	s.motions = append([]motion.Motion(nil), motions...)
}

// AddCharge appends a charge that stays put and returns its index.
func (s *Session) AddCharge(q dynamo.Charge) int {
	s.base = append(s.base, q)
	return len(s.base) - 1
}

// MoveCharge pins charge i at (x, y), dropping any motion it had.
func (s *Session) MoveCharge(i int, x, y float64) bool {
	if i < 0 || i >= len(s.base) {
		return false
	}
	s.base[i].X, s.base[i].Y = x, y
	if i < len(s.motions) {
		s.motions[i] = nil
	}
	return true
}

// RemoveCharge drops charge i and its motion.
func (s *Session) RemoveCharge(i int) bool {
	if i < 0 || i >= len(s.base) {
		return false
	}
	s.base = slices.Delete(s.base, i, i+1)
	if i < len(s.motions) {
		s.motions = slices.Delete(s.motions, i, i+1)
	}
	return true
}

// Step moves the charges to where their motions put them at time t and
// advances the field by dt.
func (s *Session) Step(t, dt float64) error {
	s.field.SetCharges(s.ChargesAt(t))
	return s.field.Tick(dt)
}

func (s *Session) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	hint := maxFrameHint
	if steps >= 0 && steps < maxFrameHint {
		hint = steps + 1
	}
	result := &Result{
		Times:   make([]float64, 0, hint),
		Charges: make([][]dynamo.Charge, 0, hint),
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	s.field.SetCharges(s.ChargesAt(t))
	if err := s.field.EnsureInitialized(); err != nil {
		return nil, err
	}
	s.record(result, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t = float64(i+1) * cfg.Dt
		if err := s.Step(t, cfg.Dt); err != nil {
			return result, fmt.Errorf("step %d: %w", i, err)
		}
		result.StepsTaken++

		if cfg.ValidateState && !finite(s.field.Grids()) {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: "non-finite field values"})
			break
		}
		s.record(result, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
		if sm, ok := m.(SeriesMetric); ok {
			result.Series[m.Name()] = sm.Series()
		}
	}

	return result, nil
}

func (s *Session) record(result *Result, t float64) {
	for _, m := range s.metrics {
		m.Observe(s.field, t)
	}
	for _, obs := range s.observers {
		obs.OnFrame(s.field, t)
	}
	result.Times = append(result.Times, t)
	result.Charges = append(result.Charges, s.field.Charges())
}

// RunWithCallback steps until the duration elapses, ctx is cancelled or
// callback returns false. No result is collected.
func (s *Session) RunWithCallback(ctx context.Context, cfg Config, callback func(f *field.Configuration, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	s.field.SetCharges(s.ChargesAt(t))
	for step := 0; t < cfg.Duration; step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s.field, t) {
			return nil
		}

		t = float64(step+1) * cfg.Dt
		if err := s.Step(t, cfg.Dt); err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}

		if cfg.ValidateState && !finite(s.field.Grids()) {
			return fmt.Errorf("non-finite field at t=%.4f", t)
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

func finite(g *field.Grids) bool {
	for _, k := range []field.Kind{field.ElecX, field.ElecY, field.MagZ} {
		for _, v := range g.Get(k).Data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
