package sim

import (
	"fmt"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
)

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(f *field.Configuration, t float64)
	Value() float64
	Reset()
}

// SeriesMetric is a Metric that also keeps one sample per frame.
type SeriesMetric interface {
	Metric
	Series() []float64
}

type Observer interface {
	OnFrame(f *field.Configuration, t float64)
}

type ObserverFunc func(f *field.Configuration, t float64)

func (fn ObserverFunc) OnFrame(f *field.Configuration, t float64) { fn(f, t) }

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0,
		Duration:      400.0,
		ValidateState: true,
	}
}

type Result struct {
	Times      []float64
	Charges    [][]dynamo.Charge
	Metrics    map[string]float64
	Series     map[string][]float64
	StepsTaken int
	Errors     []error
}

// FinalCharges returns the charge set of the last frame, or nil for an
// empty run.
func (r *Result) FinalCharges() []dynamo.Charge {
	if len(r.Charges) == 0 {
		return nil
	}
	return r.Charges[len(r.Charges)-1]
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
