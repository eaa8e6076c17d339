package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/maxwell/internal/field"
)

// Probe samples one grid at a fixed point every frame. Value is the RMS of
// the samples.
type Probe struct {
	name    string
	kind    field.Kind
	x, y    float64
	times   []float64
	samples []float64
}

func NewProbe(kind field.Kind, x, y float64) *Probe {
	return &Probe{
		name: fmt.Sprintf("probe_%s", kind),
		kind: kind,
		x:    x,
		y:    y,
	}
}

func (p *Probe) Name() string { return p.name }

func (p *Probe) Observe(f *field.Configuration, t float64) {
	p.times = append(p.times, t)
	p.samples = append(p.samples, f.EvaluateInterpolated(p.kind, p.x, p.y))
}

func (p *Probe) Value() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range p.samples {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(p.samples)))
}

func (p *Probe) Series() []float64 { return p.samples }
func (p *Probe) Times() []float64  { return p.times }

func (p *Probe) Reset() {
	p.times = nil
	p.samples = nil
}
