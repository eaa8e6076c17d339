package metrics

import (
	"github.com/san-kum/maxwell/internal/field"
)

// Stability is the fraction of frames in which no field value exceeded the
// threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f *field.Configuration, t float64) {
	s.samples++
	g := f.Grids()
	for _, k := range []field.Kind{field.ElecX, field.ElecY, field.MagZ} {
		if m := g.Get(k).MaxAbs(); !(m <= s.threshold) {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
