// Package motion prescribes how charges move over time. A session applies
// one Motion per charge each frame before ticking the field.
package motion

import (
	"math"
	"sort"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// Motion maps simulation time and a charge's resting state to where the
// charge is at that time. Strength is carried through unchanged.
type Motion interface {
	Position(t float64, base dynamo.Charge) dynamo.Charge
}

type Static struct{}

func (Static) Position(_ float64, base dynamo.Charge) dynamo.Charge { return base }

// Orbit moves the charge on a circle. The phase is measured from the
// positive x axis, counter-clockwise for positive Omega.
type Orbit struct {
	CX, CY float64
	Radius float64
	Omega  float64
	Phase  float64
}

func (o Orbit) Position(t float64, base dynamo.Charge) dynamo.Charge {
	a := o.Omega*t + o.Phase
	base.X = o.CX + o.Radius*math.Cos(a)
	base.Y = o.CY + o.Radius*math.Sin(a)
	return base
}

// Oscillate displaces the charge from its resting position along
// (AX, AY) sinusoidally.
type Oscillate struct {
	AX, AY float64
	Omega  float64
	Phase  float64
}

func (o Oscillate) Position(t float64, base dynamo.Charge) dynamo.Charge {
	s := math.Sin(o.Omega*t + o.Phase)
	base.X += o.AX * s
	base.Y += o.AY * s
	return base
}

type Waypoint struct {
	T, X, Y float64
}

// Drag replays a piecewise-linear path, the way a pointer drag would move a
// charge. Before the first waypoint and after the last the charge rests at
// the nearest end.
type Drag struct {
	Waypoints []Waypoint
}

func NewDrag(wps ...Waypoint) Drag {
	w := append([]Waypoint(nil), wps...)
	sort.SliceStable(w, func(i, j int) bool { return w[i].T < w[j].T })
	return Drag{Waypoints: w}
}

func (d Drag) Position(t float64, base dynamo.Charge) dynamo.Charge {
	w := d.Waypoints
	switch {
	case len(w) == 0:
		return base
	case t <= w[0].T:
		base.X, base.Y = w[0].X, w[0].Y
		return base
	case t >= w[len(w)-1].T:
		base.X, base.Y = w[len(w)-1].X, w[len(w)-1].Y
		return base
	}

	k := sort.Search(len(w), func(i int) bool { return w[i].T > t })
	a, b := w[k-1], w[k]
	f := 0.0
	if b.T > a.T {
		f = (t - a.T) / (b.T - a.T)
	}
	base.X = a.X + f*(b.X-a.X)
	base.Y = a.Y + f*(b.Y-a.Y)
	return base
}

// Apply evaluates motions against their base charges at time t. A nil or
// missing motion leaves its charge where it is.
func Apply(t float64, base []dynamo.Charge, motions []Motion) []dynamo.Charge {
	out := make([]dynamo.Charge, len(base))
	for i, c := range base {
		if i < len(motions) && motions[i] != nil {
			out[i] = motions[i].Position(t, c)
			continue
		}
		out[i] = c
	}
	return out
}
