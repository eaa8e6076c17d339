// Package contour extracts level sets of a smooth scalar field as sampled
// polylines.
//
// Seeds come from a scan of the simulation grid: every cell whose corners
// straddle a requested level is a candidate. Each seed is refined onto the
// level and then followed tangentially with a predictor-corrector step until
// the path closes, leaves the padded domain, or hits the step cap.
package contour

import (
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/geometry"
)

// Scalar is a potential with an analytic gradient.
type Scalar interface {
	Potential(x, y float64) float64
	Gradient(x, y float64) (u, v float64)
}

type Tracer struct {
	Geometry geometry.Geometry
	Field    Scalar
	// Charges are used only for the distance filters in AtLevels.
	Charges     []dynamo.Charge
	Options     Options
	Diagnostics dynamo.Diagnostics
}

func New(geom geometry.Geometry, field Scalar, charges []dynamo.Charge) *Tracer {
	return &Tracer{
		Geometry:    geom,
		Field:       field,
		Charges:     charges,
		Options:     DefaultOptions(),
		Diagnostics: dynamo.Discard,
	}
}

func above(d float64) bool { return !math.Signbit(d) }

// FindCrossingPoint moves (x0, y0) onto the level. It first marches with an
// amplified Newton step until the sign of potential-level flips, then
// bisects between the last two points. When the march cannot make progress
// the start point is returned unchanged.
func (t *Tracer) FindCrossingPoint(level, x0, y0 float64) (x, y float64) {
	o := t.Options
	x, y = x0, y0
	potential := t.Field.Potential(x, y)
	start := potential

	if math.Abs(potential-level) < o.Tolerance {
		return x0, y0
	}
	side := above(potential - level)

	for step := 0; above(potential-level) == side; step++ {
		u, v := t.Field.Gradient(x, y)
		r2 := u*u + v*v
		var stop error
		switch {
		case math.Sqrt(r2) < o.MinGradient:
			stop = dynamo.ErrFlatGradient
		case step > o.MaxRefineSteps:
			stop = dynamo.ErrIterationLimit
		}
		if stop != nil {
			dynamo.Recordf(t.Diagnostics,
				"crossing point search from (%g, %g) at level %g (start %g) aborted at (%g, %g) with potential %g: %v",
				x0, y0, level, start, x, y, potential, stop)
			return x0, y0
		}
		x -= o.Overshoot * (potential - level) * u / r2
		y -= o.Overshoot * (potential - level) * v / r2
		potential = t.Field.Potential(x, y)
	}

	ax, ay := x0, y0
	bx, by := x, y
	for step := 0; math.Abs(potential-level) > o.Tolerance; {
		x, y = (ax+bx)/2, (ay+by)/2
		potential = t.Field.Potential(x, y)
		if above(potential-level) == side {
			ax, ay = x, y
		} else {
			bx, by = x, y
		}
		step++
		if step > o.MaxRefineSteps {
			dynamo.Recordf(t.Diagnostics, "bisection at (%g, %g) stopped with potential %g, level %g: %v",
				x, y, potential, level, dynamo.ErrIterationLimit)
			break
		}
	}
	return x, y
}

// Follow traces one direction of the level curve through (x0, y0). The
// returned path starts at (x0, y0), holds every SampleEvery-th point, and
// ends at the final position. exited reports whether the path left the
// padded domain.
func (t *Tracer) Follow(x0, y0, level float64, reverse bool) (path dynamo.Polyline, exited bool) {
	o := t.Options
	h := o.StepSize
	if reverse {
		h = -h
	}
	closeSq := o.CloseTolerance * o.CloseTolerance

	x, y := x0, y0
	path = dynamo.Polyline{{X: x, Y: y}}

	for step := 1; ; step++ {
		u, v := t.Field.Gradient(x, y)
		r := math.Hypot(u, v)
		if r < o.MinGradient {
			dynamo.Recordf(t.Diagnostics, "contour at level %g stalled at (%g, %g): %v", level, x, y, dynamo.ErrFlatGradient)
			break
		}
		x -= h * v / r
		y += h * u / r

		u1, v1 := t.Field.Gradient(x, y)
		r1 := math.Hypot(u1, v1)
		if r1 < o.MinGradient {
			dynamo.Recordf(t.Diagnostics, "contour at level %g stalled at (%g, %g): %v", level, x, y, dynamo.ErrFlatGradient)
			break
		}
		x -= h * 0.5 * (v1 - v) / r1
		y += h * 0.5 * (u1 - u) / r1

		if math.Abs(t.Field.Potential(x, y)-level) > o.DriftTolerance {
			x, y = t.FindCrossingPoint(level, x, y)
		}

		if step%o.SampleEvery == 0 {
			path = append(path, dynamo.Vec2{X: x, Y: y})
		}
		if !t.Geometry.InPaddingRegion(x, y) {
			exited = true
			break
		}
		if step >= o.MaxSteps {
			dynamo.Recordf(t.Diagnostics, "contour at level %g after %d steps: %v", level, o.MaxSteps, dynamo.ErrIterationLimit)
			break
		}
		dx, dy := x-x0, y-y0
		if dx*dx+dy*dy < closeSq && step > o.MinCloseSteps {
			break
		}
	}
	return append(path, dynamo.Vec2{X: x, Y: y}), exited
}

// Trace follows the level curve forward from (x0, y0). If that runs off the
// domain the backward branch is traced as well and placed in front, so the
// result reads as one continuous curve.
func (t *Tracer) Trace(x0, y0, level float64) dynamo.Polyline {
	fwd, exited := t.Follow(x0, y0, level, false)
	if !exited {
		return fwd
	}
	back, _ := t.Follow(x0, y0, level, true)
	out := make(dynamo.Polyline, 0, len(back)+len(fwd))
	out = append(out, back.Reversed()...)
	return append(out, fwd...)
}
