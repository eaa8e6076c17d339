// Package fieldline traces electric field lines from charge to charge.
//
// Each charge launches a number of lines proportional to its strength.
// Lines that land on another charge are booked against that charge's quota
// so the picture keeps the right line density everywhere.
package fieldline

import (
	"cmp"
	"math"
	"slices"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/geometry"
)

type VectorField interface {
	Field(x, y float64) (u, v float64)
}

type Options struct {
	// ChargeRadius is both the launch offset and the landing radius.
	ChargeRadius float64
	StepSize     float64
	// MinLength must be covered before a line may land.
	MinLength    float64
	MaxSteps     int
	LinesPerUnit float64
	// MaxFailures caps relaunches after landing on a full charge.
	MaxFailures int
	MinField    float64
}

// DefaultOptions suits a domain measured in pixels.
func DefaultOptions() Options {
	return Options{
		ChargeRadius: 10,
		StepSize:     5,
		MinLength:    20,
		MaxSteps:     1000,
		LinesPerUnit: 4,
		MaxFailures:  20,
		MinField:     1e-4,
	}
}

// Scale multiplies the length thresholds by f.
func (o Options) Scale(f float64) Options {
	o.ChargeRadius *= f
	o.StepSize *= f
	o.MinLength *= f
	return o
}

// Line is one traced field line.
type Line struct {
	Points dynamo.Polyline
	Source int
	// Landed is the index of the charge the line ended on, or -1.
	Landed int
	// Arrow sits halfway along the line, pointing along the field.
	Arrow      dynamo.Vec2
	ArrowAngle float64
}

type Tracer struct {
	Geometry    geometry.Geometry
	Field       VectorField
	Options     Options
	Diagnostics dynamo.Diagnostics
}

func New(geom geometry.Geometry, field VectorField) *Tracer {
	return &Tracer{Geometry: geom, Field: field, Options: DefaultOptions(), Diagnostics: dynamo.Discard}
}

// StartingAngles points each charge's first launch at the next charge in
// the list.
func StartingAngles(charges []dynamo.Charge) []float64 {
	angles := make([]float64, len(charges))
	if len(charges) < 2 {
		return angles
	}
	for i, c := range charges {
		next := charges[(i+1)%len(charges)]
		dx, dy := next.X-c.X, next.Y-c.Y
		if dx != 0 || dy != 0 {
			angles[i] = math.Atan2(dy, dx)
		}
	}
	return angles
}

// Trace launches lines from every charge, weakest charges first.
func (t *Tracer) Trace(charges []dynamo.Charge) []Line {
	angles := StartingAngles(charges)
	deps := make([]*Departures, len(charges))
	for i, c := range charges {
		n := int(math.Ceil(math.Abs(c.Strength) * t.Options.LinesPerUnit))
		deps[i] = NewDepartures(n, angles[i])
	}

	order := make([]int, len(charges))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(math.Abs(charges[a].Strength), math.Abs(charges[b].Strength))
	})

	var lines []Line
	for _, src := range order {
		c := charges[src]
		failures := 0
		for {
			angle, ok := deps[src].Next()
			if !ok {
				break
			}
			line := t.follow(charges, src, angle)

			if line.Landed >= 0 {
				dst := charges[line.Landed]
				end := line.Points[len(line.Points)-1]
				arrival := math.Atan2(end.Y-dst.Y, end.X-dst.X)
				if deps[line.Landed].Exhausted() {
					failures++
					if failures <= t.Options.MaxFailures {
						deps[src].undoLaunch(angle)
						continue
					}
					dynamo.Recordf(t.Diagnostics,
						"too many failed field line launches from %v; line counts will be off", c)
				} else {
					deps[line.Landed].RegisterArrival(arrival)
				}
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func (t *Tracer) follow(charges []dynamo.Charge, src int, angle float64) Line {
	o := t.Options
	c := charges[src]
	h := o.StepSize
	if c.Strength <= 0 {
		h = -h
	}

	x := c.X + o.ChargeRadius*math.Cos(angle)
	y := c.Y + o.ChargeRadius*math.Sin(angle)
	pts := dynamo.Polyline{{X: x, Y: y}}

	var uLast, vLast, length float64
	landed := -1
	for steps := 0; steps < o.MaxSteps && t.inside(x, y); steps++ {
		if length >= o.MinLength {
			if landed = landing(charges, x, y, o.ChargeRadius); landed >= 0 {
				break
			}
		}

		u, v := t.Field.Field(x, y)
		norm := math.Hypot(u, v)
		if norm < o.MinField {
			// keep heading the same way through near-null regions
			u, v = uLast, vLast
			norm = math.Hypot(u, v)
			if norm < o.MinField {
				dynamo.Recordf(t.Diagnostics, "field line from %v stalled at (%g, %g)", c, x, y)
				break
			}
		}
		x += h * u / norm
		y += h * v / norm

		u2, v2 := t.Field.Field(x, y)
		if norm2 := math.Hypot(u2, v2); norm2 > o.MinField {
			x += h * (u2/norm2 - u/norm) / 2
			y += h * (v2/norm2 - v/norm) / 2
		}
		pts = append(pts, dynamo.Vec2{X: x, Y: y})
		length += math.Abs(h)
		uLast, vLast = u2, v2
	}
	if landed < 0 && length >= o.MinLength {
		landed = landing(charges, x, y, o.ChargeRadius)
	}

	line := Line{Points: pts, Source: src, Landed: landed}
	line.Arrow = pts[len(pts)/2]
	u, v := t.Field.Field(line.Arrow.X, line.Arrow.Y)
	line.ArrowAngle = math.Atan2(v, u)
	return line
}

func (t *Tracer) inside(x, y float64) bool {
	return x > 0 && y > 0 && x < t.Geometry.XMax && y < t.Geometry.YMax
}

// landing returns the index of the last charge within radius of (x, y), or
// -1. Later charges are drawn on top, so they win.
func landing(charges []dynamo.Charge, x, y, radius float64) int {
	for i := len(charges) - 1; i >= 0; i-- {
		if math.Sqrt(charges[i].DistSq(x, y)) < radius {
			return i
		}
	}
	return -1
}
