// Package gauss counts field lines through closed curves drawn by the user,
// a discrete check of Gauss's law: the net number of outward crossings
// matches the enclosed charge.
package gauss

import (
	"cmp"
	"math"
	"slices"

	"github.com/san-kum/maxwell/internal/dynamo"
)

type VectorField interface {
	Field(x, y float64) (u, v float64)
}

// WindingNumber counts how many times the closed curve through poly winds
// counterclockwise around p. The last point joins back to the first.
func WindingNumber(poly dynamo.Polyline, p dynamo.Vec2) int {
	w := 0
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		isLeft := (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
		if a.Y <= p.Y {
			if b.Y > p.Y && isLeft > 0 {
				w++
			}
		} else if b.Y <= p.Y && isLeft < 0 {
			w--
		}
	}
	return w
}

// Encloses reports whether p lies inside the curve.
func Encloses(poly dynamo.Polyline, p dynamo.Vec2) bool {
	return WindingNumber(poly, p) != 0
}

// EnclosedCharge sums the strengths of charges inside the curve.
func EnclosedCharge(poly dynamo.Polyline, charges []dynamo.Charge) float64 {
	var q float64
	for _, c := range charges {
		if Encloses(poly, c.Pos()) {
			q += c.Strength
		}
	}
	return q
}

type segment struct {
	a, b                   dynamo.Vec2
	minX, minY, maxX, maxY float64
}

func segments(p dynamo.Polyline) []segment {
	if len(p) < 2 {
		return nil
	}
	out := make([]segment, 0, len(p)-1)
	for k := 1; k < len(p); k++ {
		a, b := p[k-1], p[k]
		out = append(out, segment{
			a: a, b: b,
			minX: math.Min(a.X, b.X), maxX: math.Max(a.X, b.X),
			minY: math.Min(a.Y, b.Y), maxY: math.Max(a.Y, b.Y),
		})
	}
	slices.SortFunc(out, func(s, t segment) int { return cmp.Compare(s.minX, t.minX) })
	return out
}

// Intersections returns every point where the open polylines c1 and c2
// cross. Segments are swept in order of their left edge so only pairs with
// overlapping x ranges are tested.
func Intersections(c1, c2 dynamo.Polyline) []dynamo.Vec2 {
	s1, s2 := segments(c1), segments(c2)

	var out []dynamo.Vec2
	lo := 0
	for _, a := range s1 {
		for lo < len(s2) && s2[lo].maxX < a.minX {
			lo++
		}
		for j := lo; j < len(s2) && s2[j].minX <= a.maxX; j++ {
			b := s2[j]
			if a.maxY < b.minY || a.minY > b.maxY {
				continue
			}
			if p, ok := intersect(a, b); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func intersect(s, t segment) (dynamo.Vec2, bool) {
	d1 := s.b.Sub(s.a)
	d2 := t.b.Sub(t.a)
	denom := d2.Y*d1.X - d2.X*d1.Y
	if denom == 0 {
		return dynamo.Vec2{}, false
	}
	ua := (d2.X*(s.a.Y-t.a.Y) - d2.Y*(s.a.X-t.a.X)) / denom
	ub := (d1.X*(s.a.Y-t.a.Y) - d1.Y*(s.a.X-t.a.X)) / denom
	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return dynamo.Vec2{}, false
	}
	return s.a.Add(d1.Scale(ua)), true
}

// Crossing is a field line passing through the surface.
type Crossing struct {
	Point dynamo.Vec2
	// Direction is the unit field direction at Point.
	Direction dynamo.Vec2
	Outward   bool
}

// Crossings finds where the field lines cut the closed surface and
// classifies each as outward or inward by probing a distance probe either
// side of the crossing along the field. Crossings where the surface winds
// more than once are ambiguous and dropped.
func Crossings(lines []dynamo.Polyline, surface dynamo.Polyline, field VectorField, probe float64) []Crossing {
	closed := surface
	if len(surface) > 2 && surface[0] != surface[len(surface)-1] {
		closed = append(slices.Clone(surface), surface[0])
	}

	var out []Crossing
	for _, l := range lines {
		for _, p := range Intersections(l, closed) {
			u, v := field.Field(p.X, p.Y)
			n := math.Hypot(u, v)
			if n == 0 {
				continue
			}
			dir := dynamo.Vec2{X: u / n, Y: v / n}

			head := WindingNumber(surface, p.Add(dir.Scale(probe)))
			tail := WindingNumber(surface, p.Sub(dir.Scale(probe)))
			if abs(head) > 1 || abs(tail) > 1 {
				continue
			}
			out = append(out, Crossing{Point: p, Direction: dir, Outward: head == 0})
		}
	}
	return out
}

// NetFlux is outward crossings minus inward crossings.
func NetFlux(cs []Crossing) int {
	n := 0
	for _, c := range cs {
		if c.Outward {
			n++
		} else {
			n--
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Circle returns an n-gon approximating a circle, for tests and presets.
func Circle(cx, cy, r float64, n int) dynamo.Polyline {
	p := make(dynamo.Polyline, n)
	for k := range p {
		a := 2 * math.Pi * float64(k) / float64(n)
		p[k] = dynamo.Vec2{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return p
}
