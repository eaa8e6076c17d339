// Package arrows picks positions along traced contours where a direction
// arrow should be drawn: the points where a contour crosses the line joining
// two paired charges.
package arrows

import (
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// Pairing is two charges whose joining line carries arrows.
type Pairing struct {
	A, B dynamo.Charge
}

// pairScore favours close pairs of opposite sign.
func pairScore(a, b dynamo.Charge) float64 {
	return (1.3 - a.Strength*b.Strength) / a.DistSq(b.X, b.Y)
}

// Pair matches charges greedily: each unpaired charge, in order, takes the
// unpaired partner with the highest positive score. A lone charge is paired
// with a copy of itself one unit to the right.
func Pair(charges []dynamo.Charge) []Pairing {
	if len(charges) == 1 {
		c := charges[0]
		return []Pairing{{A: c, B: dynamo.Charge{X: c.X + 1, Y: c.Y, Strength: c.Strength}}}
	}

	paired := make([]bool, len(charges))
	var out []Pairing
	for i, c := range charges {
		if paired[i] {
			continue
		}
		best, bestScore := -1, 0.0
		for j, o := range charges {
			if c == o || paired[j] {
				continue
			}
			if s := pairScore(c, o); s > bestScore {
				best, bestScore = j, s
			}
		}
		if best < 0 {
			continue
		}
		paired[i], paired[best] = true, true
		out = append(out, Pairing{A: c, B: charges[best]})
	}
	return out
}

// Crossing reports where segment p0-p1 crosses the infinite line through
// the pair. Only the signs of the endpoints' offsets from the line are
// compared, so a crossing beyond either charge still counts.
func (p Pairing) Crossing(p0, p1 dynamo.Vec2) (dynamo.Vec2, bool) {
	side := func(v dynamo.Vec2) float64 {
		return (v.X-p.A.X)*(p.B.Y-p.A.Y) - (v.Y-p.A.Y)*(p.B.X-p.A.X)
	}
	f0, f1 := side(p0), side(p1)
	if math.Signbit(f0) == math.Signbit(f1) || f0 == f1 {
		return dynamo.Vec2{}, false
	}
	t := f0 / (f0 - f1)
	return p0.Add(p1.Sub(p0).Scale(t)), true
}

type Options struct {
	// Debounce is how many segments to skip after placing an arrow. The
	// count carries over from one contour to the next.
	Debounce int
	// MaxArrows stops placement once reached; zero means no cap.
	MaxArrows   int
	Diagnostics dynamo.Diagnostics
}

func DefaultOptions() Options {
	return Options{Debounce: 10, Diagnostics: dynamo.Discard}
}

// Place walks every segment of every contour and records the first pairing
// crossing for each segment that is not being debounced.
func Place(contours []dynamo.Polyline, charges []dynamo.Charge, opts Options) []dynamo.Vec2 {
	pairs := Pair(charges)
	if len(pairs) == 0 {
		return nil
	}

	var arrows []dynamo.Vec2
	wait := 0
	for _, c := range contours {
		for k := 1; k < len(c); k++ {
			if wait > 0 {
				wait--
				continue
			}
			pt, ok := firstCrossing(pairs, c[k-1], c[k])
			if !ok {
				continue
			}
			if opts.MaxArrows > 0 && len(arrows) >= opts.MaxArrows {
				dynamo.Recordf(opts.Diagnostics, "arrow cap of %d reached", opts.MaxArrows)
				return arrows
			}
			arrows = append(arrows, pt)
			wait = opts.Debounce
		}
	}
	return arrows
}

func firstCrossing(pairs []Pairing, p0, p1 dynamo.Vec2) (dynamo.Vec2, bool) {
	for _, p := range pairs {
		if pt, ok := p.Crossing(p0, p1); ok {
			return pt, true
		}
	}
	return dynamo.Vec2{}, false
}
