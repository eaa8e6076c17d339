package dynamo

import (
	"fmt"
	"math"
)

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2  { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64    { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64  { return v.X*o.Y - v.Y*o.X }
func (v Vec2) Norm() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).Dot(v.Sub(o)) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Charge is a point source. Strength is serialized as "charge" to match the
// host's wire format.
type Charge struct {
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Strength float64 `json:"charge" yaml:"charge"`
}

func (c Charge) Pos() Vec2 { return Vec2{c.X, c.Y} }

func (c Charge) DistSq(x, y float64) float64 {
	dx, dy := x-c.X, y-c.Y
	return dx*dx + dy*dy
}

func (c Charge) String() string {
	return fmt.Sprintf("Charge{x: %g, y: %g, charge: %g}", c.X, c.Y, c.Strength)
}

// CloneCharges returns an independent copy of cs.
func CloneCharges(cs []Charge) []Charge {
	out := make([]Charge, len(cs))
	copy(out, cs)
	return out
}

// Polyline is an ordered list of sample points along a curve.
type Polyline []Vec2

func (p Polyline) Reversed() Polyline {
	out := make(Polyline, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// Closed reports whether the endpoints lie within tol of each other.
func (p Polyline) Closed(tol float64) bool {
	if len(p) < 3 {
		return false
	}
	return p[0].DistSq(p[len(p)-1]) <= tol*tol
}

// Diagnostics receives human-readable reports of degraded numeric results.
type Diagnostics interface {
	Record(msg string)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(msg string)

func (f DiagnosticsFunc) Record(msg string) { f(msg) }

type discard struct{}

func (discard) Record(string) {}

// Discard drops every diagnostic.
var Discard Diagnostics = discard{}

// Recordf formats and records a diagnostic; a nil sink is treated as Discard.
func Recordf(d Diagnostics, format string, args ...any) {
	if d == nil {
		return
	}
	d.Record(fmt.Sprintf(format, args...))
}
