package gauss

import (
	"math"
	"testing"

	"github.com/san-kum/maxwell/internal/direct"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/fieldline"
	"github.com/san-kum/maxwell/internal/geometry"
)

func square(cx, cy, h float64) dynamo.Polyline {
	return dynamo.Polyline{{X: cx - h, Y: cy - h}, {X: cx + h, Y: cy - h}, {X: cx + h, Y: cy + h}, {X: cx - h, Y: cy + h}}
}

func TestWindingNumber(t *testing.T) {
	sq := square(0, 0, 1)
	twice := append(append(dynamo.Polyline{}, sq...), sq...)

	tests := []struct {
		name string
		poly dynamo.Polyline
		p    dynamo.Vec2
		want int
	}{
		{"inside ccw", sq, dynamo.Vec2{X: 0.2, Y: -0.3}, 1},
		{"outside", sq, dynamo.Vec2{X: 2, Y: 0}, 0},
		{"above", sq, dynamo.Vec2{X: 0, Y: 5}, 0},
		{"inside cw", sq.Reversed(), dynamo.Vec2{X: 0, Y: 0}, -1},
		{"wound twice", twice, dynamo.Vec2{X: 0, Y: 0}, 2},
		{"circle", Circle(5, 5, 2, 32), dynamo.Vec2{X: 5.5, Y: 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WindingNumber(tt.poly, tt.p); got != tt.want {
				t.Errorf("WindingNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEnclosedCharge(t *testing.T) {
	charges := []dynamo.Charge{
		{X: 0, Y: 0, Strength: 1},
		{X: 0.5, Y: 0.5, Strength: -3},
		{X: 4, Y: 4, Strength: 10},
	}
	if got := EnclosedCharge(square(0, 0, 1), charges); got != -2 {
		t.Errorf("EnclosedCharge() = %v, want -2", got)
	}
}

func TestIntersections(t *testing.T) {
	tests := []struct {
		name   string
		c1, c2 dynamo.Polyline
		want   []dynamo.Vec2
	}{
		{
			"cross",
			dynamo.Polyline{{X: 0, Y: 0}, {X: 2, Y: 2}},
			dynamo.Polyline{{X: 0, Y: 2}, {X: 2, Y: 0}},
			[]dynamo.Vec2{{X: 1, Y: 1}},
		},
		{
			"parallel",
			dynamo.Polyline{{X: 0, Y: 0}, {X: 2, Y: 0}},
			dynamo.Polyline{{X: 0, Y: 1}, {X: 2, Y: 1}},
			nil,
		},
		{
			"disjoint in x",
			dynamo.Polyline{{X: 0, Y: 0}, {X: 1, Y: 1}},
			dynamo.Polyline{{X: 5, Y: 0}, {X: 6, Y: 1}},
			nil,
		},
		{
			"zigzag through a line",
			dynamo.Polyline{{X: 0, Y: 1}, {X: 1, Y: -1}, {X: 2, Y: 1}, {X: 3, Y: -1}},
			dynamo.Polyline{{X: -1, Y: 0}, {X: 4, Y: 0}},
			[]dynamo.Vec2{{X: 0.5, Y: 0}, {X: 1.5, Y: 0}, {X: 2.5, Y: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intersections(tt.c1, tt.c2)
			if len(got) != len(tt.want) {
				t.Fatalf("Intersections() = %v, want %v", got, tt.want)
			}
			for k := range got {
				if math.Abs(got[k].X-tt.want[k].X) > 1e-12 || math.Abs(got[k].Y-tt.want[k].Y) > 1e-12 {
					t.Errorf("intersection %d = %v, want %v", k, got[k], tt.want[k])
				}
			}
		})
	}
}

func traceLines(t *testing.T, charges []dynamo.Charge) []dynamo.Polyline {
	t.Helper()
	g, err := geometry.New(800, 600, 64, 48, 8)
	if err != nil {
		t.Fatal(err)
	}
	var out []dynamo.Polyline
	for _, l := range fieldline.New(g, direct.New(charges)).Trace(charges) {
		out = append(out, l.Points)
	}
	return out
}

func TestCrossings_FluxMatchesEnclosedCharge(t *testing.T) {
	charges := []dynamo.Charge{{X: 400, Y: 300, Strength: 1}}
	lines := traceLines(t, charges)
	field := direct.New(charges)

	around := Circle(400, 300, 100, 64)
	cs := Crossings(lines, around, field, 1)
	if len(cs) != 4 || NetFlux(cs) != 4 {
		t.Errorf("surface around the charge: %d crossings, net %d; want 4 outward", len(cs), NetFlux(cs))
	}

	d := 100 / math.Sqrt2
	beside := Circle(400+d, 300+d, 30, 64)
	cs = Crossings(lines, beside, field, 1)
	if len(cs) != 2 || NetFlux(cs) != 0 {
		t.Errorf("surface beside the charge: %d crossings, net %d; want one in and one out", len(cs), NetFlux(cs))
	}
}

func TestCrossings_NegativeCharge(t *testing.T) {
	charges := []dynamo.Charge{{X: 400, Y: 300, Strength: -1}}
	cs := Crossings(traceLines(t, charges), Circle(400, 300, 100, 64), direct.New(charges), 1)
	if NetFlux(cs) != -4 {
		t.Errorf("NetFlux() = %d, want -4", NetFlux(cs))
	}
	for _, c := range cs {
		if math.Abs(math.Hypot(c.Direction.X, c.Direction.Y)-1) > 1e-12 {
			t.Errorf("direction %v is not a unit vector", c.Direction)
		}
	}
}
