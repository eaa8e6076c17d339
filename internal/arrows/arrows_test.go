package arrows

import (
	"math"
	"testing"

	"github.com/san-kum/maxwell/internal/diag"
	"github.com/san-kum/maxwell/internal/dynamo"
)

func TestPair(t *testing.T) {
	plus := dynamo.Charge{X: 0, Y: 0, Strength: 1}
	minus := dynamo.Charge{X: 4, Y: 0, Strength: -1}
	farMinus := dynamo.Charge{X: 20, Y: 0, Strength: -1}
	plus2 := dynamo.Charge{X: 0, Y: 1, Strength: 1}

	tests := []struct {
		name    string
		charges []dynamo.Charge
		want    []Pairing
	}{
		{"empty", nil, nil},
		{"lone charge", []dynamo.Charge{plus}, []Pairing{{A: plus, B: dynamo.Charge{X: 1, Y: 0, Strength: 1}}}},
		{"dipole", []dynamo.Charge{plus, minus}, []Pairing{{A: plus, B: minus}}},
		{"closest opposite wins", []dynamo.Charge{plus, farMinus, minus}, []Pairing{{A: plus, B: minus}}},
		// like charges still score (1.3-1)/r^2, enough to beat a distant opposite charge
		{"close like charges pair", []dynamo.Charge{plus, plus2, minus}, []Pairing{{A: plus, B: plus2}}},
		{"identical charges skipped", []dynamo.Charge{plus, plus}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pair(tt.charges)
			if len(got) != len(tt.want) {
				t.Fatalf("Pair() = %v, want %v", got, tt.want)
			}
			for k := range got {
				if got[k] != tt.want[k] {
					t.Errorf("pair %d = %v, want %v", k, got[k], tt.want[k])
				}
			}
		})
	}
}

func TestCrossing(t *testing.T) {
	p := Pairing{A: dynamo.Charge{X: 0, Y: 0, Strength: 1}, B: dynamo.Charge{X: 4, Y: 0, Strength: -1}}

	tests := []struct {
		name   string
		p0, p1 dynamo.Vec2
		want   dynamo.Vec2
		ok     bool
	}{
		{"between charges", dynamo.Vec2{X: 2, Y: -1}, dynamo.Vec2{X: 2, Y: 1}, dynamo.Vec2{X: 2, Y: 0}, true},
		{"beyond the pair", dynamo.Vec2{X: 9, Y: 3}, dynamo.Vec2{X: 9, Y: -1}, dynamo.Vec2{X: 9, Y: 0}, true},
		{"same side", dynamo.Vec2{X: 2, Y: 1}, dynamo.Vec2{X: 3, Y: 2}, dynamo.Vec2{}, false},
		{"oblique", dynamo.Vec2{X: 0, Y: -1}, dynamo.Vec2{X: 2, Y: 3}, dynamo.Vec2{X: 0.5, Y: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Crossing(tt.p0, tt.p1)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Crossing() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ladder crosses y=0 on every segment.
func ladder(n int, x float64) dynamo.Polyline {
	var p dynamo.Polyline
	for k := 0; k < n; k++ {
		y := 1.0
		if k%2 == 1 {
			y = -1
		}
		p = append(p, dynamo.Vec2{X: x + float64(k), Y: y})
	}
	return p
}

func TestPlace_Debounce(t *testing.T) {
	charges := []dynamo.Charge{{X: 0, Y: 0, Strength: 1}, {X: 4, Y: 0, Strength: -1}}

	got := Place([]dynamo.Polyline{ladder(25, 0)}, charges, DefaultOptions())
	// 24 segments: arrows at segments 1, 12 and 23
	if len(got) != 3 {
		t.Fatalf("got %d arrows, want 3: %v", len(got), got)
	}
	for _, a := range got {
		if a.Y != 0 {
			t.Errorf("arrow %v not on the axis", a)
		}
	}
}

func TestPlace_DebounceCarriesAcrossContours(t *testing.T) {
	charges := []dynamo.Charge{{X: 0, Y: 0, Strength: 1}, {X: 4, Y: 0, Strength: -1}}

	contours := []dynamo.Polyline{ladder(3, 0), ladder(6, 100)}
	got := Place(contours, charges, DefaultOptions())
	if len(got) != 1 {
		t.Errorf("got %d arrows, want 1 since the second contour is still debounced", len(got))
	}
}

func TestPlace_Cap(t *testing.T) {
	var c diag.Collector
	opts := DefaultOptions()
	opts.Debounce = 0
	opts.MaxArrows = 4
	opts.Diagnostics = &c

	got := Place([]dynamo.Polyline{ladder(20, 0)}, []dynamo.Charge{{X: 0, Y: 0, Strength: 1}}, opts)
	if len(got) != 4 {
		t.Errorf("got %d arrows, want 4", len(got))
	}
	if c.Len() != 1 {
		t.Errorf("expected one cap diagnostic, got %v", c.Messages())
	}
}

func TestPlace_NoCharges(t *testing.T) {
	if got := Place([]dynamo.Polyline{ladder(5, 0)}, nil, DefaultOptions()); got != nil {
		t.Errorf("expected no arrows without charges, got %v", got)
	}
}
