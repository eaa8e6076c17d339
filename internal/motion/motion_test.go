package motion

import (
	"math"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestMotions(t *testing.T) {
	base := dynamo.Charge{X: 2, Y: 3, Strength: -1.5}

	tests := []struct {
		name  string
		m     Motion
		t     float64
		wantX float64
		wantY float64
	}{
		{"static", Static{}, 7, 2, 3},
		{"orbit start", Orbit{CX: 5, CY: 5, Radius: 2, Omega: 1}, 0, 7, 5},
		{"orbit quarter", Orbit{CX: 5, CY: 5, Radius: 2, Omega: 1}, math.Pi / 2, 5, 7},
		{"orbit phase", Orbit{CX: 5, CY: 5, Radius: 2, Omega: 1, Phase: math.Pi}, 0, 3, 5},
		{"oscillate rest", Oscillate{AX: 1, Omega: 2}, 0, 2, 3},
		{"oscillate peak", Oscillate{AX: 1, AY: -1, Omega: 2}, math.Pi / 4, 3, 2},
		{"drag before", NewDrag(Waypoint{1, 0, 0}, Waypoint{2, 4, 4}), 0, 0, 0},
		{"drag middle", NewDrag(Waypoint{2, 4, 4}, Waypoint{1, 0, 0}), 1.25, 1, 1},
		{"drag after", NewDrag(Waypoint{1, 0, 0}, Waypoint{2, 4, 4}), 9, 4, 4},
		{"drag empty", Drag{}, 1, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Position(tt.t, base)
			if !near(got.X, tt.wantX) || !near(got.Y, tt.wantY) {
				t.Errorf("Position(%g) = (%g, %g), want (%g, %g)", tt.t, got.X, got.Y, tt.wantX, tt.wantY)
			}
			if got.Strength != base.Strength {
				t.Errorf("strength changed to %g", got.Strength)
			}
		})
	}
}

func TestDragRepeatedTime(t *testing.T) {
	d := NewDrag(Waypoint{0, 0, 0}, Waypoint{1, 1, 0}, Waypoint{1, 5, 5}, Waypoint{2, 5, 5})
	got := d.Position(1.5, dynamo.Charge{})
	if !near(got.X, 5) || !near(got.Y, 5) {
		t.Errorf("Position(1.5) = %v, want (5, 5)", got)
	}
}

func TestApply(t *testing.T) {
	base := []dynamo.Charge{{X: 1, Y: 1, Strength: 1}, {X: 2, Y: 2, Strength: -1}, {X: 3, Y: 3, Strength: 2}}
	got := Apply(1, base, []Motion{Oscillate{AX: 1, Omega: math.Pi / 2}, nil})

	want := []dynamo.Charge{{X: 2, Y: 1, Strength: 1}, {X: 2, Y: 2, Strength: -1}, {X: 3, Y: 3, Strength: 2}}
	for i := range want {
		if !near(got[i].X, want[i].X) || !near(got[i].Y, want[i].Y) || got[i].Strength != want[i].Strength {
			t.Errorf("charge %d = %v, want %v", i, got[i], want[i])
		}
	}
	if base[0].X != 1 {
		t.Error("Apply modified the base charges")
	}
}
