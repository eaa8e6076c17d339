package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/maxwell/internal/dynamo"
)

func sine(freq, dt float64, n int) (times, samples []float64) {
	for k := 0; k < n; k++ {
		t := float64(k) * dt
		times = append(times, t)
		samples = append(samples, math.Sin(2*math.Pi*freq*t))
	}
	return times, samples
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		dt   float64
		n    int
	}{
		{"power of two", 4, 1.0 / 64, 256},
		{"non power of two", 2, 0.01, 200},
		{"slow", 0.5, 0.05, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s := sine(tt.freq, tt.dt, tt.n)
			if got := DominantFrequency(s, tt.dt); math.Abs(got-tt.freq) > 1e-9 {
				t.Errorf("DominantFrequency() = %v, want %v", got, tt.freq)
			}
		})
	}
}

func TestPowerSpectrum_Flat(t *testing.T) {
	ps := PowerSpectrum([]float64{3, 3, 3, 3, 3, 3, 3, 3})
	if len(ps) != 5 {
		t.Fatalf("got %d bins, want 5", len(ps))
	}
	for k, v := range ps {
		if v > 1e-12 {
			t.Errorf("bin %d = %v, want 0", k, v)
		}
	}
	if f := DominantFrequency([]float64{3, 3, 3, 3}, 0.1); f != 0 {
		t.Errorf("flat series dominant frequency = %v, want 0", f)
	}
	if PowerSpectrum(nil) != nil {
		t.Error("empty series should have no spectrum")
	}
}

func TestUpCrossings(t *testing.T) {
	times, s := sine(1, 0.01, 401)
	c := UpCrossings(times, s, 0.5)
	if len(c) != 4 {
		t.Fatalf("got %d crossings, want 4: %v", len(c), c)
	}
	if math.Abs(c[0]-1.0/12) > 1e-3 {
		t.Errorf("first crossing at %v, want %v", c[0], 1.0/12)
	}
	if p := MeanPeriod(c); math.Abs(p-1) > 1e-6 {
		t.Errorf("MeanPeriod() = %v, want 1", p)
	}
	if MeanPeriod(c[:1]) != 0 {
		t.Error("one crossing has no period")
	}
}

func TestChargeTrajectory(t *testing.T) {
	frames := [][]dynamo.Charge{
		{{X: 0, Y: 0, Strength: 1}, {X: 5, Y: 5, Strength: -1}},
		{{X: 1, Y: 0, Strength: 1}},
		{{X: 2, Y: 0, Strength: 1}, {X: 6, Y: 5, Strength: -1}},
	}
	path := ChargeTrajectory(frames, 1)
	if len(path) != 2 || path[1].X != 6 {
		t.Errorf("ChargeTrajectory() = %v", path)
	}
}

func TestPointsToASCII(t *testing.T) {
	pts := []dynamo.Vec2{{X: -1, Y: -1}, {X: 1, Y: 1}}
	out := PointsToASCII(pts, 20, 10)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d rows, want 10", len(lines))
	}
	if strings.Count(out, "•") != 2 {
		t.Errorf("expected 2 plotted points:\n%s", out)
	}
	if !strings.Contains(out, "│") || !strings.Contains(out, "─") {
		t.Errorf("expected both axes:\n%s", out)
	}
	if PointsToASCII(nil, 20, 10) != "" {
		t.Error("no points should render nothing")
	}
}
