package fieldline

import (
	"math"
	"slices"
)

const twoPi = 2 * math.Pi

// Departures hands out launch angles around one charge. Angles are
// interleaved from both ends of the free range, so if lines landing on the
// charge later shrink that range the remaining lines do not bunch up at
// one end.
type Departures struct {
	n, next    int
	start, end float64
	restricted bool
	arrivals   []float64
}

func NewDepartures(n int, startAngle float64) *Departures {
	return &Departures{n: n, start: startAngle, end: startAngle + twoPi}
}

// Next returns the next launch angle, or false once all lines have left.
func (d *Departures) Next() (float64, bool) {
	k := d.next
	if k >= d.n {
		return 0, false
	}
	if k%2 == 1 {
		k = d.n - 1 - (k-1)/2
	} else {
		k /= 2
	}

	span := d.end - d.start
	var angle float64
	if d.restricted {
		angle = d.start + float64(k+1)*span/float64(d.n+1)
	} else {
		angle = d.start + (float64(k)+0.5)*span/float64(d.n)
	}
	d.next++
	return math.Mod(angle, twoPi), true
}

// Remaining is the number of lines still to launch.
func (d *Departures) Remaining() int { return d.n - d.next }

// Exhausted reports whether every line has been launched.
func (d *Departures) Exhausted() bool { return d.next == d.n }

// RegisterArrival records a line landing at angle. The landing line counts
// against this charge's quota, and launches are confined to the widest
// angular gap between arrivals.
func (d *Departures) RegisterArrival(angle float64) {
	d.arrivals = append(d.arrivals, math.Mod(angle+twoPi, twoPi))
	if d.n > 0 {
		d.n--
	}
	d.restricted = len(d.arrivals) > 1

	lo, hi := slices.Min(d.arrivals), slices.Max(d.arrivals)
	// arrivals either side of angle zero, say 6.1 and 0.1, are closer
	// together when read as 6.1 and 0.1+2pi
	wrapped := make([]float64, len(d.arrivals))
	for offset := 1; offset < 4; offset++ {
		shift := float64(offset) * math.Pi / 2
		for k, a := range d.arrivals {
			wrapped[k] = math.Mod(a+shift, twoPi) - shift
		}
		wlo, whi := slices.Min(wrapped), slices.Max(wrapped)
		if whi-wlo < hi-lo {
			lo, hi = wlo, whi
		}
	}

	d.start = hi
	d.end = lo + twoPi
}

// undoLaunch returns the last launched angle to the pool and fences it off
// as if a line had arrived there.
func (d *Departures) undoLaunch(angle float64) {
	d.next--
	d.RegisterArrival(angle)
	d.n++
}
