package contour

import (
	"math"

	"github.com/san-kum/maxwell/internal/dynamo"
)

const noLevel = -1

// AtLevels extracts contours for every level. Each grid cell is assigned the
// first level its corners straddle; cells are then taken in row-major order
// as seeds until none remain or MaxContours is reached.
func (t *Tracer) AtLevels(levels []float64) []dynamo.Polyline {
	g := t.Geometry
	o := t.Options
	flags := t.flagCells(levels)

	var contours []dynamo.Polyline
	next := 0
	for {
		if len(contours) >= o.MaxContours {
			dynamo.Recordf(t.Diagnostics, "ran out of contours after %d", o.MaxContours)
			break
		}
		for next < len(flags) && flags[next] == noLevel {
			next++
		}
		if next == len(flags) {
			break
		}
		i, j := next/g.NY, next%g.NY
		li := flags[next]
		flags[next] = noLevel
		level := levels[li]

		x, y := g.CellToCentroid(i, j)
		if t.nearestChargeDistSq(x, y) < o.ExcludeDistSq {
			continue
		}
		x, y = t.FindCrossingPoint(level, x, y)
		path := t.Trace(x, y, level)

		maxDistSq := 0.0
		for _, p := range path {
			maxDistSq = math.Max(maxDistSq, t.nearestChargeDistSq(p.X, p.Y))
			for _, c := range g.PositionToSurroundingCells(p.X, p.Y) {
				if k := c.I*g.NY + c.J; flags[k] == li {
					flags[k] = noLevel
				}
			}
		}
		if maxDistSq > o.KeepDistSq {
			contours = append(contours, path)
		}
	}
	return contours
}

func (t *Tracer) AtLevel(level float64) []dynamo.Polyline {
	return t.AtLevels([]float64{level})
}

// flagCells returns, per cell in i-major order, the index of the first
// level the cell's corner potentials straddle, or noLevel.
func (t *Tracer) flagCells(levels []float64) []int {
	g := t.Geometry
	flags := make([]int, g.NX*g.NY)
	var phi [4]float64
	for i := 0; i < g.NX; i++ {
		for j := 0; j < g.NY; j++ {
			for k, p := range g.CellToCorners(i, j) {
				phi[k] = t.Field.Potential(p.X, p.Y)
			}
			flags[i*g.NY+j] = firstStraddled(phi, levels)
		}
	}
	return flags
}

func firstStraddled(phi [4]float64, levels []float64) int {
	for li, level := range levels {
		anyAbove, allAbove := false, true
		for _, p := range phi {
			if p > level {
				anyAbove = true
			} else {
				allAbove = false
			}
		}
		if anyAbove != allAbove {
			return li
		}
	}
	return noLevel
}

func (t *Tracer) nearestChargeDistSq(x, y float64) float64 {
	best := math.Inf(1)
	for _, c := range t.Charges {
		best = math.Min(best, c.DistSq(x, y))
	}
	return best
}
