package field

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// Solver picks how a static field is evaluated at a point.
type Solver int

const (
	// SolverDirect sums the softened Coulomb field of every charge.
	SolverDirect Solver = iota
	// SolverFourier solves the electrostatic field on the grid.
	SolverFourier
	// SolverMagnetostatic treats each charge as a line current out of the
	// plane.
	SolverMagnetostatic
)

var solverNames = [...]string{"direct", "fourier", "magnetostatic"}

func (s Solver) String() string {
	if s < 0 || int(s) >= len(solverNames) {
		return "unknown"
	}
	return solverNames[s]
}

// Next cycles through the solvers.
func (s Solver) Next() Solver {
	return (s + 1) % Solver(len(solverNames))
}

func ParseSolver(name string) (Solver, error) {
	for i, n := range solverNames {
		if strings.EqualFold(name, n) {
			return Solver(i), nil
		}
	}
	return 0, fmt.Errorf("unknown solver %q (want %s)", name, strings.Join(solverNames[:], ", "))
}

// SolverField evaluates the field chosen by s at (x, y).
func (c *Configuration) SolverField(s Solver, x, y float64) (u, v float64) {
	switch s {
	case SolverFourier:
		return c.ElectrostaticFourier(x, y)
	case SolverMagnetostatic:
		return c.MagnetostaticField(x, y)
	}
	return c.Field(x, y)
}

// Vector is one quiver sample.
type Vector struct {
	X, Y float64
	U, V float64
}

// Clamped returns the vector with its length capped at limit.
func (v Vector) Clamped(limit float64) Vector {
	if n := math.Hypot(v.U, v.V); n > limit && n > 0 {
		v.U *= limit / n
		v.V *= limit / n
	}
	return v
}

// Quiver samples the field every step units across the physical region,
// skipping points closer than step to a charge.
func (c *Configuration) Quiver(s Solver, step float64) []Vector {
	if !(step > 0) {
		return nil
	}
	var out []Vector
	for x := step; x < c.geom.XMax; x += step {
		for y := step; y < c.geom.YMax; y += step {
			if c.nearCharge(x, y, step) {
				continue
			}
			u, v := c.SolverField(s, x, y)
			out = append(out, Vector{X: x, Y: y, U: u, V: v})
		}
	}
	return out
}

func (c *Configuration) nearCharge(x, y, r float64) bool {
	for _, q := range c.charges {
		if q.DistSq(x, y) < r*r {
			return true
		}
	}
	return false
}

// MagneticLineLevels are the potential levels whose contours trace the
// magnetostatic field lines: a line current's B circles it along the
// equipotentials of a like-signed point charge.
func MagneticLineLevels() []float64 {
	levels := []float64{0}
	for e := 1.4; e <= 4.0+1e-9; e += 0.4 {
		v := math.Pow(10, e)
		levels = append(levels, v, -v)
	}
	return levels
}

// MagneticLines traces the magnetostatic field lines of the current charges.
func (c *Configuration) MagneticLines() []dynamo.Polyline {
	return c.ContoursAtLevels(MagneticLineLevels())
}
