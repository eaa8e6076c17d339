package stencil

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/geometry"
	"gonum.org/v1/gonum/floats"
)

const (
	// invertCutoff zeroes Fourier coefficients below this fraction of the
	// largest one instead of inverting them.
	invertCutoff = 1e-8

	softeningCells = 2.0
	softeningReach = 4.0
)

type Axis int

const (
	X Axis = iota
	Y
)

type Scheme int

const (
	Forward Scheme = iota
	Backward
	Central
)

func (s Scheme) String() string {
	switch s {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Central:
		return "central"
	}
	return "unknown"
}

type Engine struct {
	geom           geometry.Geometry
	delSquaredInv  [][]complex128
	softenSpectrum [][]complex128
	kernel         *dynamo.Grid
	reachX, reachY int
}

func New(geom geometry.Geometry) *Engine {
	e := &Engine{geom: geom}
	e.delSquaredInv = fft.FFT2Real(makeDelSquared(geom).Rows())
	invert(e.delSquaredInv)

	e.kernel = makeSoftening(geom)
	e.softenSpectrum = fft.FFT2Real(e.kernel.Rows())

	e.reachX = reach(geom.NX)
	e.reachY = reach(geom.NY)
	return e
}

func (e *Engine) Geometry() geometry.Geometry { return e.geom }

// Kernel returns the real-space softening kernel, centred on cell (0,0)
// with periodic wrap.
func (e *Engine) Kernel() *dynamo.Grid { return e.kernel.Clone() }

func (e *Engine) check(op string, g *dynamo.Grid) error {
	if g == nil || g.NX != e.geom.NX || g.NY != e.geom.NY {
		gx, gy := 0, 0
		if g != nil {
			gx, gy = g.NX, g.NY
		}
		return &dynamo.GridError{Op: op, WantX: e.geom.NX, WantY: e.geom.NY, GotX: gx, GotY: gy, Wrapped: dynamo.ErrDimensionMismatch}
	}
	return nil
}

// ApplyInverseLaplacian replaces g with the periodic solution of
// lap(psi) = g. The mean of g is discarded.
func (e *Engine) ApplyInverseLaplacian(g *dynamo.Grid) error {
	if err := e.check("inverse laplacian", g); err != nil {
		return err
	}
	e.convolve(g, e.delSquaredInv)
	return nil
}

// Soften convolves g with the normalized Gaussian kernel in Fourier space.
func (e *Engine) Soften(g *dynamo.Grid) error {
	if err := e.check("soften", g); err != nil {
		return err
	}
	e.convolve(g, e.softenSpectrum)
	return nil
}

func (e *Engine) convolve(g *dynamo.Grid, spectrum [][]complex128) {
	s := fft.FFT2Real(g.Rows())
	for i := range s {
		for j := range s[i] {
			s[i][j] *= spectrum[i][j]
		}
	}
	out := fft.IFFT2(s)
	for i := range out {
		for j := range out[i] {
			g.Set(i, j, real(out[i][j]))
		}
	}
}

// AddSoftenedPoint adds value times the softening kernel centred on (i, j),
// evaluated directly within a window of four standard deviations. Point
// sources are few, so this is cheaper than a transform per source.
func (e *Engine) AddSoftenedPoint(g *dynamo.Grid, i, j int, value float64) error {
	if err := e.check("softened point", g); err != nil {
		return err
	}
	nx, ny := g.NX, g.NY
	for a := -e.reachX; a <= e.reachX; a++ {
		ti := wrap(i+a, nx)
		ka := wrap(a, nx)
		for b := -e.reachY; b <= e.reachY; b++ {
			g.Add(ti, wrap(j+b, ny), value*e.kernel.At(ka, wrap(b, ny)))
		}
	}
	return nil
}

func makeDelSquared(geom geometry.Geometry) *dynamo.Grid {
	nx, ny := geom.NX, geom.NY
	dx2 := 1 / (geom.DeltaX() * geom.DeltaX())
	dy2 := 1 / (geom.DeltaY() * geom.DeltaY())

	k := dynamo.NewGrid(nx, ny)
	k.Add(0, 0, -2*dx2-2*dy2)
	k.Add(1%nx, 0, dx2)
	k.Add(nx-1, 0, dx2)
	k.Add(0, 1%ny, dy2)
	k.Add(0, ny-1, dy2)
	return k
}

func invert(s [][]complex128) {
	maxAbs := 0.0
	for i := range s {
		for j := range s[i] {
			maxAbs = math.Max(maxAbs, cmplx.Abs(s[i][j]))
		}
	}
	if maxAbs == 0 {
		return
	}
	for i := range s {
		for j := range s[i] {
			if cmplx.Abs(s[i][j]) > maxAbs*invertCutoff {
				s[i][j] = 1 / s[i][j]
			} else {
				s[i][j] = 0
			}
		}
	}
}

// makeSoftening builds a Gaussian of width softeningCells cells on each axis
// (sigma_x = 2 dx, sigma_y = 2 dy), wrapped onto the torus and normalized to
// unit total.
func makeSoftening(geom geometry.Geometry) *dynamo.Grid {
	nx, ny := geom.NX, geom.NY
	k := dynamo.NewGrid(nx, ny)
	s2 := 2 * softeningCells * softeningCells
	for i := 0; i < nx; i++ {
		a := float64(centred(i, nx))
		for j := 0; j < ny; j++ {
			b := float64(centred(j, ny))
			k.Set(i, j, math.Exp(-(a*a)/s2-(b*b)/s2))
		}
	}
	floats.Scale(1/k.Sum(), k.Data)
	return k
}

func reach(n int) int {
	r := int(softeningCells * softeningReach)
	if limit := (n - 1) / 2; r > limit {
		r = limit
	}
	return r
}

// centred maps an index onto (-n/2, n/2].
func centred(i, n int) int {
	if i > n/2 {
		return i - n
	}
	return i
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
