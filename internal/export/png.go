package export

import (
	"bufio"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/maxwell/internal/direct"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
)

// Heat selects the scalar drawn under the scene.
type Heat int

const (
	HeatPotential Heat = iota
	HeatMagZ
	HeatDensity
)

func (h Heat) String() string {
	switch h {
	case HeatPotential:
		return "potential"
	case HeatMagZ:
		return "mag_z"
	case HeatDensity:
		return "density"
	}
	return "unknown"
}

// ParseHeat maps a name from String back to its Heat.
func ParseHeat(name string) (Heat, error) {
	for _, h := range []Heat{HeatPotential, HeatMagZ, HeatDensity} {
		if h.String() == name {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown heat map %q", name)
}

type PNGOptions struct {
	Heat     Heat
	WidthIn  float64
	HeightIn float64
	DPI      int
	// Clip bounds the colour scale to [-Clip, Clip] when positive.
	Clip float64
}

func DefaultPNGOptions() PNGOptions {
	return PNGOptions{Heat: HeatPotential, WidthIn: 8, HeightIn: 6, DPI: 150}
}

// heatGrid samples the chosen scalar at the centroids of the physical cells.
type heatGrid struct {
	f      *field.Configuration
	heat   Heat
	nx, ny int
	nb     int
}

func newHeatGrid(f *field.Configuration, heat Heat) heatGrid {
	g := f.Geometry()
	return heatGrid{f: f, heat: heat, nx: g.NX - 2*g.NBoundary, ny: g.NY - 2*g.NBoundary, nb: g.NBoundary}
}

func (g heatGrid) Dims() (c, r int) { return g.nx, g.ny }

func (g heatGrid) X(c int) float64 {
	x, _ := g.f.Geometry().CellToCentroid(c+g.nb, g.nb)
	return x
}

func (g heatGrid) Y(r int) float64 {
	_, y := g.f.Geometry().CellToCentroid(g.nb, r+g.nb)
	return y
}

func (g heatGrid) Z(c, r int) float64 {
	x, y := g.X(c), g.Y(r)
	switch g.heat {
	case HeatMagZ:
		return g.f.EvaluateInterpolated(field.MagZ, x, y)
	case HeatDensity:
		return g.f.EvaluateInterpolated(field.Density, x, y)
	}
	return direct.Potential(g.f.Charges(), x, y)
}

// FieldPNG draws a heat map of f overlaid with the scene and writes it to
// path as a PNG.
func FieldPNG(path string, f *field.Configuration, s Scene, opts PNGOptions) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, %d charges", opts.Heat, len(s.Charges))
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = 0, s.XMax
	p.Y.Min, p.Y.Max = 0, s.YMax

	pal := moreland.SmoothBlueRed().Palette(255)
	hm := plotter.NewHeatMap(newHeatGrid(f, opts.Heat), pal)
	if opts.Clip > 0 {
		colors := pal.Colors()
		hm.Min, hm.Max = -opts.Clip, opts.Clip
		hm.Underflow, hm.Overflow = colors[0], colors[len(colors)-1]
	}
	p.Add(hm)

	for _, c := range s.Contours {
		line, err := plotter.NewLine(xys(c))
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.2)
		line.LineStyle.Color = color.Black
		p.Add(line)
	}
	for _, l := range s.FieldLines {
		line, err := plotter.NewLine(xys(l.Points))
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(0.8)
		line.LineStyle.Color = color.Gray{Y: 80}
		p.Add(line)
	}

	if len(s.Quiver) > 0 && s.QuiverStep > 0 {
		q := plotter.NewField(newQuiverGrid(s.Quiver, s.QuiverStep))
		q.LineStyle.Width = vg.Points(0.6)
		q.LineStyle.Color = color.Gray{Y: 40}
		p.Add(q)
	}

	if len(s.Arrows) > 0 {
		sc, err := plotter.NewScatter(xys(s.Arrows))
		if err != nil {
			return err
		}
		sc.GlyphStyle.Shape = draw.TriangleGlyph{}
		sc.GlyphStyle.Color = color.Black
		p.Add(sc)
	}

	if len(s.Charges) > 0 {
		pts := make(plotter.XYs, len(s.Charges))
		for i, q := range s.Charges {
			pts[i].X, pts[i].Y = q.X, q.Y
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(5)
		sc.GlyphStyle.Color = color.White
		p.Add(sc)
	}

	return savePNG(p, opts, path)
}

// quiverGrid lays quiver samples on their lattice for plotter.Field. Lattice
// points with no sample, those next to a charge, carry a zero vector.
type quiverGrid struct {
	step   float64
	nc, nr int
	vecs   map[[2]int]plotter.XY
}

func newQuiverGrid(vs []field.Vector, step float64) quiverGrid {
	g := quiverGrid{step: step, vecs: make(map[[2]int]plotter.XY, len(vs))}
	for _, v := range vs {
		c, r := g.index(v.X), g.index(v.Y)
		// Clamped so a few samples beside a charge do not dwarf the rest.
		v = v.Clamped(step)
		g.vecs[[2]int{c, r}] = plotter.XY{X: v.U, Y: v.V}
		g.nc, g.nr = max(g.nc, c+1), max(g.nr, r+1)
	}
	return g
}

func (g quiverGrid) index(x float64) int { return int(math.Round(x/g.step)) - 1 }

func (g quiverGrid) Dims() (c, r int) { return g.nc, g.nr }

func (g quiverGrid) X(c int) float64 { return float64(c+1) * g.step }

func (g quiverGrid) Y(r int) float64 { return float64(r+1) * g.step }

func (g quiverGrid) Vector(c, r int) plotter.XY { return g.vecs[[2]int{c, r}] }

func xys(pts []dynamo.Vec2) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, v := range pts {
		out[i].X, out[i].Y = v.X, v.Y
	}
	return out
}

func savePNG(p *plot.Plot, opts PNGOptions, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opts.WidthIn)*vg.Inch, vg.Length(opts.HeightIn)*vg.Inch),
		vgimg.UseDPI(opts.DPI),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}
