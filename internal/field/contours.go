package field

import (
	"github.com/san-kum/maxwell/internal/arrows"
	"github.com/san-kum/maxwell/internal/contour"
	"github.com/san-kum/maxwell/internal/direct"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/fieldline"
)

type contourSettings struct {
	tracer    contour.Options
	arrows    arrows.Options
	fieldline fieldline.Options
}

func defaultContourSettings() contourSettings {
	return contourSettings{
		tracer:    contour.DefaultOptions(),
		arrows:    arrows.DefaultOptions(),
		fieldline: fieldline.DefaultOptions(),
	}
}

// WithContourOptions sets the tracer thresholds used by the contour queries.
func WithContourOptions(o contour.Options) Option {
	return func(s *settings) { s.contours.tracer = o }
}

// WithArrowOptions sets the arrow placement options. Their Diagnostics
// field is replaced by the configuration's sink.
func WithArrowOptions(o arrows.Options) Option {
	return func(s *settings) { s.contours.arrows = o }
}

func WithFieldlineOptions(o fieldline.Options) Option {
	return func(s *settings) { s.contours.fieldline = o }
}

// Tracer returns a contour tracer over the direct potential of the current
// charges.
func (c *Configuration) Tracer() *contour.Tracer {
	charges := dynamo.CloneCharges(c.charges)
	t := contour.New(c.geom, direct.New(charges), charges)
	t.Options = c.contours.tracer
	t.Diagnostics = c.diag
	return t
}

func (c *Configuration) ContoursAtLevel(level float64) []dynamo.Polyline {
	return c.Tracer().AtLevel(level)
}

func (c *Configuration) ContoursAtLevels(levels []float64) []dynamo.Polyline {
	return c.Tracer().AtLevels(levels)
}

// ContoursAndArrowsAtLevels traces the contours and places direction arrows
// where they cross the lines joining paired charges.
func (c *Configuration) ContoursAndArrowsAtLevels(levels []float64) ([]dynamo.Polyline, []dynamo.Vec2) {
	contours := c.ContoursAtLevels(levels)
	opts := c.contours.arrows
	opts.Diagnostics = c.diag
	return contours, arrows.Place(contours, c.charges, opts)
}

// FieldLines traces the electric field lines of the current charges.
func (c *Configuration) FieldLines() []fieldline.Line {
	charges := dynamo.CloneCharges(c.charges)
	t := fieldline.New(c.geom, direct.New(charges))
	t.Options = c.contours.fieldline
	t.Diagnostics = c.diag
	return t.Trace(charges)
}

// Potential and Field expose the direct evaluator for the current charges.
func (c *Configuration) Potential(x, y float64) float64 {
	return direct.Potential(c.charges, x, y)
}

func (c *Configuration) Field(x, y float64) (u, v float64) {
	return direct.Field(c.charges, x, y)
}

func (c *Configuration) MagnetostaticField(x, y float64) (u, v float64) {
	return direct.MagnetostaticField(c.charges, x, y)
}
