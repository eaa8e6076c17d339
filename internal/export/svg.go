package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/maxwell/internal/dynamo"
)

const (
	contourStroke   = "#00ffcc"
	fieldlineStroke = "#ffcc00"
	quiverStroke    = "#aaaaaa"
	positiveFill    = "#ff4444"
	negativeFill    = "#4488ff"
)

// SceneSVG renders a scene at width x height pixels, y pointing up.
func SceneSVG(s Scene, width, height int) string {
	sx := float64(width) / s.XMax
	sy := float64(height) / s.YMax
	project := func(p dynamo.Vec2) (float64, float64) {
		return p.X * sx, float64(height) - p.Y*sy
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	path := func(poly dynamo.Polyline, stroke string) {
		if len(poly) < 2 {
			return
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
		for i, p := range poly {
			x, y := project(p)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	for _, c := range s.Contours {
		path(c, contourStroke)
	}
	for _, l := range s.FieldLines {
		path(l.Points, fieldlineStroke)
		if len(l.Points) > 1 {
			x, y := project(l.Arrow)
			// SVG rotates clockwise with y down.
			deg := -l.ArrowAngle * 180 / math.Pi
			fmt.Fprintf(&sb, `<path fill="%s" d="M6,0 L-4,4 L-4,-4 Z" transform="translate(%.1f,%.1f) rotate(%.1f)"/>`+"\n",
				fieldlineStroke, x, y, deg)
		}
	}
	for _, v := range s.Quiver {
		// Centred on the sample, no longer than the lattice pitch.
		v = v.Clamped(s.QuiverStep)
		x0, y0 := project(dynamo.Vec2{X: v.X - v.U/2, Y: v.Y - v.V/2})
		x1, y1 := project(dynamo.Vec2{X: v.X + v.U/2, Y: v.Y + v.V/2})
		if x0 == x1 && y0 == y1 {
			continue
		}
		deg := math.Atan2(y1-y0, x1-x0) * 180 / math.Pi
		fmt.Fprintf(&sb, `<g class="quiver"><line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`, x0, y0, x1, y1, quiverStroke)
		fmt.Fprintf(&sb, `<path fill="%s" d="M0,0 L-4,2 L-4,-2 Z" transform="translate(%.1f,%.1f) rotate(%.1f)"/></g>`+"\n",
			quiverStroke, x1, y1, deg)
	}
	for _, a := range s.Arrows {
		x, y := project(a)
		fmt.Fprintf(&sb, `<circle class="arrow" cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x, y, contourStroke)
	}
	for _, q := range s.Charges {
		x, y := project(q.Pos())
		fill := positiveFill
		if q.Strength < 0 {
			fill = negativeFill
		}
		fmt.Fprintf(&sb, `<circle class="charge" cx="%.1f" cy="%.1f" r="8" fill="%s" stroke="#ffffff"/>`+"\n", x, y, fill)
	}

	sb.WriteString("</svg>")
	return sb.String()
}
