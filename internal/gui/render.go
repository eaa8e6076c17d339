package gui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
)

func (a *App) drawHeat(screen *ebiten.Image) {
	f := a.Session.Field()
	clip := autoClip(f, a.HeatKind, heatFloor)
	pix, w, h := heatPixels(f, a.HeatKind, clip)

	if a.heat == nil || a.heat.Bounds().Dx() != w || a.heat.Bounds().Dy() != h {
		a.heat = ebiten.NewImage(w, h)
	}
	a.heat.WritePixels(pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.view.w)/float64(w), float64(a.view.h)/float64(h))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(a.heat, op)
}

func (a *App) strokePolyline(screen *ebiten.Image, poly dynamo.Polyline, width float32, col color.Color) {
	for i := 0; i+1 < len(poly); i++ {
		x1, y1 := a.view.toScreen(poly[i])
		x2, y2 := a.view.toScreen(poly[i+1])
		vector.StrokeLine(screen, x1, y1, x2, y2, width, col, true)
	}
}

func (a *App) drawContours(screen *ebiten.Image) {
	for _, poly := range a.contours {
		a.strokePolyline(screen, poly, 1.5, ColContour)
	}
	for _, p := range a.arrows {
		x, y := a.view.toScreen(p)
		vector.DrawFilledCircle(screen, x, y, 2.5, ColContour, true)
	}
}

func (a *App) drawQuiver(screen *ebiten.Image) {
	pitch := a.quiverPitch()
	for _, v := range a.quiver {
		tail, tip := quiverSegment(v, pitch)
		x0, y0 := a.view.toScreen(tail)
		x1, y1 := a.view.toScreen(tip)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, ColQuiver, true)

		// Head a fifth of the shaft, at 30 degrees either side.
		dx, dy := float64(x1-x0), float64(y1-y0)
		head := 0.2 * math.Hypot(dx, dy)
		angle := math.Atan2(dy, dx)
		for _, da := range []float64{math.Pi / 6, -math.Pi / 6} {
			hx := x1 - float32(head*math.Cos(angle+da))
			hy := y1 - float32(head*math.Sin(angle+da))
			vector.StrokeLine(screen, x1, y1, hx, hy, 1, ColQuiver, true)
		}
	}
}

func (a *App) drawFieldLines(screen *ebiten.Image) {
	for _, poly := range a.magLines {
		a.strokePolyline(screen, poly, 1, ColLine)
	}
	for _, l := range a.lines {
		a.strokePolyline(screen, l.Points, 1, ColLine)
		if len(l.Points) < 2 {
			continue
		}

		// Screen y points down, so the heading flips sign.
		x, y := a.view.toScreen(l.Arrow)
		angle := -l.ArrowAngle
		const headLen = 6.0
		for _, da := range []float64{0.6, -0.6} {
			hx := x - float32(headLen*math.Cos(angle+da))
			hy := y - float32(headLen*math.Sin(angle+da))
			vector.StrokeLine(screen, x, y, hx, hy, 1, ColLine, true)
		}
	}
}

func (a *App) drawCharges(screen *ebiten.Image) {
	if a.Solver == field.SolverMagnetostatic {
		a.drawCurrents(screen)
		return
	}
	for _, q := range a.Session.Field().Charges() {
		x, y := a.view.toScreen(q.Pos())
		col := ColPositive
		if q.Strength < 0 {
			col = ColNegative
		}
		vector.DrawFilledCircle(screen, x, y, chargeRadius, col, true)
	}
}

// drawCurrents marks each charge as a line current: a dot for current out
// of the screen, a cross for current into it.
func (a *App) drawCurrents(screen *ebiten.Image) {
	const r float32 = chargeRadius
	for _, q := range a.Session.Field().Charges() {
		x, y := a.view.toScreen(q.Pos())
		vector.DrawFilledCircle(screen, x, y, r, color.White, true)
		vector.StrokeCircle(screen, x, y, r, 1, ColTextDim, true)
		switch {
		case q.Strength > 0:
			vector.DrawFilledCircle(screen, x, y, r/4, color.Black, true)
		case q.Strength < 0:
			vector.StrokeLine(screen, x-r/2, y-r/2, x+r/2, y+r/2, 1, color.Black, true)
			vector.StrokeLine(screen, x+r/2, y-r/2, x-r/2, y+r/2, 1, color.Black, true)
		}
	}
}
