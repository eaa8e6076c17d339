// Package gui is the windowed front end: charges are placed and dragged
// with the mouse while the solver runs.
package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/san-kum/maxwell/internal/diag"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/field"
	"github.com/san-kum/maxwell/internal/fieldline"
	"github.com/san-kum/maxwell/internal/motion"
	"github.com/san-kum/maxwell/internal/sim"
)

var (
	ColBg       = color.RGBA{10, 10, 10, 255}
	ColContour  = color.RGBA{0, 255, 204, 255}
	ColLine     = color.RGBA{255, 255, 255, 160}
	ColQuiver   = color.RGBA{170, 170, 170, 200}
	ColPositive = color.RGBA{255, 80, 80, 255}
	ColNegative = color.RGBA{80, 80, 255, 255}
	ColText     = color.RGBA{200, 200, 200, 255}
	ColTextDim  = color.RGBA{110, 110, 110, 255}
)

const (
	chargeRadius = 7
	// pickRadius is in screen pixels.
	pickRadius = 12
	// heatFloor keeps a quiet field from being stretched to full colour.
	heatFloor = 1e-3
	// quiverSpacing is the quiver lattice pitch in screen pixels.
	quiverSpacing = 20
)

type Config struct {
	Title         string
	Width, Height int
	Dt            float64
	StepsPerFrame int
	Levels        []float64
	Diagnostics   *diag.Counter
}

type App struct {
	Session     *sim.Session
	Config      Config
	Time        float64
	Running     bool
	ShowLines   bool
	ShowHeat    bool
	ShowQuiver  bool
	Solver      field.Solver
	HeatKind    field.Kind
	LevelScale  float64
	Telemetry   []float64 // recent probe samples, for the HUD
	MaxHistory  int
	view        view
	heat        *ebiten.Image
	dragging    int
	contours    []dynamo.Polyline
	arrows      []dynamo.Vec2
	lines       []fieldline.Line
	magLines    []dynamo.Polyline
	quiver      []field.Vector
	initialBase []dynamo.Charge
	initialMove []motion.Motion
}

func NewApp(s *sim.Session, cfg Config) *App {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	if cfg.StepsPerFrame <= 0 {
		cfg.StepsPerFrame = 1
	}
	g := s.Field().Geometry()
	a := &App{
		Session:     s,
		Config:      cfg,
		Running:     true,
		ShowHeat:    true,
		HeatKind:    field.MagZ,
		LevelScale:  1,
		MaxHistory:  200,
		view:        view{w: cfg.Width, h: cfg.Height, xMax: g.XMax, yMax: g.YMax},
		dragging:    -1,
		initialBase: s.Base(),
		initialMove: s.Motions(),
	}
	a.syncCharges()
	return a
}

// Run opens the window and blocks until it is closed.
func Run(s *sim.Session, cfg Config) error {
	a := NewApp(s, cfg)
	ebiten.SetWindowSize(a.Config.Width, a.Config.Height)
	ebiten.SetWindowTitle(a.Config.Title)
	return ebiten.RunGame(a)
}

// syncCharges pushes the charges at the current time into the field and
// retraces the overlays.
func (a *App) syncCharges() {
	f := a.Session.Field()
	f.SetCharges(a.Session.ChargesAt(a.Time))
	if err := f.EnsureInitialized(); err != nil {
		dynamo.Recordf(a.Config.Diagnostics, "sync charges: %v", err)
	}
	a.retrace()
}

func (a *App) retrace() {
	f := a.Session.Field()
	a.contours, a.arrows = f.ContoursAndArrowsAtLevels(a.levels())
	a.lines, a.magLines, a.quiver = nil, nil, nil
	if a.ShowLines {
		if a.Solver == field.SolverMagnetostatic {
			a.magLines = f.MagneticLines()
		} else {
			a.lines = f.FieldLines()
		}
	}
	if a.ShowQuiver {
		a.quiver = f.Quiver(a.Solver, a.quiverPitch())
	}
}

// quiverPitch is quiverSpacing screen pixels in world units.
func (a *App) quiverPitch() float64 {
	return quiverSpacing * a.view.xMax / float64(a.view.w)
}

func (a *App) levels() []float64 {
	out := make([]float64, len(a.Config.Levels))
	for i, l := range a.Config.Levels {
		out[i] = l * a.LevelScale
	}
	return out
}

func (a *App) reset() {
	a.Time = 0
	a.Telemetry = a.Telemetry[:0]
	a.Session.Replace(a.initialBase, a.initialMove)
	a.Session.Field().Reset()
	a.syncCharges()
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.Running = !a.Running
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		a.ShowLines = !a.ShowLines
		a.retrace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.Solver = a.Solver.Next()
		a.retrace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		a.ShowQuiver = !a.ShowQuiver
		a.retrace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.ShowHeat = !a.ShowHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.HeatKind = nextHeatKind(a.HeatKind)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		a.LevelScale *= 1.25
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		a.LevelScale /= 1.25
	}

	edited := a.handleMouse()

	if a.Running {
		for i := 0; i < a.Config.StepsPerFrame; i++ {
			if err := a.Session.Step(a.Time, a.Config.Dt); err != nil {
				return err
			}
			a.Time += a.Config.Dt
		}
		edited = true
	}
	if edited {
		a.retrace()
	}

	a.Telemetry = append(a.Telemetry, a.Session.Field().Grids().Get(a.HeatKind).MaxAbs())
	if len(a.Telemetry) > a.MaxHistory {
		a.Telemetry = a.Telemetry[1:]
	}
	return nil
}

// handleMouse places, drags and deletes charges. Left click on empty space
// adds +1, right click adds -1, and middle click removes the charge under
// the cursor.
func (a *App) handleMouse() bool {
	px, py := ebiten.CursorPosition()
	if !a.view.contains(px, py) {
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			a.dragging = -1
		}
		return false
	}
	p := a.view.toWorld(px, py)
	radius := pickRadius * a.view.xMax / float64(a.view.w)
	under := pick(a.Session.ChargesAt(a.Time), p, radius)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if under >= 0 {
			a.dragging = under
			return false
		}
		a.Session.AddCharge(dynamo.Charge{X: p.X, Y: p.Y, Strength: 1})
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		a.Session.AddCharge(dynamo.Charge{X: p.X, Y: p.Y, Strength: -1})
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
		if !a.Session.RemoveCharge(under) {
			return false
		}
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		a.dragging = -1
		return false
	case a.dragging >= 0 && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		a.Session.MoveCharge(a.dragging, p.X, p.Y)
	default:
		return false
	}

	a.Session.Field().SetCharges(a.Session.ChargesAt(a.Time))
	return true
}

func nextHeatKind(k field.Kind) field.Kind {
	switch k {
	case field.MagZ:
		return field.Density
	case field.Density:
		return field.ElecX
	case field.ElecX:
		return field.ElecY
	}
	return field.MagZ
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(ColBg)
	if a.ShowHeat {
		a.drawHeat(screen)
	}
	a.drawContours(screen)
	a.drawQuiver(screen)
	a.drawFieldLines(screen)
	a.drawCharges(screen)
	a.DrawHUD(screen)
}

func (a *App) DrawHUD(screen *ebiten.Image) {
	face := basicfont.Face7x13
	state := "RUNNING"
	if !a.Running {
		state = "PAUSED"
	}
	text.Draw(screen, fmt.Sprintf("%s  t=%.1f  charges=%d  contours=%d", state, a.Time, len(a.Session.Base()), len(a.contours)), face, 10, 20, ColText)

	heat := "off"
	if a.ShowHeat {
		heat = a.HeatKind.String()
	}
	status := fmt.Sprintf("levels x%.2f  heat=%s  solver=%s", a.LevelScale, heat, a.Solver)
	if a.Config.Diagnostics != nil {
		status += fmt.Sprintf("  diagnostics=%d", a.Config.Diagnostics.Count())
	}
	text.Draw(screen, status, face, 10, 38, ColText)

	text.Draw(screen, "L: +q  R: -q  drag: move  M-click: delete  SPACE F S V H M +/- R Q", face, 10, a.view.h-12, ColTextDim)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.view.w, a.view.h
}
