package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/maxwell/internal/diag"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/metrics"
	"github.com/san-kum/maxwell/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

type TickMsg time.Time

// LiveConfig describes what the live view shows.
type LiveConfig struct {
	Name   string
	Dt     float64
	Levels []float64
	Probe  dynamo.Vec2
	Theme  string
	// Diagnostics, if set, should be the counter the field records into.
	Diagnostics *diag.Counter
}

// Model steps a session every frame and draws its contours, arrows, field
// lines and charges on a braille canvas.
type Model struct {
	session *sim.Session
	cfg     LiveConfig
	t       float64

	canvas *Canvas
	view   Viewport
	theme  Theme

	running       bool
	showLines     bool
	showHelp      bool
	levelScale    float64
	nContours     int
	nArrows       int
	probeHistory  []float64
	energyHistory []float64
	err           error
}

func NewModel(s *sim.Session, cfg LiveConfig) Model {
	if !(cfg.Dt > 0) {
		cfg.Dt = sim.DefaultConfig().Dt
	}
	g := s.Field().Geometry()
	c := NewCanvas(width, height)
	return Model{
		session:       s,
		cfg:           cfg,
		canvas:        c,
		view:          NewViewport(c, g.XMax, g.YMax),
		theme:         GetTheme(cfg.Theme),
		running:       true,
		levelScale:    1,
		probeHistory:  make([]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "f":
			m.showLines = !m.showLines
		case "t":
			m.theme = nextTheme(m.theme)
		case "+", "=":
			m.levelScale *= 1.25
		case "-":
			m.levelScale *= 0.8
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.t += m.cfg.Dt
	if err := m.session.Step(m.t, m.cfg.Dt); err != nil {
		m.err = err
		m.running = false
		return
	}

	f := m.session.Field()
	m.probeHistory = pushCapped(m.probeHistory, f.MagInterpolated(m.cfg.Probe.X, m.cfg.Probe.Y))
	m.energyHistory = pushCapped(m.energyHistory, metrics.FieldEnergyOf(f))
}

func pushCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m *Model) reset() {
	m.t = 0
	m.session.Field().SetCharges(m.session.ChargesAt(0))
	m.session.Field().Reset()
	m.probeHistory = m.probeHistory[:0]
	m.energyHistory = m.energyHistory[:0]
	m.err = nil
}

func (m *Model) levels() []float64 {
	out := make([]float64, len(m.cfg.Levels))
	for i, l := range m.cfg.Levels {
		out[i] = l * m.levelScale
	}
	return out
}

// draw renders the current frame. Contours and arrows come first so the
// charge markers stay visible on top.
func (m *Model) draw() {
	m.canvas.Clear()
	f := m.session.Field()

	contours, arrows := f.ContoursAndArrowsAtLevels(m.levels())
	m.nContours, m.nArrows = len(contours), len(arrows)
	for _, c := range contours {
		m.view.DrawPolyline(c)
	}
	for _, a := range arrows {
		m.view.DrawMarker(a, 1)
	}
	if m.showLines {
		for _, l := range f.FieldLines() {
			m.view.DrawPolyline(l.Points)
		}
	}
	for _, q := range f.Charges() {
		m.view.DrawMarker(q.Pos(), 3)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Foreground(m.theme.Contour).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.cfg.Name)) + "\n")
	if m.err != nil {
		s.WriteString(StatusPaused.Render("STOPPED: "+m.err.Error()) + "\n\n")
	} else if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.probeHistory) > 1 {
		chart := asciigraph.Plot(m.probeHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Bz at probe"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2f", m.t))
	energy := 0.0
	if n := len(m.energyHistory); n > 0 {
		energy = m.energyHistory[n-1]
	}
	row("Energy", fmt.Sprintf("%.4g", energy))
	row("Contours", fmt.Sprintf("%d", m.nContours))
	row("Arrows", fmt.Sprintf("%d", m.nArrows))
	row("Levels", fmt.Sprintf("x%.2f", m.levelScale))
	if m.cfg.Diagnostics != nil {
		row("Warnings", fmt.Sprintf("%d", m.cfg.Diagnostics.Count()))
	}
	s.WriteString("\n" + SparklineChart(m.energyHistory, 30) + "\n")

	s.WriteString("\nCHARGES\n")
	for _, q := range m.session.Field().Charges() {
		color := m.theme.Positive
		if q.Strength < 0 {
			color = m.theme.Negative
		}
		s.WriteString(lipgloss.NewStyle().Foreground(color).Render("  "+q.String()) + "\n")
	}

	s.WriteString("\n" + Separator(30) + "\n")
	s.WriteString(KeyHint.Render("SP:Pause R:Reset Q:Quit\nF:Lines  T:Theme  +/-:Levels ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset to t = 0           ║
║  F        - Toggle field lines       ║
║  T        - Cycle themes             ║
║  + / -    - Scale contour levels     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the live view and blocks until the user quits.
func Run(s *sim.Session, cfg LiveConfig) error {
	_, err := tea.NewProgram(NewModel(s, cfg), tea.WithAltScreen()).Run()
	return err
}

