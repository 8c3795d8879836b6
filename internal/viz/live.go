package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/render"
	"github.com/san-kum/ballsim/internal/selection"
	"github.com/san-kum/ballsim/internal/sim"
)

const (
	defaultRows     = 24
	historyCapacity = 600
	menuMarker      = '●'
)

type TickMsg time.Time

type Options struct {
	FPS    int
	Rows   int
	Theme  string
	Logger *zap.Logger
}

type menuButton struct {
	col, row int
	color    dynamo.Color
}

// Model hosts one session in the terminal. The bubbletea runtime calls
// Update and View from a single goroutine, so the session needs no lock.
type Model struct {
	session       *sim.Session
	surface       *Surface
	name          string
	interval      time.Duration
	running       bool
	showHelp      bool
	theme         Theme
	styles        Styles
	energyHistory []float64
	speedHistory  []float64
	buttons       []menuButton
	log           *zap.Logger
}

func NewModel(s *sim.Session, name string, opts Options) Model {
	rows := opts.Rows
	if rows <= 0 {
		rows = defaultRows
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		session:       s,
		surface:       NewSurface(s.Bounds(), rows),
		name:          name,
		interval:      time.Second / time.Duration(fps),
		running:       true,
		theme:         GetTheme(opts.Theme),
		styles:        NewStyles(GetTheme(opts.Theme)),
		energyHistory: make([]float64, 0, historyCapacity),
		speedHistory:  make([]float64, 0, historyCapacity),
		log:           log,
	}
	render.Frame(m.surface, s.Balls())
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		if m.running {
			m.session.Frame(m.surface)
			m.record()
		} else {
			render.Frame(m.surface, m.session.Balls())
		}
		m.drawMenu()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.session.Reset()
		m.energyHistory = m.energyHistory[:0]
		m.speedHistory = m.speedHistory[:0]
		m.log.Debug("session reset")
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = NewStyles(m.theme)
	case "esc":
		m.session.Dismiss()
	case "?":
		m.showHelp = !m.showHelp
	case "1", "2", "3":
		if c, ok := selection.PaletteIndex(int(msg.String()[0] - '0')); ok {
			m.session.CommitColor(c)
		}
	}
	render.Frame(m.surface, m.session.Balls())
	m.drawMenu()
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	col, row, ok := m.cell(msg.X, msg.Y)
	if !ok {
		return
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if c, hit := m.buttonAt(col, row); hit {
			m.session.CommitColor(c)
		} else {
			m.session.PointerDown(m.surface.ToSurface(col, row))
		}
		render.Frame(m.surface, m.session.Balls())
		m.drawMenu()
	case msg.Action == tea.MouseActionMotion:
		m.session.PointerMove(m.surface.ToSurface(col, row))
	}
}

// cell converts terminal coordinates to a canvas cell.
func (m *Model) cell(x, y int) (int, int, bool) {
	col, row := x-canvasPadLeft, y-canvasPadTop
	c := m.surface.Canvas()
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return col, row, true
}

func (m *Model) buttonAt(col, row int) (dynamo.Color, bool) {
	for _, b := range m.buttons {
		if b.col == col && b.row == row {
			return b.color, true
		}
	}
	return "", false
}

// drawMenu lays the palette out to the right of the anchor, one marker
// every other cell, shifted left when it would run off the canvas.
func (m *Model) drawMenu() {
	m.buttons = m.buttons[:0]
	ov, ok := m.session.Overlay()
	if !ok {
		return
	}
	c := m.surface.Canvas()
	col, row := m.surface.ToCell(ov.Anchor)
	start := col + 1
	if last := start + 2*(len(ov.Colors)-1); last >= c.Width {
		start -= last - c.Width + 1
	}
	start = max(start, 0)
	row = max(0, min(row, c.Height-1))
	for i, color := range ov.Colors {
		b := menuButton{col: start + 2*i, row: row, color: color}
		c.Label(b.col, b.row, menuMarker, color)
		m.buttons = append(m.buttons, b)
	}
}

func (m *Model) record() {
	balls := m.session.Balls()
	m.energyHistory = appendCapped(m.energyHistory, physics.KineticEnergy(balls))
	top := 0.0
	for _, b := range balls {
		top = max(top, b.Speed())
	}
	m.speedHistory = appendCapped(m.speedHistory, top)
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.surface.Canvas().Render(m.theme))

	var s strings.Builder
	st := m.styles
	s.WriteString(st.Title.Render(strings.ToUpper(m.name)) + "\n")
	if m.running {
		s.WriteString(st.Running.Render("RUNNING"))
	} else {
		s.WriteString(st.Paused.Render("PAUSED"))
	}
	s.WriteString(st.Muted.Render(fmt.Sprintf("  tick %d", m.session.Tick())) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString(graphStyle.Foreground(m.theme.Secondary).Render(chart) + "\n")
	} else {
		s.WriteString("\n")
	}

	metricsView := m.session.Metrics()
	names := make([]string, 0, len(metricsView))
	for name := range metricsView {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := metricsView[name]
		if name == "containment" {
			s.WriteString(st.Label.Render(name) + st.Bar(v, 12) + st.Value.Render(fmt.Sprintf(" %.0f%%", v*100)) + "\n")
			continue
		}
		s.WriteString(st.Label.Render(name) + st.Value.Render(fmt.Sprintf("%.3f", v)) + "\n")
	}
	s.WriteString(st.Label.Render("speed") + st.Spark(m.speedHistory, 24) + "\n\n")

	s.WriteString(m.viewSelection() + "\n")
	s.WriteString(st.Rule(36) + "\n")
	s.WriteString(st.Hint.Render("SP:Pause R:Reset T:Theme Q:Quit\n1-3:Color ESC:Close ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m Model) viewSelection() string {
	i, ok := m.session.Selected()
	if !ok {
		return m.styles.Muted.Render("click a ball to recolor it")
	}
	var b strings.Builder
	b.WriteString(m.styles.Label.Render(fmt.Sprintf("ball #%d", i)) + "\n")
	for n, c := range selection.Palette {
		swatch := lipgloss.NewStyle().Foreground(m.theme.BallColor(c)).Render(string(menuMarker) + " " + string(c))
		b.WriteString(fmt.Sprintf("[%d]%s ", n+1, swatch))
	}
	return b.String()
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Move to push balls away  ║
║  Click    - Open color menu on ball  ║
║  1 2 3    - Red / Green / Blue       ║
║  Esc      - Close color menu         ║
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts a full-screen program with mouse motion reporting.
func Run(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
