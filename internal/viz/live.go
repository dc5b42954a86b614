package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/isocontour/internal/config"
	"github.com/san-kum/isocontour/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	isoStep         = 0.05
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives a Simulation at 60 ticks per second and draws its contour.
type Model struct {
	cfg           *config.Config
	sim           *sim.Simulation
	logger        *slog.Logger
	canvas        *Canvas
	overlay       *Canvas
	running       bool
	showHelp      bool
	showParticles bool
	segHistory    []float64
	lenHistory    []float64
	err           error
}

func NewModel(cfg *config.Config, logger *slog.Logger) (Model, error) {
	s, err := sim.New(cfg, sim.WithLogger(logger))
	if err != nil {
		return Model{}, err
	}
	m := Model{
		cfg:           cfg,
		sim:           s,
		logger:        logger,
		canvas:        NewCanvas(width, height),
		overlay:       NewCanvas(width, height),
		running:       true,
		showParticles: true,
		segHistory:    make([]float64, 0, historyCapacity),
		lenHistory:    make([]float64, 0, historyCapacity),
	}
	m.draw()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "i":
			m.sim.SetInterpolated(!m.sim.Extractor().Interpolated())
		case "+", "=":
			m.sim.SetIsolevel(m.sim.Extractor().Isolevel() + isoStep)
		case "-", "_":
			m.sim.SetIsolevel(m.sim.Extractor().Isolevel() - isoStep)
		case "p":
			m.showParticles = !m.showParticles
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
		m.draw()
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	f := m.sim.Step()
	m.segHistory = pushCapped(m.segHistory, float64(f.Segments))
	m.lenHistory = pushCapped(m.lenHistory, f.Length)
}

func pushCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset rebuilds the simulation from its configuration, keeping the
// current isolevel and interpolation mode.
func (m *Model) reset() {
	iso := m.sim.Extractor().Isolevel()
	interp := m.sim.Extractor().Interpolated()

	s, err := sim.New(m.cfg, sim.WithLogger(m.logger))
	if err != nil {
		m.err = err
		return
	}
	s.SetIsolevel(iso)
	s.SetInterpolated(interp)
	m.sim = s
	m.segHistory = m.segHistory[:0]
	m.lenHistory = m.lenHistory[:0]
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.overlay.Clear()

	m.canvas.Viewport(m.cfg.Width, m.cfg.Height).DrawSegments(m.sim.Extractor().Points())

	if pf := m.sim.Particles(); m.showParticles && pf != nil {
		vp := m.overlay.Viewport(m.cfg.Width, m.cfg.Height)
		for _, p := range pf.Particles {
			vp.DrawCircle(p.Position, p.Radius)
		}
	}
}

// renderCanvas merges the contour and particle layers, colouring each cell
// by the layer it belongs to; the contour wins where both are set.
func (m Model) renderCanvas() string {
	contour := fg(CurrentTheme.Contour)
	particle := fg(CurrentTheme.Particle)

	var b strings.Builder
	for row := range m.canvas.Grid {
		for col, r := range m.canvas.Grid[row] {
			o := m.overlay.Grid[row][col]
			switch {
			case r != brailleBlank:
				b.WriteString(contour.Render(string(r | o)))
			case o != brailleBlank:
				b.WriteString(particle.Render(string(o)))
			default:
				b.WriteRune(brailleBlank)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m Model) View() string {
	ex := m.sim.Extractor()
	theme := CurrentTheme

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(theme.Accent).Render(strings.ToUpper(m.cfg.Source)) + "\n")

	if m.running {
		s.WriteString(fg(theme.Running).Bold(true).Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(fg(theme.Paused).Bold(true).Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Step", fmt.Sprintf("%d", m.sim.StepCount()))
	row("Isolevel", fmt.Sprintf("%.2f", ex.Isolevel()))
	row("Interp", fmt.Sprintf("%v", ex.Interpolated()))
	row("Grid", fmt.Sprintf("%d²", m.sim.Grid().Resolution()))
	row("Segments", fmt.Sprintf("%d", ex.SegmentCount()))
	row("Length", fmt.Sprintf("%.1f", ex.Length()))
	if pf := m.sim.Particles(); pf != nil {
		row("Energy", fmt.Sprintf("%.1f", pf.Energy()))
	}

	s.WriteString("\n" + Sparkline(m.segHistory, 30) + "\n")
	if len(m.lenHistory) > 1 {
		chart := asciigraph.Plot(m.lenHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Length"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString(fg(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause N:Step R:Reset\n+/-:Iso I:Interp P:Discs\nT:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.renderCanvas()), statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  N        - Single step when paused  ║
║  R        - Reset simulation         ║
║  + / -    - Raise/lower isolevel     ║
║  I        - Toggle interpolation     ║
║  P        - Toggle particle discs    ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
