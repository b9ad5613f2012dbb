package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/entropylost/fracture2d/internal/experiment"
	"github.com/entropylost/fracture2d/internal/physics"
	"github.com/entropylost/fracture2d/internal/scene"
	"github.com/guptarohit/asciigraph"
)

const (
	width           = 50
	height          = 25
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model steps one experiment frame per UI tick and renders the unit box
// onto a braille canvas with a stats sidebar.
type Model struct {
	exp           *experiment.Experiment
	canvas        *Canvas
	width, height int
	running       bool
	diverged      bool
	damageHistory []float64
	showHelp      bool
}

// NewModel wraps a built experiment for interactive stepping.
func NewModel(exp *experiment.Experiment) Model {
	m := Model{
		exp:           exp,
		canvas:        NewCanvas(width, height),
		width:         width,
		height:        height,
		running:       true,
		damageHistory: make([]float64, 0, historyCapacity),
	}
	m.draw()
	return m
}

// tick schedules the next frame at the configured display rate.
func (m Model) tick() tea.Cmd {
	interval := time.Duration(float64(time.Second) / m.exp.Config().FPS)
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.diverged {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.diverged {
			m.step()
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

// step advances the world by one batch of sub-steps and samples damage.
func (m *Model) step() {
	st := m.exp.Stepper()
	st.Frame()
	if !st.World().IsValid() {
		m.diverged = true
		m.running = false
		return
	}
	m.damageHistory = append(m.damageHistory, st.World().Damage())
	if len(m.damageHistory) > historyCapacity {
		m.damageHistory = m.damageHistory[1:]
	}
}

// reset rebuilds the scene from the stored config, discarding accumulated
// damage and motion.
func (m *Model) reset() {
	if err := m.exp.Reset(); err != nil {
		return
	}
	m.damageHistory = m.damageHistory[:0]
	m.diverged = false
	m.running = true
}

// draw renders particles and cracks onto the canvas. Movable particles are
// filled discs, walls single dots, broken bonds lines between endpoints.
func (m *Model) draw() {
	m.canvas.Clear()
	snap := m.exp.Stepper().Snapshot()
	groups := m.exp.Scene().Groups
	cw, ch := m.width*2, m.height*4

	toPixel := func(v physics.Vec2) (int, int) {
		return int(v.X * float64(cw-1)), int((1 - v.Y) * float64(ch-1))
	}

	for i, p := range snap.Particles {
		x, y := toPixel(p.Position)
		if groups[i] == scene.WallGroup {
			m.canvas.Set(x, y)
			continue
		}
		m.canvas.FillCircle(x, y, int(p.Radius*float64(cw-1)))
	}

	// Double-drawing a crack whose mirrored record also broke is harmless
	// on a bitmap.
	for _, p := range snap.Particles {
		x, y := toPixel(p.Position)
		for _, b := range p.Bonds {
			if !b.Broken {
				continue
			}
			ex, ey := toPixel(snap.Particles[b.Endpoint].Position)
			m.canvas.DrawLine(x, y, ex, ey)
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())
	st := m.exp.Stepper()
	w := st.World()

	status := StatusRunning.Render("RUNNING")
	if m.diverged {
		status = StatusDiverged.Render("DIVERGED")
	} else if !m.running {
		status = StatusPaused.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.exp.Config().Scene)) + "\n")
	s.WriteString(status + "\n\n")
	if len(m.damageHistory) > 1 {
		chart := asciigraph.Plot(m.damageHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Damage"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4fs", st.Time())) + "\n")
	s.WriteString(labelStyle.Render("Sub-step") + valueStyle.Render(fmt.Sprintf("%d", st.Step())) + "\n")
	s.WriteString(labelStyle.Render("Dt") + valueStyle.Render(fmt.Sprintf("%.3e s", st.Dt())) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(w.Particles))) + "\n")
	s.WriteString(labelStyle.Render("Bonds") + valueStyle.Render(fmt.Sprintf("%d broken / %d", w.BrokenBondCount(), w.BondCount())) + "\n")
	s.WriteString(labelStyle.Render("Kinetic") + valueStyle.Render(fmt.Sprintf("%.4f", w.KineticEnergy())) + "\n")
	s.WriteString("\n")
	s.WriteString(labelStyle.Render("Damage") + ProgressBar(w.Damage(), 20) + valueStyle.Render(fmt.Sprintf(" %.1f%%", w.Damage()*100)) + "\n")
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Rebuild the scene        ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
