package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	historyCapacity = 600
	graphWidth      = 60
	graphHeight     = 8
	maxBodyRows     = 12
)

type TickMsg time.Time

// Monitor is the Bubble Tea model. The simulation is shared by pointer
// so value copies made by the runtime all drive the same bodies.
type Monitor struct {
	sim      *sim.Simulation
	initial  []*body.Mass
	title    string
	dt       float64
	interval time.Duration
	running  bool

	energyHistory   []float64
	momentumHistory []float64
	p0              r2.Vec
}

// NewMonitor watches s, ticking it by dt once per interval.
func NewMonitor(s *sim.Simulation, title string, dt float64, interval time.Duration) Monitor {
	if interval <= 0 {
		interval = time.Second / 60
	}
	m := Monitor{
		sim:             s,
		initial:         cloneBodies(s.Bodies()),
		title:           title,
		dt:              dt,
		interval:        interval,
		running:         true,
		energyHistory:   make([]float64, 0, historyCapacity),
		momentumHistory: make([]float64, 0, historyCapacity),
	}
	m.record()
	return m
}

func cloneBodies(bodies []*body.Mass) []*body.Mass {
	out := make([]*body.Mass, len(bodies))
	for i, b := range bodies {
		out[i] = b.Clone()
	}
	return out
}

func (m Monitor) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Monitor) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.sim.Step(m.dt) {
			m.record()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Monitor) record() {
	bodies := m.sim.Bodies()
	opts := m.sim.Options()

	m.energyHistory = appendCapped(m.energyHistory, metrics.TotalEnergy(bodies, opts.G, opts.Softening))

	p := metrics.Momentum(bodies)
	if len(m.momentumHistory) == 0 {
		m.p0 = p
	}
	m.momentumHistory = appendCapped(m.momentumHistory, r2.Norm(r2.Sub(p, m.p0)))
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset restores the initial bodies and clears the history.
func (m *Monitor) reset() {
	m.sim.Reset(cloneBodies(m.initial))
	m.energyHistory = m.energyHistory[:0]
	m.momentumHistory = m.momentumHistory[:0]
	m.record()
}

func (m Monitor) Running() bool { return m.running }

// View renders the TUI interface.
func (m Monitor) View() string {
	var s strings.Builder
	bodies := m.sim.Bodies()
	opts := m.sim.Options()

	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("model", string(m.sim.Model().Name()))
	row("tick", fmt.Sprintf("%d", m.sim.Steps()))
	row("time", fmt.Sprintf("%.3f", m.sim.Time()))
	row("energy", fmt.Sprintf("%.6g", metrics.TotalEnergy(bodies, opts.G, opts.Softening)))
	p := metrics.Momentum(bodies)
	row("momentum", fmt.Sprintf("(%.4g, %.4g)", p.X, p.Y))
	row("|Δp|", SparklineChart(m.momentumHistory, 30))

	if len(m.energyHistory) > 1 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("total energy"),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}

	s.WriteString("\n")
	for i, b := range bodies {
		if i == maxBodyRows {
			s.WriteString(fmt.Sprintf("  ... %d more\n", len(bodies)-maxBodyRows))
			break
		}
		swatch := lipgloss.NewStyle().Foreground(BodyColor(b.Color)).Render("●")
		s.WriteString(fmt.Sprintf("%s %2d  m=%-7.4g pos=(%8.2f, %8.2f) vel=(%7.3f, %7.3f)\n",
			swatch, i, b.Mass, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y))
	}

	s.WriteString(helpStyle.Render("space pause • r reset • q quit"))
	return s.String()
}

// Run starts the monitor and blocks until the user quits.
func Run(m Monitor) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
