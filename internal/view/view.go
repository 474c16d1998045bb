// Package view is the terminal front end of the benchmark: a bubbletea
// program that drives the engine one tick per animation frame and renders the
// swarm on a braille canvas. It is a consumer of the engine, never the other
// way around.
package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravbench/internal/engine"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	frameRate    = 60
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	// Heat colors for the stress readout, cool to critical.
	stressColors = []lipgloss.Color{"46", "118", "226", "208", "196"}
)

type TickMsg time.Time

// Model drives one Benchmark and implements its render surface. Ticks arrive
// on the bubbletea event loop, so engine access is single-goroutine by
// construction.
type Model struct {
	bench     *engine.Benchmark
	canvas    *Canvas
	ready     bool
	autoStart bool
	startErr  error
}

// NewModel builds the TUI and its benchmark; the model itself is the
// benchmark's render surface.
func NewModel(params engine.Params, autoStart bool) *Model {
	m := &Model{
		canvas:    NewCanvas(canvasWidth, canvasHeight),
		autoStart: autoStart,
	}
	m.bench = engine.New(params, m)
	return m
}

// Bench exposes the underlying benchmark for attaching observers.
func (m *Model) Bench() *engine.Benchmark { return m.bench }

// Ready implements engine.Surface. The surface becomes drawable once the
// program has received its first window size.
func (m *Model) Ready() bool { return m.ready }

// Size implements engine.Surface in canvas sub-pixels.
func (m *Model) Size() (int, int) { return canvasWidth * 2, canvasHeight * 4 }

// Draw implements engine.Surface: project every body's x/y onto the canvas.
// The frame is a borrow, consumed entirely within this call.
func (m *Model) Draw(f engine.Frame) {
	m.canvas.Clear()
	bound := m.bench.Params().BoundaryDistance
	scaleX := float64(f.Width) / (2 * bound)
	scaleY := float64(f.Height) / (2 * bound)
	for i := range f.Bodies {
		b := &f.Bodies[i]
		x := int((b.Pos.X + bound) * scaleX)
		y := int((b.Pos.Y + bound) * scaleY)
		m.canvas.Set(x, y)
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		if m.autoStart && m.bench.State() != engine.StateRunning {
			m.autoStart = false
			m.startErr = m.bench.Start()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.bench.Cancel()
			return m, tea.Quit
		case "s":
			m.startErr = m.bench.Start()
		case "c":
			m.bench.Cancel()
		}
		return m, nil

	case TickMsg:
		m.bench.Tick()
		return m, tick()
	}

	return m, nil
}

func (m *Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("GRAVBENCH") + "\n\n")

	switch m.bench.State() {
	case engine.StateIdle:
		s.WriteString("press s to start the benchmark\n")
		if m.startErr != nil {
			s.WriteString(fmt.Sprintf("start failed: %v\n", m.startErr))
		}
		s.WriteString(helpStyle.Render("s:Start Q:Quit"))
		return s.String()

	case engine.StateRunning:
		s.WriteString(m.statsView())
		s.WriteString(helpStyle.Render("c:Cancel Q:Quit"))
		stats := s.String()
		return lipgloss.JoinHorizontal(lipgloss.Top,
			canvasStyle.Render(m.canvas.String()), stats)

	default:
		s.WriteString(m.resultsView())
		s.WriteString(helpStyle.Render("s:Run again Q:Quit"))
		return s.String()
	}
}

func (m *Model) statsView() string {
	var s strings.Builder
	elapsed := m.bench.Elapsed().Seconds()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", elapsed)) + "\n")
	s.WriteString(labelStyle.Render("FPS") + valueStyle.Render(fmt.Sprintf("%.1f", m.bench.CurrentFPS())) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", m.bench.Population())) + "\n")
	s.WriteString(labelStyle.Render("Stress") + m.stressView() + "\n")
	s.WriteString(labelStyle.Render("Progress") + progressBar(m.bench.Progress(), 20) + "\n")
	return s.String()
}

func (m *Model) stressView() string {
	stress := m.bench.Stress()
	idx := int(stress * float64(len(stressColors)))
	if idx >= len(stressColors) {
		idx = len(stressColors) - 1
	}
	style := lipgloss.NewStyle().Foreground(stressColors[idx])
	return style.Render(fmt.Sprintf("%3.0f%%", stress*100))
}

func (m *Model) resultsView() string {
	r := m.bench.Results()
	if r == nil {
		return "no results\n"
	}

	var s strings.Builder
	s.WriteString(scoreStyle.Render(fmt.Sprintf("SCORE %d", r.Score)) + "\n\n")
	s.WriteString(labelStyle.Render("Peak bodies") + valueStyle.Render(fmt.Sprintf("%d", r.PeakPopulation)) + "\n")
	s.WriteString(labelStyle.Render("Average FPS") + valueStyle.Render(fmt.Sprintf("%.1f", r.AverageFPS)) + "\n")
	s.WriteString(labelStyle.Render("Interactions") + valueStyle.Render(fmt.Sprintf("%d", r.Interactions)) + "\n")
	s.WriteString(labelStyle.Render("Samples") + valueStyle.Render(fmt.Sprintf("%d", len(r.History))) + "\n")

	if len(r.History) > 1 {
		data := make([]float64, len(r.History))
		for i, sample := range r.History {
			data[i] = sample.FPS
		}
		chart := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("fps over run"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	return s.String()
}

func progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
