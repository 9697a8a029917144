// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package preview draws a staged registry in the terminal.
//
// The model is a stand-in for a window event loop: a terminal resize
// restages the registry into a viewport of columns × rows, and View
// rasterizes every instance into a character grid.
package preview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/ggui"
	"github.com/gogpu/ggui/stage"
)

// Cell glyphs.
const (
	glyphEmpty     = ' '
	glyphPanel     = '░'
	glyphClickable = '▓'
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	clickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// Model is a bubbletea model over a registry.
type Model struct {
	registry *ggui.Registry
	snap     ggui.Snapshot
	viewport stage.Viewport
	batches  []stage.Batch
	status   string
	restages int
}

// New creates a model for r, staged at the fallback viewport until the
// terminal reports its size.
func New(r *ggui.Registry, fallback stage.Viewport) Model {
	m := Model{
		registry: r,
		snap:     r.Stage(),
		status:   "enter: click  q: quit",
	}
	return m.resize(fallback)
}

// Viewport returns the viewport of the current staging.
func (m Model) Viewport() stage.Viewport { return m.viewport }

// Batches returns the current staging.
func (m Model) Batches() []stage.Batch { return m.batches }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Restages counts stagings since New, the initial one included.
func (m Model) Restages() int { return m.restages }

func (m Model) resize(vp stage.Viewport) Model {
	m.viewport = vp
	m.batches = stage.Transform(m.snap, vp)
	m.restages++
	ggui.Logger().Debug("preview: restaged", "viewport", vp.String())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// The last row holds the status line.
		rows := max(msg.Height-1, 0)
		return m.resize(stage.Viewport{Width: uint32(max(msg.Width, 0)), Height: uint32(rows)}), nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			return m.click(), nil
		}
	}
	return m, nil
}

func (m Model) click() Model {
	c, ok := m.registry.ClickableAt(nil)
	if !ok {
		m.status = "no clickable widget"
		return m
	}
	m.status = fmt.Sprintf("clicked: %s", c.Click())
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	for _, row := range m.grid() {
		b.WriteString(renderRow(row))
		b.WriteByte('\n')
	}
	b.WriteString(statusStyle.Render(m.status))
	return b.String()
}

// grid rasterizes the staged instances. A cell is covered when its centre
// lies inside the instance rectangle; later widgets paint over earlier
// ones.
func (m Model) grid() [][]rune {
	w, h := int(m.viewport.Width), int(m.viewport.Height)
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(glyphEmpty), w))
	}

	for _, batch := range m.batches {
		widgets := m.registry.Widgets(batch.Kind)
		for i, in := range batch.Instances {
			glyph := glyphPanel
			if i < len(widgets) {
				if _, ok := ggui.AsClickable(widgets[i]); ok {
					glyph = glyphClickable
				}
			}
			fill(grid, in, glyph)
		}
	}
	return grid
}

func fill(grid [][]rune, in ggui.Instance, glyph rune) {
	x0 := in.Position[0] - in.Scale[0]/2
	x1 := in.Position[0] + in.Scale[0]/2
	y0 := in.Position[1] - in.Scale[1]/2
	y1 := in.Position[1] + in.Scale[1]/2

	for y := range grid {
		cy := float32(y) + 0.5
		if cy < y0 || cy >= y1 {
			continue
		}
		row := grid[y]
		for x := range row {
			cx := float32(x) + 0.5
			if cx >= x0 && cx < x1 {
				row[x] = glyph
			}
		}
	}
}

// renderRow styles runs of clickable cells.
func renderRow(row []rune) string {
	var b strings.Builder
	start := 0
	for start < len(row) {
		end := start
		for end < len(row) && (row[end] == glyphClickable) == (row[start] == glyphClickable) {
			end++
		}
		run := string(row[start:end])
		if row[start] == glyphClickable {
			run = clickStyle.Render(run)
		}
		b.WriteString(run)
		start = end
	}
	return b.String()
}

// Run starts the preview program and blocks until it quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
