package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gocodealone/cellzones/ecology"
)

// tickMsg drives the auto-advance loop.
type tickMsg time.Time

var keys = struct {
	up, down, left, right key.Binding
	enter, space          key.Binding
	help, quit            key.Binding
	view, auto, zoom      key.Binding
}{
	up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
	down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
	left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
	right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
	enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "step")),
	space: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
	help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	view:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "cycle view")),
	auto:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle auto")),
	zoom:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
}

// model is the TUI's bubbletea model. It only ever reads the grid through
// Snapshot/GetStats and drives it forward with Step - it never reaches into
// engine internals.
type model struct {
	grid    *ecology.Grid
	metrics *ecology.Metrics

	width, height int
	tick          int
	paused        bool
	autoAdvance   bool
	showHelp      bool

	viewModes    []string
	selectedView string

	viewportX, viewportY int
	zoomLevel            int
}

func newModel(grid *ecology.Grid, metrics *ecology.Metrics) model {
	return model{
		grid:         grid,
		metrics:      metrics,
		viewModes:    []string{"grid", "stats", "zones"},
		selectedView: "grid",
		autoAdvance:  true,
		zoomLevel:    1,
	}
}

func doTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return doTick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit

		case key.Matches(msg, keys.help):
			m.showHelp = !m.showHelp

		case key.Matches(msg, keys.space):
			m.paused = !m.paused

		case key.Matches(msg, keys.auto):
			m.autoAdvance = !m.autoAdvance

		case key.Matches(msg, keys.view):
			for i, v := range m.viewModes {
				if v == m.selectedView {
					m.selectedView = m.viewModes[(i+1)%len(m.viewModes)]
					break
				}
			}

		case key.Matches(msg, keys.enter):
			m.step()

		case key.Matches(msg, keys.left):
			if m.viewportX > 0 {
				m.viewportX--
			}
		case key.Matches(msg, keys.right):
			if m.viewportX < m.grid.Width-1 {
				m.viewportX++
			}
		case key.Matches(msg, keys.up):
			if m.viewportY > 0 {
				m.viewportY--
			}
		case key.Matches(msg, keys.down):
			if m.viewportY < m.grid.Height-1 {
				m.viewportY++
			}

		case key.Matches(msg, keys.zoom):
			m.zoomLevel = (m.zoomLevel % 3) + 1
		}

	case tickMsg:
		if m.autoAdvance && !m.paused {
			m.step()
		}
		cmd = doTick()
	}

	return m, cmd
}

func (m *model) step() {
	if _, err := m.grid.Step(); err != nil {
		return
	}
	m.tick++
	if m.metrics != nil {
		m.metrics.Observe(m.grid.GetStats())
	}
}

func (m model) View() string {
	if m.showHelp {
		return m.helpView()
	}
	switch m.selectedView {
	case "stats":
		return m.statsView()
	case "zones":
		return m.zonesView()
	default:
		return m.gridView()
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func (m model) header() string {
	s := m.grid.GetStats()
	status := "running"
	if m.paused {
		status = "paused"
	}
	return headerStyle.Render(fmt.Sprintf(
		"cellzones  gen=%d  pop=%d  species=%d  births=%d  deaths=%d  mutations=%d  [%s]",
		s.Generation, s.Population, s.SpeciesCount, s.Births, s.Deaths, s.Mutations, status))
}

func (m model) gridView() string {
	view := m.grid.Snapshot()
	occupied := make(map[[2]int]ecology.CellView, len(view.Cells))
	for _, c := range view.Cells {
		occupied[[2]int{c.X, c.Y}] = c
	}

	cellsPerGlyph := m.zoomLevel
	rows := (m.grid.Height - m.viewportY + cellsPerGlyph - 1) / cellsPerGlyph
	cols := (m.grid.Width - m.viewportX + cellsPerGlyph - 1) / cellsPerGlyph
	if rows > 40 {
		rows = 40
	}
	if cols > 100 {
		cols = 100
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			gx := m.viewportX + col*cellsPerGlyph
			gy := m.viewportY + row*cellsPerGlyph
			if gx >= m.grid.Width || gy >= m.grid.Height {
				b.WriteByte(' ')
				continue
			}
			c, ok := occupied[[2]int{gx, gy}]
			if !ok {
				b.WriteByte('.')
				continue
			}
			rgb := view.SpeciesColors[c.SpeciesID]
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgb.Hex()))
			b.WriteString(style.Render("o"))
		}
		b.WriteByte('\n')
	}
	b.WriteString(dimStyle.Render("\nspace pause · enter step · v view · z zoom · ? help · q quit\n"))
	return b.String()
}

func (m model) statsView() string {
	s := m.grid.GetStats()
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "generation:        %d\n", s.Generation)
	fmt.Fprintf(&b, "population:        %d\n", s.Population)
	fmt.Fprintf(&b, "species count:     %d\n", s.SpeciesCount)
	fmt.Fprintf(&b, "births this tick:  %d\n", s.Births)
	fmt.Fprintf(&b, "deaths this tick:  %d\n", s.Deaths)
	fmt.Fprintf(&b, "mutations/tick:    %d\n", s.Mutations)
	fmt.Fprintf(&b, "avg species age:   %.2f\n", s.AvgSpeciesAge)
	fmt.Fprintf(&b, "dominant species:  %d\n", s.DominantSpeciesID)
	b.WriteString(dimStyle.Render("\nv view · q quit\n"))
	return b.String()
}

func (m model) zonesView() string {
	view := m.grid.Snapshot()
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")
	for _, z := range view.Zones {
		fmt.Fprintf(&b, "%-10s  (%d,%d) %dx%d\n", z.Type, z.X, z.Y, z.W, z.H)
	}
	b.WriteString(dimStyle.Render("\nv view · q quit\n"))
	return b.String()
}

func (m model) helpView() string {
	return strings.Join([]string{
		"cellzones - help",
		"",
		"space    pause/resume",
		"enter    manual step (while paused)",
		"a        toggle auto-advance",
		"v        cycle grid/stats/zones view",
		"z        cycle zoom",
		"arrows   pan the grid viewport",
		"?        toggle this help",
		"q        quit",
	}, "\n")
}
