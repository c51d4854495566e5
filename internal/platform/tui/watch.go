package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridpath/internal/core"
)

// Autoplay speed limits.
const (
	minTickInterval = 20 * time.Millisecond
	maxTickInterval = 2 * time.Second
)

// WatchKeyMap defines the key bindings for the watch visualizer.
type WatchKeyMap struct {
	PlayPause key.Binding
	Step      key.Binding
	Restart   key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Step, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Step, k.Restart},
		{k.Faster, k.Slower, k.Quit},
	}
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "single step"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// WatchModel is the Bubble Tea model for the step-through visualizer.
type WatchModel struct {
	mapID    string
	grid     *core.Grid
	start    core.Coord
	end      core.Coord
	moves    []core.Coord
	metric   core.Metric
	stepper  *core.Stepper
	snap     core.StepSnapshot
	renderer *Renderer

	playing  bool
	interval time.Duration
	help     help.Model
	keys     WatchKeyMap
	width    int
	quitting bool
}

// NewWatchModel creates a watch model over a caller-owned grid.
func NewWatchModel(mapID string, g *core.Grid, start, end core.Coord, moves []core.Coord, metric core.Metric, renderer *Renderer, interval time.Duration) (WatchModel, error) {
	stepper, err := core.NewStepper(g, start, end, moves, core.WithMetric(metric))
	if err != nil {
		return WatchModel{}, err
	}

	h := help.New()
	h.ShowAll = false

	if interval <= 0 {
		interval = 120 * time.Millisecond
	}

	return WatchModel{
		mapID:    mapID,
		grid:     g,
		start:    start,
		end:      end,
		moves:    moves,
		metric:   metric,
		stepper:  stepper,
		renderer: renderer,
		playing:  true,
		interval: interval,
		help:     h,
		keys:     DefaultWatchKeyMap(),
	}, nil
}

// Init starts the autoplay ticker.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages for the visualizer.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.playing && !m.stepper.Done() {
			m.snap = m.stepper.Step()
		}
		return m, tickCmd(m.interval)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.PlayPause):
		m.playing = !m.playing

	case key.Matches(msg, m.keys.Step):
		m.playing = false
		if !m.stepper.Done() {
			m.snap = m.stepper.Step()
		}

	case key.Matches(msg, m.keys.Restart):
		m.grid.Reset()
		stepper, err := core.NewStepper(m.grid, m.start, m.end, m.moves, core.WithMetric(m.metric))
		if err == nil {
			m.stepper = stepper
			m.snap = core.StepSnapshot{}
			m.playing = true
		}

	case key.Matches(msg, m.keys.Faster):
		m.interval /= 2
		if m.interval < minTickInterval {
			m.interval = minTickInterval
		}

	case key.Matches(msg, m.keys.Slower):
		m.interval *= 2
		if m.interval > maxTickInterval {
			m.interval = maxTickInterval
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View renders the visualizer.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(fmt.Sprintf("WATCH - %s  %v -> %v (%s)", m.mapID, m.start, m.end, m.metric)))
	b.WriteString("\n\n")

	view := GridView{
		Grid:     m.grid,
		Start:    m.start,
		End:      m.end,
		HasStart: true,
		HasEnd:   true,
		Frontier: m.snap.Frontier,
		Explored: m.snap.Explored,
		Path:     PathSet(m.snap.Path),
		Current:  m.snap.Current,
	}
	view.HasCurrent = m.snap.StepIndex > 0 && !m.snap.Done
	b.WriteString(m.renderer.Render(view))
	b.WriteString("\n\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statusLine summarizes the search progress.
func (m WatchModel) statusLine() string {
	state := "paused"
	if m.playing {
		state = "playing"
	}
	if m.stepper.Done() {
		if m.snap.Found {
			state = fmt.Sprintf("done: path of %d cells", len(m.snap.Path))
		} else {
			state = fmt.Sprintf("done: goal unreachable, nearest path of %d cells", len(m.snap.Path))
		}
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return statusStyle.Render(fmt.Sprintf(
		"step %d | frontier %d | explored %d | %s",
		m.stepper.Steps(), len(m.snap.Frontier), len(m.snap.Explored), state,
	))
}

// IsQuitting returns true if the user requested to quit.
func (m WatchModel) IsQuitting() bool {
	return m.quitting
}

// RunWatch runs the step-through visualizer in the local terminal.
func RunWatch(mapID string, g *core.Grid, start, end core.Coord, moves []core.Coord, metric core.Metric, renderer *Renderer, interval time.Duration) error {
	model, err := NewWatchModel(mapID, g, start, end, moves, metric, renderer, interval)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
