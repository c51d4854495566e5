package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridpath/internal/storage"
)

// Runs board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show map list sidebar
	sidebarWidth       = 20  // Width of map list sidebar
	maxRuns            = 100 // Max runs to load per map
)

// RunsBoardKeyMap defines the key bindings for the runs board.
type RunsBoardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextMap key.Binding
	PrevMap key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMap, k.PrevMap, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMap, k.PrevMap, k.Quit},
	}
}

// DefaultRunsBoardKeyMap returns default key bindings.
func DefaultRunsBoardKeyMap() RunsBoardKeyMap {
	return RunsBoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextMap: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next map"),
		),
		PrevMap: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev map"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsBoardModel is the Bubble Tea model for browsing run history.
type RunsBoardModel struct {
	mapIDs      []string
	mapCursor   int
	store       *storage.Store
	runs        []storage.RunEntry
	table       table.Model
	help        help.Model
	keys        RunsBoardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewRunsBoardModel creates a runs board over the given map IDs.
func NewRunsBoardModel(store *storage.Store, mapIDs []string, width, height int) RunsBoardModel {
	keys := DefaultRunsBoardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := RunsBoardModel{
		mapIDs:      mapIDs,
		mapCursor:   0,
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()

	if len(m.mapIDs) > 0 {
		m.loadRuns(m.mapIDs[0])
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *RunsBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Route", Width: 18},
		{Title: "Found", Width: 6},
		{Title: "Path", Width: 6},
		{Title: "Expanded", Width: 9},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads runs for the given map ID.
func (m *RunsBoardModel) loadRuns(mapID string) {
	if m.store == nil {
		m.runs = nil
		m.updateTableRows()
		return
	}

	runs, err := m.store.RunsForMap(mapID, maxRuns)
	if err != nil {
		m.runs = nil
	} else {
		m.runs = runs
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *RunsBoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		found := "no"
		if r.Found {
			found = "yes"
		}
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("(%d,%d)->(%d,%d)", r.StartX, r.StartY, r.EndX, r.EndY),
			found,
			fmt.Sprintf("%d", r.PathLen),
			fmt.Sprintf("%d", r.Expanded),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the runs board model.
func (m RunsBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the runs board.
func (m RunsBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMap):
			if len(m.mapIDs) > 0 {
				m.mapCursor = (m.mapCursor + 1) % len(m.mapIDs)
				m.loadRuns(m.mapIDs[m.mapCursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMap):
			if len(m.mapIDs) > 0 {
				m.mapCursor--
				if m.mapCursor < 0 {
					m.mapCursor = len(m.mapIDs) - 1
				}
				m.loadRuns(m.mapIDs[m.mapCursor])
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the runs board.
func (m RunsBoardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUN HISTORY"
	if len(m.mapIDs) > 0 {
		title = fmt.Sprintf("RUN HISTORY - %s", m.mapIDs[m.mapCursor])
	}

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderTableContent())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for map selection.
func (m RunsBoardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Maps\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.mapIDs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.mapCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		maxLen := sidebarWidth - 6
		if len(id) > maxLen {
			id = id[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + id))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderTableContent renders the table or empty message.
func (m RunsBoardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nRun a search to record one!")
	}

	return m.table.View()
}

// IsQuitting returns true if user wants to quit.
func (m RunsBoardModel) IsQuitting() bool {
	return m.quitting
}

// RunRunsBoard runs the run history browser.
func RunRunsBoard(store *storage.Store, mapIDs []string, width, height int) error {
	model := NewRunsBoardModel(store, mapIDs, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
