package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridpath/internal/core"
)

// Cell roles, in rendering priority order.
const (
	roleFree     = "free"
	roleWall     = "wall"
	roleExplored = "explored"
	roleFrontier = "frontier"
	rolePath     = "path"
	roleCurrent  = "current"
	roleStart    = "start"
	roleEnd      = "end"
)

// defaultGlyphs maps cell roles to their display glyphs.
var defaultGlyphs = map[string]string{
	roleFree:     "·",
	roleWall:     "█",
	roleExplored: "░",
	roleFrontier: "▒",
	rolePath:     "●",
	roleCurrent:  "◎",
	roleStart:    "S",
	roleEnd:      "E",
}

// plainGlyphs is the ASCII fallback for dumb terminals.
var plainGlyphs = map[string]string{
	roleFree:     ".",
	roleWall:     "#",
	roleExplored: ",",
	roleFrontier: "+",
	rolePath:     "o",
	roleCurrent:  "@",
	roleStart:    "S",
	roleEnd:      "E",
}

// roleStyles maps cell roles to lipgloss styles.
var roleStyles = map[string]lipgloss.Style{
	roleFree:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	roleWall:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	roleExplored: lipgloss.NewStyle().Foreground(lipgloss.Color("24")),
	roleFrontier: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	rolePath:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	roleCurrent:  lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
	roleStart:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	roleEnd:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// GridView describes one frame of a search over a grid.
type GridView struct {
	Grid       *core.Grid
	Start      core.Coord
	End        core.Coord
	HasStart   bool
	HasEnd     bool
	Frontier   map[core.Coord]bool
	Explored   map[core.Coord]bool
	Path       map[core.Coord]bool
	Current    core.Coord
	HasCurrent bool
}

// PathSet converts a path slice into the lookup set GridView carries.
func PathSet(path []core.Coord) map[core.Coord]bool {
	set := make(map[core.Coord]bool, len(path))
	for _, c := range path {
		set[c] = true
	}
	return set
}

// Renderer draws a GridView as a styled string.
type Renderer struct {
	plain  bool
	glyphs map[string]string
}

// NewRenderer creates a renderer. Glyph overrides replace the defaults
// per role; plain mode drops all styling and uses ASCII glyphs.
func NewRenderer(plain bool, overrides map[string]string) *Renderer {
	base := defaultGlyphs
	if plain {
		base = plainGlyphs
	}

	glyphs := make(map[string]string, len(base))
	for role, g := range base {
		glyphs[role] = g
	}
	for role, g := range overrides {
		if _, known := base[role]; known && g != "" {
			glyphs[role] = g
		}
	}

	return &Renderer{plain: plain, glyphs: glyphs}
}

// Render draws the view row by row. Each cell is doubled horizontally so
// the grid reads roughly square in a terminal.
func (r *Renderer) Render(v GridView) string {
	var sb strings.Builder
	sb.Grow(v.Grid.W * v.Grid.H * 4)

	for y := 0; y < v.Grid.H; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < v.Grid.W; x++ {
			role := r.roleAt(v, core.C(x, y))
			glyph := r.glyphs[role] + " "
			if r.plain {
				sb.WriteString(glyph)
				continue
			}
			sb.WriteString(roleStyles[role].Render(glyph))
		}
	}
	return sb.String()
}

// roleAt resolves the display role of one cell. Endpoint markers win,
// then the path, then live search state.
func (r *Renderer) roleAt(v GridView, c core.Coord) string {
	switch {
	case v.HasStart && c.Equal(v.Start):
		return roleStart
	case v.HasEnd && c.Equal(v.End):
		return roleEnd
	case v.Path[c]:
		return rolePath
	case v.HasCurrent && c.Equal(v.Current):
		return roleCurrent
	case v.Grid.IsObstacle(c):
		return roleWall
	case v.Frontier[c]:
		return roleFrontier
	case v.Explored[c]:
		return roleExplored
	default:
		return roleFree
	}
}
