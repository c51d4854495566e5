package maps

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gridpath/internal/core"
)

// yamlMap represents the YAML structure for a map file.
type yamlMap struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     yamlSize          `yaml:"size"`
	Rows     []string          `yaml:"rows"`
	Start    *yamlCoord        `yaml:"start,omitempty"`
	End      *yamlCoord        `yaml:"end,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// yamlSize represents grid dimensions.
type yamlSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// yamlCoord represents an explicit coordinate.
type yamlCoord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ParseYAML parses a YAML map file. Row strings paint the grid ('#' wall,
// '.' free, 'S'/'E' endpoint markers); an explicit start/end block
// overrides the markers.
func ParseYAML(data []byte) (Map, error) {
	var ym yamlMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	w, h := ym.Size.W, ym.Size.H
	if w <= 0 && len(ym.Rows) > 0 {
		w = len(ym.Rows[0])
	}
	if h <= 0 {
		h = len(ym.Rows)
	}

	m := Map{
		ID:       ym.ID,
		Name:     ym.Name,
		Width:    w,
		Height:   h,
		Metadata: ym.Metadata,
	}

	if err := paintRows(&m, ym.Rows); err != nil {
		return Map{}, err
	}

	if ym.Start != nil {
		m.Start = core.C(ym.Start.X, ym.Start.Y)
		m.HasStart = true
	}
	if ym.End != nil {
		m.End = core.C(ym.End.X, ym.End.Y)
		m.HasEnd = true
	}

	if err := m.Validate(); err != nil {
		return Map{}, err
	}
	return m, nil
}

// paintRows fills obstacles and endpoint markers from row strings.
func paintRows(m *Map, rows []string) error {
	if len(rows) != m.Height {
		return fmt.Errorf("map %s: %d rows for height %d", m.ID, len(rows), m.Height)
	}
	for y, row := range rows {
		if len(row) != m.Width {
			return fmt.Errorf("map %s: row %d has %d cells, expected %d", m.ID, y, len(row), m.Width)
		}
		for x, ch := range row {
			switch ch {
			case '#':
				m.Obstacles = append(m.Obstacles, core.C(x, y))
			case 'S', 's':
				m.Start = core.C(x, y)
				m.HasStart = true
			case 'E', 'e':
				m.End = core.C(x, y)
				m.HasEnd = true
			case '.', ' ':
				// free cell
			default:
				return fmt.Errorf("map %s: unknown cell %q at (%d,%d)", m.ID, ch, x, y)
			}
		}
	}
	return nil
}
