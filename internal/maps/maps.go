// Package maps loads grid map definitions from disk.
// This package depends on core but core does not depend on maps.
package maps

import (
	"fmt"

	"github.com/vovakirdan/gridpath/internal/core"
)

// Map represents a complete map definition.
type Map struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Obstacles []core.Coord
	Start     core.Coord
	End       core.Coord
	HasStart  bool
	HasEnd    bool
	Metadata  map[string]string
	FilePath  string
}

// ToGrid creates a Grid from the map.
func (m *Map) ToGrid() *core.Grid {
	return core.NewGridWithObstacles(m.Width, m.Height, m.Obstacles)
}

// Endpoints returns the map's start and end, falling back to the
// top-left and bottom-right corners when the map does not declare them.
func (m *Map) Endpoints() (start, end core.Coord) {
	start = core.C(0, 0)
	end = core.C(m.Width-1, m.Height-1)
	if m.HasStart {
		start = m.Start
	}
	if m.HasEnd {
		end = m.End
	}
	return start, end
}

// Validate checks the map for internal consistency: positive dimensions,
// in-bounds obstacles and endpoints, and a non-obstacle start.
func (m *Map) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("map %s: invalid size %dx%d", m.ID, m.Width, m.Height)
	}
	inBounds := func(c core.Coord) bool {
		return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
	}
	for _, o := range m.Obstacles {
		if !inBounds(o) {
			return fmt.Errorf("map %s: obstacle %v out of bounds", m.ID, o)
		}
	}
	if m.HasStart {
		if !inBounds(m.Start) {
			return fmt.Errorf("map %s: start %v out of bounds", m.ID, m.Start)
		}
		for _, o := range m.Obstacles {
			if o.Equal(m.Start) {
				return fmt.Errorf("map %s: start %v is a wall", m.ID, m.Start)
			}
		}
	}
	if m.HasEnd && !inBounds(m.End) {
		return fmt.Errorf("map %s: end %v out of bounds", m.ID, m.End)
	}
	return nil
}
