package maps

import (
	"fmt"
	"strings"
)

// ParseText parses a plain-text map: one row string per line, ';' starts
// a comment line, leading/trailing blank lines are ignored. Dimensions
// come from the rows themselves; the id comes from the file name.
func ParseText(data []byte, id string) (Map, error) {
	var rows []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimRight(line, "\r")
		if strings.HasPrefix(strings.TrimSpace(trimmed), ";") {
			continue
		}
		if strings.TrimSpace(trimmed) == "" {
			if len(rows) == 0 {
				continue
			}
			break
		}
		rows = append(rows, trimmed)
	}
	if len(rows) == 0 {
		return Map{}, fmt.Errorf("map %s: no rows", id)
	}

	m := Map{
		ID:     id,
		Name:   id,
		Width:  len(rows[0]),
		Height: len(rows),
	}
	if err := paintRows(&m, rows); err != nil {
		return Map{}, err
	}
	if err := m.Validate(); err != nil {
		return Map{}, err
	}
	return m, nil
}
