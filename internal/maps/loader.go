package maps

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}

// Loader handles loading maps from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new map loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all map files.
// Returns maps sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Map, error) {
	var out []Map

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		m, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		out = append(out, m)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}

// LoadFile loads a single map file.
func (l *Loader) LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	m, err := parseByExtension(data, path)
	if err != nil {
		return Map{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	if m.ID == "" {
		m.ID = baseID(path)
	}
	m.FilePath = path
	return m, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Map{}, err
	}

	for _, m := range all {
		if m.ID == id {
			return m, nil
		}
	}

	return Map{}, fmt.Errorf("map not found: %s", id)
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(all))
	for i, m := range all {
		ids[i] = m.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, path string) (Map, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".txt":
		return ParseText(data, baseID(path))
	default:
		return Map{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// baseID derives a map ID from the file name.
func baseID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
