package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/maps"
)

var mapsCmd = &cobra.Command{
	Use:   "maps [dir]",
	Short: "List all available maps",
	Long: `Shows the maps found in the maps directory (or the given
directory), with their dimensions and endpoints.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMaps,
}

func runMaps(cmd *cobra.Command, args []string) {
	cfg := loadToolConfig()

	dir := cfg.Maps.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	all, err := maps.NewLoader(dir).LoadAll()
	if err != nil {
		fmt.Printf("Cannot read maps from %s: %v\n", dir, err)
		return
	}

	if len(all) == 0 {
		fmt.Printf("No maps found in %s.\n", dir)
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	// Calculate column width
	maxIDLen := 2 // "ID" header
	for _, m := range all {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "ID", "Size", "Walls", "Route")
	fmt.Printf("  %-*s  %-7s  %-6s  %s\n", maxIDLen, "--", "----", "-----", "-----")

	// Print maps
	for _, m := range all {
		start, end := m.Endpoints()
		fmt.Printf("  %-*s  %-7s  %-6d  %v -> %v\n",
			maxIDLen, m.ID,
			fmt.Sprintf("%dx%d", m.Width, m.Height),
			len(m.Obstacles),
			start, end,
		)
	}

	fmt.Println()
	fmt.Println("Run 'gridpath find <id>' to search a map.")
}
