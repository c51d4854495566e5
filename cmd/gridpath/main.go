// gridpath is a grid pathfinding toolkit for the terminal.
//
// Usage:
//
//	gridpath maps              - List available maps
//	gridpath find <map>        - Run a search on a map and render the result
//	gridpath watch <map>       - Step through a search interactively
//	gridpath runs [map]        - Show recorded runs
//	gridpath serve             - Start SSH server for remote visualization
//
// Global flags:
//
//	--db <path>      - Set run history database path
//	--config <path>  - Set config file path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/core"
)

var (
	// Global flags
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridpath",
	Short: "Gridpath - Grid pathfinding in your terminal",
	Long: `Gridpath is a terminal toolkit for running and visualizing
pathfinding searches over 2D grid maps.

Available commands:
  maps     - Show all available maps
  find     - Run a search and render the solved grid
  watch    - Step through a search interactively
  runs     - View recorded run history
  serve    - Start SSH server for remote visualization

Examples:
  gridpath maps
  gridpath find open
  gridpath find chamber --start 0,0 --end 4,3 --metric euclidean
  gridpath watch chamber --moves king
  gridpath runs open --tui
  gridpath serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")

	// Add subcommands
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadToolConfig loads configuration honoring the global --config flag.
func loadToolConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// dbPath resolves the database path: flag wins over config.
func dbPath(cfg config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.Storage.DBPath
}

// parseCoord parses an "x,y" flag value.
func parseCoord(s string) (core.Coord, error) {
	var x, y int
	if _, err := fmt.Sscanf(s, "%d,%d", &x, &y); err != nil {
		return core.Coord{}, fmt.Errorf("invalid coordinate %q, expected x,y", s)
	}
	return core.C(x, y), nil
}

// searchParams resolves metric and move set from flags with config defaults.
func searchParams(cfg config.Config, metricName, movesName string) (core.Metric, []core.Coord, string, string, error) {
	if metricName == "" {
		metricName = cfg.Search.Metric
	}
	if movesName == "" {
		movesName = cfg.Search.Moves
	}

	metric, ok := core.ParseMetric(metricName)
	if !ok {
		return 0, nil, "", "", fmt.Errorf("unknown metric %q (expected manhattan or euclidean)", metricName)
	}
	moves, ok := core.ParseMoves(movesName)
	if !ok {
		return 0, nil, "", "", fmt.Errorf("unknown move preset %q (expected cardinal or king)", movesName)
	}
	if movesName == "" {
		movesName = "cardinal"
	}
	return metric, moves, metric.String(), movesName, nil
}
