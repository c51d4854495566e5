package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridpath/internal/config"
	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/maps"
	"github.com/vovakirdan/gridpath/internal/platform/tui"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var (
	flagFindStart  string
	flagFindEnd    string
	flagFindMetric string
	flagFindMoves  string
	flagFindNoSave bool
	flagFindPlain  bool
	flagFindMaps   string
)

var findCmd = &cobra.Command{
	Use:   "find <map>",
	Short: "Run a search on a map",
	Long: `Run a pathfinding search on the specified map and render the
solved grid. The map argument is a map ID (see 'gridpath maps') or a
path to a map file.

Endpoints default to the map's S/E markers, falling back to the
top-left and bottom-right corners.

Examples:
  gridpath find open
  gridpath find chamber --start 0,0 --end 4,3
  gridpath find open --metric euclidean --moves king
  gridpath find ./maps/open.yaml --plain --no-save`,
	Args: cobra.ExactArgs(1),
	Run:  runFind,
}

func init() {
	findCmd.Flags().StringVar(&flagFindStart, "start", "", "Start coordinate as x,y (default from map)")
	findCmd.Flags().StringVar(&flagFindEnd, "end", "", "End coordinate as x,y (default from map)")
	findCmd.Flags().StringVar(&flagFindMetric, "metric", "", "Distance metric: manhattan or euclidean")
	findCmd.Flags().StringVar(&flagFindMoves, "moves", "", "Move preset: cardinal or king")
	findCmd.Flags().BoolVar(&flagFindNoSave, "no-save", false, "Do not record the run")
	findCmd.Flags().BoolVar(&flagFindPlain, "plain", false, "Render without colors")
	findCmd.Flags().StringVar(&flagFindMaps, "maps", "", "Maps directory (default from config)")
}

// loadMap resolves a map argument as a file path first, then as an ID.
func loadMap(loader *maps.Loader, arg string) (maps.Map, error) {
	if _, err := os.Stat(arg); err == nil {
		return loader.LoadFile(arg)
	}
	return loader.LoadByID(arg)
}

func runFind(cmd *cobra.Command, args []string) {
	cfg := loadToolConfig()
	logger := log.New(os.Stderr)

	mapsDir := flagFindMaps
	if mapsDir == "" {
		mapsDir = cfg.Maps.Dir
	}
	loader := maps.NewLoader(mapsDir)

	m, err := loadMap(loader, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'gridpath maps' to see available maps.")
		os.Exit(1)
	}

	start, end := m.Endpoints()
	if flagFindStart != "" {
		if start, err = parseCoord(flagFindStart); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if flagFindEnd != "" {
		if end, err = parseCoord(flagFindEnd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	metric, moves, metricName, movesName, err := searchParams(cfg, flagFindMetric, flagFindMoves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	grid := m.ToGrid()
	started := time.Now()
	result, err := core.FindPath(grid, start, end, moves, core.WithMetric(metric))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(started)

	renderResult(cfg, m, grid, start, end, result)

	fmt.Println()
	if result.Found {
		fmt.Printf("Path found: %d cells\n", len(result.Path))
	} else {
		fmt.Printf("Goal unreachable; nearest path: %d cells\n", len(result.Path))
	}
	fmt.Printf("Expanded:   %d cells\n", result.Expanded)
	fmt.Printf("Metric:     %s, moves: %s\n", metricName, movesName)
	fmt.Printf("Duration:   %s\n", elapsed.Round(time.Microsecond))

	if flagFindNoSave {
		return
	}

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		logger.Warn("could not open run history database", "error", err)
		return
	}
	defer store.Close()

	_, err = store.SaveRun(storage.RunEntry{
		MapID:      m.ID,
		StartX:     start.X,
		StartY:     start.Y,
		EndX:       end.X,
		EndY:       end.Y,
		Metric:     metricName,
		Moves:      movesName,
		Found:      result.Found,
		PathLen:    len(result.Path),
		Expanded:   result.Expanded,
		DurationMS: elapsed.Milliseconds(),
	})
	if err != nil {
		logger.Warn("could not record run", "error", err)
	}
}

// renderResult draws the solved grid unless the terminal is too narrow.
func renderResult(cfg config.Config, m maps.Map, grid *core.Grid, start, end core.Coord, result core.Result) {
	// Each cell renders two columns wide
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && grid.W*2 > w {
		fmt.Printf("Grid %dx%d is wider than the terminal; skipping render.\n", grid.W, grid.H)
		return
	}

	path := make([]core.Coord, 0, len(result.Path))
	explored := make(map[core.Coord]bool)
	for _, cell := range result.Path {
		path = append(path, cell.Pos)
	}
	for i := range grid.Cells {
		cell := &grid.Cells[i]
		if cell.Explored && !cell.Obstacle {
			explored[cell.Pos] = true
		}
	}

	renderer := tui.NewRenderer(flagFindPlain || cfg.Render.Plain, cfg.Render.Glyphs)
	fmt.Printf("%s (%dx%d)\n\n", m.ID, grid.W, grid.H)
	fmt.Println(renderer.Render(tui.GridView{
		Grid:     grid,
		Start:    start,
		End:      end,
		HasStart: true,
		HasEnd:   true,
		Explored: explored,
		Path:     tui.PathSet(path),
	}))
}
