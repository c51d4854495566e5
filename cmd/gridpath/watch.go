package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/maps"
	"github.com/vovakirdan/gridpath/internal/platform/tui"
)

var (
	flagWatchStart  string
	flagWatchEnd    string
	flagWatchMetric string
	flagWatchMoves  string
	flagWatchPlain  bool
	flagWatchMaps   string
	flagWatchTick   int
)

var watchCmd = &cobra.Command{
	Use:   "watch <map>",
	Short: "Step through a search interactively",
	Long: `Open an interactive visualizer that animates the search one
expansion at a time.

Controls:
  Space      - Play/pause
  N          - Single step
  R          - Restart
  +/-        - Speed up/down
  Q/Ctrl+C   - Quit

Examples:
  gridpath watch open
  gridpath watch chamber --metric euclidean --tick 60
  gridpath watch open --start 0,0 --end 7,5 --moves king`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchStart, "start", "", "Start coordinate as x,y (default from map)")
	watchCmd.Flags().StringVar(&flagWatchEnd, "end", "", "End coordinate as x,y (default from map)")
	watchCmd.Flags().StringVar(&flagWatchMetric, "metric", "", "Distance metric: manhattan or euclidean")
	watchCmd.Flags().StringVar(&flagWatchMoves, "moves", "", "Move preset: cardinal or king")
	watchCmd.Flags().BoolVar(&flagWatchPlain, "plain", false, "Render without colors")
	watchCmd.Flags().StringVar(&flagWatchMaps, "maps", "", "Maps directory (default from config)")
	watchCmd.Flags().IntVar(&flagWatchTick, "tick", 0, "Autoplay interval in milliseconds (default from config)")
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg := loadToolConfig()

	mapsDir := flagWatchMaps
	if mapsDir == "" {
		mapsDir = cfg.Maps.Dir
	}

	m, err := loadMap(maps.NewLoader(mapsDir), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'gridpath maps' to see available maps.")
		os.Exit(1)
	}

	start, end := m.Endpoints()
	if flagWatchStart != "" {
		if start, err = parseCoord(flagWatchStart); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if flagWatchEnd != "" {
		if end, err = parseCoord(flagWatchEnd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	metric, moves, _, _, err := searchParams(cfg, flagWatchMetric, flagWatchMoves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tickMS := flagWatchTick
	if tickMS <= 0 {
		tickMS = cfg.Server.TickMS
	}

	renderer := tui.NewRenderer(flagWatchPlain || cfg.Render.Plain, cfg.Render.Glyphs)
	err = tui.RunWatch(m.ID, m.ToGrid(), start, end, moves, metric, renderer, time.Duration(tickMS)*time.Millisecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
