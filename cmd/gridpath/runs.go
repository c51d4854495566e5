package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridpath/internal/maps"
	"github.com/vovakirdan/gridpath/internal/platform/tui"
	"github.com/vovakirdan/gridpath/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsTUI   bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [map-id]",
	Short: "Show recorded runs",
	Long: `Display recorded search runs. Without a map ID the most recent
runs across all maps are shown; with one, that map's runs plus its
aggregate stats.

Examples:
  gridpath runs
  gridpath runs open
  gridpath runs open --limit 5
  gridpath runs --tui
  gridpath runs open --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Maximum runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs in an interactive table")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete recorded runs for the given map")
}

func runRuns(cmd *cobra.Command, args []string) {
	cfg := loadToolConfig()

	store, err := storage.Open(dbPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsClear {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --clear requires a map ID")
			os.Exit(1)
		}
		if err := store.ClearRuns(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared runs for %s.\n", args[0])
		return
	}

	if flagRunsTUI {
		ids, err := maps.NewLoader(cfg.Maps.Dir).ListIDs()
		if err != nil || len(ids) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no maps available to browse\n")
			os.Exit(1)
		}

		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}

		if err := tui.RunRunsBoard(store, ids, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.RunEntry
	if len(args) > 0 {
		runs, err = store.RunsForMap(args[0], flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'gridpath find <map>' to record one.")
		return
	}

	title := "Recent runs"
	if len(args) > 0 {
		title = fmt.Sprintf("Runs - %s", args[0])
	}
	fmt.Println(title)
	fmt.Println()

	// Print header
	fmt.Printf("  %-10s  %-16s  %-10s  %-5s  %-5s  %-8s  %s\n",
		"Map", "Route", "Metric", "Found", "Path", "Expanded", "Date")
	fmt.Printf("  %-10s  %-16s  %-10s  %-5s  %-5s  %-8s  %s\n",
		"---", "-----", "------", "-----", "----", "--------", "----")

	// Print runs
	for _, r := range runs {
		found := "no"
		if r.Found {
			found = "yes"
		}
		fmt.Printf("  %-10s  %-16s  %-10s  %-5s  %-5d  %-8d  %s\n",
			r.MapID,
			fmt.Sprintf("(%d,%d)->(%d,%d)", r.StartX, r.StartY, r.EndX, r.EndY),
			r.Metric,
			found,
			r.PathLen,
			r.Expanded,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if len(args) == 0 {
		return
	}

	// Per-map summary
	fmt.Println()
	stats, err := store.GetMapStats(args[0])
	if err != nil {
		return
	}
	fmt.Printf("Total: %d runs, %d found, avg expanded %.1f\n",
		stats.RunsCount, stats.FoundCount, stats.AvgExpanded)

	if best, err := store.BestRun(args[0]); err == nil && best != nil {
		fmt.Printf("Best:  %d cells (%s, %s)\n", best.PathLen, best.Metric, best.Moves)
	}
}
