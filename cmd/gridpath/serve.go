package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpath/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeMaps   string
	flagServeMap    string
	flagServeMetric string
	flagServeMoves  string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gridpath SSH server",
	Long: `Start an SSH server that serves the search visualizer to remote
sessions. Each connection gets its own stepper over its own grid.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gridpath/host_key

Examples:
  gridpath serve                           # Listen on :23235 with auto-generated key
  gridpath serve --ssh :2222               # Listen on port 2222
  gridpath serve --map chamber             # Serve a specific map
  gridpath serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeMaps, "maps", "", "Maps directory (default from config)")
	serveCmd.Flags().StringVar(&flagServeMap, "map", "", "Map to serve (default: first in sorted order)")
	serveCmd.Flags().StringVar(&flagServeMetric, "metric", "", "Distance metric: manhattan or euclidean")
	serveCmd.Flags().StringVar(&flagServeMoves, "moves", "", "Move preset: cardinal or king")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in seconds (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadToolConfig()

	metric, moves, _, _, err := searchParams(cfg, flagServeMetric, flagServeMoves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := flagSSHAddr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	hostKey := flagHostKey
	if hostKey == "" {
		hostKey = cfg.Server.HostKeyPath
	}
	mapsDir := flagServeMaps
	if mapsDir == "" {
		mapsDir = cfg.Maps.Dir
	}
	idleTimeout := flagIdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = cfg.Server.IdleTimeoutSec
	}

	serverCfg := tui.SSHServerConfig{
		Address:      addr,
		HostKeyPath:  hostKey,
		MapsDir:      mapsDir,
		MapID:        flagServeMap,
		Metric:       metric,
		Moves:        moves,
		TickInterval: time.Duration(cfg.Server.TickMS) * time.Millisecond,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting gridpath SSH server on %s\n", serverCfg.Address)
	fmt.Println("Connect with: ssh localhost -p <port>")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
