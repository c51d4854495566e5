// SSH server support via Wish: serves the watch visualizer to remote sessions.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/gridpath/internal/core"
	"github.com/vovakirdan/gridpath/internal/maps"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.gridpath/host_key.
	HostKeyPath string

	// MapsDir is the directory scanned for map files.
	MapsDir string

	// MapID selects the map served to sessions. Empty means the first
	// map in sorted order.
	MapID string

	// Metric and Moves are the search parameters for served sessions.
	Metric core.Metric
	Moves  []core.Coord

	// TickInterval is the autoplay step interval.
	TickInterval time.Duration

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:      ":23235",
		MapsDir:      "maps",
		Metric:       core.MetricManhattan,
		Moves:        core.CardinalMoves(),
		TickInterval: 120 * time.Millisecond,
		IdleTimeout:  5 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server for the visualizer.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	loader *maps.Loader
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridpath-ssh",
	})

	srv := &SSHServer{
		config: cfg,
		loader: maps.NewLoader(cfg.MapsDir),
		logger: logger,
	}

	// Fail early if the served map cannot be loaded
	if _, err := srv.sessionMap(); err != nil {
		return nil, err
	}

	// Resolve host key path, expanding ~ to the home directory
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" || hostKeyPath[0] == '~' {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		if hostKeyPath == "" {
			hostKeyPath = filepath.Join(home, ".gridpath", "host_key")
		} else {
			hostKeyPath = filepath.Join(home, hostKeyPath[1:])
		}
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionMap loads the map served to sessions.
func (s *SSHServer) sessionMap() (maps.Map, error) {
	if s.config.MapID != "" {
		return s.loader.LoadByID(s.config.MapID)
	}

	all, err := s.loader.LoadAll()
	if err != nil {
		return maps.Map{}, err
	}
	if len(all) == 0 {
		return maps.Map{}, fmt.Errorf("no maps found in %s", s.config.MapsDir)
	}
	return all[0], nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
// Each session runs its own stepper over its own grid.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	_, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	m, err := s.sessionMap()
	if err != nil {
		s.logger.Error("cannot load map", "error", err)
		return nil, nil
	}

	grid := m.ToGrid()
	start, end := m.Endpoints()

	renderer := NewRenderer(false, nil)
	model, err := NewWatchModel(m.ID, grid, start, end, s.config.Moves, s.config.Metric, renderer, s.config.TickInterval)
	if err != nil {
		s.logger.Error("cannot start visualizer", "map", m.ID, "error", err)
		return nil, nil
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
