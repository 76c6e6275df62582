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

	"github.com/vovakirdan/snowgroomer/internal/config"
	"github.com/vovakirdan/snowgroomer/internal/generator"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/registry"
	"github.com/vovakirdan/snowgroomer/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.groomer/host_key.
	HostKeyPath string

	// DBPath is the path to the run log shown on the history screen.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	Config config.Config
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.groomer/runs.db",
		IdleTimeout: 30 * time.Minute,
		Config:      config.DefaultConfig(),
	}
}

// SSHServer wraps a Wish SSH server serving level previews.
type SSHServer struct {
	config    SSHServerConfig
	server    *ssh.Server
	store     *storage.Store
	generator *generator.Generator
	logger    *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("groomer-ssh")

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run log", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:    cfg,
		store:     store,
		generator: generator.New(cfg.Config.Generator, logger),
		logger:    logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".groomer", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session. The SSH
// user name picks the rank of the daily contract, so `ssh red@host` opens
// the red contract.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	opts := PreviewOptions{
		Generator: s.generator,
		Geometry:  s.config.Config.Geometry,
		Logger:    s.logger,
		Rank:      level.ParseRank(sshSession.User()),
		Daily:     true,
		// Remote sessions must not write to the server's disk.
		NoSave: true,
	}
	model := NewSessionModel(s.store, opts, pty.Window.Width, pty.Window.Height)

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

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenPreview sessionScreen = iota
	screenMenu
	screenRuns
)

// SessionModel manages a remote session: daily preview -> menu -> preview
// of an authored level or the run history, and back.
type SessionModel struct {
	store    *storage.Store
	opts     PreviewOptions
	width    int
	height   int
	screen   sessionScreen
	preview  PreviewModel
	menu     MenuModel
	runs     RunsModel
	quitting bool
}

// NewSessionModel creates a session that opens on the daily contract.
func NewSessionModel(store *storage.Store, opts PreviewOptions, width, height int) SessionModel {
	return SessionModel{
		store:   store,
		opts:    opts,
		width:   width,
		height:  height,
		screen:  screenPreview,
		preview: NewPreviewModel(opts, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.preview.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case TickMsg:
		// The preview owns the clock even while another screen is shown.
		newModel, cmd := m.preview.Update(msg)
		if preview, ok := newModel.(PreviewModel); ok {
			m.preview = preview
		}
		return m, cmd
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenRuns:
		return m.updateRuns(msg)
	default:
		return m.updatePreview(msg)
	}
}

// updatePreview handles updates when a level is shown.
func (m SessionModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.preview.Update(msg)
	if preview, ok := newModel.(PreviewModel); ok {
		m.preview = preview
	}

	if m.preview.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.preview.BackToMenu() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsRuns() {
		m.screen = screenRuns
		m.runs = NewRunsModel(m.store, m.width, m.height)
		return m, m.runs.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		opts := m.opts
		opts.Daily = selected.Daily
		if !selected.Daily {
			d, err := registry.Get(selected.LevelID)
			if err != nil {
				// The menu lists registered levels only.
				return m, nil
			}
			opts.Level = &d
		}
		m.preview = NewPreviewModel(opts, m.width, m.height)
		m.screen = screenPreview
		return m, nil
	}

	return m, cmd
}

// updateRuns handles updates on the run history screen.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newRuns, cmd := m.runs.Update(msg)
	if runs, ok := newRuns.(RunsModel); ok {
		m.runs = runs
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.runs.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenMenu:
		return m.menu.View()
	case screenRuns:
		return m.runs.View()
	default:
		return m.preview.View()
	}
}
