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

	"snaketerm/internal/config"
	"snaketerm/internal/core"
	"snaketerm/internal/leaderboard"
	"snaketerm/internal/snake"
	"snaketerm/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snaketerm/host_key.
	HostKeyPath string

	// ScoresPath is the path to the JSON scoreboard file.
	ScoresPath string

	// DBPath is the path to the run history database.
	DBPath string

	// ConfigPath is an optional custom game config YAML.
	ConfigPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		ScoresPath:  "~/.snaketerm/scores.json",
		DBPath:      "~/.snaketerm/history.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server for remote play.
// All connected users share one scoreboard and run history.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	gameCfg config.SnakeConfig
	board   *leaderboard.Board
	store   *storage.Store
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snaketerm-ssh",
	})

	gameCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("cannot load game config: %w", err)
	}

	board := leaderboard.Load(cfg.ScoresPath)

	// Open run history; sessions still work without it
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run history database", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:  cfg,
		gameCfg: gameCfg,
		board:   board,
		store:   store,
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".snaketerm", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
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

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rc := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
		Seed:    time.Now().UnixNano(),
	}

	model := NewSessionModel(s.gameCfg, s.board, s.store, rc, sshSession.User())

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

// sessionPhase identifies which screen an SSH session is showing.
type sessionPhase int

const (
	phaseMenu sessionPhase = iota
	phaseGame
	phaseNameEntry
	phaseScores
)

// SessionModel manages the full session flow:
// menu -> game -> name entry -> scores -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	gameCfg  config.SnakeConfig
	board    *leaderboard.Board
	store    *storage.Store
	runtime  core.RuntimeConfig
	username string

	phase      sessionPhase
	menu       MenuModel
	gameModel  *GameModel
	nameEntry  *NameEntryModel
	scoreboard *ScoreboardModel

	// Finished run waiting for the name entry outcome.
	pendingDiff    config.Difficulty
	pendingScore   int
	pendingRestart bool

	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(gameCfg config.SnakeConfig, board *leaderboard.Board, store *storage.Store, rc core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		gameCfg:  gameCfg,
		board:    board,
		store:    store,
		runtime:  rc,
		username: username,
		phase:    phaseMenu,
		menu:     NewMenuModel(gameCfg, rc.ScreenW, rc.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Track window size globally so every phase starts with current dimensions
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}

	switch m.phase {
	case phaseGame:
		return m.updateGame(msg)
	case phaseNameEntry:
		return m.updateNameEntry(msg)
	case phaseScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScores() {
		return m.enterScores()
	}

	if diff, chosen := m.menu.Selected(); chosen {
		return m.startGame(diff)
	}

	return m, cmd
}

// startGame begins a run on the given difficulty.
func (m SessionModel) startGame(diff config.Difficulty) (tea.Model, tea.Cmd) {
	m.runtime.Seed = time.Now().UnixNano()

	game := snake.New(m.gameCfg, diff)
	gameModel := NewGameModel(game, m.gameCfg, m.runtime)
	m.gameModel = &gameModel
	m.phase = phaseGame

	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.Abandoned() {
		// Run abandoned: score discarded, back to the menu
		m.gameModel = nil
		return m.backToMenu()
	}

	if m.gameModel.Finished() {
		diff := m.gameModel.game.Difficulty()
		score := m.gameModel.Score()
		restart := m.gameModel.WantsRestart()
		m.gameModel = nil

		if m.board != nil && m.board.Qualifies(diff, score) {
			m.pendingDiff = diff
			m.pendingScore = score
			return m.enterNameEntry(diff, score, restart)
		}

		m.saveRun(diff, "", score)
		if restart {
			return m.startGame(diff)
		}
		return m.backToMenu()
	}

	return m, cmd
}

// enterNameEntry switches to the name prompt for a qualifying score.
func (m SessionModel) enterNameEntry(diff config.Difficulty, score int, restart bool) (tea.Model, tea.Cmd) {
	entry := NewNameEntryModel(diff, score, m.username, m.runtime.ScreenW, m.runtime.ScreenH)
	m.nameEntry = &entry
	m.phase = phaseNameEntry
	m.pendingRestart = restart

	return m, m.nameEntry.Init()
}

// updateNameEntry handles updates when prompting for a name.
func (m SessionModel) updateNameEntry(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.nameEntry.Update(msg)
	if entryModel, ok := newModel.(NameEntryModel); ok {
		m.nameEntry = &entryModel
	}

	if m.nameEntry.quitting {
		m.quitting = true
		return m, tea.Quit
	}

	if m.nameEntry.Submitted() {
		name := m.nameEntry.Name()
		if m.board != nil {
			if err := m.board.Record(m.pendingDiff, name, m.pendingScore); err != nil {
				log.Warn("could not save scoreboard", "error", err)
			}
		}
		m.saveRun(m.pendingDiff, name, m.pendingScore)
		m.nameEntry = nil
		if m.pendingRestart {
			return m.startGame(m.pendingDiff)
		}
		return m.backToMenu()
	}

	if m.nameEntry.cancelled {
		m.saveRun(m.pendingDiff, "", m.pendingScore)
		m.nameEntry = nil
		if m.pendingRestart {
			return m.startGame(m.pendingDiff)
		}
		return m.backToMenu()
	}

	return m, cmd
}

// enterScores switches to the scoreboard screen.
func (m SessionModel) enterScores() (tea.Model, tea.Cmd) {
	sb := NewScoreboardModel(m.board, m.runtime.ScreenW, m.runtime.ScreenH)
	m.scoreboard = &sb
	m.phase = phaseScores
	return m, m.scoreboard.Init()
}

// updateScores handles updates when showing the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sbModel, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sbModel
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu resets the session to a fresh menu.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.scoreboard = nil
	m.menu = NewMenuModel(m.gameCfg, m.runtime.ScreenW, m.runtime.ScreenH)
	m.phase = phaseMenu
	return m, m.menu.Init()
}

// saveRun records a finished run in the history database, best effort.
func (m SessionModel) saveRun(diff config.Difficulty, name string, score int) {
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(string(diff), name, score); err != nil {
		log.Warn("could not save run history", "error", err)
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case phaseNameEntry:
		if m.nameEntry != nil {
			return m.nameEntry.View()
		}
	case phaseScores:
		if m.scoreboard != nil {
			return m.scoreboard.View()
		}
	}

	return m.menu.View()
}
