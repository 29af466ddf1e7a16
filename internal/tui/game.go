package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"snaketerm/internal/config"
	"snaketerm/internal/core"
	"snaketerm/internal/snake"
)

// GameModel is the Bubble Tea model for one run of the game.
type GameModel struct {
	game       *snake.Game
	screen     *core.Screen
	cfg        config.SnakeConfig
	runtime    core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	lastMove   time.Time
	quitting   bool
	abandoned  bool
	finished   bool
	restart    bool
}

// NewGameModel creates a model running the given game.
func NewGameModel(game *snake.Game, cfg config.SnakeConfig, rc core.RuntimeConfig) GameModel {
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(rc.ScreenW, rc.ScreenH),
		cfg:        cfg,
		runtime:    rc,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.runtime)
	return tickCmd(m.game.TickInterval())
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C is the only hard exit; q routes back to the menu so the run
	// outcome is never lost.
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	action, _ := m.keyMapper.MapKey(msg)

	if m.gameState.GameOver {
		switch action {
		case core.ActionConfirm, core.ActionBack, core.ActionQuit:
			m.finished = true
			return m, tea.Quit
		case core.ActionRestart:
			m.finished = true
			m.restart = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		// Abandon the run: score discarded, back to the menu
		m.abandoned = true
		return m, tea.Quit
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.inputFrame.Set(action)
		return m.maybeBoost(action)
	case core.ActionPause:
		m.inputFrame.Set(core.ActionPause)
	}

	return m, nil
}

// maybeBoost forces an immediate move on any accepted direction press,
// rate-limited by the configured minimum interval. Reversal presses are
// rejected by the engine and never move.
func (m GameModel) maybeBoost(action core.Action) (tea.Model, tea.Cmd) {
	dir, ok := actionDirection(action)
	if !ok || dir == m.game.Heading().Opposite() {
		return m, nil
	}
	if m.gameState.Paused {
		return m, nil
	}

	now := time.Now()
	if now.Sub(m.lastMove) < m.cfg.Boost.MinInterval() {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	m.lastMove = now
	return m, nil
}

// actionDirection maps a direction action to the engine's direction type.
func actionDirection(a core.Action) (snake.Direction, bool) {
	switch a {
	case core.ActionUp:
		return snake.DirUp, true
	case core.ActionDown:
		return snake.DirDown, true
	case core.ActionLeft:
		return snake.DirLeft, true
	case core.ActionRight:
		return snake.DirRight, true
	}
	return 0, false
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// A resized grid invalidates positions, so the run restarts.
	if !m.gameState.GameOver {
		m.runtime.Seed = time.Now().UnixNano()
		m.game.Reset(m.runtime)
		m.gameState = m.game.State()
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()
	m.lastMove = time.Now()

	return m, tickCmd(m.game.TickInterval())
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting || m.abandoned || m.finished {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true on a hard exit (Ctrl+C).
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Abandoned returns true if the user left a running game for the menu.
func (m GameModel) Abandoned() bool {
	return m.abandoned
}

// Finished returns true if the run ended in a game over the user acknowledged.
func (m GameModel) Finished() bool {
	return m.finished
}

// WantsRestart returns true if the user asked for a new game right away.
func (m GameModel) WantsRestart() bool {
	return m.restart
}

// Score returns the final score of the run.
func (m GameModel) Score() int {
	return m.gameState.Score
}

// GameResult holds the outcome of one run.
type GameResult struct {
	Score   int
	Played  bool // True when the run ended in a game over, false on abandon
	Restart bool // True when the user asked to start another run right away
	Quit    bool // True only on a hard exit (Ctrl+C)
}

// RunGame runs a single game and returns the outcome.
// An abandoned run discards the score and routes back to the menu;
// only finished runs enter the scoring flow.
func RunGame(game *snake.Game, cfg config.SnakeConfig, rc core.RuntimeConfig) (GameResult, error) {
	model := NewGameModel(game, cfg, rc)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return GameResult{}, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return GameResult{Quit: true}, nil
	}

	switch {
	case m.Finished():
		return GameResult{
			Score:   m.Score(),
			Played:  true,
			Restart: m.WantsRestart(),
		}, nil
	case m.Abandoned():
		return GameResult{}, nil
	}

	return GameResult{Quit: true}, nil
}
