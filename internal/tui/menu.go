package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"snaketerm/internal/config"
)

// menuScreen identifies which screen the menu model is showing.
type menuScreen int

const (
	screenMain menuScreen = iota
	screenDifficulty
)

// MenuModel is the Bubble Tea model for the main menu and difficulty picker.
type MenuModel struct {
	screen     menuScreen
	cursor     int
	diffCursor int
	width      int
	height     int
	cfg        config.SnakeConfig
	keyMapper  *KeyMapper
	selected   config.Difficulty
	hasChoice  bool
	wantScores bool
	quitting   bool
}

// mainMenuItems are the entries on the first screen, top to bottom.
var mainMenuItems = []string{"New Game", "High Scores", "Quit"}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg config.SnakeConfig, width, height int) MenuModel {
	return MenuModel{
		screen:    screenMain,
		width:     width,
		height:    height,
		cfg:       cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenDifficulty {
		return m.handleDifficultyKey(msg)
	}
	return m.handleMainKey(msg)
}

func (m MenuModel) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(mainMenuItems)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		switch m.cursor {
		case 0: // New Game
			m.screen = screenDifficulty
			m.diffCursor = 0
		case 1: // High Scores
			m.wantScores = true
			return m, tea.Quit
		case 2: // Quit
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleDifficultyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	diffs := config.Difficulties()

	// Digit shortcuts select directly
	switch msg.String() {
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		if idx < len(diffs) {
			m.selected = diffs[idx]
			m.hasChoice = true
			return m, tea.Quit
		}
	}

	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionBack:
		m.screen = screenMain

	case MenuActionUp:
		if m.diffCursor > 0 {
			m.diffCursor--
		}

	case MenuActionDown:
		if m.diffCursor < len(diffs)-1 {
			m.diffCursor++
		}

	case MenuActionSelect:
		m.selected = diffs[m.diffCursor]
		m.hasChoice = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting || m.hasChoice || m.wantScores {
		return ""
	}

	if m.screen == screenDifficulty {
		return m.viewDifficulty()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	title := "  S N A K E  "
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	for i, item := range mainMenuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) viewDifficulty() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("Select difficulty", m.width))
	b.WriteString("\n\n")

	for i, d := range config.Difficulties() {
		cursor := "  "
		if i == m.diffCursor {
			cursor = "> "
		}

		s := m.cfg.Settings(d)
		line := fmt.Sprintf("%s%d. %-8s %2d obstacles, %dms", cursor, i+1, d.Title(), s.Obstacles, s.TickMs)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "1-4: Quick pick  |  Enter: Select  |  Esc: Back  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen difficulty and whether one was chosen.
func (m MenuModel) Selected() (config.Difficulty, bool) {
	return m.selected, m.hasChoice
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScores returns true if user requested the scoreboard.
func (m MenuModel) WantsScores() bool {
	return m.wantScores
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty config.Difficulty
	WantScores bool
	Quit       bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg config.SnakeConfig, width, height int) (MenuResult, error) {
	model := NewMenuModel(cfg, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}

	if m.WantsScores() {
		return MenuResult{WantScores: true}, nil
	}
	if diff, chosen := m.Selected(); chosen {
		return MenuResult{Difficulty: diff}, nil
	}
	return MenuResult{Quit: true}, nil
}
