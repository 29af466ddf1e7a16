package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snaketerm/internal/config"
	"snaketerm/internal/leaderboard"
)

// NameEntryModel prompts for a player name after a qualifying run.
type NameEntryModel struct {
	input     textinput.Model
	score     int
	diff      config.Difficulty
	width     int
	height    int
	submitted bool
	cancelled bool
	quitting  bool
}

// NewNameEntryModel creates the name prompt for a qualifying score.
// The initial value pre-fills the input (e.g. an SSH username).
func NewNameEntryModel(diff config.Difficulty, score int, initial string, width, height int) NameEntryModel {
	ti := textinput.New()
	ti.Placeholder = "AAA"
	ti.CharLimit = leaderboard.MaxNameLen
	ti.Width = leaderboard.MaxNameLen + 2
	ti.SetValue(leaderboard.SanitizeName(initial))
	ti.CursorEnd()
	ti.Focus()

	return NameEntryModel{
		input:  ti,
		score:  score,
		diff:   diff,
		width:  width,
		height: height,
	}
}

// Init initializes the model.
func (m NameEntryModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m NameEntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if leaderboard.ValidName(m.input.Value()) {
				m.submitted = true
				return m, tea.Quit
			}
			return m, nil
		}

		// Keep invalid characters out of the buffer entirely
		if msg.Type == tea.KeySpace {
			return m, nil
		}
		if msg.Type == tea.KeyRunes {
			kept := make([]rune, 0, len(msg.Runes))
			for _, r := range msg.Runes {
				if leaderboard.ValidNameChar(r) {
					kept = append(kept, r)
				}
			}
			if len(kept) == 0 {
				return m, nil
			}
			msg.Runes = kept
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt.
func (m NameEntryModel) View() string {
	if m.submitted || m.cancelled || m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("NEW HIGH SCORE!", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("%s  -  %d points", m.diff.Title(), m.score), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter your name:", m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(centerText("Enter: Save  |  Esc: Skip", m.width)))
	b.WriteString("\n")

	return b.String()
}

// Name returns the sanitized, uppercased submitted name.
func (m NameEntryModel) Name() string {
	return leaderboard.SanitizeName(m.input.Value())
}

// Submitted returns true if the user confirmed a valid name.
func (m NameEntryModel) Submitted() bool {
	return m.submitted
}

// RunNameEntry prompts for a name; ok is false when the user skipped.
func RunNameEntry(diff config.Difficulty, score int, initial string, width, height int) (name string, ok bool, err error) {
	model := NewNameEntryModel(diff, score, initial, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, runErr := p.Run()
	if runErr != nil {
		return "", false, runErr
	}

	m, isModel := finalModel.(NameEntryModel)
	if !isModel || !m.Submitted() {
		return "", false, nil
	}

	return m.Name(), true, nil
}
