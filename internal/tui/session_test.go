package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"snaketerm/internal/config"
	"snaketerm/internal/core"
	"snaketerm/internal/leaderboard"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	cfg := config.DefaultSnakeConfig()
	board := leaderboard.Load(filepath.Join(t.TempDir(), "scores.json"))
	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}
	return NewSessionModel(cfg, board, nil, rc, "tester")
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	newModel, _ := m.Update(msg)
	sm, ok := newModel.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, expected SessionModel", newModel)
	}
	return sm
}

// startSessionGame drives the session from the main menu into a run.
func startSessionGame(t *testing.T, m SessionModel) SessionModel {
	t.Helper()
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})                     // New Game
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")}) // Easy
	if m.phase != phaseGame {
		t.Fatalf("phase = %v, expected phaseGame after difficulty pick", m.phase)
	}
	return m
}

func TestSessionQuitKeyReturnsToMenu(t *testing.T) {
	m := newTestSession(t)
	m = startSessionGame(t, m)

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	if m.phase != phaseMenu {
		t.Errorf("phase = %v, expected phaseMenu after abandoning run", m.phase)
	}
	if m.quitting {
		t.Error("abandoning a run must not end the session")
	}
}

func TestSessionGameOverQuitEntersNameEntry(t *testing.T) {
	m := newTestSession(t)
	m = startSessionGame(t, m)

	// Finished run with a qualifying score (board is empty).
	m.gameModel.gameState = core.GameState{GameOver: true, Score: 50}
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	if m.phase != phaseNameEntry {
		t.Errorf("phase = %v, expected phaseNameEntry for a qualifying score", m.phase)
	}
	if m.pendingScore != 50 {
		t.Errorf("pendingScore = %d, expected 50", m.pendingScore)
	}
}

func TestSessionNameSubmitReturnsToMenu(t *testing.T) {
	m := newTestSession(t)
	m = startSessionGame(t, m)

	m.gameModel.gameState = core.GameState{GameOver: true, Score: 50}
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseNameEntry {
		t.Fatalf("phase = %v, expected phaseNameEntry", m.phase)
	}

	// The SSH username pre-fills the input, so Enter submits it.
	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.phase != phaseMenu {
		t.Errorf("phase = %v, expected phaseMenu after submitting a name", m.phase)
	}

	top := m.board.Top(config.DifficultyEasy)
	if len(top) != 1 || top[0].Name != "TESTER" || top[0].Score != 50 {
		t.Errorf("board = %+v, expected [{TESTER 50}]", top)
	}
}

func TestSessionCtrlCEndsSession(t *testing.T) {
	m := newTestSession(t)
	m = startSessionGame(t, m)

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if !m.quitting {
		t.Error("ctrl+c during a run should end the session")
	}
}
