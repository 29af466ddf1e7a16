package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"snaketerm/internal/config"
	"snaketerm/internal/core"
	"snaketerm/internal/snake"
)

func newTestGameModel(t *testing.T) GameModel {
	t.Helper()
	cfg := config.DefaultSnakeConfig()
	game := snake.New(cfg, config.DifficultyMedium)
	m := NewGameModel(game, cfg, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	m.Init()
	return m
}

func updateGameModel(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	newModel, _ := m.Update(msg)
	gm, ok := newModel.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, expected GameModel", newModel)
	}
	return gm
}

func TestQuitKeyAbandonsRun(t *testing.T) {
	m := newTestGameModel(t)

	m = updateGameModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	if !m.Abandoned() {
		t.Error("q during a run should abandon it")
	}
	if m.IsQuitting() {
		t.Error("q during a run should not be a hard exit")
	}
	if m.Finished() {
		t.Error("abandoned run should not count as finished")
	}
}

func TestQuitKeyOnGameOverFinishesRun(t *testing.T) {
	m := newTestGameModel(t)
	m.gameState = core.GameState{GameOver: true, Score: 120}

	m = updateGameModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	if !m.Finished() {
		t.Error("q on the game over screen should acknowledge the run")
	}
	if m.Abandoned() || m.IsQuitting() {
		t.Error("a finished run must reach the scoring flow, not be discarded")
	}
	if m.Score() != 120 {
		t.Errorf("Score = %d, expected 120", m.Score())
	}
}

func TestCtrlCIsHardExit(t *testing.T) {
	m := newTestGameModel(t)

	m = updateGameModel(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if !m.IsQuitting() {
		t.Error("ctrl+c should be a hard exit")
	}
}

func TestBoostOnDirectionChange(t *testing.T) {
	m := newTestGameModel(t)

	// Snake starts heading right; up is an accepted turn and should move
	// immediately.
	m = updateGameModel(t, m, tea.KeyMsg{Type: tea.KeyUp})

	snap := m.game.Snapshot()
	if snap.Tick != 1 {
		t.Errorf("Tick = %d, expected 1 after boosted turn", snap.Tick)
	}
	if snap.Dir != snake.DirUp {
		t.Errorf("Dir = %v, expected up after boosted turn", snap.Dir)
	}
}

func TestNoBoostOnReversal(t *testing.T) {
	m := newTestGameModel(t)

	// Left reverses the initial rightward heading; the engine rejects it,
	// so no forced move happens.
	m = updateGameModel(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	if tick := m.game.Snapshot().Tick; tick != 0 {
		t.Errorf("Tick = %d, expected 0 after rejected reversal", tick)
	}
}

func TestBoostRateLimited(t *testing.T) {
	m := newTestGameModel(t)

	m = updateGameModel(t, m, tea.KeyMsg{Type: tea.KeyUp})
	// Second press lands within boost.min_interval_ms of the forced move.
	m = updateGameModel(t, m, tea.KeyMsg{Type: tea.KeyUp})

	if tick := m.game.Snapshot().Tick; tick != 1 {
		t.Errorf("Tick = %d, expected 1 with the second boost rate-limited", tick)
	}
}
