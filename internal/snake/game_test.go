package snake

import (
	"strings"
	"testing"

	"snaketerm/internal/config"
	"snaketerm/internal/core"
)

func newTestGame(diff config.Difficulty, seed int64) *Game {
	g := New(config.DefaultSnakeConfig(), diff)
	g.Reset(core.RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    seed,
	})
	return g
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := newTestGame(config.DifficultyHard, 12345)
	g2 := newTestGame(config.DifficultyHard, 12345)

	input := core.NewInputFrame()
	for i := 0; i < 100; i++ {
		input.Clear()
		if i == 20 {
			input.Set(core.ActionDown)
		}
		if i == 40 {
			input.Set(core.ActionLeft)
		}

		g1.Step(input)
		g2.Step(input)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("Snapshot mismatch:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(config.DifficultyEasy, 42)

	if g.direction != DirRight {
		t.Fatalf("Expected initial direction right, got %v", g.direction)
	}

	// Try to go left (opposite) - should be ignored
	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)

	if g.direction == DirLeft {
		t.Error("Should not allow immediate reversal from right to left")
	}

	// Now try valid direction change: down
	input.Clear()
	input.Set(core.ActionDown)
	g.Step(input)

	if g.direction != DirDown {
		t.Errorf("Expected direction down, got %v", g.direction)
	}
}

func TestMoveKeepsLength(t *testing.T) {
	g := newTestGame(config.DifficultyEasy, 7)

	// Park the food away from the snake's path.
	g.food = Point{X: 1, Y: 1}

	input := core.NewInputFrame()
	for i := 0; i < 5; i++ {
		lenBefore := len(g.snake)
		g.Step(input)
		if g.gameOver {
			t.Fatalf("unexpected game over at step %d", i)
		}
		if len(g.snake) != lenBefore {
			t.Errorf("non-food move changed length: %d -> %d", lenBefore, len(g.snake))
		}
	}
}

func TestGrowthAndScore(t *testing.T) {
	g := newTestGame(config.DifficultyEasy, 222)

	head := g.snake[0]
	g.food = Point{X: head.X + 1, Y: head.Y}
	lenBefore := len(g.snake)

	g.Step(core.NewInputFrame())

	if len(g.snake) != lenBefore+1 {
		t.Errorf("Snake should grow by 1 after eating food, got %d vs %d", len(g.snake), lenBefore+1)
	}
	if g.score != 10 {
		t.Errorf("Score should be 10 after eating food, got %d", g.score)
	}
	if g.food == g.snake[0] {
		t.Error("Food should have been relocated after being eaten")
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newTestGame(config.DifficultyInsane, 999)

	// Spawn food many times and verify it never lands on snake or obstacles
	for i := 0; i < 200; i++ {
		g.spawnFood()

		if g.obstacles[g.food] {
			t.Errorf("Food spawned on obstacle at (%d, %d)", g.food.X, g.food.Y)
		}
		if g.isSnakeAt(g.food) {
			t.Errorf("Food spawned on snake at (%d, %d)", g.food.X, g.food.Y)
		}
		if g.food.X < 1 || g.food.X > g.width-2 || g.food.Y < 1 || g.food.Y > g.height-2 {
			t.Errorf("Food spawned on or outside walls at (%d, %d)", g.food.X, g.food.Y)
		}
	}
}

func TestObstacleCounts(t *testing.T) {
	tests := []struct {
		diff config.Difficulty
		want int
	}{
		{config.DifficultyEasy, 0},
		{config.DifficultyMedium, 5},
		{config.DifficultyHard, 10},
		{config.DifficultyInsane, 15},
	}

	for _, tc := range tests {
		t.Run(string(tc.diff), func(t *testing.T) {
			g := newTestGame(tc.diff, 31)
			if len(g.obstacles) != tc.want {
				t.Errorf("obstacle count = %d, expected %d", len(g.obstacles), tc.want)
			}
			for p := range g.obstacles {
				if g.isSnakeAt(p) {
					t.Errorf("obstacle at (%d, %d) overlaps starting snake", p.X, p.Y)
				}
			}
		})
	}
}

func TestWallCollision(t *testing.T) {
	g := newTestGame(config.DifficultyEasy, 789)

	// Head just inside the top wall, moving up.
	g.snake = []Point{
		{X: 5, Y: 1},
		{X: 5, Y: 2},
		{X: 5, Y: 3},
	}
	g.direction = DirUp
	g.nextDir = DirUp
	g.score = 30

	g.move()

	if !g.gameOver {
		t.Error("Game should be over after hitting wall")
	}
	if g.score != 30 {
		t.Errorf("Final score should equal pre-move score 30, got %d", g.score)
	}
	if g.snake[0] != (Point{X: 5, Y: 1}) {
		t.Error("Snake should not move into the wall")
	}
}

func TestObstacleCollision(t *testing.T) {
	g := newTestGame(config.DifficultyEasy, 55)

	head := g.snake[0]
	g.obstacles[Point{X: head.X + 1, Y: head.Y}] = true

	g.move()

	if !g.gameOver {
		t.Error("Game should be over after hitting an obstacle")
	}
}

func TestSelfCollision(t *testing.T) {
	g := newTestGame(config.DifficultyEasy, 111)

	// A hook shape: moving right puts the head onto its own body.
	g.snake = []Point{
		{X: 5, Y: 5}, // Head
		{X: 5, Y: 6},
		{X: 6, Y: 6},
		{X: 6, Y: 5},
		{X: 6, Y: 4},
	}
	g.direction = DirRight
	g.nextDir = DirRight

	g.move()

	if !g.gameOver {
		t.Error("Game should be over after self collision")
	}
}

func TestTailCellIsNotACollision(t *testing.T) {
	g := newTestGame(config.DifficultyEasy, 17)
	g.food = Point{X: 1, Y: 1}

	// A closed loop: the head moves onto the tail cell, which vacates
	// during the same move.
	g.snake = []Point{
		{X: 5, Y: 5}, // Head
		{X: 6, Y: 5},
		{X: 6, Y: 6},
		{X: 5, Y: 6}, // Tail, directly below the head
	}
	g.direction = DirDown
	g.nextDir = DirDown

	g.move()

	if g.gameOver {
		t.Error("Moving onto the vacating tail cell should not end the game")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(config.DifficultyEasy, 3)

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)

	if !g.paused {
		t.Fatal("Game should be paused")
	}

	// Paused game does not move.
	head := g.snake[0]
	g.Step(core.NewInputFrame())
	if g.snake[0] != head {
		t.Error("Snake should not move while paused")
	}

	input.Clear()
	input.Set(core.ActionPause)
	g.Step(input)
	if g.paused {
		t.Error("Pause should toggle off")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(config.DifficultyMedium, 9)
	g.gameOver = true
	g.score = 120

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	g.Step(input)

	if g.gameOver {
		t.Error("Restart should clear game over")
	}
	if g.score != 0 {
		t.Errorf("Restart should reset score, got %d", g.score)
	}
	if len(g.snake) != 3 {
		t.Errorf("Restart should respawn a 3-segment snake, got %d", len(g.snake))
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New(config.DefaultSnakeConfig(), config.DifficultyEasy)
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, Seed: 333})

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}
	if snap := g.Snapshot(); snap.State != StatePausedSmall {
		t.Errorf("State should be %s, got %s", StatePausedSmall, snap.State)
	}

	// Stepping a too-small game must not panic or move anything.
	g.Step(core.NewInputFrame())
}

func TestRender(t *testing.T) {
	g := newTestGame(config.DifficultyHard, 444)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Score: 0") {
		t.Error("HUD should contain the score")
	}
	if !strings.Contains(content, "Difficulty: Hard") {
		t.Error("HUD should contain the difficulty")
	}
	if !strings.Contains(content, "@") {
		t.Error("Screen should contain the snake head")
	}
	if !strings.Contains(content, "█") {
		t.Error("Screen should contain obstacles on hard")
	}
	if !strings.Contains(content, "#") {
		t.Error("Screen should contain food")
	}

	head := g.snake[0]
	if screen.Get(head.X, head.Y) != '@' {
		t.Errorf("Head glyph missing at (%d, %d)", head.X, head.Y)
	}
}

func TestGameOverOverlay(t *testing.T) {
	g := newTestGame(config.DifficultyEasy, 5)
	g.gameOver = true
	g.score = 70

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "GAME OVER!") {
		t.Error("Game over overlay missing")
	}
	if !strings.Contains(content, "Final Score: 70") {
		t.Error("Final score missing from overlay")
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := []struct {
		d, want Direction
	}{
		{DirUp, DirDown},
		{DirDown, DirUp},
		{DirLeft, DirRight},
		{DirRight, DirLeft},
	}

	for _, tc := range pairs {
		if got := tc.d.Opposite(); got != tc.want {
			t.Errorf("%v.Opposite() = %v, expected %v", tc.d, got, tc.want)
		}
	}
}
