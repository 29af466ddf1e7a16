package snake

// RunState represents the coarse state of a run.
type RunState string

const (
	StatePlaying     RunState = "playing"
	StatePaused      RunState = "paused"
	StateGameOver    RunState = "game_over"
	StatePausedSmall RunState = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick       uint64
	Difficulty string
	Score      int
	SnakeLen   int
	HeadX      int
	HeadY      int
	Dir        Direction
	FoodX      int
	FoodY      int
	Obstacles  int
	State      RunState
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	headX, headY := 0, 0
	if len(g.snake) > 0 {
		headX = g.snake[0].X
		headY = g.snake[0].Y
	}

	return Snapshot{
		Tick:       g.tick,
		Difficulty: string(g.diff),
		Score:      g.score,
		SnakeLen:   len(g.snake),
		HeadX:      headX,
		HeadY:      headY,
		Dir:        g.direction,
		FoodX:      g.food.X,
		FoodY:      g.food.Y,
		Obstacles:  len(g.obstacles),
		State:      state,
	}
}
