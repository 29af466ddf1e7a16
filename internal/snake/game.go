// Package snake implements the game engine: a bounded grid with border
// walls, static obstacles, a growing snake and randomly placed food.
// The engine is pure logic; input mapping, tick timing and terminal output
// live in the platform layer.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"snaketerm/internal/config"
	"snaketerm/internal/core"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Point represents a 2D grid coordinate.
type Point struct {
	X, Y int
}

// Game holds the full state of one run.
type Game struct {
	cfg      config.SnakeConfig
	diff     config.Difficulty
	settings config.DifficultySettings

	rng  *rand.Rand
	tick uint64

	// Grid dimensions including the border walls at the edges.
	width  int
	height int

	// Snake state, head at index 0.
	snake     []Point
	direction Direction
	nextDir   Direction

	food      Point
	obstacles map[Point]bool

	score    int
	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a game for the given difficulty. Call Reset before stepping.
func New(cfg config.SnakeConfig, diff config.Difficulty) *Game {
	return &Game{
		cfg:      cfg,
		diff:     diff,
		settings: cfg.Settings(diff),
	}
}

// Difficulty returns the difficulty this game was created with.
func (g *Game) Difficulty() config.Difficulty {
	return g.diff
}

// Heading returns the direction the snake will move on the next step,
// including any buffered turn.
func (g *Game) Heading() Direction {
	return g.nextDir
}

// TickInterval returns how often Step should be invoked.
func (g *Game) TickInterval() time.Duration {
	return g.settings.TickInterval()
}

// Reset initializes/restarts the game on a grid of the given screen size.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.width = rc.ScreenW
	g.height = rc.ScreenH

	if g.width < g.cfg.Grid.MinWidth || g.height < g.cfg.Grid.MinHeight {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	g.initSnake()
	g.spawnObstacles()
	g.spawnFood()
}

// initSnake places a three-segment snake in the middle of the grid, heading right.
func (g *Game) initSnake() {
	cx := g.width / 2
	cy := g.height / 2

	g.snake = []Point{
		{X: cx, Y: cy}, // Head
		{X: cx - 1, Y: cy},
		{X: cx - 2, Y: cy},
	}
	g.direction = DirRight
	g.nextDir = DirRight
}

// spawnObstacles scatters the difficulty's obstacle count across the grid,
// keeping a margin of 2 from the walls and avoiding the starting snake.
func (g *Game) spawnObstacles() {
	g.obstacles = make(map[Point]bool, g.settings.Obstacles)

	for len(g.obstacles) < g.settings.Obstacles {
		p := Point{
			X: 2 + g.rng.Intn(g.width-4),
			Y: 2 + g.rng.Intn(g.height-4),
		}
		if g.obstacles[p] || g.isSnakeAt(p) {
			continue
		}
		g.obstacles[p] = true
	}
}

// spawnFood places food at a uniformly random free interior cell.
func (g *Game) spawnFood() {
	var free []Point
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			p := Point{X: x, Y: y}
			if !g.obstacles[p] && !g.isSnakeAt(p) {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		// Snake filled the board; nothing left to eat.
		g.food = Point{X: -1, Y: -1}
		return
	}

	g.food = free[g.rng.Intn(len(free))]
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step advances the game by one move. The platform calls it once per
// difficulty tick interval, plus immediately on boosted direction presses.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			ScreenW: g.width,
			ScreenH: g.height,
			Seed:    g.rng.Int63(),
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.steer(in)
	g.move()

	return core.StepResult{State: g.State()}
}

// steer buffers a direction change, rejecting reversal onto the neck.
func (g *Game) steer(in core.InputFrame) {
	var newDir Direction
	switch in.Direction() {
	case core.ActionUp:
		newDir = DirUp
	case core.ActionDown:
		newDir = DirDown
	case core.ActionLeft:
		newDir = DirLeft
	case core.ActionRight:
		newDir = DirRight
	default:
		return
	}

	if newDir != g.direction.Opposite() {
		g.nextDir = newDir
	}
}

// move advances the snake one cell in the buffered direction.
func (g *Game) move() {
	if len(g.snake) == 0 {
		return
	}

	g.direction = g.nextDir

	head := g.snake[0]
	var newHead Point
	switch g.direction {
	case DirUp:
		newHead = Point{X: head.X, Y: head.Y - 1}
	case DirDown:
		newHead = Point{X: head.X, Y: head.Y + 1}
	case DirLeft:
		newHead = Point{X: head.X - 1, Y: head.Y}
	case DirRight:
		newHead = Point{X: head.X + 1, Y: head.Y}
	}

	// Border cells are walls.
	if newHead.X <= 0 || newHead.X >= g.width-1 ||
		newHead.Y <= 0 || newHead.Y >= g.height-1 {
		g.gameOver = true
		return
	}

	if g.obstacles[newHead] {
		g.gameOver = true
		return
	}

	// Self collision. The tail cell is excluded: it vacates this move
	// unless the snake grows, and growth only happens on a food cell,
	// which is never inside the body.
	for i := 0; i < len(g.snake)-1; i++ {
		if g.snake[i] == newHead {
			g.gameOver = true
			return
		}
	}

	g.snake = append([]Point{newHead}, g.snake...)

	if newHead == g.food {
		g.score += g.cfg.Scoring.FoodPoints
		g.spawnFood()
		return // Keep the tail: the snake grows.
	}

	g.snake = g.snake[:len(g.snake)-1]
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Render draws the game to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need at least %dx%d", g.cfg.Grid.MinWidth, g.cfg.Grid.MinHeight))
		return
	}

	// Border walls.
	dst.DrawBoxColored(core.NewRect(0, 0, g.width, g.height), core.ColorGray)

	for obstacle := range g.obstacles {
		dst.SetColored(obstacle.X, obstacle.Y, '█', core.ColorGray)
	}

	if g.food.X >= 0 && g.food.Y >= 0 {
		dst.SetColored(g.food.X, g.food.Y, '#', core.ColorBrightYellow)
	}

	for i, seg := range g.snake {
		if i == 0 {
			dst.SetColored(seg.X, seg.Y, '@', core.ColorBrightGreen)
		} else {
			dst.SetColored(seg.X, seg.Y, '*', core.ColorGreen)
		}
	}

	g.renderHUD(dst)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "GAME OVER!", fmt.Sprintf("Final Score: %d", g.score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws score and difficulty on the top border line, and the key
// help on the bottom one.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))

	diffText := fmt.Sprintf(" Difficulty: %s ", g.diff.Title())
	dst.DrawText(g.width-len(diffText)-2, 0, diffText)

	help := " Arrows: steer/boost  P: pause  Q: quit "
	if g.gameOver {
		help = " Enter: continue  R: new game  Q: quit "
	}
	if len(help) < g.width-4 {
		dst.DrawTextColored(2, g.height-1, help, core.ColorGray)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := core.Max(len(line1), len(line2)) + 6
	boxH := 5
	boxX := (g.width - boxW) / 2
	boxY := (g.height - boxH) / 2

	for y := boxY + 1; y < boxY+boxH-1; y++ {
		for x := boxX + 1; x < boxX+boxW-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
