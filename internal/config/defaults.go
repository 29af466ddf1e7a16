package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration.
// Obstacle counts and tick intervals per difficulty:
// easy 0/600ms, medium 5/300ms, hard 10/200ms, insane 15/50ms.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			MinWidth:  30,
			MinHeight: 12,
		},
		Scoring: ScoringConfig{
			FoodPoints: 10,
		},
		Boost: BoostConfig{
			MinIntervalMs: 50,
		},
		Difficulties: map[Difficulty]DifficultySettings{
			DifficultyEasy:   {Obstacles: 0, TickMs: 600},
			DifficultyMedium: {Obstacles: 5, TickMs: 300},
			DifficultyHard:   {Obstacles: 10, TickMs: 200},
			DifficultyInsane: {Obstacles: 15, TickMs: 50},
		},
	}
}
