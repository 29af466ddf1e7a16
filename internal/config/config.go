// Package config provides YAML-based game configuration loading and
// the difficulty table for the snake game.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is a named game difficulty.
type Difficulty string

// The four difficulties, ordered easiest first.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyInsane Difficulty = "insane"
)

// Difficulties lists all difficulties in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyInsane}
}

// ParseDifficulty converts a user-supplied string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyInsane:
		return d, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, medium, hard or insane)", s)
}

// Title returns the capitalized display name (e.g. "Easy").
func (d Difficulty) Title() string {
	if d == "" {
		return ""
	}
	s := string(d)
	return strings.ToUpper(s[:1]) + s[1:]
}

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Grid         GridConfig                        `yaml:"grid"`
	Scoring      ScoringConfig                     `yaml:"scoring"`
	Boost        BoostConfig                       `yaml:"boost"`
	Difficulties map[Difficulty]DifficultySettings `yaml:"difficulties"`
}

// GridConfig defines the minimum playable terminal size.
type GridConfig struct {
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
}

// ScoringConfig defines score values.
type ScoringConfig struct {
	FoodPoints int `yaml:"food_points"`
}

// BoostConfig governs forced moves when a direction key is pressed.
type BoostConfig struct {
	MinIntervalMs int `yaml:"min_interval_ms"`
}

// MinInterval returns the minimum delay between forced moves.
func (b BoostConfig) MinInterval() time.Duration {
	return time.Duration(b.MinIntervalMs) * time.Millisecond
}

// DifficultySettings maps a difficulty to its gameplay parameters.
type DifficultySettings struct {
	Obstacles int `yaml:"obstacles"`
	TickMs    int `yaml:"tick_ms"`
}

// TickInterval returns how often the snake moves at this difficulty.
func (s DifficultySettings) TickInterval() time.Duration {
	return time.Duration(s.TickMs) * time.Millisecond
}

// Settings returns the parameters for the given difficulty, falling back to
// the hardcoded defaults for levels missing from a user config.
func (c SnakeConfig) Settings(d Difficulty) DifficultySettings {
	if s, ok := c.Difficulties[d]; ok && s.TickMs > 0 {
		return s
	}
	return DefaultSnakeConfig().Difficulties[d]
}

// applyDefaults fills zero-valued scalar sections from the built-in
// defaults, so a partial user config still plays correctly (food keeps
// scoring, the minimum grid check stays meaningful).
func (c SnakeConfig) applyDefaults() SnakeConfig {
	def := DefaultSnakeConfig()
	if c.Grid.MinWidth <= 0 {
		c.Grid.MinWidth = def.Grid.MinWidth
	}
	if c.Grid.MinHeight <= 0 {
		c.Grid.MinHeight = def.Grid.MinHeight
	}
	if c.Scoring.FoodPoints <= 0 {
		c.Scoring.FoodPoints = def.Scoring.FoodPoints
	}
	if c.Boost.MinIntervalMs <= 0 {
		c.Boost.MinIntervalMs = def.Boost.MinIntervalMs
	}
	return c
}
