package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultDifficultyTable(t *testing.T) {
	cfg := DefaultSnakeConfig()

	tests := []struct {
		diff      Difficulty
		obstacles int
		tick      time.Duration
	}{
		{DifficultyEasy, 0, 600 * time.Millisecond},
		{DifficultyMedium, 5, 300 * time.Millisecond},
		{DifficultyHard, 10, 200 * time.Millisecond},
		{DifficultyInsane, 15, 50 * time.Millisecond},
	}

	for _, tc := range tests {
		t.Run(string(tc.diff), func(t *testing.T) {
			s := cfg.Settings(tc.diff)
			if s.Obstacles != tc.obstacles {
				t.Errorf("Obstacles = %d, expected %d", s.Obstacles, tc.obstacles)
			}
			if s.TickInterval() != tc.tick {
				t.Errorf("TickInterval = %v, expected %v", s.TickInterval(), tc.tick)
			}
		})
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	// The embedded YAML is the source of truth at runtime; keep it in sync
	// with DefaultSnakeConfig.
	loaded, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	hard := DefaultSnakeConfig()
	for _, d := range Difficulties() {
		if loaded.Settings(d) != hard.Settings(d) {
			t.Errorf("difficulty %s: embedded %+v != hardcoded %+v", d, loaded.Settings(d), hard.Settings(d))
		}
	}
	if loaded.Scoring.FoodPoints != hard.Scoring.FoodPoints {
		t.Errorf("FoodPoints: embedded %d != hardcoded %d", loaded.Scoring.FoodPoints, hard.Scoring.FoodPoints)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", DifficultyEasy, false},
		{"MEDIUM", DifficultyMedium, false},
		{" hard ", DifficultyHard, false},
		{"Insane", DifficultyInsane, false},
		{"nightmare", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDifficulty(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDifficulty(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestDifficultyTitle(t *testing.T) {
	if DifficultyEasy.Title() != "Easy" {
		t.Errorf("Title() = %q, expected Easy", DifficultyEasy.Title())
	}
	if DifficultyInsane.Title() != "Insane" {
		t.Errorf("Title() = %q, expected Insane", DifficultyInsane.Title())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "snake.yaml")

	custom := `
scoring:
  food_points: 25
difficulties:
  easy:
    obstacles: 3
    tick_ms: 450
`
	if err := os.WriteFile(path, []byte(custom), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Scoring.FoodPoints != 25 {
		t.Errorf("FoodPoints = %d, expected 25", cfg.Scoring.FoodPoints)
	}

	easy := cfg.Settings(DifficultyEasy)
	if easy.Obstacles != 3 || easy.TickMs != 450 {
		t.Errorf("easy settings = %+v, expected {3 450}", easy)
	}

	// Difficulties absent from the file fall back to defaults.
	insane := cfg.Settings(DifficultyInsane)
	if insane.Obstacles != 15 || insane.TickMs != 50 {
		t.Errorf("insane fallback = %+v, expected {15 50}", insane)
	}
}

func TestLoadPartialConfigScalarFallbacks(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "snake.yaml")

	// Only difficulties: grid, scoring and boost sections are absent.
	custom := `
difficulties:
  hard:
    obstacles: 7
    tick_ms: 150
`
	if err := os.WriteFile(path, []byte(custom), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	def := DefaultSnakeConfig()
	if cfg.Scoring.FoodPoints != def.Scoring.FoodPoints {
		t.Errorf("FoodPoints = %d, expected default %d", cfg.Scoring.FoodPoints, def.Scoring.FoodPoints)
	}
	if cfg.Grid.MinWidth != def.Grid.MinWidth || cfg.Grid.MinHeight != def.Grid.MinHeight {
		t.Errorf("grid = %+v, expected default %+v", cfg.Grid, def.Grid)
	}
	if cfg.Boost.MinIntervalMs != def.Boost.MinIntervalMs {
		t.Errorf("boost = %d, expected default %d", cfg.Boost.MinIntervalMs, def.Boost.MinIntervalMs)
	}

	hard := cfg.Settings(DifficultyHard)
	if hard.Obstacles != 7 || hard.TickMs != 150 {
		t.Errorf("hard settings = %+v, expected {7 150}", hard)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with missing explicit path should fail")
	}
}
