// Package leaderboard keeps the per-difficulty top-10 score lists,
// persisted as a human-readable JSON file.
package leaderboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"snaketerm/internal/config"
)

// MaxEntries is the number of scores kept per difficulty.
const MaxEntries = 10

// Entry is a single high score record.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Board holds the top scores for every difficulty and knows where they are
// persisted. It is loaded once at startup and passed through the menu flow;
// every mutation writes the whole file back. Safe for concurrent use, as
// SSH sessions share one board.
type Board struct {
	mu      sync.Mutex
	path    string
	entries map[config.Difficulty][]Entry
}

// Load reads the board from the given path. A missing, unreadable or
// malformed file yields an empty board - score history is never worth
// refusing to start the game over.
func Load(path string) *Board {
	b := &Board{
		path:    expandHome(path),
		entries: make(map[config.Difficulty][]Entry),
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		return b
	}

	var raw map[config.Difficulty][]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return b
	}

	for diff, entries := range raw {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Score > entries[j].Score
		})
		if len(entries) > MaxEntries {
			entries = entries[:MaxEntries]
		}
		b.entries[diff] = entries
	}
	return b
}

// Path returns the file this board persists to.
func (b *Board) Path() string {
	return b.path
}

// Top returns the entries for a difficulty, best first.
// The returned slice is a copy.
func (b *Board) Top(diff config.Difficulty) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.entries[diff]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Qualifies reports whether a score would enter the top list: true if the
// list has room, or if the score beats the current last-place entry.
func (b *Board) Qualifies(diff config.Difficulty, score int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.entries[diff]
	if len(entries) < MaxEntries {
		return true
	}
	return score > entries[len(entries)-1].Score
}

// Record inserts a score, re-sorts descending, truncates to MaxEntries and
// persists the whole board. Equal scores keep insertion order, so the new
// entry lands below existing ties.
func (b *Board) Record(diff config.Difficulty, name string, score int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := append(b.entries[diff], Entry{Name: name, Score: score})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	b.entries[diff] = entries

	return b.save()
}

// save atomically writes the board: full write to a temp file in the same
// directory, then rename over the target.
func (b *Board) save() error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(b.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("leaderboard: cannot encode scores: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*.json")
	if err != nil {
		return fmt.Errorf("leaderboard: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("leaderboard: cannot write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("leaderboard: cannot close temp file: %w", err)
	}

	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("leaderboard: cannot replace %s: %w", b.path, err)
	}
	return nil
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
