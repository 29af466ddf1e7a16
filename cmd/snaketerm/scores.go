package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"snaketerm/internal/config"
	"snaketerm/internal/leaderboard"
	"snaketerm/internal/storage"
)

var flagStats bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print the high score boards",
	Long: `Print the top-10 score board for every difficulty.

With --stats, also show aggregated run history (games played, average
score, last played) from the history database.

Examples:
  snaketerm scores
  snaketerm scores --stats`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Also show run history statistics")
}

func runScores(_ *cobra.Command, _ []string) {
	board := leaderboard.Load(flagScoresPath)

	var store *storage.Store
	if flagStats {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			log.Warn("could not open run history database", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	for _, diff := range config.Difficulties() {
		fmt.Printf("High Scores - %s\n", diff.Title())
		fmt.Println()

		entries := board.Top(diff)
		if len(entries) == 0 {
			fmt.Println("  No scores recorded yet.")
		} else {
			fmt.Printf("  %-4s  %-20s  %s\n", "Rank", "Name", "Score")
			fmt.Printf("  %-4s  %-20s  %s\n", "----", "----", "-----")
			for i, entry := range entries {
				fmt.Printf("  %-4d  %-20s  %d\n", i+1, entry.Name, entry.Score)
			}
		}

		if store != nil {
			stats, err := store.Stats(string(diff))
			if err == nil && stats.Runs > 0 {
				fmt.Println()
				fmt.Printf("  Runs: %d  Best: %d  Avg: %.1f  Last played: %s\n",
					stats.Runs, stats.HighScore, stats.AvgScore,
					stats.LastPlayed.Format("2006-01-02 15:04"))
			}
		}

		fmt.Println()
	}
}
