// snaketerm is a terminal snake game with per-difficulty high score boards.
//
// Usage:
//
//	snaketerm play             - Start the game (menu, difficulty picker)
//	snaketerm scores           - Print the high score boards
//	snaketerm serve            - Start SSH server for remote play
//
// Global flags:
//
//	--scores <path>  - Path to the JSON scoreboard (default: ~/.snaketerm/scores.json)
//	--db <path>      - Path to the run history database (default: ~/.snaketerm/history.db)
//	--config <path>  - Path to a custom game config YAML
//	--seed <value>   - RNG seed for reproducible runs (0 = time-based)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagScoresPath string
	flagDBPath     string
	flagConfig     string
	flagSeed       int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snaketerm",
	Short: "Snake in your terminal with high score boards",
	Long: `snaketerm is a terminal snake game. Steer the snake to the food,
avoid the walls, the obstacles and your own tail. Each difficulty keeps
its own top-10 score board.

Available commands:
  play     - Start the game
  scores   - Print the high score boards
  serve    - Start SSH server for remote play

Examples:
  snaketerm play
  snaketerm play --difficulty hard
  snaketerm scores
  snaketerm serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagScoresPath, "scores", "~/.snaketerm/scores.json", "Path to JSON scoreboard file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snaketerm/history.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
