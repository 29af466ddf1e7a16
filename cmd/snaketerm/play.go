package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"snaketerm/internal/config"
	"snaketerm/internal/core"
	"snaketerm/internal/leaderboard"
	"snaketerm/internal/snake"
	"snaketerm/internal/storage"
	"snaketerm/internal/tui"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Start the game. Without --difficulty the menu lets you pick one.

Controls:
  Arrows/WASD - Steer (same direction again = boost)
  P           - Pause
  Q/Ctrl+C    - Quit

Difficulties:
  easy    - No obstacles, slow pace
  medium  - 5 obstacles
  hard    - 10 obstacles, fast pace
  insane  - 15 obstacles, very fast

Examples:
  snaketerm play
  snaketerm play --difficulty insane
  snaketerm play --config ./my-snake.yaml --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Skip the menu and play this difficulty")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var presetDiff config.Difficulty
	if flagDifficulty != "" {
		presetDiff, err = config.ParseDifficulty(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	board := leaderboard.Load(flagScoresPath)

	// Run history is best effort; the game still works without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open run history database", "error", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	width, height := terminalSize()

	// Menu -> game -> scoring loop, until the user quits
	diff := presetDiff
	for {
		if diff == "" {
			result, menuErr := tui.RunMenu(gameCfg, width, height)
			if menuErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
				os.Exit(1)
			}
			if result.Quit {
				return
			}
			if result.WantScores {
				goBack, sbErr := tui.RunScoreboard(board, width, height)
				if sbErr != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
					os.Exit(1)
				}
				if !goBack {
					return
				}
				continue
			}
			diff = result.Difficulty
		}

		rc := core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		}

		game := snake.New(gameCfg, diff)
		result, gameErr := tui.RunGame(game, gameCfg, rc)
		if gameErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", gameErr)
			os.Exit(1)
		}
		if result.Quit {
			// Hard exit (Ctrl+C)
			return
		}

		if result.Played {
			handleFinishedRun(board, store, diff, result.Score, width, height)
		}

		if !result.Restart {
			// Back to the menu for the next run, even when the first
			// difficulty came from the flag
			diff = ""
		}
	}
}

// handleFinishedRun runs the scoring flow for a completed game: name entry
// when the score makes the board, run history either way.
func handleFinishedRun(board *leaderboard.Board, store *storage.Store, diff config.Difficulty, score int, width, height int) {
	name := ""

	if board.Qualifies(diff, score) {
		entered, ok, err := tui.RunNameEntry(diff, score, "", width, height)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if ok {
			name = entered
			if recErr := board.Record(diff, name, score); recErr != nil {
				log.Warn("could not save scoreboard", "error", recErr)
			}
		}
	}

	if store != nil {
		if _, err := store.SaveRun(string(diff), name, score); err != nil {
			log.Warn("could not save run history", "error", err)
		}
	}
}

// terminalSize returns the current terminal dimensions, with fallbacks.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
