package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board",
	Long: `Start playing the specified variant (default: 2048).
The campaign board first asks for a mode and starting level.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  P                 - Pause
  R                 - Restart
  B/Esc             - Leave (when paused or over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Fewer 4s, slow progression
  normal - Default spawn rates
  hard   - More 4s, faster progression
  fixed  - No progression, spawn rates stay as configured

Examples:
  tui2048 play
  tui2048 play 2048_endless --difficulty hard
  tui2048 play 2048_mini --seed 42
  tui2048 play --config ./my-2048.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "2048"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tui2048 list' to see available boards.")
		os.Exit(1)
	}

	cfg := runtimeConfig()

	var game registry.Game
	if gameID == "2048" {
		selection, updatedCfg, err := tui.RunT2048ModeSelector(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			return
		}

		game, err = selection.NewGame()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}
	} else {
		var err error
		game, err = registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}
	}

	store := openStore()
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
