package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a board",
	Long: `Display the top 10 high scores for the specified variant.
Without a variant, list the most recent games across all boards.

Examples:
  tui2048 scores
  tui2048 scores 2048
  tui2048 scores 2048_endless
  tui2048 scores 2048_mini --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the variant")
}

func runScores(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		if flagClearScores {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a variant")
			os.Exit(1)
		}
		runRecentScores()
		return
	}
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown board %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tui2048 list' to see available boards.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tui2048 play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "Rank", "Score", "Tile", "Moves", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %s\n", "----", "-----", "----", "-----", "----")

	for i, entry := range scores {
		rank := fmt.Sprintf("%d", i+1)
		if entry.Won {
			rank += "*"
		}
		fmt.Printf("  %-4s  %-10d  %-6d  %-6d  %s\n",
			rank, entry.Score, entry.MaxTile, entry.Moves, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(gameID); err == nil {
		fmt.Printf("Best: %d  Best tile: %d  Games: %d  Wins: %d\n",
			stats.HighScore, stats.BestTile, stats.GamesCount, stats.Wins)
	}
	fmt.Println("* reached the target tile")
}

func runRecentScores() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.RecentScores(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}
	writeRecent(os.Stdout, entries)
}

// writeRecent prints the latest games, newest first.
func writeRecent(w io.Writer, entries []storage.ScoreEntry) {
	fmt.Fprintln(w, "Recent Games")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		return
	}

	fmt.Fprintf(w, "  %-14s  %-10s  %-6s  %-6s  %s\n", "Board", "Score", "Tile", "Moves", "Date")
	fmt.Fprintf(w, "  %-14s  %-10s  %-6s  %-6s  %s\n", "-----", "-----", "----", "-----", "----")
	for _, entry := range entries {
		board := entry.GameID
		if entry.Won {
			board += "*"
		}
		fmt.Fprintf(w, "  %-14s  %-10d  %-6d  %-6d  %s\n",
			board, entry.Score, entry.MaxTile, entry.Moves, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "* reached the target tile")
}
