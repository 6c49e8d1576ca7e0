package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime statistics",
	Long: `Display lifetime statistics across all finished games: games
played, games won, total score, best combo and the highest tile ever
reached.

Examples:
  tui2048 stats`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Lifetime Statistics")
	fmt.Println()
	fmt.Printf("  Games played:  %d\n", stats.GamesPlayed)
	fmt.Printf("  Games won:     %d\n", stats.GamesWon)
	fmt.Printf("  Total score:   %d\n", stats.TotalScore)
	fmt.Printf("  Best combo:    %d\n", stats.BestCombo)
	fmt.Printf("  Highest tile:  %d\n", stats.HighestTile)

	if stats.GamesPlayed > 0 {
		fmt.Println()
		fmt.Printf("  Average score: %d\n", stats.TotalScore/stats.GamesPlayed)
	}
}
