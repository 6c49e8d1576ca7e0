// tui2048 is a terminal 2048 game with undo, combo scoring and
// persistent high scores.
//
// Usage:
//
//	tui2048 play             - Play in the current terminal
//	tui2048 serve            - Start SSH server for remote play
//	tui2048 scores           - Show the top finished games
//	tui2048 stats            - Show lifetime statistics
//
// Global flags:
//
//	--seed <value>  - Set RNG seed for reproducible games
//	--db <path>     - Set database path (default: ~/.tui2048/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tui2048",
	Short: "2048 in your terminal",
	Long: `tui2048 is a terminal rendition of 2048: slide tiles, merge equal
pairs, chase the 2048 tile. Undo is limited, combos are scored, and the
high score survives between runs.

Available commands:
  play     - Play in the current terminal
  serve    - Start SSH server for remote play
  scores   - View the top finished games
  stats    - View lifetime statistics

Examples:
  tui2048 play
  tui2048 play --seed 42
  tui2048 serve --ssh :2222
  tui2048 scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tui2048/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
}
