package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048 in the current terminal",
	Long: `Start a game in the current terminal.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  U                - Undo (limited per game)
  R                - Restart
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Board size, win tile, spawn odds and undo limits come from the config
file; pass --config to point at a custom one.

Examples:
  tui2048 play
  tui2048 play --seed 42
  tui2048 play --config ./my-game.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The board needs roughly 8 columns per cell; refuse to start in a
	// terminal that cannot fit it.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		needW := cfg.Board.Size*8 + 4
		needH := cfg.Board.Size*3 + 6
		if w < needW || h < needH {
			fmt.Fprintf(os.Stderr, "Terminal too small: need at least %dx%d, have %dx%d\n",
				needW, needH, w, h)
			os.Exit(1)
		}
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(store, cfg, flagSeed)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
