package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the default game configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: Board{
			Size:    4,
			WinTile: 2048,
		},
		Spawn: Spawn{
			FourProb: 0.1,
		},
		Undo: Undo{
			Limit:   3,
			History: 10,
		},
		Input: Input{
			DebounceMs: 180,
		},
	}
}
