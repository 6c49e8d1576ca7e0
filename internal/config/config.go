// Package config provides YAML-based game configuration loading for the
// 2048 engine and its terminal presentation layer.
package config

// GameConfig contains all tunable parameters for a game session.
type GameConfig struct {
	Board Board `yaml:"board"`
	Spawn Spawn `yaml:"spawn"`
	Undo  Undo  `yaml:"undo"`
	Input Input `yaml:"input"`
}

// Board defines the grid dimensions and win condition.
type Board struct {
	Size    int `yaml:"size"`     // Board dimension (size x size)
	WinTile int `yaml:"win_tile"` // First merge to this value wins
}

// Spawn defines the new-tile policy applied after each successful move.
type Spawn struct {
	FourProb float64 `yaml:"four_prob"` // Probability a spawn is a 4 instead of a 2
}

// Undo defines the rewind budget.
type Undo struct {
	Limit   int `yaml:"limit"`   // Undos per game, never replenished
	History int `yaml:"history"` // Snapshots kept, oldest evicted
}

// Input defines presentation-layer input shaping.
type Input struct {
	DebounceMs int `yaml:"debounce_ms"` // Ignore a second command arriving within this window
}

// normalize clamps out-of-range values back to the defaults so a partial or
// sloppy config file still yields a playable game.
func (c *GameConfig) normalize() {
	def := DefaultGameConfig()
	if c.Board.Size < 2 || c.Board.Size > 12 {
		c.Board.Size = def.Board.Size
	}
	if c.Board.WinTile < 4 {
		c.Board.WinTile = def.Board.WinTile
	}
	if c.Spawn.FourProb <= 0 || c.Spawn.FourProb >= 1 {
		c.Spawn.FourProb = def.Spawn.FourProb
	}
	if c.Undo.Limit <= 0 {
		c.Undo.Limit = def.Undo.Limit
	}
	if c.Undo.History <= 0 {
		c.Undo.History = def.Undo.History
	}
	if c.Input.DebounceMs < 0 {
		c.Input.DebounceMs = def.Input.DebounceMs
	}
}
