package engine

// Position is a cell coordinate on the board.
type Position struct {
	Row int
	Col int
}

// step returns the neighboring position one unit along the direction.
func (p Position) step(d Direction) Position {
	dr, dc := d.Vector()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Tile is a single numbered piece occupying one grid cell.
// The ID is stable for the tile's lifetime and unique within its engine.
type Tile struct {
	ID    int
	Value int
	Pos   Position

	// New marks a tile spawned on the most recent successful move.
	// Merged marks a tile that absorbed another on the most recent move.
	// Both are cleared when the next move applies.
	New    bool
	Merged bool
}
