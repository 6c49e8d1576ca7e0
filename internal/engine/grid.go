package engine

import "fmt"

// grid is a size×size occupancy lookup built from the authoritative tile
// slice. It is never persisted; the move algorithm rebuilds it whenever it
// needs O(1) cell queries.
type grid struct {
	size  int
	cells [][]*Tile
}

// newGrid indexes the given tiles by position.
// Two tiles on the same cell violate the engine invariant and panic.
func newGrid(size int, tiles []*Tile) *grid {
	cells := make([][]*Tile, size)
	for r := range cells {
		cells[r] = make([]*Tile, size)
	}
	g := &grid{size: size, cells: cells}
	for _, t := range tiles {
		if !g.withinBounds(t.Pos) {
			panic(fmt.Sprintf("engine: tile %d out of bounds at %v", t.ID, t.Pos))
		}
		if g.cells[t.Pos.Row][t.Pos.Col] != nil {
			panic(fmt.Sprintf("engine: duplicate tile occupancy at %v", t.Pos))
		}
		g.cells[t.Pos.Row][t.Pos.Col] = t
	}
	return g
}

func (g *grid) withinBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.size && p.Col >= 0 && p.Col < g.size
}

// at returns the tile occupying p, or nil for an empty or out-of-bounds cell.
func (g *grid) at(p Position) *Tile {
	if !g.withinBounds(p) {
		return nil
	}
	return g.cells[p.Row][p.Col]
}

func (g *grid) cellAvailable(p Position) bool {
	return g.withinBounds(p) && g.cells[p.Row][p.Col] == nil
}

// availableCells returns every empty cell in row-major order.
func (g *grid) availableCells() []Position {
	var cells []Position
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if g.cells[r][c] == nil {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// moveTile relocates t to an empty cell. Moving onto an occupied cell is a
// bug in the move algorithm.
func (g *grid) moveTile(t *Tile, to Position) {
	if t.Pos == to {
		return
	}
	if g.cells[to.Row][to.Col] != nil {
		panic(fmt.Sprintf("engine: move onto occupied cell %v", to))
	}
	g.cells[t.Pos.Row][t.Pos.Col] = nil
	g.cells[to.Row][to.Col] = t
	t.Pos = to
}

// removeTile clears the cell occupied by t.
func (g *grid) removeTile(t *Tile) {
	g.cells[t.Pos.Row][t.Pos.Col] = nil
}

// farthestPosition walks from p along d until hitting the boundary or an
// occupied cell. It returns the farthest empty cell reachable and the first
// occupied cell beyond it (the potential merge partner), if any.
func (g *grid) farthestPosition(p Position, d Direction) (farthest Position, next Position, blocked bool) {
	farthest = p
	cell := p.step(d)
	for g.cellAvailable(cell) {
		farthest = cell
		cell = cell.step(d)
	}
	if g.withinBounds(cell) {
		return farthest, cell, true
	}
	return farthest, Position{}, false
}

// tiles collects the occupying tiles back into a value slice, row-major.
func (g *grid) tiles() []Tile {
	var out []Tile
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if t := g.cells[r][c]; t != nil {
				out = append(out, *t)
			}
		}
	}
	return out
}

// movesAvailable reports whether any move can still change the board:
// an empty cell exists, or two adjacent tiles share a value. Checking only
// right and down neighbors is sufficient since adjacency is symmetric.
func (g *grid) movesAvailable() bool {
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			t := g.cells[r][c]
			if t == nil {
				return true
			}
			if c < g.size-1 {
				if right := g.cells[r][c+1]; right != nil && right.Value == t.Value {
					return true
				}
			}
			if r < g.size-1 {
				if down := g.cells[r+1][c]; down != nil && down.Value == t.Value {
					return true
				}
			}
		}
	}
	return false
}
