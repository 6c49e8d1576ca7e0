package engine

import "fmt"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Vector returns the unit step (row delta, col delta) for the direction.
// Unknown directions are a caller bug.
func (d Direction) Vector() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		panic(fmt.Sprintf("engine: invalid direction %d", int(d)))
	}
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Directions lists all four move directions, useful for exhaustive checks.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// traversals returns the row and column visit order for a move so that
// tiles closest to the target edge are processed first. This ordering is
// what makes the farthest-position search correct and prevents a tile
// from merging twice in one move.
func traversals(size int, d Direction) (rows, cols []int) {
	rows = make([]int, size)
	cols = make([]int, size)
	for i := 0; i < size; i++ {
		rows[i] = i
		cols[i] = i
	}
	if d == DirDown {
		for i := 0; i < size; i++ {
			rows[i] = size - 1 - i
		}
	}
	if d == DirRight {
		for i := 0; i < size; i++ {
			cols[i] = size - 1 - i
		}
	}
	return rows, cols
}
