package engine

// snapshot is a full value copy of the mutable game state, taken before a
// move applies. Tiles are copied by value so history entries never alias
// the live state.
type snapshot struct {
	tiles    []Tile
	score    int
	moves    int
	combo    int
	gameOver bool
	won      bool
}

func cloneTiles(tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	return out
}

// history is a bounded stack of pre-move snapshots. When full, pushing
// evicts the oldest entry.
type history struct {
	snaps    []snapshot
	capacity int
}

func newHistory(capacity int) *history {
	if capacity < 1 {
		capacity = 1
	}
	return &history{capacity: capacity}
}

func (h *history) push(s snapshot) {
	if len(h.snaps) == h.capacity {
		copy(h.snaps, h.snaps[1:])
		h.snaps = h.snaps[:h.capacity-1]
	}
	h.snaps = append(h.snaps, s)
}

// pop removes and returns the most recent snapshot.
func (h *history) pop() (snapshot, bool) {
	if len(h.snaps) == 0 {
		return snapshot{}, false
	}
	s := h.snaps[len(h.snaps)-1]
	h.snaps = h.snaps[:len(h.snaps)-1]
	return s, true
}

func (h *history) len() int {
	return len(h.snaps)
}
