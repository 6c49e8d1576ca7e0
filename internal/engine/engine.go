// Package engine implements the deterministic 2048 game-state machine:
// grid occupancy, the directional move/merge algorithm, spawn policy,
// win/loss detection and bounded history-based undo.
//
// The engine is a pure, synchronous, single-threaded state machine. The
// caller owns the instance and must serialize all calls into it; every
// operation performs a bounded O(size²) amount of work and always leaves
// the state in an invariant-respecting configuration.
package engine

import "math/rand"

// Defaults for Options fields left at zero.
const (
	DefaultSize          = 4
	DefaultWinTile       = 2048
	DefaultSpawnFourProb = 0.1
	DefaultUndoLimit     = 3
	DefaultHistoryCap    = 10
)

// Options configures a new engine. Zero values fall back to the defaults
// above; Seed 0 asks for a time-based seed from math/rand's global source.
type Options struct {
	Size          int
	WinTile       int
	SpawnFourProb float64
	UndoLimit     int
	HistoryCap    int
	Seed          int64

	// Persister receives high score and stats writes. Nil disables
	// persistence; the engine then starts from a zero high score.
	Persister Persister
}

func (o *Options) normalize() {
	if o.Size < 2 {
		o.Size = DefaultSize
	}
	if o.WinTile < 4 {
		o.WinTile = DefaultWinTile
	}
	if o.SpawnFourProb <= 0 || o.SpawnFourProb >= 1 {
		o.SpawnFourProb = DefaultSpawnFourProb
	}
	if o.UndoLimit <= 0 {
		o.UndoLimit = DefaultUndoLimit
	}
	if o.HistoryCap <= 0 {
		o.HistoryCap = DefaultHistoryCap
	}
	if o.Seed == 0 {
		o.Seed = rand.Int63()
	}
}

// Engine owns the current game state, the undo history and the session high
// score. It is discarded and replaced wholesale on restart.
type Engine struct {
	size          int
	winTile       int
	spawnFourProb float64

	rng    *rand.Rand
	nextID int

	tiles    []Tile
	score    int
	moves    int
	combo    int
	gameOver bool
	won      bool

	hist           *history
	undosRemaining int

	highScore int
	bestCombo int

	persister      Persister
	statsCommitted bool
}

// New builds a fresh engine with two seeded tiles and the configured undo
// budget. The persisted high score is loaded through the Persister,
// falling back to 0 when storage is absent or unreadable.
func New(opts Options) *Engine {
	opts.normalize()

	e := &Engine{
		size:           opts.Size,
		winTile:        opts.WinTile,
		spawnFourProb:  opts.SpawnFourProb,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		hist:           newHistory(opts.HistoryCap),
		undosRemaining: opts.UndoLimit,
		persister:      opts.Persister,
	}

	if e.persister != nil {
		if high, err := e.persister.HighScore(); err == nil {
			e.highScore = high
		}
	}

	e.spawnTile()
	e.spawnTile()
	return e
}

// spawnTile places a new tile in a uniformly random empty cell: value 2
// with probability 1-spawnFourProb, else 4. No-op on a full grid.
func (e *Engine) spawnTile() {
	g := e.buildGrid()
	cells := g.availableCells()
	if len(cells) == 0 {
		return
	}

	pos := cells[e.rng.Intn(len(cells))]
	value := 2
	if e.rng.Float64() < e.spawnFourProb {
		value = 4
	}

	e.nextID++
	e.tiles = append(e.tiles, Tile{
		ID:    e.nextID,
		Value: value,
		Pos:   pos,
		New:   true,
	})
}

// buildGrid indexes the live tiles for occupancy queries. The returned grid
// points at copies, never at e.tiles entries.
func (e *Engine) buildGrid() *grid {
	ptrs := make([]*Tile, len(e.tiles))
	for i := range e.tiles {
		t := e.tiles[i]
		ptrs[i] = &t
	}
	return newGrid(e.size, ptrs)
}

// snapshotState captures the current state with transient flags cleared,
// so undo restores a flag-free board.
func (e *Engine) snapshotState() snapshot {
	tiles := cloneTiles(e.tiles)
	for i := range tiles {
		tiles[i].New = false
		tiles[i].Merged = false
	}
	return snapshot{
		tiles:    tiles,
		score:    e.score,
		moves:    e.moves,
		combo:    e.combo,
		gameOver: e.gameOver,
		won:      e.won,
	}
}

// Undo rewinds to the state before the most recent applied move. It returns
// false when the undo budget is spent or no history remains. Undos are a
// consumable resource: they are never replenished within a game, and undo
// itself cannot be undone.
func (e *Engine) Undo() bool {
	if e.undosRemaining <= 0 {
		return false
	}
	s, ok := e.hist.pop()
	if !ok {
		return false
	}

	e.tiles = s.tiles
	e.score = s.score
	e.moves = s.moves
	e.combo = s.combo
	// gameOver and won are monotonic within a game; a finished (and
	// stats-committed) game stays finished.
	e.gameOver = e.gameOver || s.gameOver
	e.won = e.won || s.won
	e.undosRemaining--
	return true
}

// commitStats folds this game's results into the persisted lifetime stats.
// Called exactly once, at the transition into gameOver; restarting before
// that point forfeits the unfinished game's stats.
func (e *Engine) commitStats() {
	if e.statsCommitted {
		return
	}
	e.statsCommitted = true

	if e.persister == nil {
		return
	}
	stats, err := e.persister.Stats()
	if err != nil {
		stats = Stats{}
	}
	stats.GamesPlayed++
	if e.won {
		stats.GamesWon++
	}
	stats.TotalScore += e.score
	if e.bestCombo > stats.BestCombo {
		stats.BestCombo = e.bestCombo
	}
	if max := e.MaxTile(); max > stats.HighestTile {
		stats.HighestTile = max
	}
	e.persister.SaveStats(stats) //nolint:errcheck // Best-effort write
}

// Size returns the board dimension.
func (e *Engine) Size() int { return e.size }

// Tiles returns a copy of the current tiles in row-major order.
func (e *Engine) Tiles() []Tile {
	g := e.buildGrid()
	return g.tiles()
}

// Score returns the cumulative score.
func (e *Engine) Score() int { return e.score }

// HighScore returns the session high score, seeded from persisted storage.
func (e *Engine) HighScore() int { return e.highScore }

// Moves returns the number of applied moves.
func (e *Engine) Moves() int { return e.moves }

// Combo returns the number of merges performed by the most recent move.
func (e *Engine) Combo() int { return e.combo }

// BestCombo returns the largest combo achieved this game.
func (e *Engine) BestCombo() int { return e.bestCombo }

// UndosRemaining returns how many undos are left.
func (e *Engine) UndosRemaining() int { return e.undosRemaining }

// HistoryLen returns the number of rewindable snapshots.
func (e *Engine) HistoryLen() int { return e.hist.len() }

// GameOver reports whether no further move is possible.
func (e *Engine) GameOver() bool { return e.gameOver }

// Won reports whether a merge has ever produced the win tile.
func (e *Engine) Won() bool { return e.won }

// MaxTile returns the highest tile value on the board.
func (e *Engine) MaxTile() int {
	max := 0
	for _, t := range e.tiles {
		if t.Value > max {
			max = t.Value
		}
	}
	return max
}

// MovesAvailable reports whether any direction could still change the board.
func (e *Engine) MovesAvailable() bool {
	return e.buildGrid().movesAvailable()
}
