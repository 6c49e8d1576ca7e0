package engine

// MergeEvent describes one merge performed by a move: the destination cell
// and the doubled value it now holds. The presentation layer uses these to
// trigger effects.
type MergeEvent struct {
	Pos   Position
	Value int
}

// MoveResult describes the outcome of a single move attempt.
type MoveResult struct {
	// Moved is true when at least one tile changed position or a merge
	// occurred. A false result means the state was left untouched: no
	// spawn, no history entry, no move-counter increment.
	Moved       bool
	ScoreGained int
	Combo       int
	Merges      []MergeEvent

	// Won is true only on the move whose merge first produced the win
	// tile. GameOver reports the terminal flag after this move.
	Won      bool
	GameOver bool
}

// Move applies one directional command. The new arrangement is computed
// into a fresh structure and swapped in only when something actually moved
// or merged, so a rejected move is a pure no-op.
func (e *Engine) Move(dir Direction) MoveResult {
	dir.Vector() // fail fast on an invalid direction

	// Combo tracks merges of the current attempt only.
	e.combo = 0

	prev := e.snapshotState()

	// Work on flag-cleared copies; the live tiles stay untouched until
	// the move is known to apply.
	work := make([]*Tile, len(e.tiles))
	for i := range e.tiles {
		t := e.tiles[i]
		t.New = false
		t.Merged = false
		work[i] = &t
	}
	g := newGrid(e.size, work)

	var (
		moved    bool
		gained   int
		combo    int
		merges   []MergeEvent
		wonNow   bool
		mergedAt = make(map[Position]bool)
	)

	rows, cols := traversals(e.size, dir)
	for _, r := range rows {
		for _, c := range cols {
			t := g.at(Position{Row: r, Col: c})
			if t == nil {
				continue
			}

			farthest, next, blocked := g.farthestPosition(t.Pos, dir)
			if blocked {
				target := g.at(next)
				// Each destination cell absorbs at most one merge
				// per move; without this guard a tile could merge
				// repeatedly in a single pass.
				if target.Value == t.Value && !mergedAt[next] {
					g.removeTile(t)
					target.Value *= 2
					target.Merged = true
					mergedAt[next] = true

					gained += target.Value
					combo++
					merges = append(merges, MergeEvent{Pos: next, Value: target.Value})
					if target.Value == e.winTile && !e.won {
						wonNow = true
					}
					moved = true
					continue
				}
			}
			if farthest != t.Pos {
				g.moveTile(t, farthest)
				moved = true
			}
		}
	}

	if !moved {
		return MoveResult{GameOver: e.gameOver}
	}

	// Commit: record the pre-move snapshot, swap in the new arrangement,
	// then run the post-move pipeline.
	e.hist.push(prev)
	e.tiles = g.tiles()
	e.score += gained
	e.combo = combo
	if combo > e.bestCombo {
		e.bestCombo = combo
	}
	e.moves++

	e.spawnTile()

	if e.score > e.highScore {
		e.highScore = e.score
		if e.persister != nil {
			e.persister.SaveHighScore(e.highScore) //nolint:errcheck // Best-effort write
		}
	}

	if wonNow {
		e.won = true
	}

	if !e.buildGrid().movesAvailable() {
		e.gameOver = true
		e.commitStats()
	}

	return MoveResult{
		Moved:       true,
		ScoreGained: gained,
		Combo:       combo,
		Merges:      merges,
		Won:         wonNow,
		GameOver:    e.gameOver,
	}
}
