// Package tui provides the Bubble Tea presentation layer for the 2048
// engine, plus SSH server support via Wish. It owns input translation,
// command debouncing and rendering; the engine is treated purely as a
// state oracle and mutator, with every call serialized through the
// Bubble Tea update loop.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Model is the Bubble Tea model for a single game session.
type Model struct {
	eng   *engine.Engine
	store *storage.Store
	cfg   config.GameConfig
	keys  KeyMap
	help  help.Model

	width  int
	height int

	// lastCommand is when the last accepted move was issued; commands
	// arriving inside the debounce window are dropped so a key held
	// down cannot outrun the render loop.
	lastCommand time.Time
	lastResult  engine.MoveResult

	scoreSaved bool // Whether the finished game was recorded
	quitting   bool
}

// NewModel creates a model for the given configuration. A zero seed asks
// for time-based seeding.
func NewModel(store *storage.Store, cfg config.GameConfig, seed int64) Model {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return Model{
		eng:   newEngine(store, cfg, seed),
		store: store,
		cfg:   cfg,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
}

// newEngine builds a fresh engine from the game config.
func newEngine(store *storage.Store, cfg config.GameConfig, seed int64) *engine.Engine {
	opts := engine.Options{
		Size:          cfg.Board.Size,
		WinTile:       cfg.Board.WinTile,
		SpawnFourProb: cfg.Spawn.FourProb,
		UndoLimit:     cfg.Undo.Limit,
		HistoryCap:    cfg.Undo.History,
		Seed:          seed,
	}
	if store != nil {
		opts.Persister = store
	}
	return engine.New(opts)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		// Restarting before game over forfeits the unfinished game;
		// a finished game was already recorded at the gameOver
		// transition.
		m.eng = newEngine(m.store, m.cfg, time.Now().UnixNano())
		m.lastResult = engine.MoveResult{}
		m.scoreSaved = false
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if m.eng.Undo() {
			m.lastResult = engine.MoveResult{}
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.command(engine.DirUp), nil
	case key.Matches(msg, m.keys.Down):
		return m.command(engine.DirDown), nil
	case key.Matches(msg, m.keys.Left):
		return m.command(engine.DirLeft), nil
	case key.Matches(msg, m.keys.Right):
		return m.command(engine.DirRight), nil
	}

	return m, nil
}

// command issues one directional command to the engine, applying the
// debounce window so two keypresses in quick succession cannot corrupt
// the visual flow.
func (m Model) command(dir engine.Direction) Model {
	if m.eng.GameOver() {
		return m
	}

	now := time.Now()
	if now.Sub(m.lastCommand) < time.Duration(m.cfg.Input.DebounceMs)*time.Millisecond {
		return m
	}

	res := m.eng.Move(dir)
	if !res.Moved {
		return m
	}

	m.lastCommand = now
	m.lastResult = res

	if res.GameOver && !m.scoreSaved {
		m.recordGame()
		m.scoreSaved = true
	}

	return m
}

// recordGame appends the finished game to the score history.
func (m Model) recordGame() {
	if m.store == nil || m.eng.Score() == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(m.eng.Score(), m.eng.MaxTile(), m.eng.Moves())
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Run starts the Bubble Tea program for a local session.
func Run(store *storage.Store, cfg config.GameConfig, seed int64) error {
	p := tea.NewProgram(
		NewModel(store, cfg, seed),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
