package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	cellWidth  = 7
	cellHeight = 3
)

// tileColors maps tile values to their background colors, following the
// classic 2048 palette mapped onto the 256-color terminal space.
var tileColors = map[int]lipgloss.Color{
	2:    lipgloss.Color("255"),
	4:    lipgloss.Color("230"),
	8:    lipgloss.Color("216"),
	16:   lipgloss.Color("209"),
	32:   lipgloss.Color("203"),
	64:   lipgloss.Color("196"),
	128:  lipgloss.Color("222"),
	256:  lipgloss.Color("221"),
	512:  lipgloss.Color("220"),
	1024: lipgloss.Color("214"),
	2048: lipgloss.Color("208"),
}

// highTileColor is used for values past the classic palette.
var highTileColor = lipgloss.Color("93")

var (
	emptyCellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(cellHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("240")).
			SetString("·")

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	hudLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	hudValueStyle = lipgloss.NewStyle().
			Bold(true)

	comboStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	wonBannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("220")).
			Padding(0, 2)

	gameOverBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196")).
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(0, 2)
)

// tileStyle returns the style for a tile, highlighting merges and spawns.
func tileStyle(t engine.Tile) lipgloss.Style {
	bg, ok := tileColors[t.Value]
	if !ok {
		bg = highTileColor
	}

	fg := lipgloss.Color("235")
	if t.Value >= 8 {
		fg = lipgloss.Color("255")
	}

	style := lipgloss.NewStyle().
		Width(cellWidth).
		Height(cellHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Background(bg).
		Foreground(fg).
		Bold(true)

	switch {
	case t.Merged:
		// Flash merged tiles until the next move clears the flag.
		style = style.Reverse(true)
	case t.New:
		style = style.Faint(true)
	}
	return style
}

// render composes the full frame: HUD, board, banners and help footer.
func (m Model) render() string {
	board := m.renderBoard()
	hud := m.renderHUD(lipgloss.Width(board))

	sections := []string{hud, board}

	if banner := m.renderBanner(); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections, m.help.View(m.keys))

	frame := lipgloss.JoinVertical(lipgloss.Center, sections...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame)
	}
	return frame
}

// renderBoard draws the tile grid.
func (m Model) renderBoard() string {
	size := m.eng.Size()

	cells := make(map[engine.Position]engine.Tile, size*size)
	for _, t := range m.eng.Tiles() {
		cells[t.Pos] = t
	}

	rows := make([]string, 0, size)
	for r := 0; r < size; r++ {
		cols := make([]string, 0, size)
		for c := 0; c < size; c++ {
			if t, ok := cells[engine.Position{Row: r, Col: c}]; ok {
				cols = append(cols, tileStyle(t).Render(strconv.Itoa(t.Value)))
			} else {
				cols = append(cols, emptyCellStyle.String())
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}

	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderHUD draws the score line above the board.
func (m Model) renderHUD(width int) string {
	stat := func(label string, value int) string {
		return hudLabelStyle.Render(label+" ") + hudValueStyle.Render(strconv.Itoa(value))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("2048"),
		"   ",
		stat("score", m.eng.Score()),
		"  ",
		stat("best", m.eng.HighScore()),
		"  ",
		stat("moves", m.eng.Moves()),
		"  ",
		stat("undos", m.eng.UndosRemaining()),
	)

	if m.lastResult.Combo > 1 {
		line += "  " + comboStyle.Render(fmt.Sprintf("combo x%d!", m.lastResult.Combo))
	}

	if width > lipgloss.Width(line) {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return line
}

// renderBanner draws the win/game-over banner when applicable.
func (m Model) renderBanner() string {
	switch {
	case m.eng.GameOver():
		return gameOverBannerStyle.Render(
			fmt.Sprintf("GAME OVER · max tile %d · press r to restart", m.eng.MaxTile()),
		)
	case m.lastResult.Won:
		return wonBannerStyle.Render("YOU WIN! Keep going or press r to restart")
	}
	return ""
}
