package sokoban

import (
	"fmt"
	"strings"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Layout constants
const (
	cellW        = 2 // Each tile is 2 chars wide
	hudHeight    = 4 // Title, level line, counters, separator
	footerHeight = 4 // Hint, status and controls
	minScreenW   = 40
	minScreenH   = 12
)

// tileStyle is the glyph and color used to draw a tile.
type tileStyle struct {
	glyph string
	color platformcore.Color
}

var tileStyles = map[core.Tile]tileStyle{
	core.Void:         {"  ", platformcore.ColorDefault},
	core.Wall:         {"██", platformcore.ColorGray},
	core.Floor:        {"  ", platformcore.ColorDefault},
	core.Spot:         {"··", platformcore.ColorRed},
	core.Box:          {"[]", platformcore.ColorOrange},
	core.BoxOnSpot:    {"[]", platformcore.ColorBrightGreen},
	core.Player:       {"<>", platformcore.ColorBrightCyan},
	core.PlayerOnSpot: {"<>", platformcore.ColorCyan},
}

const controlsLine = "←↑↓→ move  r restart  n/p level  space solve  h hint  esc menu  q quit"

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderOverlay(dst, platformcore.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	g.renderHUD(dst)

	if g.state.Board == nil {
		msg := "Level cannot be played"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.renderOverlay(dst, platformcore.ColorRed, msg, "Press n/p to pick another level")
		return
	}

	boardX, boardY := g.boardOrigin(dst)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+g.state.Board.H()+1)

	if g.state.Complete && !g.Autoplaying() {
		g.renderWin(dst)
	}
}

// boardOrigin returns the top-left screen position of the board.
func (g *Game) boardOrigin(dst *platformcore.Screen) (int, int) {
	w := g.state.Board.W() * cellW
	return platformcore.Max(0, (dst.Width()-w)/2), hudHeight
}

// renderHUD draws the title, level name and counters.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	lvl := g.Level()

	dst.DrawTextCenteredWithColor(0, "S O K O B A N", platformcore.ColorBrightYellow)
	dst.DrawTextCentered(1, fmt.Sprintf("Level %d/%d: %s", g.index+1, len(g.levels), lvl.Name))

	counters := fmt.Sprintf("Moves: %d (par %d)   Pushes: %d (par %d)   Retries: %d",
		g.state.Moves, lvl.ParMoves, g.state.Pushes, lvl.ParPushes, g.retries)
	dst.DrawTextCenteredWithColor(2, counters, platformcore.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 3, '─', platformcore.ColorGray)
	}
}

// renderBoard draws every tile of the current board.
func (g *Game) renderBoard(dst *platformcore.Screen, originX, originY int) {
	b := g.state.Board
	for y := 0; y < b.H(); y++ {
		for x := 0; x < b.W(); x++ {
			st := tileStyles[b.At(core.C(x, y))]
			dst.DrawTextWithColor(originX+x*cellW, originY+y, st.glyph, st.color)
		}
	}
}

// renderFooter draws the hint, autoplay status, errors and controls.
func (g *Game) renderFooter(dst *platformcore.Screen, y int) {
	if g.showHint {
		hint := g.Level().Hint
		if hint == "" {
			hint = "No hint for this level."
		}
		for _, line := range strings.Split(hint, "\n") {
			if y >= dst.Height()-2 {
				break
			}
			dst.DrawTextCenteredWithColor(y, line, platformcore.ColorGray)
			y++
		}
	}

	status := dst.Height() - 2
	switch {
	case g.Autoplaying():
		pos, total := g.AutoplayProgress()
		dst.DrawTextCenteredWithColor(status,
			fmt.Sprintf("Auto-solving... step %d/%d (esc to stop)", pos, total),
			platformcore.ColorMagenta)
	case g.err != nil:
		dst.DrawTextCenteredWithColor(status, g.err.Error(), platformcore.ColorRed)
	}

	dst.DrawTextCenteredWithColor(dst.Height()-1, controlsLine, platformcore.ColorGray)
}

// renderWin draws the level complete overlay.
func (g *Game) renderWin(dst *platformcore.Screen) {
	next := "n: next level   r: play again"
	if !g.HasNext() {
		next = "All levels done!   r: play again"
	}
	g.renderOverlay(dst, platformcore.ColorBrightGreen,
		"LEVEL COMPLETE!",
		StarString(g.state.Stars),
		fmt.Sprintf("Moves: %d   Pushes: %d", g.state.Moves, g.state.Pushes),
		next,
	)
}

// renderOverlay draws a centered box with one line of text per row.
func (g *Game) renderOverlay(dst *platformcore.Screen, color platformcore.Color, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = platformcore.Max(maxLen, utf8.RuneCountInString(l))
	}

	box := platformcore.Centered(dst.Width(), dst.Height(), maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)

	inner := box.Inset(1)
	for i, l := range lines {
		if i >= inner.H {
			break
		}
		c := platformcore.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextCenteredWithColor(inner.Y+i, l, c)
	}
}

// StarString renders a 0-3 star rating.
func StarString(stars int) string {
	stars = platformcore.Clamp(stars, 0, 3)
	return strings.Repeat("★", stars) + strings.Repeat("☆", 3-stars)
}

// AutoplayProgress returns the demo position and length.
func (g *Game) AutoplayProgress() (pos, total int) {
	if g.playback == nil {
		return 0, 0
	}
	return g.playback.Pos(), g.playback.Len()
}
