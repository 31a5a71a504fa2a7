package bugs

import (
	"fmt"
	"math"

	"github.com/pickfire/bugs/internal/core"
)

// Minimum terminal size to show a usable playfield.
const (
	minScreenW = 24
	minScreenH = 10
)

// Visual characters for rendering
const (
	PlayerChar = '█'
	ScoreChar  = '▒'
	BugChar    = '●'
)

const hudHeight = 2

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	if g.tooSmall || dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorYellow)
		return
	}

	// Draw HUD
	dst.DrawText(0, 0, g.hud())
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)

	field := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	dst.DrawBox(field, core.ColorGray)
	inner := core.NewRect(field.X+1, field.Y+1, field.W-2, field.H-2)

	w := g.world
	p := w.Params()
	dst.DrawRect(g.project(inner, w.Score, p.ScoreHalf()), ScoreChar, core.ColorBlue)
	for _, b := range w.Bugs {
		dst.DrawRect(g.project(inner, b.Pos, p.BugHalf()), BugChar, core.ColorRed)
	}
	dst.DrawRect(g.project(inner, w.Player, p.PlayerHalf()), PlayerChar, core.ColorGreen)

	// Draw overlays
	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  R to restart", w.ScoreCount))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// project maps a square in world units onto cells of the inner playfield.
// Every entity covers at least one cell.
func (g *Game) project(inner core.Rect, centre core.Point, half float64) core.Rect {
	sx := float64(inner.W) / g.world.Width
	sy := float64(inner.H) / g.world.Height

	x0 := int(math.Floor((centre.X - half) * sx))
	x1 := int(math.Ceil((centre.X + half) * sx))
	y0 := int(math.Floor((centre.Y - half) * sy))
	y1 := int(math.Ceil((centre.Y + half) * sy))

	x0 = core.Clamp(x0, 0, inner.W-1)
	y0 = core.Clamp(y0, 0, inner.H-1)
	x1 = core.Clamp(x1, x0+1, inner.W)
	y1 = core.Clamp(y1, y0+1, inner.H)

	return core.NewRect(inner.X+x0, inner.Y+y0, x1-x0, y1-y0)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := core.Max(len([]rune(line1)), len([]rune(line2)))
	box := core.NewRect((dst.Width()-maxLen-4)/2, (dst.Height()-5)/2, maxLen+4, 5)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorDefault)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
