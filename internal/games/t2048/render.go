package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border), fits 5 digits
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3 // Title, score and mode lines above the board
)

// boardSize returns the on-screen width and height of a dim×dim grid.
func boardSize(dim int) (w, h int) {
	return dim*cellWidth + 1, dim*cellHeight + 1
}

// TileColor returns the display color for a tile value.
func TileColor(value int) core.Color {
	switch value {
	case 0:
		return core.ColorGray
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorYellow
	case 8:
		return core.ColorOrange
	case 16:
		return core.ColorRed
	case 32:
		return core.ColorMagenta
	case 64:
		return core.ColorBlue
	case 128:
		return core.ColorCyan
	case 256:
		return core.ColorGreen
	case 512:
		return core.ColorYellow
	case 1024:
		return core.ColorRed
	case 2048:
		return core.ColorMagenta
	default:
		return core.ColorCyan
	}
}

// ScoreText is the score line shown above the board.
func ScoreText(score int) string {
	return "SCORE: " + strconv.Itoa(score)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardSize(g.board.Dimension())
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)
	if g.animationPhase == PhaseSlide {
		g.renderSliding(dst, boardX, boardY)
	} else {
		g.renderTiles(dst, boardX, boardY)
	}
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)

	dst.DrawTextCentered(boardY+boardH+1, g.Controls())
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, the score and the level or target line.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	centered := func(y int, text string, color core.Color) {
		dst.DrawTextColored(max(boardX+(boardW-len(text))/2, 0), y, text, color)
	}

	centered(0, "2048", core.ColorBrightYellow)

	dst.DrawText(boardX, 1, ScoreText(g.sink.lastScore()))
	maxStr := fmt.Sprintf("Max: %d", g.board.MaxTile())
	dst.DrawText(boardX+boardW-len(maxStr), 1, maxStr)

	switch lvl := g.Level(); {
	case lvl != nil:
		centered(2, fmt.Sprintf("Level %d/%d %s: %d", lvl.ID, len(g.levels), lvl.Name, lvl.Target), core.ColorDefault)
	case g.reached:
		centered(2, "Target reached! Keep going", core.ColorBrightGreen)
	default:
		centered(2, fmt.Sprintf("Endless  Target: %d", g.model.Threshold()), core.ColorDefault)
	}
}

// renderGrid draws the grid lines.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	n := g.board.Dimension()

	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws the settled board. During the pop phase merged cells are
// highlighted and the new tile is drawn in green.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	rows := g.board.Rows()
	for row, cells := range rows {
		for col, val := range cells {
			if val == 0 {
				continue
			}
			color := TileColor(val)
			switch {
			case g.isNewTile(row, col):
				color = core.ColorBrightGreen
			case g.isMerged(row, col):
				color = color.Bright()
			}
			drawTile(dst, boardX+col*cellWidth+1, boardY+row*cellHeight+1, val, color)
		}
	}
}

// renderSliding draws the tiles that did not move, then each moving tile at
// its interpolated position. The inserted tile stays hidden until its pop.
func (g *Game) renderSliding(dst *core.Screen, boardX, boardY int) {
	rows := g.board.Rows()
	for row, cells := range rows {
		for col, val := range cells {
			if val == 0 || g.isSlideTarget(row, col) {
				continue
			}
			if p := g.pendingNewTile; p != nil && p.X == col && p.Y == row {
				continue
			}
			drawTile(dst, boardX+col*cellWidth+1, boardY+row*cellHeight+1, val, TileColor(val))
		}
	}

	for i := range g.animations {
		a := &g.animations[i]
		fx, fy := a.interpolatePosition()
		x := boardX + int(math.Round(fx*cellWidth)) + 1
		y := boardY + int(math.Round(fy*cellHeight)) + 1
		drawTile(dst, x, y, a.Value, TileColor(a.Value))
	}
}

func (g *Game) isSlideTarget(row, col int) bool {
	for _, a := range g.animations {
		if a.ToY == row && a.ToX == col {
			return true
		}
	}
	return false
}

func (g *Game) isNewTile(row, col int) bool {
	if g.animationPhase != PhasePop {
		return false
	}
	for _, a := range g.animations {
		if a.IsNew && a.ToY == row && a.ToX == col {
			return true
		}
	}
	return false
}

// drawTile centers a value inside a cell whose interior starts at (x, y).
func drawTile(dst *core.Screen, x, y, value int, color core.Color) {
	valStr := strconv.Itoa(value)
	padLeft := max((cellWidth-1-len(valStr))/2, 0)
	dst.DrawTextColored(x+padLeft, y, valStr, color)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.levelCleared {
		targetStr := fmt.Sprintf("Target %d reached!", g.model.Threshold())
		if g.levelIndex >= len(g.levels)-1 {
			g.drawOverlay(dst, centerX, centerY, targetStr, "Final level complete!")
		} else {
			nextStr := fmt.Sprintf("Next: Level %d", g.levelIndex+2)
			g.drawOverlay(dst, centerX, centerY, targetStr, nextStr)
		}
		return
	}

	if g.won {
		g.drawOverlay(dst, centerX, centerY, "CAMPAIGN COMPLETE!", "You are the champion!", "Press R to restart")
		return
	}

	if g.gameOver {
		maxStr := fmt.Sprintf("Max tile: %d", g.board.MaxTile())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", maxStr, "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.CenteredRect(centerX, centerY, maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/HJKL: Move | P: Pause | R: Restart | Q: Quit"
}
