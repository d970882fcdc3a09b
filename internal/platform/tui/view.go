package tui

import (
	"fmt"
	"math"

	"github.com/bunTree/BrickFast/internal/core"
	"github.com/bunTree/BrickFast/internal/game"
)

// Minimum terminal size for drawing the playfield.
const (
	MinScreenW = 40
	MinScreenH = 12
)

const (
	hudRows       = 1
	maxDebugBalls = 5
)

var (
	paddleColor = core.ColorBlue
	ballColor   = core.ColorWhite
	hitboxColor = core.ColorDarkGray
)

// viewport maps playfield units onto half-block pixels below the HUD.
type viewport struct {
	cols, pixRows int
	top           int // first pixel row of the playfield
	sx, sy        float64
}

func newViewport(dst *core.Screen, canvasW, canvasH float64) viewport {
	cols := dst.Width()
	pixRows := dst.PixelHeight() - hudRows*2
	return viewport{
		cols:    cols,
		pixRows: pixRows,
		top:     hudRows * 2,
		sx:      float64(cols) / canvasW,
		sy:      float64(pixRows) / canvasH,
	}
}

func (v viewport) px(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) py(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// fill paints a playfield rectangle, at least one pixel in each direction.
func (v viewport) fill(dst *core.Screen, r core.Rect, c core.Color) {
	x0, y0 := v.px(r.X), v.py(r.Y)
	x1, y1 := max(v.px(r.Right()), x0+1), max(v.py(r.Bottom()), y0+1)
	dst.FillPixels(x0, y0, x1, y1, c)
}

func (v viewport) outline(dst *core.Screen, r core.Rect, c core.Color) {
	x0, y0 := v.px(r.X), v.py(r.Y)
	x1, y1 := max(v.px(r.Right()), x0+1), max(v.py(r.Bottom()), y0+1)
	for x := x0; x < x1; x++ {
		dst.SetPixel(x, y0, c)
		dst.SetPixel(x, y1-1, c)
	}
	for y := y0; y < y1; y++ {
		dst.SetPixel(x0, y, c)
		dst.SetPixel(x1-1, y, c)
	}
}

// DrawSnapshot renders one frame of the game into dst.
func DrawSnapshot(dst *core.Screen, s game.Snapshot) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	v := newViewport(dst, s.CanvasW, s.CanvasH)

	for _, b := range s.Bricks {
		v.fill(dst, b.Rect, b.Color)
	}
	v.fill(dst, s.Paddle, paddleColor)
	for _, b := range s.Balls {
		dst.SetPixel(v.px(b.Pos.X), v.py(b.Pos.Y), ballColor)
	}
	for _, p := range s.Powerups {
		if s.Debug {
			v.outline(dst, p.Rect(), hitboxColor)
		}
		dst.DrawTextColor(v.px(p.Pos.X), v.py(p.Pos.Y)/2, string(p.Type.Glyph()), p.Type.Color())
	}

	drawHUD(dst, s)
	if s.Debug {
		drawDebug(dst, s)
	}
	drawOverlay(dst, s)
}

func drawHUD(dst *core.Screen, s game.Snapshot) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", s.Score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d", s.Lives))

	level := fmt.Sprintf("Level: %d/%d", s.Level, s.LayoutCount)
	if s.Endless {
		level = fmt.Sprintf("Level: %d", s.Level)
	}
	dst.DrawText(dst.Width()-len(level)-1, 0, level)
}

func drawDebug(dst *core.Screen, s game.Snapshot) {
	dst.DrawTextColor(1, 1, fmt.Sprintf("fps %.1f  balls %d/%d", s.FrameRate, s.BallCount, s.BallCap), core.ColorGray)
	for i, b := range s.Balls {
		if i == maxDebugBalls {
			dst.DrawTextColor(1, 2+i, fmt.Sprintf("+%d more", len(s.Balls)-i), core.ColorGray)
			break
		}
		dst.DrawTextColor(1, 2+i, fmt.Sprintf("#%d v=%.2f", i, b.Magnitude()), core.ColorGray)
	}
}

func drawOverlay(dst *core.Screen, s game.Snapshot) {
	switch s.State {
	case game.StateIdle:
		drawCenteredBox(dst, "B R I C K F A S T", "Press ENTER to start", nil)
	case game.StatePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume", nil)
	case game.StateLevelTransition:
		secs := int(math.Ceil(s.TransitionLeft.Seconds()))
		title := fmt.Sprintf("Level %d: %s", s.Level, s.LayoutName)
		drawCenteredBox(dst, title, fmt.Sprintf("Starting in %d...", secs), s.Preview)
	case game.StateGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press ENTER to restart", s.Score), nil)
	case game.StateCompleted:
		drawCenteredBox(dst, "ALL LEVELS CLEARED", fmt.Sprintf("Final Score: %d  |  Press ENTER to restart", s.Score), nil)
	}
}

// drawCenteredBox draws a centered message box. body lines are shown between
// title and subtitle when they fit.
func drawCenteredBox(dst *core.Screen, title, subtitle string, body []string) {
	w, h := dst.Width(), dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	for _, line := range body {
		boxW = max(boxW, len([]rune(line))+4)
	}
	boxH := 5
	if len(body) > 0 && len(body)+6 <= h && boxW <= w {
		boxH += len(body) + 1
	} else {
		body = nil
	}
	boxW = min(boxW, w)
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.SetCell(x, y, core.Cell{Rune: ' '})
		}
	}
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	for i, line := range body {
		dst.DrawTextColor(boxX+(boxW-len([]rune(line)))/2, boxY+3+i, line, core.ColorOrange)
	}
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+boxH-2, subtitle)
}
