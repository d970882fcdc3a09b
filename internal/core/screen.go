package core

import (
	"strings"
)

// HalfBlock is the rune used to draw two vertically stacked pixels in one
// cell: the foreground paints the upper pixel, the background the lower one.
const HalfBlock = '▀'

// Cell is one character position on the screen.
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

var blankCell = Cell{Rune: ' '}

// Screen is a 2D cell buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing the engine view to
// draw using simple cell operations while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// PixelHeight returns the height in half-block pixels.
func (s *Screen) PixelHeight() int {
	return s.height * 2
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	s.FillCell(blankCell)
}

// FillCell fills the entire screen with the given cell.
func (s *Screen) FillCell(c Cell) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = c
		}
	}
}

// Set places a rune at the given position, keeping the cell's colors.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x].Rune = r
}

// SetCell replaces the cell at the given position.
func (s *Screen) SetCell(x, y int, c Cell) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inBounds(x, y) {
		return blankCell
	}
	return s.cells[y][x]
}

// SetPixel paints one half-block pixel. Pixel rows are twice as dense as
// character rows; even rows are the upper half of a cell.
func (s *Screen) SetPixel(x, py int, c Color) {
	y := py / 2
	if py < 0 || !s.inBounds(x, y) {
		return
	}
	cell := &s.cells[y][x]
	if cell.Rune != HalfBlock {
		*cell = Cell{Rune: HalfBlock}
	}
	if py%2 == 0 {
		cell.Fg = c
	} else {
		cell.Bg = c
	}
}

// FillPixels paints every pixel whose top-left corner lies in
// [x0, x1) by [py0, py1).
func (s *Screen) FillPixels(x0, py0, x1, py1 int, c Color) {
	for py := py0; py < py1; py++ {
		for x := x0; x < x1; x++ {
			s.SetPixel(x, py, c)
		}
	}
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes colored text on the default background.
func (s *Screen) DrawTextColor(x, y int, text string, fg Color) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, Cell{Rune: r, Fg: fg})
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawTextCenteredColor(y, text, ColorDefault)
}

// DrawTextCenteredColor draws colored text centered horizontally.
func (s *Screen) DrawTextCenteredColor(y int, text string, fg Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawTextColor(x, y, text, fg)
}

// DrawBox draws a box outline using box-drawing characters. The box covers
// cells [x, x+w) by [y, y+h).
func (s *Screen) DrawBox(x, y, w, h int, fg Color) {
	right, bottom := x+w-1, y+h-1

	s.SetCell(x, y, Cell{Rune: '┌', Fg: fg})
	s.SetCell(right, y, Cell{Rune: '┐', Fg: fg})
	s.SetCell(x, bottom, Cell{Rune: '└', Fg: fg})
	s.SetCell(right, bottom, Cell{Rune: '┘', Fg: fg})

	for i := x + 1; i < right; i++ {
		s.SetCell(i, y, Cell{Rune: '─', Fg: fg})
		s.SetCell(i, bottom, Cell{Rune: '─', Fg: fg})
	}
	for j := y + 1; j < bottom; j++ {
		s.SetCell(x, j, Cell{Rune: '│', Fg: fg})
		s.SetCell(right, j, Cell{Rune: '│', Fg: fg})
	}
}

// String converts the screen buffer to plain text, dropping colors.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

func (s *Screen) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}
