package game

import (
	"github.com/bunTree/BrickFast/internal/config"
	"github.com/bunTree/BrickFast/internal/core"
	"github.com/bunTree/BrickFast/internal/layout"
)

// tierColors is indexed by row mod 5.
var tierColors = [...]core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorBlue,
}

// Brick is one cell of the field.
type Brick struct {
	Col, Row int
	Rect     core.Rect
	Color    core.Color
	Points   int
	Alive    bool
}

// Center returns the brick center.
func (b Brick) Center() core.Vec {
	cx, cy := b.Rect.Center()
	return core.Vec{X: cx, Y: cy}
}

// BrickField is the grid of bricks for the current level.
type BrickField struct {
	cfg     config.BrickConfig
	canvasW float64

	layout      *layout.Layout
	layoutIndex int
	cols, rows  int
	cells       []Brick // column-major: col*rows + row
	alive       int
}

// NewBrickField creates an empty field for a canvas of the given width.
func NewBrickField(cfg config.BrickConfig, canvasW float64) *BrickField {
	return &BrickField{cfg: cfg, canvasW: canvasW}
}

// Build replaces the field with the layout chosen for level.
func (f *BrickField) Build(catalog *layout.Catalog, level int) {
	l, idx := catalog.ForLevel(level)
	f.layout = l
	f.layoutIndex = idx
	f.cols = l.Cols
	f.rows = l.Rows

	stride := f.cfg.Width + f.cfg.Padding
	total := float64(f.cols)*stride - f.cfg.Padding
	offsetLeft := max(f.cfg.MinOffsetLeft, (f.canvasW-total)/2)

	f.cells = make([]Brick, f.cols*f.rows)
	f.alive = 0
	for c := 0; c < f.cols; c++ {
		for r := 0; r < f.rows; r++ {
			alive := l.Exists(c, r)
			f.cells[c*f.rows+r] = Brick{
				Col: c,
				Row: r,
				Rect: core.NewRect(
					float64(c)*stride+offsetLeft,
					float64(r)*(f.cfg.Height+f.cfg.Padding)+f.cfg.OffsetTop,
					f.cfg.Width,
					f.cfg.Height,
				),
				Color:  tierColors[r%len(tierColors)],
				Points: f.cfg.Points[r%len(f.cfg.Points)],
				Alive:  alive,
			}
			if alive {
				f.alive++
			}
		}
	}
}

// Layout returns the active layout.
func (f *BrickField) Layout() *layout.Layout {
	return f.layout
}

// LayoutIndex returns the catalog index of the active layout.
func (f *BrickField) LayoutIndex() int {
	return f.layoutIndex
}

// Size returns the grid dimensions of the active layout.
func (f *BrickField) Size() (cols, rows int) {
	return f.cols, f.rows
}

// cell returns the brick at (col, row), or nil outside the grid.
func (f *BrickField) cell(col, row int) *Brick {
	if col < 0 || col >= f.cols || row < 0 || row >= f.rows {
		return nil
	}
	return &f.cells[col*f.rows+row]
}

// AliveCount returns the number of bricks still standing.
func (f *BrickField) AliveCount() int {
	return f.alive
}

// IsCleared reports whether no brick of the active layout remains.
// Only the layout's own rows and columns are examined.
func (f *BrickField) IsCleared() bool {
	for c := 0; c < f.cols; c++ {
		for r := 0; r < f.rows; r++ {
			if f.cell(c, r).Alive {
				return false
			}
		}
	}
	return true
}

// Destroy marks the brick dead and returns its points and center.
// ok is false, and nothing is scored, when the brick is already dead or
// outside the grid.
func (f *BrickField) Destroy(col, row int) (points int, center core.Vec, ok bool) {
	b := f.cell(col, row)
	if b == nil {
		return 0, core.Vec{}, false
	}
	if !b.Alive {
		return 0, b.Center(), false
	}
	b.Alive = false
	f.alive--
	return b.Points, b.Center(), true
}

// ActiveSet appends the alive bricks to dst, columns outermost, and returns it.
func (f *BrickField) ActiveSet(dst []Brick) []Brick {
	for _, b := range f.cells {
		if b.Alive {
			dst = append(dst, b)
		}
	}
	return dst
}
