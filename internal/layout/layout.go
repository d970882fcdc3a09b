package layout

import (
	"fmt"
	"strings"
)

// Layout is one named brick arrangement.
type Layout struct {
	ID   string `yaml:"id" toml:"id"`
	Name string `yaml:"name" toml:"name"`
	Rows int    `yaml:"rows" toml:"rows"`
	Cols int    `yaml:"cols" toml:"cols"`
	Rule Rule   `yaml:"rule" toml:"rule"`
}

// Exists reports whether the layout places a brick at (col, row).
// Cells outside the grid never exist.
func (l *Layout) Exists(col, row int) bool {
	if col < 0 || col >= l.Cols || row < 0 || row >= l.Rows {
		return false
	}
	return l.Rule.Eval(col, row)
}

// Count returns the number of bricks the layout places.
func (l *Layout) Count() int {
	n := 0
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			if l.Rule.Eval(c, r) {
				n++
			}
		}
	}
	return n
}

// Validate checks grid bounds and the rule tree.
func (l *Layout) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: layout without id", ErrBadLayout)
	}
	if l.Rows <= 0 || l.Cols <= 0 {
		return fmt.Errorf("%w: %s: grid %dx%d", ErrBadLayout, l.ID, l.Cols, l.Rows)
	}
	if err := l.Rule.Validate(); err != nil {
		return fmt.Errorf("%s: %w", l.ID, err)
	}
	if l.Count() == 0 {
		return fmt.Errorf("%w: %s places no bricks", ErrBadLayout, l.ID)
	}
	return nil
}

// Preview renders the layout as text, one line per row.
func (l *Layout) Preview(on, off rune) []string {
	lines := make([]string, l.Rows)
	var b strings.Builder
	for r := 0; r < l.Rows; r++ {
		b.Reset()
		for c := 0; c < l.Cols; c++ {
			if l.Rule.Eval(c, r) {
				b.WriteRune(on)
			} else {
				b.WriteRune(off)
			}
		}
		lines[r] = b.String()
	}
	return lines
}
