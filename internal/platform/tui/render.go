package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bunTree/BrickFast/internal/core"
)

type cellColors struct {
	fg, bg core.Color
}

// styleFor returns the lipgloss style for a color pair. Styles are cached
// since the palette is small.
func styleFor(cache map[cellColors]lipgloss.Style, c cellColors) lipgloss.Style {
	if st, ok := cache[c]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if hex := c.fg.Hex(); hex != "" {
		st = st.Foreground(lipgloss.Color(hex))
	}
	if hex := c.bg.Hex(); hex != "" {
		st = st.Background(lipgloss.Color(hex))
	}
	cache[c] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	cache := make(map[cellColors]lipgloss.Style)

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			colors := cellColors{cell.Fg, cell.Bg}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellColors{cell.Fg, cell.Bg}) != colors {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if colors == (cellColors{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(cache, colors).Render(run.String()))
		}
	}
	return sb.String()
}
