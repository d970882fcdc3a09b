package core

// Color represents a cell color. ColorDefault leaves the terminal's own
// foreground or background in place.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorWhite
	ColorGray
	ColorCyan
	ColorMagenta
	ColorDarkGray
)

var colorHex = [...]string{
	ColorDefault:  "",
	ColorRed:      "#FF5252",
	ColorOrange:   "#FF9800",
	ColorYellow:   "#FFEB3B",
	ColorGreen:    "#66BB6A",
	ColorBlue:     "#42A5F5",
	ColorWhite:    "#FFFFFF",
	ColorGray:     "#9E9E9E",
	ColorCyan:     "#00BCD4",
	ColorMagenta:  "#E040FB",
	ColorDarkGray: "#333333",
}

// Hex returns the color as a #RRGGBB string, or "" for ColorDefault and
// unknown values.
func (c Color) Hex() string {
	if int(c) >= len(colorHex) {
		return ""
	}
	return colorHex[c]
}
