package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by the exploration view.
const (
	ColorDefault Color = iota
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange // canyon rim
	ColorRust   // canyon floor, deep
	ColorSand   // canyon floor, shallow
	ColorGray   // building footprints
	ColorDim    // unexplored open ground
)
