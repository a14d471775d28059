package core

// Color represents a foreground color for a screen cell.
// The platform maps these onto a lipgloss palette; the vibes palette
// may map the same Color to a different terminal color.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorGrid          // Background dither / grid dots
	ColorSnakeHead
	ColorSnakeBody
	ColorFood
	ColorText
	ColorHighlight // Selected menu item, headings
	ColorAccent    // Subtitles, unlocked trophies
	ColorPopup
	ColorDim
)
