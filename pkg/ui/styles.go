package ui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// Shared by the line executor and the interactive front-end.
var (
	SalmonPink  = lipgloss.Color("#FFB3BA") // primary accent
	CoralPink   = lipgloss.Color("#FFCCCB") // secondary accent
	MintGreen   = lipgloss.Color("#A8E6CF") // success
	MutedGray   = lipgloss.Color("#6B7280") // secondary text
	BrightWhite = lipgloss.Color("#F9FAFB") // primary text
	AmberYellow = lipgloss.Color("#FDE68A") // warnings
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(SalmonPink).
			Bold(true)

	TipsStyle = lipgloss.NewStyle().
			Foreground(MutedGray)

	PromptStyle = lipgloss.NewStyle().
			Foreground(CoralPink).
			Bold(true)

	MoveStyle = lipgloss.NewStyle().
			Foreground(MintGreen)

	InfoStyle = lipgloss.NewStyle().
			Foreground(BrightWhite)

	InputErrorStyle = lipgloss.NewStyle().
			Foreground(AmberYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(SalmonPink).
			Bold(true)

	DetailStyle = lipgloss.NewStyle().
			Foreground(MutedGray).
			Italic(true)
)

// Painter applies styles, or nothing when color is off.
type Painter struct {
	color bool
}

// NewPainter returns a painter; color=false yields plain text.
func NewPainter(color bool) Painter {
	return Painter{color: color}
}

// Color reports whether styling is on.
func (p Painter) Color() bool {
	return p.color
}

// Paint renders s with style when color is on.
func (p Painter) Paint(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}
