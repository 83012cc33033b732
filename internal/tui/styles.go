// Package tui provides the terminal user interface for the coverage
// grid editor.
package tui

import "github.com/charmbracelet/lipgloss"

// dayLabelWidth is the fixed width of the weekday column.
const dayLabelWidth = 4

// Styles holds all lipgloss styles for the TUI, derived from a theme
// name.
type Styles struct {
	colorBg        lipgloss.Color
	colorFg        lipgloss.Color
	colorFgMuted   lipgloss.Color
	colorAccent    lipgloss.Color
	colorBlock     lipgloss.Color
	colorKeyholder lipgloss.Color
	colorOverhang  lipgloss.Color
	colorWarning   lipgloss.Color
	colorSelected  lipgloss.Color

	TitleStyle     lipgloss.Style
	RulerStyle     lipgloss.Style
	DayLabelStyle  lipgloss.Style
	ClosedDayStyle lipgloss.Style

	BlockStyle          lipgloss.Style
	BlockKeyholderStyle lipgloss.Style
	BlockSelectedStyle  lipgloss.Style
	BlockPreviewStyle   lipgloss.Style
	OverhangStyle       lipgloss.Style
	TrackStyle          lipgloss.Style
	CursorStyle         lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalLabelStyle lipgloss.Style
}

// NewStyles builds the style set for a theme ("dark" or "light").
func NewStyles(theme string) *Styles {
	s := &Styles{}

	switch theme {
	case "light":
		s.colorBg = lipgloss.Color("255")
		s.colorFg = lipgloss.Color("235")
		s.colorFgMuted = lipgloss.Color("245")
		s.colorAccent = lipgloss.Color("25")
		s.colorBlock = lipgloss.Color("39")
		s.colorKeyholder = lipgloss.Color("172")
		s.colorOverhang = lipgloss.Color("180")
		s.colorWarning = lipgloss.Color("124")
		s.colorSelected = lipgloss.Color("127")
	default: // dark
		s.colorBg = lipgloss.Color("234")
		s.colorFg = lipgloss.Color("252")
		s.colorFgMuted = lipgloss.Color("243")
		s.colorAccent = lipgloss.Color("75")
		s.colorBlock = lipgloss.Color("31")
		s.colorKeyholder = lipgloss.Color("130")
		s.colorOverhang = lipgloss.Color("94")
		s.colorWarning = lipgloss.Color("203")
		s.colorSelected = lipgloss.Color("170")
	}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.RulerStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.DayLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorFg).Width(dayLabelWidth)
	s.ClosedDayStyle = lipgloss.NewStyle().Faint(true).Foreground(s.colorFgMuted)

	s.BlockStyle = lipgloss.NewStyle().Background(s.colorBlock).Foreground(s.colorFg)
	s.BlockKeyholderStyle = lipgloss.NewStyle().Background(s.colorKeyholder).Foreground(s.colorFg)
	s.BlockSelectedStyle = lipgloss.NewStyle().Background(s.colorSelected).Foreground(s.colorFg).Bold(true)
	s.BlockPreviewStyle = lipgloss.NewStyle().Background(s.colorAccent).Foreground(s.colorBg).Bold(true)
	s.OverhangStyle = lipgloss.NewStyle().Background(s.colorOverhang).Foreground(s.colorFgMuted)
	s.TrackStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)
	s.CursorStyle = lipgloss.NewStyle().Reverse(true)

	s.StatusStyle = lipgloss.NewStyle().Foreground(s.colorAccent)
	s.ErrorStyle = lipgloss.NewStyle().Foreground(s.colorWarning).Bold(true)
	s.HelpStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		Padding(1, 2)
	s.ModalTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.ModalLabelStyle = lipgloss.NewStyle().Foreground(s.colorFgMuted)

	return s
}
