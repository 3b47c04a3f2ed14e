package styles

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	// Brand colors
	Primary   = lipgloss.Color("#E50914") // Heimdall red
	Secondary = lipgloss.Color("#B20710") // Dark red
	Accent    = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue

	// Neutral colors, replaced by SetTheme
	Background = darkBackground
	Surface    = darkSurface
	Border     = darkBorder
	Text       = darkText
	TextMuted  = darkTextMuted
	TextDim    = darkTextDim
)

const (
	darkBackground = lipgloss.Color("#141414") // Near black
	darkSurface    = lipgloss.Color("#1A1D23") // Card gray
	darkBorder     = lipgloss.Color("#4B5563") // Light gray
	darkText       = lipgloss.Color("#F9FAFB") // White
	darkTextMuted  = lipgloss.Color("#9CA3AF") // Gray
	darkTextDim    = lipgloss.Color("#6B7280") // Darker gray
)

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Loading   lipgloss.Style
	Failed    lipgloss.Style
	Badge     lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
)

func init() {
	build()
}

// SetTheme switches the neutral palette. "light" uses Catppuccin Latte,
// "dark" keeps the default palette and "auto" picks one from the terminal
// background. Brand and status colors are shared by both.
func SetTheme(theme string) {
	if theme == "auto" {
		theme = "dark"
		if !lipgloss.HasDarkBackground() {
			theme = "light"
		}
	}

	if theme == "light" {
		p := catppuccin.Latte
		Background = lipgloss.Color(p.Base().Hex)
		Surface = lipgloss.Color(p.Mantle().Hex)
		Border = lipgloss.Color(p.Overlay0().Hex)
		Text = lipgloss.Color(p.Text().Hex)
		TextMuted = lipgloss.Color(p.Subtext0().Hex)
		TextDim = lipgloss.Color(p.Overlay1().Hex)
	} else {
		Background, Surface, Border = darkBackground, darkSurface, darkBorder
		Text, TextMuted, TextDim = darkText, darkTextMuted, darkTextDim
	}
	build()
}

func build() {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Playing = lipgloss.NewStyle().
		Foreground(Primary)

	Loading = lipgloss.NewStyle().
		Foreground(Warning)

	Failed = lipgloss.NewStyle().
		Bold(true).
		Foreground(Error)

	Badge = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(Primary).
		Foreground(lipgloss.Color("#F9FAFB"))

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	style := BorderStyle.Padding(0, 1)

	if focused {
		style = FocusedBorder.Padding(0, 1)
	}

	return style
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// Toast returns the style for a notification kind.
func Toast(kind string) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Foreground(darkText)
	switch kind {
	case "success":
		return base.Background(Success)
	case "warning":
		return base.Background(Warning).Foreground(Background)
	case "error":
		return base.Background(Error)
	default:
		return base.Background(Info)
	}
}

// ToastIcon returns an icon for a notification kind.
func ToastIcon(kind string) string {
	switch kind {
	case "success":
		return "✓"
	case "warning":
		return "!"
	case "error":
		return "✗"
	default:
		return "i"
	}
}

// SourceIcon returns a short label for a track source.
func SourceIcon(source string) string {
	switch source {
	case "youtube":
		return "YT"
	case "soundcloud":
		return "SC"
	case "jiosaavn":
		return "JS"
	default:
		return "??"
	}
}

// ProgressBar creates a progress bar string
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(Border)

	return filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("─", width-filled))
}
