package styles

import (
	"testing"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

func TestSetTheme(t *testing.T) {
	defer SetTheme("dark")

	SetTheme("light")
	if Text != lipgloss.Color(catppuccin.Latte.Text().Hex) {
		t.Errorf("light Text = %v", Text)
	}
	if got := Title.GetForeground(); got != Text {
		t.Errorf("Title foreground = %v, want %v", got, Text)
	}

	SetTheme("dark")
	if Text != darkText {
		t.Errorf("dark Text = %v", Text)
	}
	if got := BorderStyle.GetBorderLeftForeground(); got != darkBorder {
		t.Errorf("border = %v, want %v", got, darkBorder)
	}
}

func TestProgressBarClamps(t *testing.T) {
	if got := lipgloss.Width(ProgressBar(150, 10)); got != 10 {
		t.Errorf("width = %d, want 10", got)
	}
	if got := lipgloss.Width(ProgressBar(-5, 10)); got != 10 {
		t.Errorf("width = %d, want 10", got)
	}
}

func TestSourceIcon(t *testing.T) {
	tests := map[string]string{
		"youtube":    "YT",
		"soundcloud": "SC",
		"jiosaavn":   "JS",
		"spotify":    "??",
	}
	for source, want := range tests {
		if got := SourceIcon(source); got != want {
			t.Errorf("SourceIcon(%q) = %q, want %q", source, got, want)
		}
	}
}
