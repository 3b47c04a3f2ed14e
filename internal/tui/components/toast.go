package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/heimdall/internal/notify"
	"github.com/tessro/heimdall/internal/tui/styles"
)

// MaxToasts is the number of toasts shown at once.
const MaxToasts = 3

// RenderToasts renders the newest toasts, one per line.
func RenderToasts(toasts []notify.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	if len(toasts) > MaxToasts {
		toasts = toasts[len(toasts)-MaxToasts:]
	}

	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		kind := string(t.Kind)
		text := styles.ToastIcon(kind) + " " + truncate(t.Message, width-6)
		lines = append(lines, styles.Toast(kind).Render(text))
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		Render(lipgloss.JoinVertical(lipgloss.Right, lines...))
}
