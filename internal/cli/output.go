package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/notify"
)

// Table provides a simple table formatter.
type Table struct {
	w       *tabwriter.Writer
	headers []string
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return NewTableWriter(os.Stdout, headers...)
}

// NewTableWriter creates a table writing to a specific writer.
func NewTableWriter(out io.Writer, headers ...string) *Table {
	t := &Table{
		w:       tabwriter.NewWriter(out, 0, 0, 2, ' ', 0),
		headers: headers,
	}
	if len(headers) > 0 {
		_, _ = t.w.Write([]byte(strings.Join(headers, "\t") + "\n"))
	}
	return t
}

// Row adds a row to the table.
func (t *Table) Row(values ...string) {
	_, _ = t.w.Write([]byte(strings.Join(values, "\t") + "\n"))
}

// Flush writes the table output.
func (t *Table) Flush() {
	_ = t.w.Flush()
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// TruncateString truncates a string to maxLen, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// trackTable writes tracks as a numbered table.
func trackTable(out io.Writer, tracks []core.Track) {
	t := NewTableWriter(out, "#", "SOURCE", "TITLE", "ARTIST", "LENGTH")
	for i, tr := range tracks {
		t.Row(
			fmt.Sprintf("%d", i+1),
			string(tr.Source),
			TruncateString(tr.Title, 50),
			TruncateString(tr.Artist, 30),
			core.FormatDuration(tr.Duration),
		)
	}
	t.Flush()
}

var noticeStyles = map[notify.Kind]lipgloss.Style{
	notify.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	notify.Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	notify.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
	notify.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
}

var noticeIcons = map[notify.Kind]string{
	notify.Success: "✓",
	notify.Warning: "!",
	notify.Info:    "i",
	notify.Error:   "✗",
}

// formatNotice renders a toast as a single stderr line.
func formatNotice(t notify.Toast) string {
	style, ok := noticeStyles[t.Kind]
	if !ok {
		style = noticeStyles[notify.Info]
	}
	return style.Render(noticeIcons[t.Kind] + " " + t.Message)
}

// printNotices prints toasts from center to w until the returned stop
// function is called. stop flushes everything delivered before it.
func printNotices(center *notify.Center, w io.Writer) (stop func()) {
	if JSONOutput() {
		return func() {}
	}

	id, ch := center.Subscribe(32)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for t := range ch {
			fmt.Fprintln(w, formatNotice(t))
		}
	}()

	return func() {
		center.Unsubscribe(id)
		wg.Wait()
	}
}

// formTheme returns the prompt theme for the configured tui.theme.
func formTheme() *huh.Theme {
	switch cfg.TUI.Theme {
	case "light", "dark":
		return huh.ThemeCatppuccin()
	}
	return huh.ThemeCharm()
}
