package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/heimdall/internal/lyrics"
	"github.com/tessro/heimdall/internal/tui/styles"
)

// LyricsState is what the lyrics panel shows.
type LyricsState struct {
	Loading bool
	Lyrics  *lyrics.Lyrics
	Failure *lyrics.Failure
}

// Lyrics displays the lyrics of the current track
type Lyrics struct {
	offset int
}

// NewLyrics creates a new Lyrics component
func NewLyrics() *Lyrics {
	return &Lyrics{offset: 0}
}

// ScrollDown scrolls the lyrics down
func (l *Lyrics) ScrollDown() {
	l.offset++
}

// ScrollUp scrolls the lyrics up
func (l *Lyrics) ScrollUp() {
	if l.offset > 0 {
		l.offset--
	}
}

// Reset scrolls back to the top
func (l *Lyrics) Reset() {
	l.offset = 0
}

// Render renders the lyrics panel
func (l *Lyrics) Render(state LyricsState, width, height int, focused bool) string {
	title := styles.PanelTitle("Lyrics", focused)

	var content string
	switch {
	case state.Loading:
		content = styles.Loading.Render("Loading lyrics...")
	case state.Failure != nil:
		content = lipgloss.JoinVertical(lipgloss.Left,
			styles.Failed.Render(state.Failure.Title),
			styles.Muted.Render(state.Failure.Detail),
		)
	case state.Lyrics == nil:
		content = styles.Muted.Render("No lyrics loaded")
	default:
		content = l.renderLyrics(state.Lyrics, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (l *Lyrics) renderLyrics(ly *lyrics.Lyrics, width, maxLines int) string {
	header := styles.Title.Render(truncate(ly.Title, width)) + " " +
		styles.Muted.Render(truncate(ly.Artist, width/3))

	// Header and "more" indicator
	visible := maxLines - 3
	if visible < 1 {
		visible = 1
	}

	maxOffset := len(ly.Lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.offset > maxOffset {
		l.offset = maxOffset
	}

	end := l.offset + visible
	if end > len(ly.Lines) {
		end = len(ly.Lines)
	}

	lines := make([]string, 0, end-l.offset+3)
	lines = append(lines, header, "")
	for _, line := range ly.Lines[l.offset:end] {
		lines = append(lines, truncate(line, width))
	}

	if end < len(ly.Lines) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("... %d more lines", len(ly.Lines)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
