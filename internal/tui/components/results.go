package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/tui/styles"
)

// Results displays music search results
type Results struct {
	cursor
}

// NewResults creates a new Results component
func NewResults() *Results {
	return &Results{}
}

// SelectNext selects the next result
func (r *Results) SelectNext(n int) {
	r.next(n)
}

// SelectPrev selects the previous result
func (r *Results) SelectPrev() {
	r.prev()
}

// Selected returns the selected result index
func (r *Results) Selected() int {
	return r.selected
}

// Reset moves the selection back to the top
func (r *Results) Reset() {
	r.cursor = cursor{}
}

// ResultsState is what the results panel shows.
type ResultsState struct {
	Query   string
	Tracks  []core.Track
	Loading bool
	Err     error
}

// Render renders the results panel
func (r *Results) Render(state ResultsState, width, height int, focused bool) string {
	title := styles.PanelTitle("Results", focused)

	var content string
	switch {
	case state.Loading:
		content = styles.Loading.Render("Searching...")
	case state.Err != nil:
		content = styles.Failed.Render("Search failed: ") + styles.Muted.Render(state.Err.Error())
	case state.Query == "":
		content = styles.Muted.Render("Press / to search for music")
	case len(state.Tracks) == 0:
		content = styles.Muted.Render(fmt.Sprintf("No results for %q", state.Query))
	default:
		content = r.renderTracks(state.Tracks, width-4, height-4, focused)
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

func (r *Results) renderTracks(tracks []core.Track, width, maxLines int, focused bool) string {
	visible := maxLines - 1
	visible = r.clamp(len(tracks), visible)

	end := r.offset + visible
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-r.offset+1)
	for i := r.offset; i < end; i++ {
		lines = append(lines, trackLine(i, tracks[i], width, focused && i == r.selected))
	}

	if end < len(tracks) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
