package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/tui/styles"
)

// Queue displays the playback queue
type Queue struct {
	cursor
}

// NewQueue creates a new Queue component
func NewQueue() *Queue {
	return &Queue{}
}

// SelectNext selects the next queued track
func (q *Queue) SelectNext(n int) {
	q.next(n)
}

// SelectPrev selects the previous queued track
func (q *Queue) SelectPrev() {
	q.prev()
}

// Selected returns the selected index
func (q *Queue) Selected() int {
	return q.selected
}

// Render renders the queue panel
func (q *Queue) Render(snap core.Snapshot, width, height int, focused bool) string {
	title := styles.PanelTitle(fmt.Sprintf("Queue (%d)", snap.Count()), focused)

	var content string
	if snap.Queue.IsEmpty() {
		content = styles.Muted.Render("Queue is empty")
	} else {
		content = q.renderQueue(snap.Queue.Tracks, width-4, height-4, focused)
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

func (q *Queue) renderQueue(tracks []core.Track, width, maxLines int, focused bool) string {
	// Leave room for "more" indicator
	visible := maxLines - 1
	visible = q.clamp(len(tracks), visible)

	end := q.offset + visible
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-q.offset+1)
	for i := q.offset; i < end; i++ {
		lines = append(lines, trackLine(i, tracks[i], width, focused && i == q.selected))
	}

	if end < len(tracks) {
		more := styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
