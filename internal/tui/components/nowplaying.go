package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/tui/styles"
)

// NowPlaying displays the currently playing track
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel. elapsed is how long the current
// stream has been playing.
func (n *NowPlaying) Render(state core.NowPlaying, upNext int, elapsed time.Duration, width int) string {
	if !state.Visible() {
		return ""
	}

	var content string
	switch state.Status {
	case core.PlayerError:
		content = lipgloss.JoinVertical(lipgloss.Left,
			styles.Failed.Render("✗ "+state.Title),
			"  "+styles.Subtitle.Render(state.Subtitle),
		)
	default:
		content = n.renderTrack(state, elapsed, width-4)
	}

	footer := styles.Dim.Render(fmt.Sprintf("%d up next", upNext))
	if upNext == 0 {
		footer = styles.Dim.Render("Nothing queued")
	}

	return styles.Panel(state.Status == core.PlayerPlaying).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.PanelTitle("Now Playing", false),
			content,
			footer,
		))
}

func (n *NowPlaying) renderTrack(state core.NowPlaying, elapsed time.Duration, width int) string {
	track := state.Track
	if track == nil {
		return styles.Muted.Render("No track playing")
	}

	icon := styles.Playing.Render("▶")
	if state.Status == core.PlayerLoading {
		icon = styles.Loading.Render("…")
	}
	title := styles.Title.Render(truncate(track.Title, width-4))
	artist := styles.Subtitle.Render(truncate(track.Artist, width-4))

	var progress string
	switch {
	case state.Status == core.PlayerLoading:
		progress = styles.Loading.Render("Loading stream...")
	case track.Duration > 0:
		progressWidth := width - 14 // Account for times on either side
		if progressWidth < 10 {
			progressWidth = 10
		}
		percent := elapsed.Seconds() / track.Duration * 100
		progress = fmt.Sprintf("%s %s %s",
			formatElapsed(elapsed),
			styles.ProgressBar(percent, progressWidth),
			core.FormatDuration(track.Duration))
	default:
		progress = styles.Dim.Render(formatElapsed(elapsed))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"  "+progress,
	)
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
