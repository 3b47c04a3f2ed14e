package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/heimdall/internal/tui/components"
	"github.com/tessro/heimdall/internal/tui/styles"
)

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	// Show overlays if active
	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	toasts := components.RenderToasts(m.toasts, m.width)
	statusBar := m.renderStatusBar()
	nowPlaying := m.nowPlayingView.Render(m.nowPlaying, m.snapshot.Count(), m.elapsed(), m.width-2)

	// Main layout: results on the left, queue or lyrics on the right, the
	// player underneath.
	used := lipgloss.Height(header) + lipgloss.Height(statusBar)
	if nowPlaying != "" {
		used += lipgloss.Height(nowPlaying)
	}
	if toasts != "" {
		used += lipgloss.Height(toasts)
	}
	mainHeight := m.height - used - 2
	if mainHeight < 5 {
		mainHeight = 5
	}

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 4

	results := m.resultsView.Render(components.ResultsState{
		Query:   m.lastQuery,
		Tracks:  m.results,
		Loading: m.searching,
		Err:     m.searchErr,
	}, leftWidth-2, mainHeight, m.focusedPanel == PanelResults)

	var side string
	sideFocused := m.focusedPanel == PanelSide
	if m.side == SideLyrics {
		side = m.lyricsView.Render(m.lyricsState, rightWidth, mainHeight, sideFocused)
	} else {
		side = m.queueView.Render(m.snapshot, rightWidth, mainHeight, sideFocused)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, results, side)

	rows := []string{header, main}
	if nowPlaying != "" {
		rows = append(rows, nowPlaying)
	}
	if toasts != "" {
		rows = append(rows, toasts)
	}
	rows = append(rows, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderHeader() string {
	brand := styles.Highlight.Render("HEIMDALL") + styles.Muted.Render(" music")

	badge := ""
	if n := m.snapshot.Count(); n > 0 {
		badge = " " + styles.Badge.Render(fmt.Sprintf("%d", n))
	}

	profile := ""
	if m.app.profile != "" {
		profile = styles.Dim.Render(m.app.profile)
	}

	left := brand + badge
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(profile) - 2
	if gap < 1 {
		gap = 1
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		" "+left+strings.Repeat(" ", gap)+profile,
		" "+m.searchInput.View(),
	)
}

func (m Model) renderStatusBar() string {
	status := styles.Dim.Render("q:quit  ?:help  /:search  enter:play  a:add  l:lyrics  u:queue  n:next  s:stop")

	switch {
	case m.confirmClear:
		status = styles.Failed.Render(fmt.Sprintf("Clear all %d queued tracks? (y/n)", m.snapshot.Count()))
	case m.searchFocused:
		status = styles.Dim.Render("enter:search  esc:done")
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := "Heimdall - Keyboard Shortcuts"
	divider := strings.Repeat("═", len(title))

	help := `
  ` + title + `
  ` + divider + `

  Global
  ──────
  q, Ctrl+C    Quit
  ?            Toggle help
  /            Search
  Tab          Switch panel
  n            Next in queue
  s, Esc       Close player
  y            Copy "Artist - Title"
  l            Toggle lyrics
  u            Show queue
  C            Clear queue

  Results
  ───────
  j/↓ k/↑      Select
  Enter        Play now
  a            Add to queue

  Queue
  ─────
  j/↓ k/↑      Select
  Enter        Play from here
  x            Remove

  Press ? or Esc to close
`

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(help))
}
