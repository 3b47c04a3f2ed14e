package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tessro/heimdall/internal/lyrics"
	"github.com/tessro/heimdall/internal/notify"
	"github.com/tessro/heimdall/internal/queue"
)

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	// Clear confirmation
	if m.confirmClear {
		m.confirmClear = false
		if msg.String() == "y" || msg.String() == "Y" {
			return m, m.dispatch(queue.Clear())
		}
		return m, nil
	}

	// Search input
	if m.searchFocused {
		return m.handleSearchKeyPress(msg)
	}

	// Normal mode
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "/":
		m.searchFocused = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "tab", "shift+tab":
		if m.focusedPanel == PanelResults {
			m.focusedPanel = PanelSide
		} else {
			m.focusedPanel = PanelResults
		}
		return m, nil

	case "esc", "s":
		if !m.nowPlaying.Visible() && m.snapshot.Current == nil {
			return m, nil
		}
		return m, m.dispatch(queue.Close())

	case "n":
		return m, m.dispatch(queue.Advance())

	case "u":
		m.closeLyrics()
		m.focusedPanel = PanelSide
		return m, nil

	case "l":
		if m.side == SideLyrics {
			m.closeLyrics()
			return m, nil
		}
		if m.snapshot.Current == nil {
			m.app.notify("Nothing is playing", notify.Warning)
			return m, nil
		}
		m.focusedPanel = PanelSide
		return m, m.openLyrics(*m.snapshot.Current)

	case "y":
		return m, m.copyCurrent()

	case "C":
		if m.snapshot.Queue.IsEmpty() {
			m.app.notify("Queue is already empty", notify.Info)
			return m, nil
		}
		m.confirmClear = true
		return m, nil
	}

	// Panel-specific keys
	switch {
	case m.focusedPanel == PanelResults:
		switch msg.String() {
		case "j", "down":
			m.resultsView.SelectNext(len(m.results))
		case "k", "up":
			m.resultsView.SelectPrev()
		case "enter":
			if t, ok := m.selectedResult(); ok {
				return m, m.dispatch(queue.Play(t))
			}
		case "a":
			if t, ok := m.selectedResult(); ok {
				return m, m.dispatch(queue.Enqueue(t))
			}
		}

	case m.side == SideQueue:
		switch msg.String() {
		case "j", "down":
			m.queueView.SelectNext(m.snapshot.Count())
		case "k", "up":
			m.queueView.SelectPrev()
		case "enter":
			if i, ok := m.selectedQueueIndex(); ok {
				return m, m.dispatch(queue.PlayFrom(i))
			}
		case "x":
			if i, ok := m.selectedQueueIndex(); ok {
				return m, m.dispatch(queue.Remove(i))
			}
		}

	case m.side == SideLyrics:
		switch msg.String() {
		case "j", "down":
			m.lyricsView.ScrollDown()
		case "k", "up":
			m.lyricsView.ScrollUp()
		}
	}

	return m, nil
}

func (m Model) handleSearchKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchFocused = false
		m.searchInput.Blur()
		return m, nil

	case "enter":
		m.searchFocused = false
		m.searchInput.Blur()
		m.focusedPanel = PanelResults
		query := strings.TrimSpace(m.searchInput.Value())
		if len(query) < minQueryLength || query == m.lastQuery {
			return m, nil
		}
		return m, m.startSearch(query)
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if after := m.searchInput.Value(); after != before {
		return m, tea.Batch(cmd, m.debounceSearch(after))
	}
	return m, cmd
}

// copyCurrent copies "Artist - Title" of the current track.
func (m Model) copyCurrent() tea.Cmd {
	cur := m.snapshot.Current
	if cur == nil {
		m.app.notify("Nothing is playing", notify.Warning)
		return nil
	}
	artist, title := lyrics.ParseTrackInfo(cur.Title, cur.Artist)
	text := artist + " - " + title

	app := m.app
	return func() tea.Msg {
		if err := app.copy(text); err != nil {
			app.logger.Warn("clipboard write failed", "err", err)
			app.notify("Could not copy to clipboard", notify.Error)
			return nil
		}
		app.notify("Copied: "+text, notify.Success)
		return nil
	}
}
