package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tessro/heimdall/internal/core"
	herrors "github.com/tessro/heimdall/internal/errors"
	"github.com/tessro/heimdall/internal/lyrics"
	"github.com/tessro/heimdall/internal/notify"
	"github.com/tessro/heimdall/internal/queue"
	"github.com/tessro/heimdall/internal/tui/components"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelResults Panel = iota
	PanelSide
)

// Side is the panel shown beside the results. Queue and lyrics never show
// together.
type Side int

const (
	SideQueue Side = iota
	SideLyrics
)

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel
	side         Side

	// State
	snapshot     core.Snapshot
	nowPlaying   core.NowPlaying
	playingKey   string
	playingSince time.Time
	now          time.Time
	ticking      bool
	toasts       []notify.Toast

	// Components
	nowPlayingView *components.NowPlaying
	resultsView    *components.Results
	queueView      *components.Queue
	lyricsView     *components.Lyrics

	// Search state
	searchFocused bool
	searchInput   textinput.Model
	results       []core.Track
	searching     bool
	lastQuery     string
	searchErr     error

	// Lyrics state
	lyricsKey   string
	lyricsState components.LyricsState

	// Overlays
	showHelp     bool
	confirmClear bool

	// Quit flag
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	ti := textinput.New()
	ti.Placeholder = "Search songs, artists..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 100
	ti.Width = 50

	snap, np := app.bridge.State()

	return Model{
		app:            app,
		focusedPanel:   PanelResults,
		side:           SideQueue,
		snapshot:       snap,
		nowPlaying:     np,
		nowPlayingView: components.NewNowPlaying(),
		resultsView:    components.NewResults(),
		queueView:      components.NewQueue(),
		lyricsView:     components.NewLyrics(),
		searchInput:    ti,
	}
}

// Messages
type tickMsg time.Time
type stateMsg struct {
	snapshot   core.Snapshot
	nowPlaying core.NowPlaying
}
type toastMsg notify.Toast
type toastExpiredMsg struct{ id string }
type dispatchErrMsg struct{ err error }

// Search messages
type searchDebounceMsg struct{ query string }
type searchResultsMsg struct {
	query  string
	tracks []core.Track
	err    error
}

type lyricsMsg struct {
	key    string
	lyrics *lyrics.Lyrics
	err    error
}

// Commands
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForToast() tea.Cmd {
	ch := m.app.toasts
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return toastMsg(t)
	}
}

func expireToast(t notify.Toast) tea.Cmd {
	d := time.Until(t.Expires)
	if d < 0 {
		d = 0
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: t.ID}
	})
}

func (m Model) debounceSearch(query string) tea.Cmd {
	return tea.Tick(m.app.debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{query: query}
	})
}

func (m Model) doSearch(query string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(app.ctx, 15*time.Second)
		defer cancel()

		tracks, err := app.search.SearchMusic(ctx, query)
		return searchResultsMsg{query: query, tracks: tracks, err: err}
	}
}

// dispatch applies an intent off the UI goroutine. The app context is used
// so that stream resolution started by play intents outlives the command.
func (m Model) dispatch(in queue.Intent) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		if err := app.dispatcher.Dispatch(app.ctx, in); err != nil {
			return dispatchErrMsg{err: err}
		}
		return nil
	}
}

func (m Model) fetchLyrics(t core.Track) tea.Cmd {
	app := m.app
	key := t.Key()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(app.ctx, 15*time.Second)
		defer cancel()

		l, err := app.lyrics.FetchTrack(ctx, t)
		return lyricsMsg{key: key, lyrics: l, err: err}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.app.bridge.wait(),
		m.waitForToast(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = msg.Width * 60 / 100
		return m, nil

	case stateMsg:
		cmd := m.applyState(msg.snapshot, msg.nowPlaying)
		return m, tea.Batch(cmd, m.app.bridge.wait())

	case tickMsg:
		m.now = time.Time(msg)
		if m.nowPlaying.Status == core.PlayerPlaying {
			return m, tick()
		}
		m.ticking = false
		return m, nil

	case toastMsg:
		t := notify.Toast(msg)
		m.toasts = append(m.toasts, t)
		return m, tea.Batch(expireToast(t), m.waitForToast())

	case toastExpiredMsg:
		kept := make([]notify.Toast, 0, len(m.toasts))
		for _, t := range m.toasts {
			if t.ID != msg.id {
				kept = append(kept, t)
			}
		}
		m.toasts = kept
		return m, nil

	case dispatchErrMsg:
		m.notifyError(msg.err)
		return m, nil

	case searchDebounceMsg:
		query := strings.TrimSpace(msg.query)
		if msg.query != m.searchInput.Value() || query == m.lastQuery {
			return m, nil
		}
		if len(query) < minQueryLength {
			m.lastQuery = ""
			m.results = nil
			m.searchErr = nil
			m.searching = false
			return m, nil
		}
		return m, m.startSearch(query)

	case searchResultsMsg:
		if msg.query != m.lastQuery {
			return m, nil
		}
		m.searching = false
		m.results = msg.tracks
		m.searchErr = msg.err
		m.resultsView.Reset()
		return m, nil

	case lyricsMsg:
		if msg.key != m.lyricsKey || m.side != SideLyrics {
			return m, nil
		}
		m.lyricsState = components.LyricsState{Lyrics: msg.lyrics}
		if msg.err != nil {
			var failure *lyrics.Failure
			if !errors.As(msg.err, &failure) {
				failure = lyrics.Classify(msg.err)
			}
			m.lyricsState = components.LyricsState{Failure: failure}
		}
		return m, nil
	}

	// Forward other messages to textinput when search is active
	if m.searchFocused {
		var inputCmd tea.Cmd
		m.searchInput, inputCmd = m.searchInput.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

// applyState records a new queue snapshot and player state.
func (m *Model) applyState(snap core.Snapshot, np core.NowPlaying) tea.Cmd {
	var cmds []tea.Cmd

	m.snapshot = snap
	wasPlaying := m.nowPlaying.Status == core.PlayerPlaying
	m.nowPlaying = np

	if np.Status == core.PlayerPlaying && np.Track != nil {
		if key := np.Track.Key(); !wasPlaying || key != m.playingKey {
			m.playingKey = key
			m.playingSince = time.Now()
			m.now = m.playingSince
		}
		if !m.ticking {
			m.ticking = true
			cmds = append(cmds, tick())
		}
	}

	if m.side == SideLyrics {
		switch {
		case snap.Current == nil:
			m.closeLyrics()
		case snap.Current.Key() != m.lyricsKey:
			cmds = append(cmds, m.openLyrics(*snap.Current))
		}
	}

	return tea.Batch(cmds...)
}

func (m *Model) startSearch(query string) tea.Cmd {
	m.lastQuery = query
	m.searching = true
	m.searchErr = nil
	return m.doSearch(query)
}

func (m *Model) openLyrics(t core.Track) tea.Cmd {
	m.side = SideLyrics
	m.lyricsKey = t.Key()
	m.lyricsView.Reset()
	if m.app.lyrics == nil {
		m.lyricsState = components.LyricsState{Failure: &lyrics.Failure{
			Title:  "Lyrics unavailable",
			Detail: "No lyrics source is configured",
		}}
		return nil
	}
	m.lyricsState = components.LyricsState{Loading: true}
	return m.fetchLyrics(t)
}

func (m *Model) closeLyrics() {
	m.side = SideQueue
	m.lyricsKey = ""
	m.lyricsState = components.LyricsState{}
}

func (m Model) notifyError(err error) {
	switch {
	case errors.Is(err, herrors.ErrQueueEmpty):
		m.app.notify("Queue is empty", notify.Info)
	case errors.Is(err, herrors.ErrIndexOutOfRange):
		m.app.notify("That track is no longer in the queue", notify.Warning)
	case errors.Is(err, herrors.ErrUnauthorized):
		m.app.notify("Not logged in. Run 'heimdall login'", notify.Error)
	default:
		m.app.notify(err.Error(), notify.Error)
	}
}

func (m Model) selectedResult() (core.Track, bool) {
	i := m.resultsView.Selected()
	if i < 0 || i >= len(m.results) {
		return core.Track{}, false
	}
	return m.results[i], true
}

func (m Model) selectedQueueIndex() (int, bool) {
	i := m.queueView.Selected()
	if i < 0 || i >= m.snapshot.Count() {
		return 0, false
	}
	return i, true
}

func (m Model) elapsed() time.Duration {
	if m.nowPlaying.Status != core.PlayerPlaying || m.playingSince.IsZero() {
		return 0
	}
	d := m.now.Sub(m.playingSince)
	if d < 0 {
		return 0
	}
	return d
}
