package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessro/heimdall/internal/core"
	herrors "github.com/tessro/heimdall/internal/errors"
	"github.com/tessro/heimdall/internal/lyrics"
	"github.com/tessro/heimdall/internal/notify"
	"github.com/tessro/heimdall/internal/queue"
)

type fakeSearch struct {
	tracks []core.Track
}

func (f *fakeSearch) SearchMusic(_ context.Context, q string) ([]core.Track, error) {
	return f.tracks, nil
}

type fakeDispatcher struct {
	mu      sync.Mutex
	intents []queue.Intent
	err     error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, in queue.Intent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intents = append(f.intents, in)
	return f.err
}

type fakeLyrics struct{}

func (fakeLyrics) FetchTrack(_ context.Context, t core.Track) (*lyrics.Lyrics, error) {
	return &lyrics.Lyrics{Artist: t.Artist, Title: t.Title, Lines: []string{"la la"}}, nil
}

type harness struct {
	model      Model
	dispatcher *fakeDispatcher
	notices    *notify.Center
	copied     []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		dispatcher: &fakeDispatcher{},
		notices:    notify.NewCenter(time.Minute),
	}
	app, err := NewApp(context.Background(), Options{
		Search:     &fakeSearch{tracks: []core.Track{track("a"), track("b")}},
		Dispatcher: h.dispatcher,
		Lyrics:     fakeLyrics{},
		Notices:    h.notices,
		Copy: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		app.Close()
		h.notices.Close()
	})
	h.model = NewModel(app)
	h.model.width, h.model.height = 120, 40
	return h
}

func track(id string) core.Track {
	return core.Track{ID: id, Source: core.SourceYouTube, Title: "Song " + id, Artist: "Artist " + id}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

// exec runs a single command returned by a key handler and feeds its
// result back into the model.
func (h *harness) exec(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	if msg := cmd(); msg != nil {
		h.send(msg)
	}
}

func (h *harness) withResults(tracks ...core.Track) {
	h.model.lastQuery = "song"
	h.send(searchResultsMsg{query: "song", tracks: tracks})
}

func (h *harness) withState(snap core.Snapshot, np core.NowPlaying) {
	h.send(stateMsg{snapshot: snap, nowPlaying: np})
}

func (h *harness) messages() []string {
	var out []string
	for _, t := range h.notices.Active() {
		out = append(out, t.Message)
	}
	return out
}

func TestBridgeCoalescesUpdates(t *testing.T) {
	b := NewBridge()
	cur := track("a")

	b.Render(core.Snapshot{Queue: core.Queue{Tracks: []core.Track{track("b")}}})
	b.ShowNowPlaying(core.NowPlaying{Status: core.PlayerLoading, Track: &cur})
	b.Render(core.Snapshot{Queue: core.Queue{Tracks: []core.Track{track("b"), track("c")}}, Current: &cur})

	msg := b.wait()()
	state, ok := msg.(stateMsg)
	require.True(t, ok)
	assert.Equal(t, 2, state.snapshot.Count())
	assert.Equal(t, core.PlayerLoading, state.nowPlaying.Status)

	// Only one wake-up is pending for the three updates.
	select {
	case <-b.signal:
		t.Fatal("expected updates to coalesce")
	default:
	}
}

func TestBridgeCloseReleasesWaiters(t *testing.T) {
	b := NewBridge()
	done := make(chan tea.Msg)
	go func() { done <- b.wait()() }()

	b.Close()
	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("wait did not return after Close")
	}
}

func TestSearchDebounce(t *testing.T) {
	h := newHarness(t)
	h.send(key("/"))
	require.True(t, h.model.searchFocused)

	h.send(key("lo"))
	h.send(key("fi"))
	assert.Equal(t, "lofi", h.model.searchInput.Value())

	// A debounce tick for an older value is ignored.
	assert.Nil(t, h.send(searchDebounceMsg{query: "lo"}))
	assert.False(t, h.model.searching)

	cmd := h.send(searchDebounceMsg{query: "lofi"})
	require.NotNil(t, cmd)
	assert.True(t, h.model.searching)
	assert.Equal(t, "lofi", h.model.lastQuery)

	h.exec(t, cmd)
	assert.False(t, h.model.searching)
	assert.Len(t, h.model.results, 2)
}

func TestSearchShortQueryClearsResults(t *testing.T) {
	h := newHarness(t)
	h.withResults(track("a"))
	require.Len(t, h.model.results, 1)

	h.model.searchInput.SetValue("a")
	assert.Nil(t, h.send(searchDebounceMsg{query: "a"}))
	assert.Empty(t, h.model.results)
	assert.Empty(t, h.model.lastQuery)
}

func TestStaleSearchResultsIgnored(t *testing.T) {
	h := newHarness(t)
	h.model.lastQuery = "new"
	h.send(searchResultsMsg{query: "old", tracks: []core.Track{track("x")}})
	assert.Empty(t, h.model.results)
}

func TestResultKeys(t *testing.T) {
	tests := []struct {
		key  string
		kind queue.IntentKind
	}{
		{"enter", queue.IntentPlay},
		{"a", queue.IntentEnqueue},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			h := newHarness(t)
			h.withResults(track("a"), track("b"))
			h.send(key("j"))

			h.exec(t, h.send(key(tt.key)))
			require.Len(t, h.dispatcher.intents, 1)
			assert.Equal(t, tt.kind, h.dispatcher.intents[0].Kind)
			assert.Equal(t, "b", h.dispatcher.intents[0].Track.ID)
		})
	}
}

func TestQueueKeys(t *testing.T) {
	h := newHarness(t)
	h.withState(core.Snapshot{Queue: core.Queue{Tracks: []core.Track{track("a"), track("b"), track("c")}}}, core.NowPlaying{})
	h.send(key("u"))
	require.Equal(t, PanelSide, h.model.focusedPanel)

	h.send(key("j"))
	h.send(key("j"))
	h.exec(t, h.send(key("enter")))
	h.exec(t, h.send(key("x")))

	require.Len(t, h.dispatcher.intents, 2)
	assert.Equal(t, queue.PlayFrom(2), h.dispatcher.intents[0])
	assert.Equal(t, queue.Remove(2), h.dispatcher.intents[1])
}

func TestClearNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	h.withState(core.Snapshot{Queue: core.Queue{Tracks: []core.Track{track("a")}}}, core.NowPlaying{})

	assert.Nil(t, h.send(key("C")))
	assert.True(t, h.model.confirmClear)
	assert.Nil(t, h.send(key("n")))
	assert.False(t, h.model.confirmClear)
	assert.Empty(t, h.dispatcher.intents)

	h.send(key("C"))
	h.exec(t, h.send(key("y")))
	require.Len(t, h.dispatcher.intents, 1)
	assert.Equal(t, queue.IntentClear, h.dispatcher.intents[0].Kind)
}

func TestClearEmptyQueueSkipsConfirmation(t *testing.T) {
	h := newHarness(t)
	h.send(key("C"))
	assert.False(t, h.model.confirmClear)
	assert.Contains(t, h.messages(), "Queue is already empty")
}

func TestLyricsNeedCurrentTrack(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.send(key("l")))
	assert.Equal(t, SideQueue, h.model.side)
	assert.Contains(t, h.messages(), "Nothing is playing")
}

func TestLyricsAndQueueAreExclusive(t *testing.T) {
	h := newHarness(t)
	cur := track("a")
	h.withState(core.Snapshot{Current: &cur}, core.NowPlaying{Status: core.PlayerLoading, Track: &cur})

	cmd := h.send(key("l"))
	assert.Equal(t, SideLyrics, h.model.side)
	assert.True(t, h.model.lyricsState.Loading)

	h.exec(t, cmd)
	require.NotNil(t, h.model.lyricsState.Lyrics)
	assert.Equal(t, []string{"la la"}, h.model.lyricsState.Lyrics.Lines)

	h.send(key("u"))
	assert.Equal(t, SideQueue, h.model.side)
	assert.Nil(t, h.model.lyricsState.Lyrics)
}

func TestLyricsFailureIsClassified(t *testing.T) {
	h := newHarness(t)
	cur := track("a")
	h.withState(core.Snapshot{Current: &cur}, core.NowPlaying{})
	h.send(key("l"))

	h.send(lyricsMsg{key: cur.Key(), err: errors.New("status 404: not found")})
	require.NotNil(t, h.model.lyricsState.Failure)
	assert.Equal(t, lyrics.FailureNotFound, h.model.lyricsState.Failure.Kind)
}

func TestLyricsCloseWhenPlayerCloses(t *testing.T) {
	h := newHarness(t)
	cur := track("a")
	h.withState(core.Snapshot{Current: &cur}, core.NowPlaying{Status: core.PlayerPlaying, Track: &cur})
	h.send(key("l"))
	require.Equal(t, SideLyrics, h.model.side)

	// A stale response for another track is dropped.
	h.send(lyricsMsg{key: "youtube:zzz", lyrics: &lyrics.Lyrics{Lines: []string{"x"}}})
	assert.True(t, h.model.lyricsState.Loading)

	h.withState(core.Snapshot{}, core.NowPlaying{})
	assert.Equal(t, SideQueue, h.model.side)
}

func TestCopyCurrentTrack(t *testing.T) {
	h := newHarness(t)
	cur := core.Track{ID: "1", Source: core.SourceYouTube, Title: "Daft Punk - One More Time (Official Video)", Artist: "DaftPunkVEVO"}
	h.withState(core.Snapshot{Current: &cur}, core.NowPlaying{})

	h.exec(t, h.send(key("y")))
	assert.Equal(t, []string{"Daft Punk - One More Time"}, h.copied)
}

func TestClosePlayer(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.send(key("s")))

	cur := track("a")
	h.withState(core.Snapshot{Current: &cur}, core.NowPlaying{Status: core.PlayerPlaying, Track: &cur})
	h.exec(t, h.send(key("esc")))
	require.Len(t, h.dispatcher.intents, 1)
	assert.Equal(t, queue.IntentClose, h.dispatcher.intents[0].Kind)
}

func TestDispatchErrorsBecomeToasts(t *testing.T) {
	h := newHarness(t)
	h.dispatcher.err = herrors.ErrQueueEmpty

	h.exec(t, h.send(key("n")))
	assert.Contains(t, h.messages(), "Queue is empty")
}

func TestToastExpiry(t *testing.T) {
	h := newHarness(t)
	toast := notify.Toast{ID: "t1", Message: "Added to queue", Kind: notify.Success, Expires: time.Now().Add(time.Minute)}

	h.send(toastMsg(toast))
	require.Len(t, h.model.toasts, 1)
	assert.Contains(t, h.model.View(), "Added to queue")

	h.send(toastExpiredMsg{id: "t1"})
	assert.Empty(t, h.model.toasts)
}

func TestViewShowsPlayerError(t *testing.T) {
	h := newHarness(t)
	cur := track("a")
	h.withState(core.Snapshot{Current: &cur}, core.NowPlaying{
		Status:   core.PlayerError,
		Track:    &cur,
		Title:    "Error Playing Track",
		Subtitle: "Video unavailable",
	})

	view := h.model.View()
	assert.Contains(t, view, "Error Playing Track")
	assert.Contains(t, view, "Video unavailable")
}
