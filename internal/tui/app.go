package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/logging"
	"github.com/tessro/heimdall/internal/lyrics"
	"github.com/tessro/heimdall/internal/notify"
	"github.com/tessro/heimdall/internal/queue"
)

const defaultSearchDebounce = 500 * time.Millisecond

// minQueryLength is the shortest query that is sent to the backend.
const minQueryLength = 2

// Searcher finds tracks.
type Searcher interface {
	SearchMusic(ctx context.Context, query string) ([]core.Track, error)
}

// Dispatcher applies queue intents.
type Dispatcher interface {
	Dispatch(ctx context.Context, in queue.Intent) error
}

// LyricsFetcher looks up lyrics for a track.
type LyricsFetcher interface {
	FetchTrack(ctx context.Context, t core.Track) (*lyrics.Lyrics, error)
}

// PlaybackRunner drives end-of-track handling while the UI is up.
type PlaybackRunner interface {
	Run(ctx context.Context) error
	Close()
}

// Options wires the dashboard to the rest of heimdall.
type Options struct {
	Search     Searcher
	Dispatcher Dispatcher
	Lyrics     LyricsFetcher
	Notices    *notify.Center
	Bridge     *Bridge
	Playback   PlaybackRunner
	Profile    string
	Debounce   time.Duration
	Logger     *log.Logger

	// Copy defaults to the system clipboard.
	Copy func(string) error
}

// App holds the TUI application state
type App struct {
	ctx        context.Context
	search     Searcher
	dispatcher Dispatcher
	lyrics     LyricsFetcher
	notices    *notify.Center
	bridge     *Bridge
	playback   PlaybackRunner
	profile    string
	debounce   time.Duration
	logger     *log.Logger
	copy       func(string) error

	toastSub string
	toasts   <-chan notify.Toast
}

// NewApp creates a new TUI application. ctx bounds every request the UI
// starts, including stream resolution for tracks it plays.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	if opts.Search == nil || opts.Dispatcher == nil {
		return nil, errors.New("tui: search and dispatcher are required")
	}
	if opts.Bridge == nil {
		opts.Bridge = NewBridge()
	}
	if opts.Notices == nil {
		opts.Notices = notify.NewCenter(notify.DefaultTTL)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultSearchDebounce
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	app := &App{
		ctx:        ctx,
		search:     opts.Search,
		dispatcher: opts.Dispatcher,
		lyrics:     opts.Lyrics,
		notices:    opts.Notices,
		bridge:     opts.Bridge,
		playback:   opts.Playback,
		profile:    opts.Profile,
		debounce:   opts.Debounce,
		logger:     logging.With(opts.Logger, "component", "tui"),
		copy:       opts.Copy,
	}
	app.toastSub, app.toasts = opts.Notices.Subscribe(16)
	return app, nil
}

// Close releases the app's subscriptions.
func (a *App) Close() {
	a.notices.Unsubscribe(a.toastSub)
	a.bridge.Close()
}

func (a *App) notify(message string, kind notify.Kind) {
	a.notices.Notify(message, kind)
}

// Run starts the TUI application
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app, err := NewApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.playback != nil {
		go func() {
			if err := app.playback.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				app.logger.Error("playback loop stopped", "err", err)
			}
		}()
		defer app.playback.Close()
	}

	model := NewModel(app)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
