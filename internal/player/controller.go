// Package player drives audio playback from the music queue.
package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tessro/heimdall/internal/api"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/logging"
	"github.com/tessro/heimdall/internal/queue"
)

// DefaultErrorHold is how long a playback error stays on screen before the
// player is hidden.
const DefaultErrorHold = 3 * time.Second

// Messages shown in place of the track title and artist when a stream
// cannot be played.
const (
	ErrorTitle           = "Error Playing Track"
	DefaultErrorSubtitle = "Could not load audio stream"
)

// StreamResolver turns a track reference into a playable URL.
type StreamResolver interface {
	StreamURL(ctx context.Context, source core.Source, id string) (string, error)
}

// View displays the now-playing panel.
type View interface {
	ShowNowPlaying(core.NowPlaying)
}

// ViewFunc adapts a function to a View.
type ViewFunc func(core.NowPlaying)

// ShowNowPlaying implements View.
func (f ViewFunc) ShowNowPlaying(np core.NowPlaying) { f(np) }

// Options configures a Controller.
type Options struct {
	ErrorHold time.Duration
	View      View
	Logger    *log.Logger
}

// Controller plays tracks, advancing through the queue as tracks end.
type Controller struct {
	queue     *queue.Manager
	resolver  StreamResolver
	audio     Audio
	view      View
	errorHold time.Duration
	logger    *log.Logger
	events    chan Event

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	hideTimer  *time.Timer
	nowPlaying core.NowPlaying
}

// NewController creates a playback controller.
func NewController(q *queue.Manager, resolver StreamResolver, audio Audio, opts Options) *Controller {
	if opts.ErrorHold <= 0 {
		opts.ErrorHold = DefaultErrorHold
	}
	if opts.View == nil {
		opts.View = ViewFunc(func(core.NowPlaying) {})
	}
	return &Controller{
		queue:     q,
		resolver:  resolver,
		audio:     audio,
		view:      opts.View,
		errorHold: opts.ErrorHold,
		logger:    logging.With(opts.Logger, "component", "player"),
		events:    make(chan Event, 64),
	}
}

// Events returns the playback event stream. Events are dropped when the
// channel is full.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// NowPlaying returns the now-playing panel state.
func (c *Controller) NowPlaying() core.NowPlaying {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nowPlaying
}

// Play makes t the current track and starts resolving its stream. The view
// is updated before the stream request is made. Any earlier request still
// in flight is cancelled and its result ignored.
func (c *Controller) Play(ctx context.Context, t core.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	gen := c.generation
	c.resetLocked()

	c.queue.SetCurrent(t)
	if err := c.audio.Stop(); err != nil {
		c.logger.Warn("failed to stop audio", "err", err)
	}

	track := t
	c.showLocked(core.NowPlaying{Status: core.PlayerLoading, Track: &track})
	c.emit(Event{Type: EventTrackStarted, Track: t})

	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	go c.resolve(reqCtx, gen, t)
}

func (c *Controller) resolve(ctx context.Context, gen uint64, t core.Track) {
	url, err := c.resolver.StreamURL(ctx, t.Source, t.ID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("dropping stale stream", "key", t.Key())
		return
	}

	if err == nil {
		if err = c.audio.Load(url); err == nil {
			err = c.audio.Play()
		}
	}
	if err != nil {
		c.failLocked(gen, t, err)
		return
	}

	track := t
	c.showLocked(core.NowPlaying{Status: core.PlayerPlaying, Track: &track})
	c.emit(Event{Type: EventStreamReady, Track: t})
}

// failLocked shows the error in place of the track details, then hides the
// player once the error hold elapses. The current track is kept.
func (c *Controller) failLocked(gen uint64, t core.Track, err error) {
	c.logger.Warn("failed to play track", "key", t.Key(), "err", err)

	track := t
	c.showLocked(core.NowPlaying{
		Status:   core.PlayerError,
		Track:    &track,
		Title:    ErrorTitle,
		Subtitle: errorSubtitle(err),
	})
	c.emit(Event{Type: EventStreamFailed, Track: t, Err: err})

	c.hideTimer = time.AfterFunc(c.errorHold, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.generation {
			return
		}
		c.showLocked(core.NowPlaying{Status: core.PlayerHidden})
	})
}

// HandleEnded advances to the next queued track. With an empty queue
// playback stops and the current track is kept.
func (c *Controller) HandleEnded(ctx context.Context) {
	if cur, ok := c.queue.Current(); ok {
		c.emit(Event{Type: EventTrackEnded, Track: cur})
	}

	next, ok := c.queue.Advance()
	if !ok {
		c.emit(Event{Type: EventQueueEmpty})
		return
	}
	c.Play(ctx, next)
}

// HandleFailed shows a playback failure of the current track. The queue is
// not advanced.
func (c *Controller) HandleFailed(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.queue.Current()
	if !ok {
		return
	}
	c.resetLocked()
	c.failLocked(c.generation, cur, err)
}

// Close stops playback, hides the player and clears the current track.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.resetLocked()

	if err := c.audio.Stop(); err != nil {
		c.logger.Warn("failed to stop audio", "err", err)
	}
	c.showLocked(core.NowPlaying{Status: core.PlayerHidden})
	c.queue.ClearCurrent()
	c.emit(Event{Type: EventClosed})
}

// Run forwards end-of-track and failure signals until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			c.resetLocked()
			c.mu.Unlock()
			return ctx.Err()
		case <-c.audio.Ended():
			c.HandleEnded(ctx)
		case err := <-c.audio.Failed():
			c.HandleFailed(err)
		}
	}
}

func (c *Controller) resetLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
}

func (c *Controller) showLocked(np core.NowPlaying) {
	c.nowPlaying = np
	c.view.ShowNowPlaying(np)
}

func (c *Controller) emit(e Event) {
	e.Time = time.Now()
	select {
	case c.events <- e:
	default:
	}
}

func errorSubtitle(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return DefaultErrorSubtitle
}
