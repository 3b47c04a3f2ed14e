package queue

import (
	"context"
	"fmt"

	"github.com/tessro/heimdall/internal/core"
	herrors "github.com/tessro/heimdall/internal/errors"
)

// IntentKind names a user action.
type IntentKind string

const (
	IntentEnqueue  IntentKind = "enqueue"
	IntentRemove   IntentKind = "remove"
	IntentClear    IntentKind = "clear"
	IntentPlay     IntentKind = "play"
	IntentAdvance  IntentKind = "advance"
	IntentPlayFrom IntentKind = "play_from"
	IntentClose    IntentKind = "close"
)

// Intent is a user action emitted by a front end.
type Intent struct {
	Kind  IntentKind
	Track core.Track
	Index int
}

// Enqueue returns an enqueue intent.
func Enqueue(t core.Track) Intent { return Intent{Kind: IntentEnqueue, Track: t} }

// Remove returns a remove intent.
func Remove(index int) Intent { return Intent{Kind: IntentRemove, Index: index} }

// Clear returns a clear intent.
func Clear() Intent { return Intent{Kind: IntentClear} }

// Play returns a play-now intent.
func Play(t core.Track) Intent { return Intent{Kind: IntentPlay, Track: t} }

// Advance returns a play-next intent.
func Advance() Intent { return Intent{Kind: IntentAdvance} }

// PlayFrom returns a play-from-here intent.
func PlayFrom(index int) Intent { return Intent{Kind: IntentPlayFrom, Index: index} }

// Close returns a close-player intent.
func Close() Intent { return Intent{Kind: IntentClose} }

// Player starts and stops playback.
type Player interface {
	Play(ctx context.Context, t core.Track)
	Close()
}

type handler func(ctx context.Context, in Intent) error

// Dispatcher maps intents to state transitions.
type Dispatcher struct {
	manager  *Manager
	player   Player
	handlers map[IntentKind]handler
}

// NewDispatcher creates a dispatcher. The player may be nil, in which case
// play intents only update queue state.
func NewDispatcher(m *Manager, p Player) *Dispatcher {
	d := &Dispatcher{manager: m, player: p}
	d.handlers = map[IntentKind]handler{
		IntentEnqueue:  d.enqueue,
		IntentRemove:   d.remove,
		IntentClear:    d.clear,
		IntentPlay:     d.play,
		IntentAdvance:  d.advance,
		IntentPlayFrom: d.playFrom,
		IntentClose:    d.close,
	}
	return d
}

// Dispatch applies an intent.
func (d *Dispatcher) Dispatch(ctx context.Context, in Intent) error {
	h, ok := d.handlers[in.Kind]
	if !ok {
		return fmt.Errorf("unknown intent %q", in.Kind)
	}
	return h(ctx, in)
}

func (d *Dispatcher) enqueue(_ context.Context, in Intent) error {
	d.manager.Enqueue(in.Track)
	return nil
}

func (d *Dispatcher) remove(_ context.Context, in Intent) error {
	if !d.manager.DequeueAt(in.Index) {
		return fmt.Errorf("%w: %d", herrors.ErrIndexOutOfRange, in.Index+1)
	}
	return nil
}

func (d *Dispatcher) clear(_ context.Context, _ Intent) error {
	d.manager.Clear()
	return nil
}

func (d *Dispatcher) play(ctx context.Context, in Intent) error {
	if d.player == nil {
		d.manager.SetCurrent(in.Track)
		return nil
	}
	d.player.Play(ctx, in.Track)
	return nil
}

func (d *Dispatcher) advance(ctx context.Context, _ Intent) error {
	t, ok := d.manager.Advance()
	if !ok {
		return herrors.ErrQueueEmpty
	}
	if d.player != nil {
		d.player.Play(ctx, t)
	}
	return nil
}

func (d *Dispatcher) playFrom(ctx context.Context, in Intent) error {
	t, ok := d.manager.PlayFrom(in.Index)
	if !ok {
		return fmt.Errorf("%w: %d", herrors.ErrIndexOutOfRange, in.Index+1)
	}
	if d.player != nil {
		d.player.Play(ctx, t)
	}
	return nil
}

func (d *Dispatcher) close(_ context.Context, _ Intent) error {
	if d.player == nil {
		d.manager.ClearCurrent()
		return nil
	}
	d.player.Close()
	return nil
}
