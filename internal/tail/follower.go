package tail

import (
	"context"
	"fmt"
	"io"

	"github.com/tessro/heimdall/internal/player"
)

// Follower writes playback events to an output as they happen.
type Follower struct {
	events    <-chan player.Event
	out       io.Writer
	formatter *Formatter
	json      bool
	stopOn    map[player.EventType]bool
	last      player.Event
}

// FollowerOption configures a Follower.
type FollowerOption func(*Follower)

// WithJSON writes one JSON object per line instead of formatted text.
func WithJSON(enabled bool) FollowerOption {
	return func(f *Follower) {
		f.json = enabled
	}
}

// WithFormatter sets the text formatter.
func WithFormatter(formatter *Formatter) FollowerOption {
	return func(f *Follower) {
		f.formatter = formatter
	}
}

// StopOn makes Follow return after writing an event of one of the types.
func StopOn(types ...player.EventType) FollowerOption {
	return func(f *Follower) {
		for _, t := range types {
			f.stopOn[t] = true
		}
	}
}

// NewFollower creates a follower reading from events.
func NewFollower(events <-chan player.Event, out io.Writer, opts ...FollowerOption) *Follower {
	f := &Follower{
		events:    events,
		out:       out,
		formatter: NewFormatter(),
		stopOn:    make(map[player.EventType]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Follow writes events until ctx is done, the channel closes, or a stop
// event is seen.
func (f *Follower) Follow(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e, ok := <-f.events:
			if !ok {
				return nil
			}

			f.last = e

			line := ""
			if f.json {
				line = FormatJSON(e)
			} else {
				line = f.formatter.Format(e)
			}
			if _, err := fmt.Fprintln(f.out, line); err != nil {
				return err
			}

			if f.stopOn[e.Type] {
				return nil
			}
		}
	}
}

// Last returns the most recent event written, or the zero Event.
func (f *Follower) Last() player.Event {
	return f.last
}
