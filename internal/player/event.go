package player

import (
	"time"

	"github.com/tessro/heimdall/internal/core"
)

// EventType identifies a playback event.
type EventType string

const (
	EventTrackStarted EventType = "track_started"
	EventStreamReady  EventType = "stream_ready"
	EventStreamFailed EventType = "stream_failed"
	EventTrackEnded   EventType = "track_ended"
	EventQueueEmpty   EventType = "queue_empty"
	EventClosed       EventType = "closed"
)

// Event is emitted on every playback state change.
type Event struct {
	Type  EventType
	Time  time.Time
	Track core.Track
	Err   error
}
