// Package tail renders the playback event stream as text.
package tail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/heimdall/internal/player"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e player.Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

// formatLine formats an event as a simple line.
func (f *Formatter) formatLine(e player.Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Time.Format("15:04:05"))
	}

	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}

	parts = append(parts, describe(e))

	return strings.Join(parts, " ")
}

// formatTemplate formats an event using a custom template.
func (f *Formatter) formatTemplate(e player.Event) string {
	data := newRecord(e)
	data.Emoji = eventEmoji(e.Type)

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

// record is the template and JSON view of an event.
type record struct {
	Type      string    `json:"type"`
	Emoji     string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Time      string    `json:"-"`
	ID        string    `json:"id,omitempty"`
	Source    string    `json:"source,omitempty"`
	Title     string    `json:"title,omitempty"`
	Artist    string    `json:"artist,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func newRecord(e player.Event) record {
	r := record{
		Type:      string(e.Type),
		Timestamp: e.Time,
		Time:      e.Time.Format("15:04:05"),
		ID:        e.Track.ID,
		Source:    string(e.Track.Source),
		Title:     e.Track.Title,
		Artist:    e.Track.Artist,
	}
	if e.Err != nil {
		r.Error = e.Err.Error()
	}
	return r
}

// FormatJSON formats an event as a single JSON line.
func FormatJSON(e player.Event) string {
	data, err := json.Marshal(newRecord(e))
	if err != nil {
		return fmt.Sprintf(`{"type":%q}`, e.Type)
	}
	return string(data)
}

// describe returns a human-readable description of the event.
func describe(e player.Event) string {
	name := trackName(e)

	switch e.Type {
	case player.EventTrackStarted:
		if name != "" {
			return "Loading: " + name
		}
		return "Loading track"

	case player.EventStreamReady:
		if name != "" {
			return "Now playing: " + name
		}
		return "Now playing"

	case player.EventStreamFailed:
		msg := "Error playing track"
		if name != "" {
			msg += ": " + name
		}
		if e.Err != nil {
			msg += fmt.Sprintf(" (%v)", e.Err)
		}
		return msg

	case player.EventTrackEnded:
		if name != "" {
			return "Finished: " + name
		}
		return "Track finished"

	case player.EventQueueEmpty:
		return "Queue is empty"

	case player.EventClosed:
		return "Player closed"

	default:
		return "Unknown event"
	}
}

func trackName(e player.Event) string {
	switch {
	case e.Track.Artist != "" && e.Track.Title != "":
		return e.Track.Artist + " - " + e.Track.Title
	case e.Track.Title != "":
		return e.Track.Title
	default:
		return e.Track.ID
	}
}

// eventEmoji returns an emoji for the event type.
func eventEmoji(t player.EventType) string {
	switch t {
	case player.EventTrackStarted:
		return "⏳"
	case player.EventStreamReady:
		return "🎵"
	case player.EventStreamFailed:
		return "⚠️"
	case player.EventTrackEnded:
		return "✅"
	case player.EventQueueEmpty:
		return "📭"
	case player.EventClosed:
		return "⏹️"
	default:
		return "❓"
	}
}
