package tail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/player"
)

var song = core.Track{ID: "abc", Source: core.SourceYouTube, Title: "Song", Artist: "Artist"}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		name  string
		event player.Event
		opts  []FormatterOption
		want  string
	}{
		{
			name:  "stream ready",
			event: player.Event{Type: player.EventStreamReady, Track: song},
			opts:  []FormatterOption{WithEmoji(false)},
			want:  "Now playing: Artist - Song",
		},
		{
			name:  "started with emoji",
			event: player.Event{Type: player.EventTrackStarted, Track: song},
			want:  "⏳ Loading: Artist - Song",
		},
		{
			name:  "failure",
			event: player.Event{Type: player.EventStreamFailed, Track: song, Err: errors.New("Video unavailable")},
			opts:  []FormatterOption{WithEmoji(false)},
			want:  "Error playing track: Artist - Song (Video unavailable)",
		},
		{
			name:  "queue empty",
			event: player.Event{Type: player.EventQueueEmpty},
			opts:  []FormatterOption{WithEmoji(false)},
			want:  "Queue is empty",
		},
		{
			name:  "timestamp",
			event: player.Event{Type: player.EventClosed, Time: time.Date(2024, 1, 1, 13, 4, 5, 0, time.UTC)},
			opts:  []FormatterOption{WithEmoji(false), WithTimestamp(true)},
			want:  "13:04:05 Player closed",
		},
		{
			name:  "title only",
			event: player.Event{Type: player.EventTrackEnded, Track: core.Track{ID: "x", Title: "Solo"}},
			opts:  []FormatterOption{WithEmoji(false)},
			want:  "Finished: Solo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFormatter(tt.opts...).Format(tt.event)
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTemplate(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Type}}|{{.Artist}}|{{.Title}}"))
	got := f.Format(player.Event{Type: player.EventStreamReady, Track: song})
	if got != "stream_ready|Artist|Song" {
		t.Errorf("Format() = %q", got)
	}

	// Invalid templates are ignored.
	f = NewFormatter(WithTemplate("{{.Nope"), WithEmoji(false))
	got = f.Format(player.Event{Type: player.EventQueueEmpty})
	if got != "Queue is empty" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	line := FormatJSON(player.Event{Type: player.EventStreamFailed, Track: song, Err: errors.New("boom")})

	var got map[string]any
	if err := json.Unmarshal([]byte(line), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", line, err)
	}
	if got["type"] != "stream_failed" || got["id"] != "abc" || got["error"] != "boom" {
		t.Errorf("unexpected JSON %v", got)
	}
}

func TestFollowerStopsOnEvent(t *testing.T) {
	events := make(chan player.Event, 4)
	events <- player.Event{Type: player.EventStreamReady, Track: song}
	events <- player.Event{Type: player.EventQueueEmpty}
	events <- player.Event{Type: player.EventClosed}

	var buf bytes.Buffer
	f := NewFollower(events, &buf,
		WithFormatter(NewFormatter(WithEmoji(false))),
		StopOn(player.EventQueueEmpty),
	)
	if err := f.Follow(context.Background()); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if lines[1] != "Queue is empty" {
		t.Errorf("last line = %q", lines[1])
	}
	if got := f.Last().Type; got != player.EventQueueEmpty {
		t.Errorf("Last().Type = %v, want %v", got, player.EventQueueEmpty)
	}
}

func TestFollowerJSONAndClose(t *testing.T) {
	events := make(chan player.Event, 1)
	events <- player.Event{Type: player.EventClosed}
	close(events)

	var buf bytes.Buffer
	if err := NewFollower(events, &buf, WithJSON(true)).Follow(context.Background()); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"type":"closed"`) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFollowerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFollower(make(chan player.Event), &bytes.Buffer{}).Follow(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Follow() error = %v, want context.Canceled", err)
	}
}
