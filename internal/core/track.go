package core

import (
	"fmt"
	"time"
)

// Source indicates the origin namespace of a track. The backend uses it to
// route streaming-URL requests.
type Source string

const (
	SourceYouTube    Source = "youtube"
	SourceSoundCloud Source = "soundcloud"
	SourceJioSaavn   Source = "jiosaavn"
)

// Placeholder artwork used when a track has no image.
const (
	PlaceholderImage      = "https://placehold.co/80x80/1a1d23/666?text=No+Image"
	PlaceholderImageSmall = "https://placehold.co/40x40/1a1d23/666?text=No+Image"
)

// Track is a reference to a playable track as returned by the backend.
type Track struct {
	ID       string  `json:"id" validate:"required"`
	Source   Source  `json:"source" validate:"required"`
	Title    string  `json:"title"`
	Artist   string  `json:"artist"`
	Image    string  `json:"image,omitempty"`
	Duration float64 `json:"duration,omitempty" validate:"gte=0"`
}

// Key identifies a track within the queue. IDs are only unique inside their
// source namespace, so the source is part of the key.
func (t Track) Key() string {
	if t.Source == "" {
		return t.ID
	}
	return string(t.Source) + ":" + t.ID
}

// SameAs reports whether two tracks are the same queue entry.
func (t Track) SameAs(other Track) bool {
	return t.Key() == other.Key()
}

// ImageOr returns the track image, or fallback if none is set.
func (t Track) ImageOr(fallback string) string {
	if t.Image == "" {
		return fallback
	}
	return t.Image
}

// Length returns the track duration. Negative durations are treated as unknown.
func (t Track) Length() time.Duration {
	if t.Duration <= 0 {
		return 0
	}
	return time.Duration(t.Duration * float64(time.Second))
}

// FormatDuration renders seconds as m:ss. Zero or unknown renders as "".
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
