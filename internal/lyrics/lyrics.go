package lyrics

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tessro/heimdall/internal/api"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/logging"
)

// BlankLine replaces empty lyric lines so they keep their height.
const BlankLine = "\u00a0"

// Source fetches raw lyrics text.
type Source interface {
	Lyrics(ctx context.Context, artist, title string) (string, error)
}

// Lyrics is a fetched lyrics sheet.
type Lyrics struct {
	Artist string
	Title  string
	Lines  []string
}

// FailureKind classifies a failed fetch.
type FailureKind int

const (
	FailureOther FailureKind = iota
	FailureNotFound
	FailureSlow
)

// Failure is a fetch error with the message shown to the user.
type Failure struct {
	Kind   FailureKind
	Title  string
	Detail string
	Err    error
}

func (f *Failure) Error() string {
	return f.Title + ": " + f.Detail
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Classify turns a fetch error into a user-facing Failure.
func Classify(err error) *Failure {
	msg := strings.ToLower(err.Error())

	switch {
	case api.IsTimeout(err) || strings.Contains(msg, "timeout") || strings.Contains(msg, "504"):
		return &Failure{
			Kind:   FailureSlow,
			Title:  "Lyrics service is slow",
			Detail: "The lyrics service is taking too long. Try again later.",
			Err:    err,
		}
	case api.IsNotFound(err) || strings.Contains(msg, "not found") || strings.Contains(msg, "404"):
		return &Failure{
			Kind:   FailureNotFound,
			Title:  "Lyrics not available",
			Detail: "We couldn't find lyrics for this track",
			Err:    err,
		}
	}

	detail := err.Error()
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.Message
	}
	if detail == "" {
		detail = "Please try again later"
	}
	return &Failure{
		Kind:   FailureOther,
		Title:  "Error loading lyrics",
		Detail: detail,
		Err:    err,
	}
}

// SplitLines splits lyrics text into display lines.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			line = BlankLine
		}
		lines[i] = line
	}
	return lines
}

type cacheKey struct {
	artist string
	title  string
}

// Fetcher fetches lyrics and caches successful results in memory.
type Fetcher struct {
	source Source
	logger *log.Logger

	mu    sync.RWMutex
	cache map[cacheKey]*Lyrics
}

// NewFetcher creates a fetcher on top of source.
func NewFetcher(source Source, logger *log.Logger) *Fetcher {
	return &Fetcher{
		source: source,
		logger: logging.With(logger, "component", "lyrics"),
		cache:  make(map[cacheKey]*Lyrics),
	}
}

// Fetch returns the lyrics for artist and title. Errors are *Failure.
func (f *Fetcher) Fetch(ctx context.Context, artist, title string) (*Lyrics, error) {
	key := cacheKey{strings.ToLower(artist), strings.ToLower(title)}

	f.mu.RLock()
	cached, ok := f.cache[key]
	f.mu.RUnlock()
	if ok {
		return cached, nil
	}

	f.logger.Debug("fetching lyrics", "artist", artist, "title", title)
	text, err := f.source.Lyrics(ctx, artist, title)
	if err != nil {
		return nil, Classify(err)
	}

	l := &Lyrics{Artist: artist, Title: title, Lines: SplitLines(text)}

	f.mu.Lock()
	f.cache[key] = l
	f.mu.Unlock()
	return l, nil
}

// FetchTrack derives the lookup from the track's raw title and artist.
func (f *Fetcher) FetchTrack(ctx context.Context, t core.Track) (*Lyrics, error) {
	artist, title := ParseTrackInfo(t.Title, t.Artist)
	return f.Fetch(ctx, artist, title)
}
