package lyrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessro/heimdall/internal/api"
	"github.com/tessro/heimdall/internal/core"
	herrors "github.com/tessro/heimdall/internal/errors"
)

type fakeSource struct {
	calls int
	text  string
	err   error
	last  [2]string
}

func (s *fakeSource) Lyrics(_ context.Context, artist, title string) (string, error) {
	s.calls++
	s.last = [2]string{artist, title}
	return s.text, s.err
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   FailureKind
		wantTitle  string
		wantDetail string
	}{
		{
			name:       "404",
			err:        &api.StatusError{Status: 404, Message: "Lyrics not found"},
			wantKind:   FailureNotFound,
			wantTitle:  "Lyrics not available",
			wantDetail: "We couldn't find lyrics for this track",
		},
		{
			name:       "504",
			err:        &api.StatusError{Status: 504},
			wantKind:   FailureSlow,
			wantTitle:  "Lyrics service is slow",
			wantDetail: "The lyrics service is taking too long. Try again later.",
		},
		{
			name:       "client timeout",
			err:        fmt.Errorf("%w: context deadline exceeded", herrors.ErrTimeout),
			wantKind:   FailureSlow,
			wantTitle:  "Lyrics service is slow",
			wantDetail: "The lyrics service is taking too long. Try again later.",
		},
		{
			name:       "error body",
			err:        &api.APIError{Message: "Genius is down"},
			wantKind:   FailureOther,
			wantTitle:  "Error loading lyrics",
			wantDetail: "Genius is down",
		},
		{
			name:       "empty error body",
			err:        &api.APIError{},
			wantKind:   FailureOther,
			wantTitle:  "Error loading lyrics",
			wantDetail: "Please try again later",
		},
		{
			name:       "other",
			err:        errors.New("boom"),
			wantKind:   FailureOther,
			wantTitle:  "Error loading lyrics",
			wantDetail: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Classify(tt.err)
			assert.Equal(t, tt.wantKind, f.Kind)
			assert.Equal(t, tt.wantTitle, f.Title)
			assert.Equal(t, tt.wantDetail, f.Detail)
			assert.ErrorIs(t, f, tt.err)
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"one", BlankLine, "two"}, SplitLines("one\n\ntwo"))
	assert.Equal(t, []string{"crlf", "line"}, SplitLines("crlf\r\nline"))
	assert.Equal(t, "\u00a0", BlankLine)
}

func TestFetchCaches(t *testing.T) {
	src := &fakeSource{text: "la la\n\nla"}
	f := NewFetcher(src, nil)

	l, err := f.Fetch(context.Background(), "Artist", "Song")
	require.NoError(t, err)
	assert.Equal(t, []string{"la la", BlankLine, "la"}, l.Lines)

	_, err = f.Fetch(context.Background(), "artist", "song")
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestFetchFailureNotCached(t *testing.T) {
	src := &fakeSource{err: &api.StatusError{Status: 404}}
	f := NewFetcher(src, nil)

	_, err := f.Fetch(context.Background(), "Artist", "Song")
	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, FailureNotFound, failure.Kind)

	src.err = nil
	src.text = "found"
	l, err := f.Fetch(context.Background(), "Artist", "Song")
	require.NoError(t, err)
	assert.Equal(t, []string{"found"}, l.Lines)
	assert.Equal(t, 2, src.calls)
}

func TestFetchTrack(t *testing.T) {
	src := &fakeSource{text: "x"}
	f := NewFetcher(src, nil)

	_, err := f.FetchTrack(context.Background(), core.Track{
		ID:     "v1",
		Source: core.SourceYouTube,
		Title:  "Artist - Song (Official Video)",
		Artist: "ArtistChannel",
	})
	require.NoError(t, err)
	assert.Equal(t, [2]string{"Artist", "Song"}, src.last)
}
