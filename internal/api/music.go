package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tessro/heimdall/internal/core"
)

// ErrNoStream is returned when the backend answers without a stream URL.
var ErrNoStream = fmt.Errorf("no stream URL in response")

// SearchMusic searches all music sources. Tracks that fail validation are
// dropped from the results.
func (c *Client) SearchMusic(ctx context.Context, query string) ([]core.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	var raw []core.Track
	if err := c.Get(ctx, "/api/music/search/"+url.PathEscape(query), &raw); err != nil {
		return nil, err
	}

	tracks := make([]core.Track, 0, len(raw))
	for _, t := range raw {
		if err := c.validate.Struct(t); err != nil {
			c.logger.Debug("dropping invalid track", "id", t.ID, "err", err)
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

type streamResponse struct {
	StreamURL string `json:"stream_url"`
}

// StreamURL resolves a playable audio URL for a track.
func (c *Client) StreamURL(ctx context.Context, source core.Source, id string) (string, error) {
	params := map[string]string{
		"source": string(source),
		"id":     id,
	}

	var resp streamResponse
	if err := c.Get(ctx, BuildURL("/api/music/stream", params), &resp); err != nil {
		return "", err
	}
	if resp.StreamURL == "" {
		return "", ErrNoStream
	}
	return resp.StreamURL, nil
}

type lyricsResponse struct {
	Lyrics string `json:"lyrics"`
}

// ErrNoLyrics is returned when the backend answers without lyrics text.
var ErrNoLyrics = fmt.Errorf("no lyrics in response")

// Lyrics fetches the lyrics text for a track. A 404 or 504 comes back as a
// *StatusError.
func (c *Client) Lyrics(ctx context.Context, artist, title string) (string, error) {
	params := map[string]string{
		"artist": artist,
		"title":  title,
	}

	var resp lyricsResponse
	if err := c.Get(ctx, BuildURL("/api/music/lyrics", params), &resp); err != nil {
		return "", err
	}
	if resp.Lyrics == "" {
		return "", ErrNoLyrics
	}
	return resp.Lyrics, nil
}
