package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tessro/heimdall/internal/core"
)

// List names a curated media list.
type List string

const (
	ListTrending List = "trending"
	ListTopRated List = "top-rated"
	ListPopular  List = "popular"
)

// Valid reports whether l is a known list.
func (l List) Valid() bool {
	switch l {
	case ListTrending, ListTopRated, ListPopular:
		return true
	}
	return false
}

// Movies returns a curated movie list.
func (c *Client) Movies(ctx context.Context, list List) ([]core.MediaItem, error) {
	return c.browse(ctx, "movies", list)
}

// TV returns a curated TV list.
func (c *Client) TV(ctx context.Context, list List) ([]core.MediaItem, error) {
	return c.browse(ctx, "tv", list)
}

func (c *Client) browse(ctx context.Context, kind string, list List) ([]core.MediaItem, error) {
	if !list.Valid() {
		return nil, fmt.Errorf("unknown list %q", list)
	}
	var items []core.MediaItem
	if err := c.Get(ctx, "/api/"+kind+"/"+string(list), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Search searches movies and TV shows.
func (c *Client) Search(ctx context.Context, query string) ([]core.MediaItem, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	var items []core.MediaItem
	if err := c.Get(ctx, BuildURL("/api/search", map[string]string{"q": query}), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DiscoverOptions filters a discover query.
type DiscoverOptions struct {
	Type  core.MediaType
	Genre int
	Year  int
	Page  int
}

// Discover returns one page of media sorted by popularity.
func (c *Client) Discover(ctx context.Context, opts DiscoverOptions) (*core.DiscoverPage, error) {
	if opts.Type == "" {
		opts.Type = core.MediaMovie
	}
	if opts.Page < 1 {
		opts.Page = 1
	}

	params := map[string]string{
		"type": string(opts.Type),
		"sort": "popularity.desc",
		"page": strconv.Itoa(opts.Page),
	}
	if opts.Genre > 0 {
		params["genre"] = strconv.Itoa(opts.Genre)
	}
	if opts.Year > 0 {
		params["year"] = strconv.Itoa(opts.Year)
	}

	var page core.DiscoverPage
	if err := c.Get(ctx, BuildURL("/api/discover", params), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Genres returns the genres available for a media type.
func (c *Client) Genres(ctx context.Context, kind core.MediaType) ([]core.Genre, error) {
	var genres []core.Genre
	if err := c.Get(ctx, "/api/genres/"+url.PathEscape(string(kind)), &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// Watchlist returns the watchlist of a profile.
func (c *Client) Watchlist(ctx context.Context, profile string) ([]core.MediaItem, error) {
	var items []core.MediaItem
	if err := c.Get(ctx, BuildURL("/api/watchlist", map[string]string{"profile": profile}), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// RemoveFromWatchlist removes an item from a profile's watchlist.
func (c *Client) RemoveFromWatchlist(ctx context.Context, id int, profile string) error {
	path := BuildURL("/api/watchlist/"+strconv.Itoa(id), map[string]string{"profile": profile})
	return c.Delete(ctx, path)
}
