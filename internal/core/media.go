package core

import (
	"fmt"
	"time"
)

// MediaType distinguishes movies from TV shows.
type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
)

// Label returns a human-readable media type.
func (m MediaType) Label() string {
	if m == MediaTV {
		return "TV Show"
	}
	return "Movie"
}

const tmdbImageBase = "https://image.tmdb.org/t/p/"

// MediaItem is a movie or TV show as returned by the browse, search and
// discover endpoints.
type MediaItem struct {
	ID           int       `json:"id"`
	Title        string    `json:"title,omitempty"`
	Name         string    `json:"name,omitempty"`
	MediaType    MediaType `json:"media_type,omitempty"`
	Type         MediaType `json:"type,omitempty"`
	PosterPath   string    `json:"poster_path,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	Overview     string    `json:"overview,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	FirstAirDate string    `json:"first_air_date,omitempty"`
}

// DisplayTitle returns the title for movies or the name for TV shows.
func (m MediaItem) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// Kind returns the media type, falling back to the watchlist "type" field.
func (m MediaItem) Kind() MediaType {
	if m.MediaType != "" {
		return m.MediaType
	}
	return m.Type
}

// Year returns the release year, or "N/A".
func (m MediaItem) Year() string {
	date := m.ReleaseDate
	if date == "" {
		date = m.FirstAirDate
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return fmt.Sprintf("%d", t.Year())
	}
	return "N/A"
}

// PosterURL returns the poster image URL at the given TMDB size, or "".
func (m MediaItem) PosterURL(size string) string {
	if m.PosterPath == "" {
		return ""
	}
	return tmdbImageBase + size + m.PosterPath
}

// DetailsPath returns the web path of the details page.
func (m MediaItem) DetailsPath(kind MediaType) string {
	if kind == "" {
		kind = m.Kind()
	}
	return fmt.Sprintf("/details/%s/%d", kind, m.ID)
}

// WatchURL returns the external player link. TV shows default to S1E1.
func (m MediaItem) WatchURL(kind MediaType) string {
	if kind == MediaTV {
		return fmt.Sprintf("https://vidrock.net/tv/%d/1/1", m.ID)
	}
	return fmt.Sprintf("https://vidrock.net/movie/%d", m.ID)
}

// Genre is a media genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DiscoverPage is one page of discover results.
type DiscoverPage struct {
	Results      []MediaItem `json:"results"`
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// HasMore reports whether another page is available.
func (p DiscoverPage) HasMore() bool {
	return p.Page < p.TotalPages
}
