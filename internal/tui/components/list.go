package components

import (
	"fmt"

	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/tui/styles"
)

// cursor tracks a selection and scroll offset over a list of n items.
type cursor struct {
	offset   int
	selected int
}

func (c *cursor) next(n int) {
	if c.selected < n-1 {
		c.selected++
	}
}

func (c *cursor) prev() {
	if c.selected > 0 {
		c.selected--
	}
}

// clamp keeps the selection inside n items and scrolls so that it is one of
// the visible rows. It returns the number of visible rows.
func (c *cursor) clamp(n, visible int) int {
	if c.selected >= n {
		c.selected = n - 1
	}
	if c.selected < 0 {
		c.selected = 0
	}
	if visible < 1 {
		visible = 1
	}
	if c.selected < c.offset {
		c.offset = c.selected
	}
	if c.selected >= c.offset+visible {
		c.offset = c.selected - visible + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
	return visible
}

// trackLine renders "NN. [SRC] title — artist  m:ss" within width.
func trackLine(index int, t core.Track, width int, selected bool) string {
	num := fmt.Sprintf("%2d.", index+1)
	src := styles.SourceIcon(string(t.Source))
	dur := core.FormatDuration(t.Duration)

	// "NN. " (4) + "SRC " (3) + " — " (3) + "  " + duration
	overhead := 10 + len(dur) + 2
	available := width - overhead
	title, artist := fitPair(t.Title, t.Artist, available)

	if selected {
		line := fmt.Sprintf("%s %s %s — %s", num, src, title, artist)
		if dur != "" {
			line += "  " + dur
		}
		return styles.Highlight.Render("▸ " + line)
	}

	line := fmt.Sprintf("  %s %s %s — %s",
		styles.Dim.Render(num),
		styles.Dim.Render(src),
		title,
		styles.Muted.Render(artist))
	if dur != "" {
		line += "  " + styles.Dim.Render(dur)
	}
	return line
}

// fitPair truncates title and artist to share available columns, giving the
// artist at least a third.
func fitPair(title, artist string, available int) (string, string) {
	if len(title)+len(artist) <= available {
		return title, artist
	}

	minArtist := available / 3
	if minArtist < 10 {
		minArtist = 10
	}
	if minArtist > available-10 {
		minArtist = available - 10
	}

	artistSpace := minArtist
	if len(artist) < artistSpace {
		artistSpace = len(artist)
	}
	titleSpace := available - artistSpace

	return truncate(title, titleSpace), truncate(artist, artistSpace)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
