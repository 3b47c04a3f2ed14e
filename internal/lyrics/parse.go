// Package lyrics derives lyrics-lookup keys from raw track titles and
// fetches lyrics from the backend.
package lyrics

import (
	"regexp"
	"strings"
)

// UnknownArtist is used when neither the title nor the channel name yields
// an artist.
const UnknownArtist = "Unknown Artist"

// noise is applied in order; later patterns rely on earlier ones having
// removed the bracketed forms.
var noise = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(official\s*(video|audio|music\s*video|lyric\s*video)\)`),
	regexp.MustCompile(`(?i)\[official\s*(video|audio|music\s*video|lyric\s*video)\]`),
	regexp.MustCompile(`(?i)official\s*(video|audio|music\s*video|lyric\s*video)`),
	regexp.MustCompile(`(?i)\(lyric(s)?\s*video\)`),
	regexp.MustCompile(`(?i)\[lyric(s)?\s*video\]`),
	regexp.MustCompile(`(?i)lyric(s)?\s*video`),
	regexp.MustCompile(`(?i)\(.*?\d{4}.*?remaster(ed)?\)`),
	regexp.MustCompile(`(?i)\(.*?remaster(ed)?\)`),
	regexp.MustCompile(`(?i)\[.*?remaster(ed)?\]`),
	regexp.MustCompile(`(?i)\(.*?version\)`),
	regexp.MustCompile(`(?i)\[.*?version\]`),
	regexp.MustCompile(`(?i)\(.*?remix\)`),
	regexp.MustCompile(`(?i)\[.*?remix\]`),
	regexp.MustCompile(`(?i)\(.*?edit\)`),
	regexp.MustCompile(`(?i)\[.*?edit\]`),
	regexp.MustCompile(`【.*?】`),
	regexp.MustCompile(`〈.*?〉`),
	regexp.MustCompile(`(?i)\(ft\.?.*?\)`),
	regexp.MustCompile(`(?i)\[ft\.?.*?\]`),
	regexp.MustCompile(`(?i)feat\.?\s+.*`),
	regexp.MustCompile(`(?i)\s*-\s*topic$`),
}

var (
	whitespace  = regexp.MustCompile(`\s+`)
	bySeparator = regexp.MustCompile(`(?i) by `)

	artistSuffixes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)VEVO$`),
		regexp.MustCompile(`(?i)official$`),
		regexp.MustCompile(`(?i)\s*-\s*topic$`),
	}
)

// CleanTitle strips video-site noise such as "(Official Video)",
// remaster and remix annotations, and featured-artist credits.
func CleanTitle(s string) string {
	for _, re := range noise {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

func cleanArtist(s string) string {
	for _, re := range artistSuffixes {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// ParseTrackInfo derives a lyrics lookup (artist, title) from a raw video
// title and the uploader or channel name. It never fails.
//
// Separators are tried in order " - ", ": ", " by ". For " by " the title
// is on the left.
func ParseTrackInfo(rawTitle, fallbackArtist string) (artist, title string) {
	artist = fallbackArtist
	if artist == "" {
		artist = UnknownArtist
	}

	if left, right, ok := strings.Cut(rawTitle, " - "); ok {
		artist = CleanTitle(left)
		title = CleanTitle(right)
	} else if left, right, ok := strings.Cut(rawTitle, ": "); ok {
		artist = CleanTitle(left)
		title = CleanTitle(right)
	} else if loc := bySeparator.FindStringIndex(rawTitle); loc != nil {
		title = CleanTitle(rawTitle[:loc[0]])
		artist = CleanTitle(rawTitle[loc[1]:])
	} else {
		title = CleanTitle(rawTitle)
	}

	artist = cleanArtist(artist)
	if artist == "" || artist == UnknownArtist {
		artist = fallbackArtist
		if artist == "" {
			artist = UnknownArtist
		}
	}
	return artist, title
}
