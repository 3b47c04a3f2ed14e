package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/lyrics"
	"github.com/tessro/heimdall/internal/wizard"
)

var (
	lyricsArtist string
	lyricsTitle  string
)

var lyricsCmd = &cobra.Command{
	Use:   "lyrics [query]",
	Short: "Show lyrics for a track",
	Long: `Fetch lyrics for a track. The query is cleaned up the same way as video
titles ("Artist - Title (Official Video)" becomes artist and title).
Without a query, pick a track with the interactive search.

Examples:
  heimdall lyrics "Daft Punk - One More Time"
  heimdall lyrics --artist "Daft Punk" --title "One More Time"`,
	RunE: runLyrics,
}

func init() {
	lyricsCmd.Flags().StringVar(&lyricsArtist, "artist", "", "artist name")
	lyricsCmd.Flags().StringVar(&lyricsTitle, "title", "", "track title")
	rootCmd.AddCommand(lyricsCmd)
}

func runLyrics(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	artist, title := lyricsArtist, lyricsTitle
	switch {
	case title != "":
		if artist == "" {
			artist = lyrics.UnknownArtist
		}
	case !wizard.NeedsQuery(args):
		artist, title = lyrics.ParseTrackInfo(strings.Join(args, " "), artist)
	default:
		t, err := promptTrack(ctx, rt)
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		artist, title = lyrics.ParseTrackInfo(t.Title, t.Artist)
	}

	l, err := rt.newLyrics().Fetch(ctx, artist, title)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(l)
	}
	printLyrics(l)
	return nil
}

func printLyrics(l *lyrics.Lyrics) {
	title := lipgloss.NewStyle().Bold(true).Render(l.Title)
	artist := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Render(l.Artist)
	fmt.Printf("%s — %s\n\n", title, artist)
	for _, line := range l.Lines {
		if line == lyrics.BlankLine {
			line = ""
		}
		fmt.Println(line)
	}
}

