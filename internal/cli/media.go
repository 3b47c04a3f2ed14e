package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/api"
	"github.com/tessro/heimdall/internal/browser"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/wizard"
)

var (
	mediaOpen  bool
	mediaLimit int

	discoverType  string
	discoverGenre int
	discoverYear  int
	discoverPage  int
)

var browseCmd = &cobra.Command{
	Use:   "browse [movies|tv] [trending|top-rated|popular]",
	Short: "Browse curated movie and TV lists",
	Long: `Show a curated list of movies or TV shows.

Examples:
  heimdall browse                   # Trending movies
  heimdall browse tv top-rated
  heimdall browse movies popular --open`,
	Args:      cobra.MaximumNArgs(2),
	ValidArgs: []string{"movies", "tv"},
	RunE:      runBrowse,
}

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search movies and TV shows",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFind,
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover movies or TV shows by genre and year",
	Long: `Page through movies or TV shows sorted by popularity.

Examples:
  heimdall discover --type tv --genre 18
  heimdall discover --year 1999 --page 2`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

var genresCmd = &cobra.Command{
	Use:   "genres [movie|tv]",
	Short: "List genres",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGenres,
}

func init() {
	for _, c := range []*cobra.Command{browseCmd, findCmd, discoverCmd} {
		c.Flags().BoolVarP(&mediaOpen, "open", "o", false, "pick an item and open it in the browser")
		c.Flags().IntVarP(&mediaLimit, "limit", "l", 20, "maximum number of items to show")
	}
	discoverCmd.Flags().StringVarP(&discoverType, "type", "t", "movie", "media type (movie or tv)")
	discoverCmd.Flags().IntVarP(&discoverGenre, "genre", "g", 0, "genre id (see 'heimdall genres')")
	discoverCmd.Flags().IntVarP(&discoverYear, "year", "y", 0, "release year")
	discoverCmd.Flags().IntVarP(&discoverPage, "page", "p", 1, "result page")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(genresCmd)
}

var listTitles = map[api.List]string{
	api.ListTrending: "Trending",
	api.ListTopRated: "Top Rated",
	api.ListPopular:  "Popular",
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	kind := "movies"
	list := api.ListTrending
	if len(args) > 0 {
		kind = strings.ToLower(args[0])
	}
	if len(args) > 1 {
		list = api.List(strings.ToLower(args[1]))
	}
	if !list.Valid() {
		return fmt.Errorf("unknown list %q (want trending, top-rated or popular)", list)
	}

	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	var items []core.MediaItem
	var mediaType core.MediaType
	switch kind {
	case "movies", "movie":
		mediaType = core.MediaMovie
		items, err = rt.client.Movies(ctx, list)
	case "tv", "shows":
		mediaType = core.MediaTV
		items, err = rt.client.TV(ctx, list)
	default:
		return fmt.Errorf("unknown media kind %q (want movies or tv)", kind)
	}
	if err != nil {
		return requireLogin(fmt.Errorf("failed to load %s %s: %w", list, kind, err))
	}

	title := fmt.Sprintf("%s %s", listTitles[list], kind)
	return showMedia(title, items, mediaType)
}

func runFind(cmd *cobra.Command, args []string) error {
	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	query := strings.Join(args, " ")
	items, err := rt.client.Search(cmdContext(cmd), query)
	if err != nil {
		return requireLogin(fmt.Errorf("search failed: %w", err))
	}
	return showMedia(fmt.Sprintf("Results for %q", query), items, "")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	mediaType, err := parseMediaType(discoverType)
	if err != nil {
		return err
	}

	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	page, err := rt.client.Discover(cmdContext(cmd), api.DiscoverOptions{
		Type:  mediaType,
		Genre: discoverGenre,
		Year:  discoverYear,
		Page:  discoverPage,
	})
	if err != nil {
		return requireLogin(fmt.Errorf("discover failed: %w", err))
	}

	if JSONOutput() {
		return printJSON(page)
	}

	if err := showMedia("Discover", page.Results, mediaType); err != nil {
		return err
	}
	fmt.Printf("\nPage %s of %s (%s results)\n",
		humanize.Comma(int64(page.Page)),
		humanize.Comma(int64(page.TotalPages)),
		humanize.Comma(int64(page.TotalResults)))
	if page.HasMore() {
		fmt.Printf("Next: heimdall discover --type %s --page %d\n", mediaType, page.Page+1)
	}
	return nil
}

func runGenres(cmd *cobra.Command, args []string) error {
	kind := "movie"
	if len(args) > 0 {
		kind = args[0]
	}
	mediaType, err := parseMediaType(kind)
	if err != nil {
		return err
	}

	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	genres, err := rt.client.Genres(cmdContext(cmd), mediaType)
	if err != nil {
		return requireLogin(fmt.Errorf("failed to load genres: %w", err))
	}

	if JSONOutput() {
		return printJSON(genres)
	}

	t := NewTable("ID", "NAME")
	for _, g := range genres {
		t.Row(strconv.Itoa(g.ID), g.Name)
	}
	t.Flush()
	return nil
}

func parseMediaType(s string) (core.MediaType, error) {
	switch strings.ToLower(s) {
	case "movie", "movies":
		return core.MediaMovie, nil
	case "tv", "show", "shows":
		return core.MediaTV, nil
	}
	return "", fmt.Errorf("unknown media type %q (want movie or tv)", s)
}

// showMedia prints items, or lets the user pick one to open with --open.
// kind overrides the per-item media type when the list has a single type.
func showMedia(title string, items []core.MediaItem, kind core.MediaType) error {
	if mediaOpen {
		return openMedia(title, items, kind)
	}

	if JSONOutput() {
		if items == nil {
			items = []core.MediaItem{}
		}
		return printJSON(items)
	}

	if len(items) == 0 {
		fmt.Println("Nothing found")
		return nil
	}

	shown := items
	if mediaLimit > 0 && len(shown) > mediaLimit {
		shown = shown[:mediaLimit]
	}

	t := NewTableWriter(os.Stdout, "ID", "TITLE", "YEAR", "TYPE")
	for _, item := range shown {
		itemKind := kind
		if itemKind == "" {
			itemKind = item.Kind()
		}
		t.Row(strconv.Itoa(item.ID), TruncateString(item.DisplayTitle(), 50), item.Year(), itemKind.Label())
	}
	t.Flush()

	if len(items) > len(shown) {
		fmt.Printf("\n... and %s more\n", humanize.Comma(int64(len(items)-len(shown))))
	}
	return nil
}

func openMedia(title string, items []core.MediaItem, kind core.MediaType) error {
	interactive := wizard.NewInteractive()
	if !interactive.CanInteract() {
		return fmt.Errorf("--open needs an interactive terminal")
	}
	item, err := interactive.PromptMedia(title, items)
	if err != nil || item == nil {
		return err
	}

	if kind == "" {
		kind = item.Kind()
	}
	url := item.WatchURL(kind)
	fmt.Printf("Opening %s...\n", item.DisplayTitle())
	if err := browser.Open(url); err != nil {
		fmt.Printf("Could not open browser automatically.\nOpen this URL: %s\n", url)
	}
	return nil
}

