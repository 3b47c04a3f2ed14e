package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/wizard"
)

var (
	searchSource string
	searchLimit  int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for music",
	Long: `Search YouTube, SoundCloud and JioSaavn through the backend.
Without a query, opens an interactive search when run in a terminal.

Examples:
  heimdall search daft punk
  heimdall search "one more time" --source youtube --limit 5`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchSource, "source", "s", "", "only show results from this source")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 20, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	if wizard.NeedsQuery(args) {
		t, err := promptTrack(ctx, rt)
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		return printTracks([]core.Track{*t})
	}

	tracks, err := searchTracks(ctx, rt, strings.Join(args, " "), searchSource)
	if err != nil {
		return err
	}
	if searchLimit > 0 && len(tracks) > searchLimit {
		tracks = tracks[:searchLimit]
	}
	return printTracks(tracks)
}

func printTracks(tracks []core.Track) error {
	if JSONOutput() {
		if tracks == nil {
			tracks = []core.Track{}
		}
		return printJSON(tracks)
	}
	if len(tracks) == 0 {
		fmt.Println("No results found")
		return nil
	}
	trackTable(os.Stdout, tracks)
	return nil
}

// searchTracks runs a music search restricted to source.
func searchTracks(ctx context.Context, rt *env, query, source string) ([]core.Track, error) {
	filter, err := wizard.ParseSourceFilter(source)
	if err != nil {
		return nil, err
	}
	tracks, err := rt.client.SearchMusic(ctx, query)
	if err != nil {
		return nil, requireLogin(fmt.Errorf("search failed: %w", err))
	}
	return filter.Apply(tracks), nil
}

// promptTrack opens the interactive search. It returns nil if the user
// cancels.
func promptTrack(ctx context.Context, rt *env) (*core.Track, error) {
	interactive := wizard.NewInteractive()
	if !interactive.CanInteract() {
		return nil, fmt.Errorf("a search query is required")
	}
	interactive.SetSearchFunc(func(query string) ([]core.Track, error) {
		return rt.client.SearchMusic(ctx, query)
	})
	return interactive.PromptSearch()
}

// resolveTrack finds the track a command refers to: the pick-th result for
// the query in args, or an interactive choice when args is empty.
func resolveTrack(ctx context.Context, rt *env, args []string, source string, pick int) (*core.Track, error) {
	if wizard.NeedsQuery(args) {
		return promptTrack(ctx, rt)
	}

	query := strings.Join(args, " ")
	tracks, err := searchTracks(ctx, rt, query, source)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no tracks found for '%s'", query)
	}
	if pick < 1 || pick > len(tracks) {
		return nil, fmt.Errorf("result %d out of range (1-%d)", pick, len(tracks))
	}
	t := tracks[pick-1]
	return &t, nil
}
