package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/api"
	"github.com/tessro/heimdall/internal/core"
	herrors "github.com/tessro/heimdall/internal/errors"
	"github.com/tessro/heimdall/internal/notify"
)

var homeRowLimit int

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home page rows",
	Long: `Show trending, top rated and popular movies and TV shows, the same rows
as the web home page. Rows that fail to load are reported and skipped.`,
	Args: cobra.NoArgs,
	RunE: runHome,
}

func init() {
	homeCmd.Flags().IntVarP(&homeRowLimit, "limit", "l", 5, "titles to show per row")
	rootCmd.AddCommand(homeCmd)
}

type homeRow struct {
	Title string           `json:"title"`
	Type  core.MediaType   `json:"type"`
	List  api.List         `json:"list"`
	Items []core.MediaItem `json:"items"`
}

var homeRows = []homeRow{
	{Title: "Trending Movies", Type: core.MediaMovie, List: api.ListTrending},
	{Title: "Top Rated Movies", Type: core.MediaMovie, List: api.ListTopRated},
	{Title: "Popular Movies", Type: core.MediaMovie, List: api.ListPopular},
	{Title: "Trending TV Shows", Type: core.MediaTV, List: api.ListTrending},
	{Title: "Top Rated TV Shows", Type: core.MediaTV, List: api.ListTopRated},
	{Title: "Popular TV Shows", Type: core.MediaTV, List: api.ListPopular},
}

// mediaLister is the part of the client the home page needs.
type mediaLister interface {
	Movies(ctx context.Context, list api.List) ([]core.MediaItem, error)
	TV(ctx context.Context, list api.List) ([]core.MediaItem, error)
}

// loadHome fetches every row concurrently. Rows keep their order; failed
// rows are left out and their errors collected.
func loadHome(ctx context.Context, client mediaLister) herrors.PartialResult[[]homeRow] {
	rows := make([]homeRow, len(homeRows))
	errs := make([]error, len(homeRows))

	var wg sync.WaitGroup
	for i, row := range homeRows {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			if row.Type == core.MediaTV {
				row.Items, err = client.TV(ctx, row.List)
			} else {
				row.Items, err = client.Movies(ctx, row.List)
			}
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", row.Title, err)
				return
			}
			rows[i] = row
		}()
	}
	wg.Wait()

	var result herrors.PartialResult[[]homeRow]
	for i := range rows {
		if errs[i] != nil {
			result.AddError(errs[i])
			continue
		}
		result.Data = append(result.Data, rows[i])
	}
	return result
}

func runHome(cmd *cobra.Command, args []string) error {
	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	result := loadHome(cmdContext(cmd), rt.client)
	if len(result.Data) == 0 && result.HasErrors() {
		return requireLogin(result.Errors[0])
	}
	if result.HasErrors() {
		logger.Warn("some home rows failed", "count", len(result.Errors))
		fmt.Fprintln(os.Stderr, formatNotice(notify.Toast{Message: result.ErrorSummary(), Kind: notify.Warning}))
	}

	if JSONOutput() {
		return printJSON(result.Data)
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E50914"))
	for i, row := range result.Data {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(heading.Render(row.Title))
		fmt.Println(homeRowLine(row.Items, homeRowLimit))
	}
	return nil
}

// homeRowLine joins up to limit titles with their year.
func homeRowLine(items []core.MediaItem, limit int) string {
	if len(items) == 0 {
		return "  (empty)"
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%s (%s)", item.DisplayTitle(), item.Year())
	}
	return "  " + strings.Join(parts, " · ")
}
