package cli

import (
	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/queue"
	"github.com/tessro/heimdall/internal/tui"
	"github.com/tessro/heimdall/internal/tui/styles"
)

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard provides:
  • Search - type to search music (results appear after a short pause)
  • Queue - upcoming tracks, saved between sessions
  • Lyrics - lyrics of the current track
  • Now Playing - current track, or the reason it could not play

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  /            Search
  Enter        Play result / play queue from here
  a            Add result to queue
  x            Remove from queue
  C            Clear queue
  l            Toggle lyrics
  y            Copy "Artist - Title"
  s, Esc       Close player
  Tab          Switch panel

Logs are written to the data directory (see 'heimdall config path') unless
log.file is set.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	styles.SetTheme(cfg.TUI.Theme)

	bridge := tui.NewBridge()
	m := rt.newQueue(queue.WithRenderer(bridge))
	ctrl, err := rt.newController(m, bridge)
	if err != nil {
		return err
	}

	return tui.Run(cmdContext(cmd), tui.Options{
		Search:     rt.client,
		Dispatcher: queue.NewDispatcher(m, ctrl),
		Lyrics:     rt.newLyrics(),
		Notices:    rt.notices,
		Bridge:     bridge,
		Playback:   ctrl,
		Profile:    rt.profiles.Name(),
		Debounce:   cfg.TUI.SearchDebounceDuration(),
		Logger:     logger,
	})
}
