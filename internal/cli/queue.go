package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/queue"
	"github.com/tessro/heimdall/internal/wizard"
)

var (
	queueLimit  int
	queueSource string
	queuePick   int
	queueYes    bool
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Manage the play queue",
	Long: `View and manage the persistent play queue.

The queue survives restarts. Tracks are played in the order they were
added; a track can only be queued once.`,
	RunE: runQueueList,
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the queue",
	RunE:  runQueueList,
}

var queueAddCmd = &cobra.Command{
	Use:   "add [query]",
	Short: "Add a track to the queue",
	Long: `Search for a track and add it to the end of the queue.
Without a query, opens an interactive search.

Examples:
  heimdall queue add "bohemian rhapsody"
  heimdall queue add lofi --source soundcloud --pick 3`,
	RunE: runQueueAdd,
}

var queueRemoveCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Remove a track from the queue",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueueRemove,
}

var queueClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the queue",
	RunE:  runQueueClear,
}

var queueNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Play the next queued track",
	Long: `Remove the head of the queue and play it, then keep playing
through the queue.`,
	RunE: runQueueNext,
}

var queuePlayFromCmd = &cobra.Command{
	Use:   "play-from <position>",
	Short: "Skip to a position in the queue and play from there",
	Long: `Drop every track before position, play the track at position, then
keep playing through the queue.`,
	Args: cobra.ExactArgs(1),
	RunE: runQueuePlayFrom,
}

func init() {
	queueCmd.PersistentFlags().IntVarP(&queueLimit, "limit", "l", 20, "maximum number of tracks to show")
	queueAddCmd.Flags().StringVarP(&queueSource, "source", "s", "", "only consider results from this source")
	queueAddCmd.Flags().IntVarP(&queuePick, "pick", "p", 1, "which search result to add")
	queueClearCmd.Flags().BoolVarP(&queueYes, "yes", "y", false, "do not ask for confirmation")

	queueCmd.AddCommand(queueListCmd)
	queueCmd.AddCommand(queueAddCmd)
	queueCmd.AddCommand(queueRemoveCmd)
	queueCmd.AddCommand(queueClearCmd)
	queueCmd.AddCommand(queueNextCmd)
	queueCmd.AddCommand(queuePlayFromCmd)
	rootCmd.AddCommand(queueCmd)
}

func runQueueList(cmd *cobra.Command, args []string) error {
	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	snap := rt.newQueue().Snapshot()

	if JSONOutput() {
		if snap.Queue.Tracks == nil {
			snap.Queue.Tracks = []core.Track{}
		}
		return printJSON(snap)
	}

	printSnapshot(snap)
	return nil
}

func printSnapshot(snap core.Snapshot) {
	if snap.Current != nil {
		fmt.Printf("▶ %s — %s\n\n", snap.Current.Title, snap.Current.Artist)
	}

	if snap.Queue.IsEmpty() {
		fmt.Println("Queue is empty")
		return
	}

	tracks := snap.Queue.Tracks
	if queueLimit > 0 && len(tracks) > queueLimit {
		tracks = tracks[:queueLimit]
	}
	trackTable(os.Stdout, tracks)

	if len(snap.Queue.Tracks) > len(tracks) {
		fmt.Printf("\n... and %d more tracks\n", len(snap.Queue.Tracks)-len(tracks))
	}
}

func runQueueAdd(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)

	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	t, err := resolveTrack(ctx, rt, args, queueSource, queuePick)
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}

	stop := printNotices(rt.notices, os.Stderr)
	m := rt.newQueue()
	added := m.Enqueue(*t)
	stop()

	if JSONOutput() {
		status := "added"
		if !added {
			status = "duplicate"
		}
		return printJSON(map[string]any{
			"status": status,
			"track":  t,
			"length": m.Len(),
		})
	}
	return nil
}

// queuePosition parses a 1-based queue position.
func queuePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 {
		return 0, fmt.Errorf("invalid position: %s", arg)
	}
	return pos - 1, nil
}

func runQueueRemove(cmd *cobra.Command, args []string) error {
	index, err := queuePosition(args[0])
	if err != nil {
		return err
	}

	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	m := rt.newQueue()
	snap := m.Snapshot()
	if err := queue.NewDispatcher(m, nil).Dispatch(cmdContext(cmd), queue.Remove(index)); err != nil {
		return err
	}
	removed := snap.Queue.Tracks[index]

	if JSONOutput() {
		return printJSON(map[string]any{"status": "removed", "track": removed})
	}
	fmt.Printf("Removed: %s — %s\n", removed.Title, removed.Artist)
	return nil
}

func runQueueClear(cmd *cobra.Command, args []string) error {
	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	m := rt.newQueue()
	n := m.Len()
	if n == 0 {
		if JSONOutput() {
			return printJSON(map[string]any{"status": "empty"})
		}
		fmt.Println("Queue is already empty")
		return nil
	}

	if !queueYes {
		if !wizard.IsTerminal() {
			return fmt.Errorf("refusing to clear %d tracks without --yes", n)
		}
		confirmed := false
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear all %d tracks from the queue?", n)).
				Affirmative("Clear").
				Negative("Cancel").
				Value(&confirmed),
		)).WithTheme(formTheme()).Run()
		if err != nil {
			return fmt.Errorf("confirmation cancelled: %w", err)
		}
		if !confirmed {
			return nil
		}
	}

	stop := printNotices(rt.notices, os.Stderr)
	err = queue.NewDispatcher(m, nil).Dispatch(cmdContext(cmd), queue.Clear())
	stop()
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(map[string]any{"status": "cleared", "removed": n})
	}
	return nil
}

func runQueueNext(cmd *cobra.Command, args []string) error {
	return playSession(cmd, queue.Advance())
}

func runQueuePlayFrom(cmd *cobra.Command, args []string) error {
	index, err := queuePosition(args[0])
	if err != nil {
		return err
	}
	return playSession(cmd, queue.PlayFrom(index))
}
