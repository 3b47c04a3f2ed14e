package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	herrors "github.com/tessro/heimdall/internal/errors"
	"github.com/tessro/heimdall/internal/player"
	"github.com/tessro/heimdall/internal/queue"
	"github.com/tessro/heimdall/internal/tail"
)

var (
	playSource    string
	playPick      int
	playNoEmoji   bool
	playTimestamp bool
	playFormat    string
)

var playCmd = &cobra.Command{
	Use:   "play [query]",
	Short: "Play music",
	Long: `Play a track, then keep playing through the queue until it is empty.
Without a query, plays the next track in the queue.

Playback events are printed as they happen. Press Ctrl+C to stop.

Examples:
  heimdall play                       # Play the queue
  heimdall play "bohemian rhapsody"   # Search and play a track
  heimdall play lofi --source soundcloud --pick 2
  heimdall play --json                # One JSON event per line`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playSource, "source", "s", "", "only consider results from this source")
	playCmd.Flags().IntVarP(&playPick, "pick", "p", 1, "which search result to play")
	playCmd.Flags().BoolVar(&playNoEmoji, "no-emoji", false, "disable emoji output")
	playCmd.Flags().BoolVarP(&playTimestamp, "timestamp", "t", false, "show timestamps")
	playCmd.Flags().StringVarP(&playFormat, "format", "f", "", "custom format template")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return playSession(cmd, queue.Advance())
	}

	rt, err := openEnv()
	if err != nil {
		return err
	}
	t, err := resolveTrack(cmdContext(cmd), rt, args, playSource, playPick)
	rt.Close()
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}
	return playSession(cmd, queue.Play(*t))
}

// playSession applies start with a live player and follows playback until
// the queue runs out, the stream fails or the user interrupts.
func playSession(cmd *cobra.Command, start queue.Intent) error {
	ctx, cancel := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	stop := printNotices(rt.notices, os.Stderr)
	defer stop()

	m := rt.newQueue()
	ctrl, err := rt.newController(m, nil)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	follower := tail.NewFollower(ctrl.Events(), os.Stdout,
		tail.WithJSON(JSONOutput()),
		tail.WithFormatter(tail.NewFormatter(
			tail.WithEmoji(!playNoEmoji),
			tail.WithTimestamp(playTimestamp),
			tail.WithTemplate(playFormat),
		)),
		tail.StopOn(player.EventQueueEmpty, player.EventStreamFailed, player.EventClosed),
	)

	go func() {
		if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("playback loop stopped", "err", err)
		}
	}()

	if err := queue.NewDispatcher(m, ctrl).Dispatch(ctx, start); err != nil {
		if errors.Is(err, herrors.ErrQueueEmpty) {
			return herrors.WithSuggestion(err, "Add tracks with 'heimdall queue add <query>' or run 'heimdall play <query>'")
		}
		return err
	}

	err = follower.Follow(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}

	if last := follower.Last(); last.Type == player.EventStreamFailed {
		return requireLogin(fmt.Errorf("could not play %s: %w", last.Track.Title, last.Err))
	}
	return nil
}
