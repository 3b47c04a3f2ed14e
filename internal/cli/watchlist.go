package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var watchlistProfile string

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Manage the profile watchlist",
	Long: `Show or edit the watchlist of the active profile.
Use --profile to act on another profile.`,
	RunE: runWatchlistList,
}

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the watchlist",
	RunE:  runWatchlistList,
}

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an item from the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatchlistRemove,
}

func init() {
	watchlistCmd.PersistentFlags().StringVar(&watchlistProfile, "profile", "", "profile name (default: active profile)")
	watchlistCmd.AddCommand(watchlistListCmd)
	watchlistCmd.AddCommand(watchlistRemoveCmd)
	rootCmd.AddCommand(watchlistCmd)
}

func (r *env) profileName() string {
	if watchlistProfile != "" {
		return watchlistProfile
	}
	return r.profiles.Name()
}

func runWatchlistList(cmd *cobra.Command, args []string) error {
	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	profile := rt.profileName()
	items, err := rt.client.Watchlist(cmdContext(cmd), profile)
	if err != nil {
		return requireLogin(fmt.Errorf("failed to load watchlist: %w", err))
	}

	if !JSONOutput() && len(items) == 0 {
		fmt.Printf("Watchlist for %s is empty\n", profile)
		return nil
	}
	return showMedia("Watchlist: "+profile, items, "")
}

func runWatchlistRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id: %s", args[0])
	}

	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	profile := rt.profileName()
	if err := rt.client.RemoveFromWatchlist(cmdContext(cmd), id, profile); err != nil {
		return requireLogin(fmt.Errorf("failed to remove %d from watchlist: %w", id, err))
	}

	if JSONOutput() {
		return printJSON(map[string]any{"status": "removed", "id": id, "profile": profile})
	}
	fmt.Printf("✓ Removed %d from %s's watchlist\n", id, profile)
	return nil
}
