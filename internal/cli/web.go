package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/browser"
	herrors "github.com/tessro/heimdall/internal/errors"
)

var webWait time.Duration

var webCmd = &cobra.Command{
	Use:   "web [path]",
	Short: "Open the Heimdall web app in a browser",
	Long: `Wait for the backend to answer, then open it in the default browser.

Examples:
  heimdall web
  heimdall web /details/movie/603 --wait 30s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeb,
}

func init() {
	webCmd.Flags().DurationVarP(&webWait, "wait", "w", 10*time.Second, "how long to wait for the backend")
	rootCmd.AddCommand(webCmd)
}

func runWeb(cmd *cobra.Command, args []string) error {
	base := cfg.API.BaseURL
	url := base
	if len(args) > 0 {
		url += args[0]
	}

	ctx, cancel := context.WithTimeout(cmdContext(cmd), webWait)
	defer cancel()

	if !JSONOutput() {
		fmt.Printf("Waiting for %s...\n", base)
	}
	if err := browser.WaitForServer(ctx, base, 500*time.Millisecond); err != nil {
		return fmt.Errorf("%w: %w", herrors.ErrNetworkError, err)
	}

	if err := browser.Open(url); err != nil {
		fmt.Printf("Could not open browser automatically.\nOpen this URL: %s\n", url)
		return nil
	}

	if JSONOutput() {
		return printJSON(map[string]string{"status": "opened", "url": url})
	}
	fmt.Printf("Opened %s\n", url)
	return nil
}
