package wizard

import (
	"os"

	"golang.org/x/term"

	"github.com/tessro/heimdall/internal/core"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled    bool
	searchFunc SearchFunc
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// SetSearchFunc sets the search function for the search wizard.
func (i *Interactive) SetSearchFunc(fn SearchFunc) {
	i.searchFunc = fn
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptSearch launches the search wizard if interactive mode is available.
// Returns the selected track, or nil if cancelled or not interactive.
func (i *Interactive) PromptSearch() (*core.Track, error) {
	if !i.CanInteract() || i.searchFunc == nil {
		return nil, nil
	}
	return RunSearch(i.searchFunc)
}

// PromptMedia launches the media picker if interactive mode is available.
// Returns the selected item, or nil if cancelled or not interactive.
func (i *Interactive) PromptMedia(title string, items []core.MediaItem) (*core.MediaItem, error) {
	if !i.CanInteract() || len(items) == 0 {
		return nil, nil
	}
	return RunMediaPicker(title, items)
}

// NeedsQuery returns true if a query argument is required but missing.
func NeedsQuery(args []string) bool {
	return len(args) == 0
}
