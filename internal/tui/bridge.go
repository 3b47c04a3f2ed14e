package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tessro/heimdall/internal/core"
)

// Bridge carries queue and player state into the bubbletea program. It is
// the queue renderer and the player view. Both are called with their
// owner's lock held, so Bridge only records the latest state and never
// blocks; the program picks it up on its own goroutine.
type Bridge struct {
	mu         sync.Mutex
	snapshot   core.Snapshot
	nowPlaying core.NowPlaying

	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Render implements queue.Renderer.
func (b *Bridge) Render(s core.Snapshot) {
	b.mu.Lock()
	b.snapshot = s
	b.mu.Unlock()
	b.wake()
}

// ShowNowPlaying implements player.View.
func (b *Bridge) ShowNowPlaying(np core.NowPlaying) {
	b.mu.Lock()
	b.nowPlaying = np
	b.mu.Unlock()
	b.wake()
}

// State returns the latest recorded state.
func (b *Bridge) State() (core.Snapshot, core.NowPlaying) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot, b.nowPlaying
}

// Close releases anything waiting on the bridge.
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.done) })
}

// Coalesces: several updates before the program reads them wake it once.
func (b *Bridge) wake() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// wait blocks until the state changes and returns it as a stateMsg.
func (b *Bridge) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.signal:
		case <-b.done:
			return nil
		}
		snap, np := b.State()
		return stateMsg{snapshot: snap, nowPlaying: np}
	}
}
