// Package queue manages the music play queue and the current track.
package queue

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tessro/heimdall/internal/core"
	"github.com/tessro/heimdall/internal/logging"
	"github.com/tessro/heimdall/internal/notify"
)

// Store persists the queue. Implementations handle their own failures.
type Store interface {
	Save(core.Queue)
	Load() core.Queue
}

// Renderer receives the new state after every mutation. It is called while
// the manager lock is held and must not call back into the Manager.
type Renderer interface {
	Render(core.Snapshot)
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(core.Snapshot)

// Render implements Renderer.
func (f RendererFunc) Render(s core.Snapshot) { f(s) }

// Option configures a Manager.
type Option func(*Manager)

// WithRenderer sets the renderer.
func WithRenderer(r Renderer) Option {
	return func(m *Manager) { m.renderer = r }
}

// WithNotifier sets the notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = logging.With(l, "component", "queue") }
}

// Manager owns the queue and the current track. All operations are
// serialized; each mutation persists and renders before returning.
type Manager struct {
	mu       sync.Mutex
	queue    core.Queue
	current  *core.Track
	store    Store
	renderer Renderer
	notifier notify.Notifier
	logger   *log.Logger
}

// New creates a manager with an empty queue. Call Restore to load the
// persisted queue.
func New(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		renderer: RendererFunc(func(core.Snapshot) {}),
		notifier: notify.Nop,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore replaces the queue with the persisted one and renders it.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		m.queue = m.store.Load()
	}
	m.logger.Debug("restored queue", "tracks", m.queue.Len())
	m.renderLocked()
}

// Enqueue appends a track. A track already in the queue is rejected with a
// warning and false is returned.
func (m *Manager) Enqueue(t core.Track) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.queue.Contains(t) {
		m.notifier.Notify("Already in queue", notify.Warning)
		return false
	}

	m.queue.Tracks = append(m.queue.Tracks, t)
	m.logger.Debug("enqueued", "key", t.Key(), "len", m.queue.Len())
	m.commitLocked()
	m.notifier.Notify("Added to queue", notify.Success)
	return true
}

// DequeueAt removes the entry at index. Out-of-range indexes are ignored
// and false is returned.
func (m *Manager) DequeueAt(index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= m.queue.Len() {
		return false
	}

	m.queue.Tracks = append(m.queue.Tracks[:index:index], m.queue.Tracks[index+1:]...)
	m.commitLocked()
	return true
}

// Clear empties the queue and resets the current track. Clearing an empty
// queue does nothing and returns false.
func (m *Manager) Clear() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.queue.IsEmpty() {
		return false
	}

	m.queue = core.Queue{}
	m.current = nil
	m.commitLocked()
	m.notifier.Notify("Queue cleared", notify.Info)
	return true
}

// Advance removes the head of the queue and makes it the current track. On
// an empty queue nothing changes and false is returned.
func (m *Manager) Advance() (core.Track, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.advanceLocked()
}

// PlayFrom drops every entry before index and then advances, so the entry
// at index becomes current. Out-of-range indexes are ignored.
func (m *Manager) PlayFrom(index int) (core.Track, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= m.queue.Len() {
		return core.Track{}, false
	}

	m.queue.Tracks = append([]core.Track(nil), m.queue.Tracks[index:]...)
	return m.advanceLocked()
}

func (m *Manager) advanceLocked() (core.Track, bool) {
	if m.queue.IsEmpty() {
		return core.Track{}, false
	}

	next := m.queue.Tracks[0]
	m.queue.Tracks = append([]core.Track(nil), m.queue.Tracks[1:]...)
	m.current = &next
	m.logger.Debug("advanced", "key", next.Key(), "remaining", m.queue.Len())
	m.commitLocked()
	return next, true
}

// SetCurrent marks t as the playing track.
func (m *Manager) SetCurrent(t core.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = &t
	m.renderLocked()
}

// ClearCurrent forgets the playing track.
func (m *Manager) ClearCurrent() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return
	}
	m.current = nil
	m.renderLocked()
}

// Current returns the playing track, if any.
func (m *Manager) Current() (core.Track, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return core.Track{}, false
	}
	return *m.current, true
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() core.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Len returns the number of queued tracks.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len()
}

func (m *Manager) snapshotLocked() core.Snapshot {
	s := core.Snapshot{Queue: m.queue.Clone()}
	if m.current != nil {
		cur := *m.current
		s.Current = &cur
	}
	return s
}

// commitLocked persists the queue and renders.
func (m *Manager) commitLocked() {
	if m.store != nil {
		m.store.Save(m.queue.Clone())
	}
	m.renderLocked()
}

func (m *Manager) renderLocked() {
	m.renderer.Render(m.snapshotLocked())
}
