// Package notify delivers transient, auto-dismissing user notifications.
package notify

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind selects how a notification is styled.
type Kind string

const (
	Success Kind = "success"
	Warning Kind = "warning"
	Info    Kind = "info"
	Error   Kind = "error"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 2 * time.Second

// Notifier accepts fire-and-forget notifications.
type Notifier interface {
	Notify(message string, kind Kind)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(message string, kind Kind)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string, kind Kind) { f(message, kind) }

// Nop is a Notifier that drops everything.
var Nop Notifier = NotifierFunc(func(string, Kind) {})

// Toast is a single notification.
type Toast struct {
	ID      string
	Message string
	Kind    Kind
	Created time.Time
	Expires time.Time
}

// Expired reports whether the toast should no longer be shown at t.
func (t Toast) Expired(at time.Time) bool {
	return !at.Before(t.Expires)
}

type subscription struct {
	id string
	ch chan Toast
}

// Center keeps active toasts and fans them out to subscribers.
type Center struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.RWMutex
	active map[string]Toast
	subs   map[string]*subscription
	closed bool
}

// NewCenter creates a notification center. A non-positive ttl uses DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:    ttl,
		now:    time.Now,
		active: make(map[string]Toast),
		subs:   make(map[string]*subscription),
	}
}

// TTL returns how long toasts stay active.
func (c *Center) TTL() time.Duration {
	return c.ttl
}

// Notify records a toast and delivers it to every subscriber. It never
// blocks: subscribers with a full buffer miss the toast.
func (c *Center) Notify(message string, kind Kind) {
	now := c.now()
	toast := Toast{
		ID:      uuid.New().String(),
		Message: message,
		Kind:    kind,
		Created: now,
		Expires: now.Add(c.ttl),
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.pruneLocked(now)
	c.active[toast.ID] = toast
	// Sends happen under the lock so Unsubscribe cannot close a channel
	// mid-send.
	for _, s := range c.subs {
		select {
		case s.ch <- toast:
		default:
		}
	}
	c.mu.Unlock()
}

// Subscribe registers a subscriber and returns its id and channel.
func (c *Center) Subscribe(buffer int) (string, <-chan Toast) {
	if buffer < 1 {
		buffer = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.New().String()
	s := &subscription{id: id, ch: make(chan Toast, buffer)}
	if c.closed {
		close(s.ch)
		return id, s.ch
	}
	c.subs[id] = s
	return id, s.ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (c *Center) Unsubscribe(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.subs[id]; ok {
		delete(c.subs, id)
		close(s.ch)
	}
}

// SubscriberCount returns the number of active subscribers.
func (c *Center) SubscriberCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs)
}

// Active returns the unexpired toasts, oldest first.
func (c *Center) Active() []Toast {
	now := c.now()
	c.mu.Lock()
	c.pruneLocked(now)
	out := make([]Toast, 0, len(c.active))
	for _, t := range c.active {
		out = append(out, t)
	}
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Created.Before(out[j].Created)
	})
	return out
}

// Dismiss removes a toast before it expires.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, id)
}

// Close drops all toasts and closes every subscriber channel.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, s := range c.subs {
		close(s.ch)
		delete(c.subs, id)
	}
	c.active = make(map[string]Toast)
}

func (c *Center) pruneLocked(now time.Time) {
	for id, t := range c.active {
		if t.Expired(now) {
			delete(c.active, id)
		}
	}
}

var _ Notifier = (*Center)(nil)
