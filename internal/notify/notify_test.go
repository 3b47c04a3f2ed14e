package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestCenter() (*Center, *clock) {
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewCenter(0)
	c.now = clk.now
	return c, clk
}

func TestNotifyDelivers(t *testing.T) {
	c, _ := newTestCenter()
	id, ch := c.Subscribe(4)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, c.SubscriberCount())

	c.Notify("Added to queue", Success)

	select {
	case toast := <-ch:
		assert.Equal(t, "Added to queue", toast.Message)
		assert.Equal(t, Success, toast.Kind)
		assert.Equal(t, DefaultTTL, toast.Expires.Sub(toast.Created))
	default:
		t.Fatal("expected toast")
	}
}

func TestNotifyNeverBlocks(t *testing.T) {
	c, _ := newTestCenter()
	_, ch := c.Subscribe(1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			c.Notify("x", Info)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full subscriber")
	}
	assert.Len(t, ch, 1)
}

func TestToastsExpire(t *testing.T) {
	c, clk := newTestCenter()

	c.Notify("first", Info)
	clk.advance(time.Second)
	c.Notify("second", Warning)

	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].Message)

	clk.advance(time.Second)
	active = c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "second", active[0].Message)

	clk.advance(time.Second)
	assert.Empty(t, c.Active())
}

func TestDismiss(t *testing.T) {
	c, _ := newTestCenter()
	c.Notify("hello", Info)
	active := c.Active()
	require.Len(t, active, 1)

	c.Dismiss(active[0].ID)
	assert.Empty(t, c.Active())
}

func TestUnsubscribeAndClose(t *testing.T) {
	c, _ := newTestCenter()
	id, ch := c.Subscribe(1)
	_, ch2 := c.Subscribe(1)

	c.Unsubscribe(id)
	_, ok := <-ch
	assert.False(t, ok)

	c.Close()
	_, ok = <-ch2
	assert.False(t, ok)
	assert.Equal(t, 0, c.SubscriberCount())

	// Notifications after close are dropped.
	assert.NotPanics(t, func() { c.Notify("late", Error) })
	assert.Empty(t, c.Active())
}

func TestNotifierFunc(t *testing.T) {
	var got []Kind
	n := NotifierFunc(func(_ string, k Kind) { got = append(got, k) })
	n.Notify("a", Success)
	n.Notify("b", Warning)
	assert.Equal(t, []Kind{Success, Warning}, got)

	assert.NotPanics(t, func() { Nop.Notify("x", Info) })
}
