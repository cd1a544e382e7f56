package notify

import (
	"slices"
	"sync"
	"time"

	"projector/internal/events"
)

const maxHistory = 50

type Toast struct {
	ID          int
	Title       string
	Description string
	Variant     events.Variant
	CreatedAt   time.Time
}

func (t Toast) Destructive() bool { return t.Variant == events.VariantDestructive }

// Center collects Notification events into a bounded toast history.
type Center struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
	ttl    time.Duration
	now    func() time.Time
	cancel func()
}

func NewCenter(bus *events.Bus, ttl time.Duration) *Center {
	c := &Center{ttl: ttl, now: time.Now}
	c.cancel = events.On(bus, c.push)
	return c
}

// SetClock replaces the time source.
func (c *Center) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *Center) push(n events.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	variant := n.Variant
	if variant == "" {
		variant = events.VariantDefault
	}
	c.toasts = append(c.toasts, Toast{
		ID:          c.nextID,
		Title:       n.Title,
		Description: n.Description,
		Variant:     variant,
		CreatedAt:   c.now(),
	})
	if len(c.toasts) > maxHistory {
		c.toasts = slices.Clone(c.toasts[len(c.toasts)-maxHistory:])
	}
}

// Active returns toasts younger than the TTL, oldest first.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	var out []Toast
	for _, t := range c.toasts {
		if now.Sub(t.CreatedAt) < c.ttl {
			out = append(out, t)
		}
	}
	return out
}

// History returns every retained toast, oldest first.
func (c *Center) History() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.toasts)
}

func (c *Center) Latest() (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.toasts) == 0 {
		return Toast{}, false
	}
	return c.toasts[len(c.toasts)-1], true
}

func (c *Center) Dismiss(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = slices.DeleteFunc(c.toasts, func(t Toast) bool { return t.ID == id })
}

// Close stops listening on the bus.
func (c *Center) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}
