// Package events is the in-process pub/sub used by feature services to
// announce storage changes, created tasks, activity and user-facing
// notifications.
package events

import (
	"slices"
	"sync"
)

type Kind string

const (
	KindStorageChanged Kind = "storage.changed"
	KindTaskCreated    Kind = "task.created"
	KindActivity       Kind = "activity.recorded"
	KindNotification   Kind = "notification"
)

type Event interface {
	Kind() Kind
}

// Variant distinguishes ordinary confirmations from destructive ones.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// StorageChanged is published after a persisted key was re-read because it
// changed outside this process.
type StorageChanged struct {
	Key string
}

type TaskCreated struct {
	TaskID string
	Title  string
}

type Actor struct {
	Name      string
	AvatarURL string
}

// ActivityRecorded describes something a user did, e.g. Action "created
// task" with Target the task title. Type is one of the activity item types.
type ActivityRecorded struct {
	Actor  Actor
	Action string
	Target string
	Type   string
}

type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

func (StorageChanged) Kind() Kind   { return KindStorageChanged }
func (TaskCreated) Kind() Kind      { return KindTaskCreated }
func (ActivityRecorded) Kind() Kind { return KindActivity }
func (Notification) Kind() Kind     { return KindNotification }

type Handler func(Event)

type subscription struct {
	id int
	h  Handler
}

// Bus delivers events synchronously to subscribers in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Kind][]subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Kind][]subscription)}
}

// Subscribe registers h for kind and returns a func that removes it.
func (b *Bus) Subscribe(kind Kind, h Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[kind] = append(b.subs[kind], subscription{id: id, h: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.subs[kind] = slices.DeleteFunc(b.subs[kind], func(s subscription) bool {
				return s.id == id
			})
		})
	}
}

// Publish calls every handler for e's kind. Handlers may publish or
// subscribe themselves; they see the subscriber set as of the Publish call.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := slices.Clone(b.subs[e.Kind()])
	b.mu.RUnlock()

	for _, s := range subs {
		s.h(e)
	}
}

// On subscribes a handler typed by payload.
func On[T Event](b *Bus, h func(T)) func() {
	var zero T
	return b.Subscribe(zero.Kind(), func(e Event) {
		if v, ok := e.(T); ok {
			h(v)
		}
	})
}

// Notify is shorthand for publishing a default-variant Notification.
func (b *Bus) Notify(title, description string) {
	b.Publish(Notification{Title: title, Description: description, Variant: VariantDefault})
}

// Warn publishes a destructive-variant Notification.
func (b *Bus) Warn(title, description string) {
	b.Publish(Notification{Title: title, Description: description, Variant: VariantDestructive})
}
