package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishInSubscriptionOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.Subscribe(KindNotification, func(e Event) { got = append(got, "first:"+e.(Notification).Title) })
	b.Subscribe(KindNotification, func(e Event) { got = append(got, "second:"+e.(Notification).Title) })
	b.Subscribe(KindTaskCreated, func(e Event) { got = append(got, "task") })

	b.Notify("Goal Added", "")

	assert.Equal(t, []string{"first:Goal Added", "second:Goal Added"}, got)
}

func TestUnsubscribe(t *testing.T) {
	b := NewBus()
	count := 0
	cancel := On(b, func(TaskCreated) { count++ })

	b.Publish(TaskCreated{TaskID: "1"})
	cancel()
	cancel()
	b.Publish(TaskCreated{TaskID: "2"})

	assert.Equal(t, 1, count)
}

func TestOnIsTyped(t *testing.T) {
	b := NewBus()
	var got []Notification
	On(b, func(n Notification) { got = append(got, n) })

	b.Warn("Goal Deleted", "x")
	b.Publish(StorageChanged{Key: "userGoals"})

	assert.Equal(t, []Notification{{Title: "Goal Deleted", Description: "x", Variant: VariantDestructive}}, got)
}

func TestHandlerMayPublish(t *testing.T) {
	b := NewBus()
	var titles []string
	On(b, func(a ActivityRecorded) { b.Notify("activity", a.Action) })
	On(b, func(n Notification) { titles = append(titles, n.Description) })

	b.Publish(ActivityRecorded{Action: "created task"})

	assert.Equal(t, []string{"created task"}, titles)
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var b *Bus
	b.Publish(StorageChanged{Key: "tasks"})
}

func TestConcurrentPublish(t *testing.T) {
	b := NewBus()
	var mu sync.Mutex
	n := 0
	On(b, func(StorageChanged) {
		mu.Lock()
		n++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(StorageChanged{Key: "tasks"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, n)
}
