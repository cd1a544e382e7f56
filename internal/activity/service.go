// Package activity keeps the feed of recent actions across the app.
package activity

import (
	"slices"
	"sync"
	"time"

	"projector/internal/deps"
	"projector/internal/events"
	"projector/internal/listview"
	"projector/internal/logs"
	"projector/internal/repo"
	"projector/internal/storage"
)

// ActivityService records ActivityRecorded events published on the bus.
type ActivityService interface {
	List() []Item
	Query(typ string) []Item
	Grouped(typ string, now time.Time) []listview.Group[Item]
	Record(e events.ActivityRecorded) (Item, error)
	Clear() error
	Reload() error
	Close()
}

type activityServiceImpl struct {
	mu          sync.RWMutex
	items       []Item
	col         *repo.Collection[Item]
	d           deps.Deps
	unsubscribe func()
}

func NewActivityService(d deps.Deps) (ActivityService, error) {
	d = d.Resolved()
	svc := &activityServiceImpl{d: d}
	svc.col = repo.NewCollection(d.Store, storage.KeyActivity, func() []Item {
		return defaultItems(d.Now())
	}, nil)
	if err := svc.Reload(); err != nil {
		return nil, err
	}
	svc.unsubscribe = events.On(d.Bus, func(e events.ActivityRecorded) {
		if _, err := svc.Record(e); err != nil {
			logs.Logger.Warnw("failed to record activity", "action", e.Action, "error", err)
		}
	})
	return svc, nil
}

func (s *activityServiceImpl) Reload() error {
	items, err := s.col.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *activityServiceImpl) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Record prepends an item built from e, dropping the oldest past the cap.
func (s *activityServiceImpl) Record(e events.ActivityRecorded) (Item, error) {
	item := FromEvent(s.d.NewID(), e, s.d.Now())

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]Item{item}, s.items...)
	if len(next) > maxItems {
		next = next[:maxItems]
	}
	if err := s.col.Save(next); err != nil {
		return Item{}, err
	}
	s.items = next
	return item, nil
}

func (s *activityServiceImpl) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.col.Save([]Item{}); err != nil {
		return err
	}
	s.items = []Item{}
	return nil
}

func (s *activityServiceImpl) Query(typ string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.items, typ)
}

func (s *activityServiceImpl) Grouped(typ string, now time.Time) []listview.Group[Item] {
	return listview.GroupByDay(s.Query(typ), func(it Item) time.Time { return it.Timestamp }, now)
}

func (s *activityServiceImpl) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Filter keeps items of typ; "all" or "" keeps everything.
func Filter(items []Item, typ string) []Item {
	if listview.IsAll(typ) {
		return slices.Clone(items)
	}
	return listview.Filter(items, func(it Item) bool { return it.Type == typ })
}
