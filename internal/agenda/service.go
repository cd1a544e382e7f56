package agenda

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"projector/internal/dates"
	"projector/internal/deps"
	"projector/internal/events"
	"projector/internal/listview"
	"projector/internal/repo"
	"projector/internal/storage"
)

var (
	ErrNotFound      = errors.New("event not found")
	ErrMissingFields = errors.New("title, time and duration are required")
	ErrNoDate        = errors.New("no date selected")
	ErrInvalidTime   = errors.New("invalid time, use HH:MM")
)

// EventService defines the interface for agenda event operations.
type EventService interface {
	List() []Event
	Get(id string) (Event, error)
	Add(date dates.Date, form EventForm) (Event, error)
	Update(id string, form EventForm) (Event, error)
	Move(id string, date dates.Date) (Event, error)
	Delete(id string) error
	ForDate(date dates.Date) []Event
	Reload() error
}

type eventServiceImpl struct {
	mu     sync.RWMutex
	events []Event
	col    *repo.Collection[Event]
	d      deps.Deps
}

func NewEventService(d deps.Deps) (EventService, error) {
	d = d.Resolved()
	svc := &eventServiceImpl{d: d}
	svc.col = repo.NewCollection(d.Store, storage.KeyEvents, func() []Event {
		return defaultEvents(dates.Today(d.Now()))
	}, normalize)
	if err := svc.Reload(); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *eventServiceImpl) Reload() error {
	evs, err := s.col.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.events = evs
	s.mu.Unlock()
	return nil
}

func (s *eventServiceImpl) List() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

func (s *eventServiceImpl) index(id string) int {
	return slices.IndexFunc(s.events, func(e Event) bool { return e.ID == id })
}

func (s *eventServiceImpl) Get(id string) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.events[i], nil
	}
	return Event{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *eventServiceImpl) commit(next []Event) error {
	if err := s.col.Save(next); err != nil {
		return err
	}
	s.events = next
	return nil
}

// validate checks the required form fields and reports failures as
// destructive notifications.
func (s *eventServiceImpl) validate(form EventForm) error {
	if strings.TrimSpace(form.Title) == "" || strings.TrimSpace(form.Time) == "" || strings.TrimSpace(form.Duration) == "" {
		s.d.Bus.Warn("Missing Information", "Please fill in all required fields")
		return ErrMissingFields
	}
	if _, err := time.Parse("15:04", strings.TrimSpace(form.Time)); err != nil {
		s.d.Bus.Warn("Invalid Time", "Please use the HH:MM format")
		return ErrInvalidTime
	}
	return nil
}

func apply(e *Event, form EventForm) {
	e.Title = strings.TrimSpace(form.Title)
	e.Time = strings.TrimSpace(form.Time)
	e.Duration = strings.TrimSpace(form.Duration)
	e.Location = form.Location
	e.Participants = ParseParticipants(form.Participants)
	normalize(e)
}

func (s *eventServiceImpl) Add(date dates.Date, form EventForm) (Event, error) {
	if err := s.validate(form); err != nil {
		return Event{}, err
	}
	if date.IsZero() {
		s.d.Bus.Warn("No Date Selected", "Please select a date for the event")
		return Event{}, ErrNoDate
	}
	e := Event{ID: s.d.NewID(), Date: date}
	apply(&e, form)

	s.mu.Lock()
	err := s.commit(append(slices.Clone(s.events), e))
	s.mu.Unlock()
	if err != nil {
		return Event{}, err
	}
	s.d.Bus.Notify("Event Added", fmt.Sprintf("%s has been added to your agenda", e.Title))
	s.d.Bus.Publish(events.ActivityRecorded{Actor: s.d.Actor(), Action: "scheduled", Target: e.Title, Type: "meeting"})
	return e, nil
}

func (s *eventServiceImpl) mutate(id string, fn func(*Event)) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return Event{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := slices.Clone(s.events)
	fn(&next[i])
	if err := s.commit(next); err != nil {
		return Event{}, err
	}
	return next[i], nil
}

func (s *eventServiceImpl) Update(id string, form EventForm) (Event, error) {
	if err := s.validate(form); err != nil {
		return Event{}, err
	}
	e, err := s.mutate(id, func(e *Event) { apply(e, form) })
	if err != nil {
		return Event{}, err
	}
	s.d.Bus.Notify("Event Updated", fmt.Sprintf("%s has been updated", e.Title))
	return e, nil
}

// Move reschedules an event to another day.
func (s *eventServiceImpl) Move(id string, date dates.Date) (Event, error) {
	if date.IsZero() {
		return Event{}, ErrNoDate
	}
	e, err := s.mutate(id, func(e *Event) { e.Date = date })
	if err != nil {
		return Event{}, err
	}
	s.d.Bus.Notify("Event Updated", fmt.Sprintf("%s moved to %s", e.Title, date))
	return e, nil
}

func (s *eventServiceImpl) Delete(id string) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	title := s.events[i].Title
	err := s.commit(slices.Delete(slices.Clone(s.events), i, i+1))
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.d.Bus.Notify("Event Deleted", fmt.Sprintf("%s has been removed from your agenda", title))
	return nil
}

func (s *eventServiceImpl) ForDate(date dates.Date) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return OnDate(s.events, date)
}

// OnDate returns the events on date ordered by start time.
func OnDate(evs []Event, date dates.Date) []Event {
	return listview.Apply(evs, listview.Query[Event]{
		Filters: []listview.Predicate[Event]{func(e Event) bool { return e.Date == date }},
		Compare: func(a, b Event) int { return cmp.Compare(TimeValue(a.Time), TimeValue(b.Time)) },
	})
}
