package agenda

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/dates"
	"projector/internal/deps"
	"projector/internal/events"
	"projector/internal/storage"
)

var testNow = time.Date(2025, 4, 16, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store storage.Store) (EventService, *[]events.Notification) {
	t.Helper()
	bus := events.NewBus()
	var ns []events.Notification
	events.On(bus, func(n events.Notification) { ns = append(ns, n) })
	svc, err := NewEventService(deps.Deps{
		Store: store,
		Bus:   bus,
		Now:   deps.FixedClock(testNow),
		NewID: deps.Sequence("e"),
	})
	require.NoError(t, err)
	return svc, &ns
}

func TestDefaultsScheduledToday(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())
	today := dates.New(2025, time.April, 16)

	evs := svc.ForDate(today)
	require.Len(t, evs, 3)
	assert.Equal(t, []string{"Team Meeting", "Project Review", "Client Call"},
		[]string{evs[0].Title, evs[1].Title, evs[2].Title})
	assert.Empty(t, svc.ForDate(today.AddDays(1)))
}

func TestAddEvent(t *testing.T) {
	store := storage.NewMemoryStore()
	svc, ns := newTestService(t, store)
	day := dates.New(2025, time.April, 17)

	e, err := svc.Add(day, EventForm{Title: "Standup", Time: "09:00", Duration: "15 min", Participants: "Ann, , Bo "})
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, []string{"Ann", "Bo"}, e.Participants)
	require.Len(t, *ns, 1)
	assert.Equal(t, "Event Added", (*ns)[0].Title)
	assert.Equal(t, "Standup has been added to your agenda", (*ns)[0].Description)

	reloaded, _ := newTestService(t, store)
	got := reloaded.ForDate(day)
	require.Len(t, got, 1)
	assert.Equal(t, "Standup", got[0].Title)
}

func TestAddValidation(t *testing.T) {
	day := dates.New(2025, time.April, 17)
	tests := []struct {
		name  string
		date  dates.Date
		form  EventForm
		err   error
		title string
	}{
		{"missing title", day, EventForm{Time: "10:00", Duration: "1h"}, ErrMissingFields, "Missing Information"},
		{"blank duration", day, EventForm{Title: "x", Time: "10:00", Duration: "  "}, ErrMissingFields, "Missing Information"},
		{"bad time", day, EventForm{Title: "x", Time: "noon", Duration: "1h"}, ErrInvalidTime, "Invalid Time"},
		{"no date", dates.Date{}, EventForm{Title: "x", Time: "10:00", Duration: "1h"}, ErrNoDate, "No Date Selected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ns := newTestService(t, storage.NewMemoryStore())
			_, err := svc.Add(tt.date, tt.form)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
			require.Len(t, *ns, 1)
			assert.Equal(t, tt.title, (*ns)[0].Title)
			assert.Equal(t, events.VariantDestructive, (*ns)[0].Variant)
			assert.Len(t, svc.List(), 3)
		})
	}
}

func TestUpdateKeepsDate(t *testing.T) {
	svc, ns := newTestService(t, storage.NewMemoryStore())
	before, err := svc.Get("2")
	require.NoError(t, err)

	form := FormOf(before)
	form.Title = "Project Retro"
	form.Time = "08:15"
	e, err := svc.Update("2", form)
	require.NoError(t, err)
	assert.Equal(t, before.Date, e.Date)
	assert.Equal(t, before.Participants, e.Participants)
	assert.Equal(t, "Project Retro has been updated", (*ns)[0].Description)

	evs := svc.ForDate(before.Date)
	assert.Equal(t, "Project Retro", evs[0].Title)
}

func TestMoveAndDelete(t *testing.T) {
	svc, ns := newTestService(t, storage.NewMemoryStore())
	tomorrow := dates.New(2025, time.April, 17)

	_, err := svc.Move("3", tomorrow)
	require.NoError(t, err)
	assert.Len(t, svc.ForDate(tomorrow), 1)

	require.NoError(t, svc.Delete("3"))
	assert.Empty(t, svc.ForDate(tomorrow))
	assert.Equal(t, "Event Deleted", (*ns)[len(*ns)-1].Title)

	assert.ErrorIs(t, svc.Delete("3"), ErrNotFound)
	_, err = svc.Update("missing", EventForm{Title: "a", Time: "10:00", Duration: "1h"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimeValue(t *testing.T) {
	assert.Less(t, TimeValue("9:30"), TimeValue("10:00"))
	assert.Less(t, TimeValue("23:59"), TimeValue("bogus"))
}
