package work

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/deps"
	"projector/internal/events"
	"projector/internal/storage"
)

func newTestService(t *testing.T) (WorkService, *[]string) {
	t.Helper()
	bus := events.NewBus()
	var titles []string
	events.On(bus, func(n events.Notification) { titles = append(titles, n.Title) })
	svc, err := NewWorkService(deps.Deps{
		Store: storage.NewMemoryStore(),
		Bus:   bus,
		Now:   deps.FixedClock(time.Date(2025, 7, 28, 10, 0, 0, 0, time.UTC)),
		NewID: deps.Sequence("w"),
	})
	require.NoError(t, err)
	return svc, &titles
}

func TestWorkLifecycle(t *testing.T) {
	svc, titles := newTestService(t)
	require.Len(t, svc.List(), 3)

	_, err := svc.Add(NewItem{Title: " "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	it, err := svc.Add(NewItem{Title: "Dribbble: Onboarding"})
	require.NoError(t, err)
	assert.Equal(t, DefaultPath, it.Path)
	assert.Equal(t, DefaultProgress, it.Progress)
	assert.Equal(t, "July 28", it.Date)

	it, err = svc.SetProgress(it.ID, "4/10")
	require.NoError(t, err)
	pct, ok := it.Percent()
	assert.True(t, ok)
	assert.Equal(t, 40, pct)

	_, err = svc.SetProgress(it.ID, "")
	assert.ErrorIs(t, err, ErrProgressRequired)

	it, err = svc.AddTag(it.ID, "urgent", "")
	require.NoError(t, err)
	assert.Equal(t, []Tag{{Text: "urgent", Color: DefaultTagColor}}, it.Tags)

	_, err = svc.AddTag(it.ID, "", "")
	assert.ErrorIs(t, err, ErrTagRequired)

	require.NoError(t, svc.Delete(it.ID))
	_, err = svc.Get(it.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"Work item created", "Progress updated", "Tag added", "Work item removed"}, *titles)
}

func TestProgressIsFreeText(t *testing.T) {
	svc, _ := newTestService(t)
	it, err := svc.SetProgress("1", "almost there")
	require.NoError(t, err)
	_, ok := it.Percent()
	assert.False(t, ok)
}

func TestAddTagDoesNotAliasPreviousSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	before := svc.List()
	_, err := svc.AddTag("3", "new", "")
	require.NoError(t, err)
	assert.Len(t, before[2].Tags, 1)
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		in          string
		done, total int
		wantErr     bool
	}{
		{"3/10", 3, 10, false},
		{" 2 / 14 ", 2, 14, false},
		{"0/0", 0, 0, false},
		{"3", 0, 0, true},
		{"a/b", 0, 0, true},
		{"-1/4", 0, 0, true},
	}
	for _, tt := range tests {
		done, total, err := ParseProgress(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.done, done)
		assert.Equal(t, tt.total, total)
	}

	_, ok := Item{Progress: "0/0"}.Percent()
	assert.False(t, ok)
}
