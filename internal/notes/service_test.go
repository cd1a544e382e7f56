package notes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/deps"
	"projector/internal/events"
	"projector/internal/storage"
)

var testNow = time.Date(2025, 4, 16, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, store storage.Store) (NoteService, *[]string) {
	t.Helper()
	bus := events.NewBus()
	var titles []string
	events.On(bus, func(n events.Notification) { titles = append(titles, n.Title) })
	svc, err := NewNoteService(deps.Deps{Store: store, Bus: bus, Now: deps.FixedClock(testNow), NewID: deps.Sequence("n")})
	require.NoError(t, err)
	return svc, &titles
}

func noteIDs(notes []Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestEmptySearchAndAllCategoryReturnFullList(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())

	for _, f := range []Filter{{}, {Search: "", Category: "all"}} {
		got := svc.Query(f)
		assert.ElementsMatch(t, noteIDs(svc.List()), noteIDs(got))
		assert.Len(t, got, 3)
	}
}

func TestQuerySearchAndCategory(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())

	assert.Equal(t, []string{"2"}, noteIDs(svc.Query(Filter{Search: "MEETING"})))
	assert.Equal(t, []string{"3"}, noteIDs(svc.Query(Filter{Category: "personal"})))
	assert.Empty(t, svc.Query(Filter{Search: "meeting", Category: "work"}))
}

func TestQueryPinnedFirstThenNewest(t *testing.T) {
	notes := []Note{
		{ID: "old", CreatedAt: testNow.Add(-time.Hour)},
		{ID: "pinned-old", Pinned: true, CreatedAt: testNow.Add(-3 * time.Hour)},
		{ID: "new", CreatedAt: testNow},
		{ID: "pinned-new", Pinned: true, CreatedAt: testNow.Add(-2 * time.Hour)},
	}
	got := Apply(notes, Filter{})
	assert.Equal(t, []string{"pinned-new", "pinned-old", "new", "old"}, noteIDs(got))
	assert.Equal(t, "old", notes[0].ID)
}

func TestAddUpdatePinDelete(t *testing.T) {
	store := storage.NewMemoryStore()
	svc, titles := newTestService(t, store)

	n, err := svc.Add("  Sketch onboarding flow ", "")
	require.NoError(t, err)
	assert.Equal(t, "Sketch onboarding flow", n.Text)
	assert.Equal(t, DefaultCategory, n.Category)

	_, err = svc.Add("", "work")
	assert.ErrorIs(t, err, ErrEmptyText)

	n, err = svc.Update(n.ID, "Sketch onboarding flow v2", "ideas")
	require.NoError(t, err)
	assert.Equal(t, "ideas", n.Category)

	n, err = svc.TogglePin(n.ID)
	require.NoError(t, err)
	assert.True(t, n.Pinned)

	require.NoError(t, svc.Delete(n.ID))
	assert.ErrorIs(t, svc.Delete(n.ID), ErrNotFound)

	assert.Equal(t, []string{"Note Added", "Note Updated", "Note Deleted"}, *titles)

	raw, err := store.Get(storage.KeyNotes)
	require.NoError(t, err)
	var stored []Note
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Len(t, stored, 3)
}

func TestCategories(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())
	assert.Equal(t, []string{"work", "general", "personal"}, svc.Categories())
}

func TestImportMergesByID(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemoryStore())

	added, updated, err := svc.Import([]Note{
		{ID: "1", Text: "Update wireframes (v2)", Category: "work", Pinned: true, CreatedAt: testNow},
		{Text: "Fresh idea", Category: "ideas"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, updated)

	n, err := svc.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Update wireframes (v2)", n.Text)
	assert.Len(t, svc.List(), 4)
}
