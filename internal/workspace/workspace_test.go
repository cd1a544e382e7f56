package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/config"
	"projector/internal/deps"
	"projector/internal/events"
	"projector/internal/goals"
	"projector/internal/storage"
	"projector/internal/tasks"
	"projector/internal/work"
)

var testNow = time.Date(2025, 4, 16, 9, 0, 0, 0, time.Local)

func testConfig(dir, backend string) *config.Config {
	return &config.Config{
		DataDir:     dir,
		Backend:     backend,
		DefaultView: "/dashboard",
		LogLevel:    "info",
		ToastTTL:    "4s",
	}
}

func loadMemory(t *testing.T) *Workspace {
	t.Helper()
	ws, err := Load(testConfig(t.TempDir(), config.BackendMemory), storage.NewMemoryStore(), Options{
		Now:   deps.FixedClock(testNow),
		NewID: deps.Sequence("id"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func TestLoadSeedsEveryKey(t *testing.T) {
	ws := loadMemory(t)

	keys, err := ws.Store.Keys()
	require.NoError(t, err)
	for _, k := range []string{
		storage.KeyTasks, storage.KeyTrending, storage.KeyWorkItems, storage.KeyGoals,
		storage.KeyNotes, storage.KeyEvents, storage.KeyActivity,
	} {
		assert.Contains(t, keys, k)
	}
	assert.NotContains(t, keys, storage.KeyUser)
	assert.Len(t, ws.Goals.List(), 4)
	assert.Len(t, ws.Events.ForDate(ws.Today()), 3)
}

func TestActivityCreditsSignedInUser(t *testing.T) {
	ws := loadMemory(t)
	_, err := ws.Session.Login("niranjan@example.com", "Niranjan")
	require.NoError(t, err)

	_, err = ws.Tasks.Add(tasks.NewTask{Title: "Ship it"})
	require.NoError(t, err)

	latest := ws.Activity.List()[0]
	assert.Equal(t, "Niranjan", latest.User.Name)
	assert.Equal(t, `Created task: "Ship it"`, latest.Description)

	toast, ok := ws.Toasts.Latest()
	require.True(t, ok)
	assert.Equal(t, "Task created", toast.Title)
}

func TestReloadPicksUpExternalWrite(t *testing.T) {
	ws := loadMemory(t)
	var changed []string
	events.On(ws.Bus, func(e events.StorageChanged) { changed = append(changed, e.Key) })

	require.NoError(t, ws.Store.Put(storage.KeyGoals, []byte(`[{"id":"x","text":"From elsewhere","priority":"low"}]`)))
	ws.Reload(storage.KeyGoals)
	ws.Reload("unrelated")

	gs := ws.Goals.List()
	require.Len(t, gs, 1)
	assert.Equal(t, "From elsewhere", gs[0].Text)
	assert.Equal(t, goals.DefaultCategory, gs[0].Category)
	assert.Equal(t, []string{storage.KeyGoals}, changed)
}

func TestFileBackendWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, config.BackendFile)
	ws, err := Open(cfg)
	require.NoError(t, err)
	defer ws.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, ws.Start(ctx))
	assert.Error(t, ws.Start(ctx))

	other, err := storage.OpenFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, other.Put(storage.KeyNotes, []byte(`[{"id":"n1","text":"# Shared","category":"work"}]`)))

	require.Eventually(t, func() bool {
		ns := ws.Notes.List()
		return len(ns) == 1 && ns[0].ID == "n1"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestOpenSQLite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	ws, err := Open(testConfig(dir, config.BackendSQLite))
	require.NoError(t, err)

	_, err = ws.Work.Add(work.NewItem{Title: "Persisted"})
	require.NoError(t, err)
	require.NoError(t, ws.Close())

	_, err = os.Stat(filepath.Join(dir, "projector.db"))
	require.NoError(t, err)

	ws, err = Open(testConfig(dir, config.BackendSQLite))
	require.NoError(t, err)
	defer ws.Close()
	assert.Len(t, ws.Work.List(), 4)
}

func TestBuildSpaces(t *testing.T) {
	spaces := BuildSpaces([]work.Item{
		{Path: "Publications / Shots / Dribbble"},
		{Path: "Internal / Events / Design"},
		{Path: "publications / Shots / Behance"},
		{Path: "Publications / Articles"},
		{Path: "  "},
	})
	require.Len(t, spaces, 2)
	assert.Equal(t, Space{Name: "Publications", Sections: []string{"Shots", "Articles"}, Items: 3}, spaces[0])
	assert.Equal(t, Space{Name: "Internal", Sections: []string{"Events"}, Items: 1}, spaces[1])
}

func TestSummary(t *testing.T) {
	ws := loadMemory(t)
	s := ws.Summary()
	assert.Equal(t, 4, s.Goals)
	assert.Equal(t, 3, s.EventsToday)
}
