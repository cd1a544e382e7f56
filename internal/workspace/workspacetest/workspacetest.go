// Package workspacetest builds workspaces over in-memory stores for page
// and command tests.
package workspacetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"projector/internal/config"
	"projector/internal/deps"
	"projector/internal/routes"
	"projector/internal/storage"
	"projector/internal/workspace"
)

// Now is the frozen clock of every workspace built here.
var Now = time.Date(2025, 4, 16, 9, 0, 0, 0, time.Local)

// New loads a signed-in workspace over store. A nil store means a fresh
// memory store.
func New(t testing.TB, store storage.Store) *workspace.Workspace {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryStore()
	}
	cfg := &config.Config{
		DataDir:     t.TempDir(),
		Backend:     config.BackendMemory,
		DefaultView: routes.DashboardPath,
		LogLevel:    "info",
		ToastTTL:    "4s",
	}
	ws, err := workspace.Load(cfg, store, workspace.Options{
		Now:   deps.FixedClock(Now),
		NewID: deps.Sequence("id"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	_, err = ws.Session.Login("jane.doe@example.com", "")
	require.NoError(t, err)
	return ws
}

// Broken loads a workspace whose store starts failing writes once loaded.
func Broken(t testing.TB) (*workspace.Workspace, *storage.FaultyStore) {
	t.Helper()
	store := storage.NewFaultyStore(storage.NewMemoryStore())
	ws := New(t, store)
	store.Break()
	return ws, store
}

// Toasts returns the titles of the notifications still on screen.
func Toasts(ws *workspace.Workspace) []string {
	var out []string
	for _, t := range ws.Toasts.Active() {
		out = append(out, t.Title)
	}
	return out
}
