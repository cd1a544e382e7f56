package goals

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goalspkg "projector/internal/goals"
	"projector/internal/tui/shared"
	"projector/internal/workspace/workspacetest"
)

func press(m *Model, s string) tea.Cmd {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestSubmitAddFocusesNewGoal(t *testing.T) {
	ws := workspacetest.New(t, nil)
	m := New(ws)

	press(m, "n")
	require.True(t, m.Capturing())

	cmd := m.Update(shared.FormResultMsg{Tag: formAdd, Values: []string{"Ship release", "high", "2025-04-20", "work"}})
	assert.Nil(t, cmd)
	assert.False(t, m.Capturing())
	require.Len(t, ws.Goals.List(), 5)

	g, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "Ship release", g.Text)
	assert.Equal(t, goalspkg.PriorityHigh, g.Priority)
	assert.Equal(t, "2025-04-20", g.DueDate.String())
	assert.Contains(t, workspacetest.Toasts(ws), "Goal Added")
}

func TestConfirmDeleteRemovesGoal(t *testing.T) {
	ws := workspacetest.New(t, nil)
	m := New(ws)
	g, ok := m.selected()
	require.True(t, ok)

	press(m, "d")
	require.NotNil(t, m.confirm)
	cmd := m.confirm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Nil(t, m.confirm)
	_, err := ws.Goals.Get(g.ID)
	assert.ErrorIs(t, err, goalspkg.ErrNotFound)
	assert.Len(t, m.items, 3)
}

func TestFailedSavesAreReported(t *testing.T) {
	ws, _ := workspacetest.Broken(t)
	m := New(ws)
	g, ok := m.selected()
	require.True(t, ok)

	m.Update(shared.ConfirmationResultMsg{ID: g.ID, Confirmed: true})
	assert.Len(t, ws.Goals.List(), 4)
	assert.Contains(t, workspacetest.Toasts(ws), "Could not delete goal")

	press(m, "x")
	got, err := ws.Goals.Get(g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Completed, got.Completed)
	assert.Contains(t, workspacetest.Toasts(ws), "Could not update goal")

	m.Update(shared.FormResultMsg{Tag: formAdd, Values: []string{"Ship", "low", "", "work"}})
	assert.Len(t, ws.Goals.List(), 4)
	assert.Contains(t, workspacetest.Toasts(ws), "Could not add goal")
}
