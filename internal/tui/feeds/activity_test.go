package feeds

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/tui/shared"
	"projector/internal/workspace/workspacetest"
)

func TestActivityClearAfterConfirm(t *testing.T) {
	ws := workspacetest.New(t, nil)
	a := NewActivity(ws)
	require.NotZero(t, a.count)

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	require.True(t, a.Capturing())
	cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	a.Update(cmd())

	assert.Zero(t, a.count)
	assert.Empty(t, ws.Activity.List())
}

func TestActivityFailedClearIsReported(t *testing.T) {
	ws, _ := workspacetest.Broken(t)
	a := NewActivity(ws)
	before := a.count

	a.Update(shared.ConfirmationResultMsg{ID: clearID, Confirmed: true})
	assert.Equal(t, before, a.count)
	assert.Contains(t, workspacetest.Toasts(ws), "Could not clear activity")
}
