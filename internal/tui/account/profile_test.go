package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/workspace/workspacetest"
)

func TestProfileEditSubmit(t *testing.T) {
	ws := workspacetest.New(t, nil)
	p := NewProfile(ws)

	cmd := p.Update(shared.FormResultMsg{Tag: formProfile, Values: []string{"Jane Q. Doe", "jane.q@example.com"}})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.SessionChangedMsg{}, cmd())

	u, ok := ws.Session.Current()
	require.True(t, ok)
	assert.Equal(t, "Jane Q. Doe", u.Name)
	assert.Equal(t, "jane.q@example.com", u.Email)
}

func TestProfileEditRejectsBadEmail(t *testing.T) {
	ws := workspacetest.New(t, nil)
	p := NewProfile(ws)

	cmd := p.Update(shared.FormResultMsg{Tag: formProfile, Values: []string{"Jane", "Jane <jane@example.com>"}})
	assert.Nil(t, cmd)
	assert.Contains(t, p.err, "invalid email")
	u, _ := ws.Session.Current()
	assert.Equal(t, "jane.doe@example.com", u.Email)
}

func TestLogoutFailureKeepsSession(t *testing.T) {
	ws, _ := workspacetest.Broken(t)
	p := NewProfile(ws)

	cmd := p.Update(shared.ConfirmationResultMsg{ID: logoutID, Confirmed: true})
	assert.Nil(t, cmd)
	assert.True(t, ws.Session.Authenticated())
	assert.Equal(t, "storage: write failed", p.err)
}
