package notes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/tui/shared"
	"projector/internal/workspace/workspacetest"
)

func TestSubmitAddKeepsNewlines(t *testing.T) {
	ws := workspacetest.New(t, nil)
	m := New(ws)

	m.Update(shared.FormResultMsg{Tag: formAdd, Values: []string{`# Launch\n- email list`, "ideas"}})

	n, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "# Launch\n- email list", n.Text)
	assert.Equal(t, "ideas", n.Category)
	assert.Len(t, ws.Notes.List(), 4)
}

func TestEditFormRoundTrip(t *testing.T) {
	ws := workspacetest.New(t, nil)
	m := New(ws)
	n, ok := m.selected()
	require.True(t, ok)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	require.NotNil(t, m.form)
	m.Update(shared.FormResultMsg{Tag: formEdit, Values: []string{`line one\nline two`, n.Category}})

	got, err := ws.Notes.Get(n.ID)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got.Text)
}

func TestConfirmDeleteRemovesNote(t *testing.T) {
	ws := workspacetest.New(t, nil)
	m := New(ws)
	n, ok := m.selected()
	require.True(t, ok)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, m.confirm)
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Len(t, ws.Notes.List(), 2)
	for _, it := range m.items {
		assert.NotEqual(t, n.ID, it.ID)
	}
}

func TestFailedDeleteIsReported(t *testing.T) {
	ws, _ := workspacetest.Broken(t)
	m := New(ws)

	m.Update(shared.ConfirmationResultMsg{ID: "1", Confirmed: true})
	assert.Len(t, ws.Notes.List(), 3)
	assert.Contains(t, workspacetest.Toasts(ws), "Could not delete note")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.Contains(t, workspacetest.Toasts(ws), "Could not pin note")
}
