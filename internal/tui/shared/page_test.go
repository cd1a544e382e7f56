package shared

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	opts := []string{"a", "b", "c"}
	assert.Equal(t, "b", Next(opts, "a"))
	assert.Equal(t, "a", Next(opts, "c"))
	assert.Equal(t, "a", Next(opts, "zzz"))
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		key    string
		cursor int
		want   int
		ok     bool
	}{
		{"j", 0, 1, true},
		{"down", 4, 4, true},
		{"k", 0, 0, true},
		{"G", 1, 4, true},
		{"g", 3, 0, true},
		{"x", 2, 2, false},
	}
	for _, tt := range tests {
		got, ok := MoveCursor(tt.key, tt.cursor, 5)
		assert.Equal(t, tt.want, got, tt.key)
		assert.Equal(t, tt.ok, ok, tt.key)
	}
	got, _ := MoveCursor("j", 0, 0)
	assert.Equal(t, 0, got)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func result(t *testing.T, cmd tea.Cmd) FormResultMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(FormResultMsg)
	require.True(t, ok)
	return msg
}

func TestFormSubmit(t *testing.T) {
	f := NewForm("t", "Test",
		Field{Label: "Name", Validate: Required("name")},
		Field{Label: "Size", Options: []string{"S", "M", "L"}},
	)

	cmd := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Equal(t, "name is required", f.Error)

	f.Update(runes("widget"))
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f.Update(tea.KeyMsg{Type: tea.KeyRight})
	f.Update(tea.KeyMsg{Type: tea.KeyRight})
	f.Update(runes("x"))

	res := result(t, f.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "t", res.Tag)
	assert.False(t, res.Cancelled)
	assert.Equal(t, []string{"widget", "L"}, res.Values)
}

func TestFormCancel(t *testing.T) {
	f := NewForm("t", "Test", Field{Label: "Name", Value: "keep"})
	res := result(t, f.Update(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.True(t, res.Cancelled)
	assert.Nil(t, res.Values)
}

func TestOptionalDate(t *testing.T) {
	assert.NoError(t, OptionalDate(""))
	assert.NoError(t, OptionalDate("2025-04-16"))
	assert.Error(t, OptionalDate("16/04/2025"))
}

func TestConfirmationModal(t *testing.T) {
	m := NewConfirmationModal("id-1", "Delete?", "")
	msg := m.Update(runes("y"))().(ConfirmationResultMsg)
	assert.Equal(t, ConfirmationResultMsg{ID: "id-1", Confirmed: true}, msg)

	msg = m.Update(tea.KeyMsg{Type: tea.KeyEsc})().(ConfirmationResultMsg)
	assert.False(t, msg.Confirmed)
}
