package tasks

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/routes"
	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/workspace/workspacetest"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestTaskListConfirmDelete(t *testing.T) {
	ws := workspacetest.New(t, nil)
	m := NewTaskList(ws)
	task, ok := m.selected()
	require.True(t, ok)

	m.Update(runes("d"))
	require.True(t, m.Capturing())
	cmd := m.Update(runes("y"))
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.False(t, m.Capturing())
	assert.Equal(t, 1, m.Count())
	_, err := ws.Tasks.Get(task.ID)
	assert.Error(t, err)
}

func TestTaskListFailedSavesAreReported(t *testing.T) {
	ws, _ := workspacetest.Broken(t)
	m := NewTaskList(ws)
	task, ok := m.selected()
	require.True(t, ok)

	m.Update(shared.ConfirmationResultMsg{ID: task.ID, Confirmed: true})
	assert.Equal(t, 2, m.Count())
	assert.Contains(t, workspacetest.Toasts(ws), "Could not delete task")

	m.Update(runes("+"))
	got, err := ws.Tasks.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Progress, got.Progress)
	assert.Contains(t, workspacetest.Toasts(ws), "Could not update progress")
}

func TestNewTaskPageSubmit(t *testing.T) {
	ws := workspacetest.New(t, nil)
	p := NewNewTaskPage(ws)

	cmd := p.Update(shared.FormResultMsg{Tag: formNewTask, Values: []string{"Landing page", "Hero section", "Dribbble", "High", "18:00:00"}})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.NavigateMsg{Path: routes.DashboardPath}, cmd())
	assert.Len(t, ws.Tasks.List(), 3)
}

func TestNewTaskPageStaysOnFailedSave(t *testing.T) {
	ws, _ := workspacetest.Broken(t)
	p := NewNewTaskPage(ws)

	cmd := p.Update(shared.FormResultMsg{Tag: formNewTask, Values: []string{"Landing page", "", "Dribbble", "High", "18:00:00"}})
	assert.Nil(t, cmd)
	assert.Len(t, ws.Tasks.List(), 2)
	assert.Contains(t, workspacetest.Toasts(ws), "Could not create task")
}

func TestWorkSubmit(t *testing.T) {
	ws := workspacetest.New(t, nil)
	m := NewWork(ws)
	before := len(ws.Work.List())

	m.Update(shared.FormResultMsg{Tag: formWork, Values: []string{"Pitch deck", "Roman IT / Sales", "1/4", "Apr 20"}})
	assert.Len(t, ws.Work.List(), before+1)
	assert.NotContains(t, workspacetest.Toasts(ws), "Could not save work item")
}

func TestWorkFailedSaveIsReported(t *testing.T) {
	ws, _ := workspacetest.Broken(t)
	m := NewWork(ws)
	before := len(ws.Work.List())

	m.Update(shared.FormResultMsg{Tag: formWork, Values: []string{"Pitch deck", "", "", ""}})
	assert.Len(t, ws.Work.List(), before)
	assert.Contains(t, workspacetest.Toasts(ws), "Could not save work item")
}

func TestTrendingFailedProgressIsReported(t *testing.T) {
	ws, _ := workspacetest.Broken(t)
	m := NewTrending(ws)

	m.Update(runes("+"))
	assert.Contains(t, workspacetest.Toasts(ws), "Could not update progress")
}
