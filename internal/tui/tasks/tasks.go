package tasks

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/routes"
	taskspkg "projector/internal/tasks"
	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

var taskSortKeys = []taskspkg.SortKey{"", taskspkg.SortProgress, taskspkg.SortTitle, taskspkg.SortCreatedAt}

// TaskList is the "My Tasks" panel.
type TaskList struct {
	ws      *workspace.Workspace
	filter  taskspkg.Filter
	order   taskspkg.Order
	search  shared.SearchBar
	items   []taskspkg.Task
	cursor  int
	confirm *shared.ConfirmationModal
	width   int
	height  int
}

func NewTaskList(ws *workspace.Workspace) *TaskList {
	m := &TaskList{
		ws:     ws,
		filter: taskspkg.Filter{Platform: "all"},
		search: shared.NewSearchBar("Search tasks..."),
	}
	m.Refresh()
	return m
}

func (m *TaskList) Refresh() {
	m.filter.Search = m.search.Query()
	m.items = m.ws.Tasks.Query(m.filter, m.order)
	m.cursor = shared.ClampCursor(m.cursor, len(m.items))
}

func (m *TaskList) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *TaskList) Capturing() bool { return m.confirm != nil || m.search.Active() }

func (m *TaskList) Hints() string {
	return "+/-:progress n:new d:delete p:platform s:sort r:reverse /:search"
}

func (m *TaskList) Focus(id string) {
	m.filter.Platform = "all"
	m.search = shared.NewSearchBar("Search tasks...")
	m.Refresh()
	for i, t := range m.items {
		if t.ID == id {
			m.cursor = i
		}
	}
}

func (m *TaskList) selected() (taskspkg.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return taskspkg.Task{}, false
	}
	return m.items[m.cursor], true
}

func (m *TaskList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case shared.ConfirmationResultMsg:
		m.confirm = nil
		if msg.Confirmed {
			shared.Report(m.ws.Bus, "delete task", m.ws.Tasks.Delete(msg.ID))
			m.Refresh()
		}
	case tea.KeyMsg:
		switch {
		case m.confirm != nil:
			return m.confirm.Update(msg)
		case m.search.Active():
			cmd, changed := m.search.Update(msg)
			if changed {
				m.Refresh()
			}
			return cmd
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *TaskList) handleKey(msg tea.KeyMsg) tea.Cmd {
	if next, ok := shared.MoveCursor(msg.String(), m.cursor, len(m.items)); ok {
		m.cursor = next
		return nil
	}
	switch msg.String() {
	case "/":
		return m.search.Start()
	case "+", "=", "-":
		if t, ok := m.selected(); ok {
			step := progressStep
			if msg.String() == "-" {
				step = -step
			}
			_, err := m.ws.Tasks.SetProgress(t.ID, t.Progress+step)
			shared.Report(m.ws.Bus, "update progress", err)
			m.Refresh()
		}
	case "n":
		return messages.Navigate(routes.PathOf(routes.NewTask))
	case "d":
		if t, ok := m.selected(); ok {
			m.confirm = shared.NewConfirmationModal(t.ID, "Delete this task?", t.Title)
		}
	case "p":
		m.filter.Platform = shared.Next(platformFilters(taskspkg.Platforms), m.filter.Platform)
		m.Refresh()
	case "s":
		m.order.Key = shared.Next(taskSortKeys, m.order.Key)
		m.Refresh()
	case "r":
		m.order.Direction = m.order.Direction.Toggle()
		m.Refresh()
	}
	return nil
}

func (m *TaskList) View() string {
	if m.confirm != nil {
		return shared.Overlay(m.confirm.View(), m.width, m.height)
	}
	var b strings.Builder
	sortLabel := "added"
	if m.order.Key != "" {
		sortLabel = string(m.order.Key)
	}
	b.WriteString(theme.Muted.Render(fmt.Sprintf("platform: %s  sort: %s %s", m.filter.Platform, sortLabel, m.order.Direction)))
	if s := m.search.View(); s != "" {
		b.WriteString("  " + s)
	}
	b.WriteString("\n\n")
	if len(m.items) == 0 {
		b.WriteString(theme.Muted.Render("No tasks found. Press n to create one."))
		return b.String()
	}
	for i, t := range m.items {
		title := t.Title
		if t.Done() {
			title = theme.Done.Render(title)
		}
		line := fmt.Sprintf("%s %3d%%  %-28s %s  %s %s",
			shared.ProgressBar(t.Progress, 10), t.Progress, shared.Truncate(title, 28),
			theme.Category.Render(t.Platform), theme.Muted.Render("due "+t.DueTime), avatars(t.Assignees))
		if t.Priority != "" {
			line += " " + theme.Priority.Render(t.Priority)
		}
		b.WriteString(shared.Row(i == m.cursor, line) + "\n")
	}
	b.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("%d task(s)", len(m.items))))
	return b.String()
}

// Count is the number of rows currently listed.
func (m *TaskList) Count() int { return len(m.items) }
