package tasks

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/dates"
	taskspkg "projector/internal/tasks"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const formTrending = "trending-add"

var trendingSortKeys = []taskspkg.SortKey{taskspkg.SortDate, taskspkg.SortProgress, taskspkg.SortTitle}

// Trending is the trending-tasks panel with per-task timers.
type Trending struct {
	ws        *workspace.Workspace
	platform  string
	sortKey   taskspkg.SortKey
	items     []taskspkg.TrendingTask
	cursor    int
	form      *shared.Form
	confirm   *shared.ConfirmationModal
	shareLine string
	width     int
	height    int
}

func NewTrending(ws *workspace.Workspace) *Trending {
	m := &Trending{ws: ws, platform: "all", sortKey: taskspkg.SortDate}
	m.Refresh()
	return m
}

func (m *Trending) Refresh() {
	m.items = m.ws.Trending.Query(m.platform, m.sortKey)
	m.cursor = shared.ClampCursor(m.cursor, len(m.items))
}

func (m *Trending) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Trending) Capturing() bool { return m.form != nil || m.confirm != nil }

func (m *Trending) Hints() string {
	return "t:timer +/-:progress n:new d:delete y:share p:platform s:sort"
}

func (m *Trending) Focus(id string) {
	m.platform = "all"
	m.Refresh()
	for i, t := range m.items {
		if t.ID == id {
			m.cursor = i
		}
	}
}

func (m *Trending) selected() (taskspkg.TrendingTask, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return taskspkg.TrendingTask{}, false
	}
	return m.items[m.cursor], true
}

func (m *Trending) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case shared.FormResultMsg:
		return m.submit(msg)
	case shared.ConfirmationResultMsg:
		m.confirm = nil
		if msg.Confirmed {
			shared.Report(m.ws.Bus, "delete trending task", m.ws.Trending.Delete(msg.ID))
			m.Refresh()
		}
		return nil
	case tea.KeyMsg:
		switch {
		case m.confirm != nil:
			return m.confirm.Update(msg)
		case m.form != nil:
			return m.form.Update(msg)
		}
		return m.handleKey(msg)
	}
	if m.form != nil {
		return m.form.Update(msg)
	}
	return nil
}

func (m *Trending) handleKey(msg tea.KeyMsg) tea.Cmd {
	if next, ok := shared.MoveCursor(msg.String(), m.cursor, len(m.items)); ok {
		m.cursor = next
		return nil
	}
	t, ok := m.selected()
	switch msg.String() {
	case "t":
		if !ok {
			return nil
		}
		if _, running := m.ws.Trending.Running(t.ID); running {
			_, err := m.ws.Trending.StopTimer(t.ID)
			shared.Report(m.ws.Bus, "stop timer", err)
		} else {
			shared.Report(m.ws.Bus, "start timer", m.ws.Trending.StartTimer(t.ID))
		}
		m.Refresh()
	case "+", "=", "-":
		if ok {
			step := progressStep
			if msg.String() == "-" {
				step = -step
			}
			_, err := m.ws.Trending.SetProgress(t.ID, t.Progress+step)
			shared.Report(m.ws.Bus, "update progress", err)
			m.Refresh()
		}
	case "y":
		if ok {
			m.shareLine = taskspkg.ShareText(t)
		}
	case "n":
		m.form = shared.NewForm(formTrending, "New Trending Task",
			shared.Field{Label: "Title", Placeholder: "Task title", Validate: shared.Required("title")},
			shared.Field{Label: "Platform", Options: taskspkg.Platforms},
			shared.Field{Label: "Due", Placeholder: "YYYY-MM-DD (optional)", Validate: shared.OptionalDate},
			shared.Field{Label: "Description", Placeholder: "Optional"},
		)
	case "d":
		if ok {
			m.confirm = shared.NewConfirmationModal(t.ID, "Delete this task?", t.Title)
		}
	case "p":
		m.platform = shared.Next(platformFilters(m.ws.Trending.Platforms()), m.platform)
		m.Refresh()
	case "s":
		m.sortKey = shared.Next(trendingSortKeys, m.sortKey)
		m.Refresh()
	}
	return nil
}

func (m *Trending) submit(msg shared.FormResultMsg) tea.Cmd {
	m.form = nil
	if msg.Cancelled {
		return nil
	}
	due, err := dates.ParsePtr(msg.Values[2])
	if err != nil {
		return nil
	}
	t, err := m.ws.Trending.Add(taskspkg.NewTrendingTask{
		Title:       msg.Values[0],
		Platform:    msg.Values[1],
		DueDate:     due,
		Description: msg.Values[3],
		Assignee:    currentMember(m.ws),
	})
	if shared.Report(m.ws.Bus, "add trending task", err, taskspkg.ErrTitleRequired) {
		return nil
	}
	m.Focus(t.ID)
	return nil
}

func (m *Trending) View() string {
	if m.form != nil {
		return shared.Overlay(m.form.View(), m.width, m.height)
	}
	if m.confirm != nil {
		return shared.Overlay(m.confirm.View(), m.width, m.height)
	}
	var b strings.Builder
	b.WriteString(theme.Muted.Render(fmt.Sprintf("platform: %s  sort: %s", m.platform, m.sortKey)) + "\n\n")
	if len(m.items) == 0 {
		b.WriteString(theme.Muted.Render("No trending tasks. Press n to add one."))
		return b.String()
	}
	today := m.ws.Today()
	for i, t := range m.items {
		spent := t.TimeSpent
		if elapsed, running := m.ws.Trending.Running(t.ID); running {
			base, _ := taskspkg.ParseClock(t.TimeSpent)
			spent = theme.Ok.Render("● " + taskspkg.FormatClock(base+elapsed))
		}
		due := ""
		if t.DueDate != nil {
			due = theme.Muted.Render(dates.Relative(*t.DueDate, today))
		}
		line := fmt.Sprintf("%s %3d%%  %-28s %s  %s %s %s",
			shared.ProgressBar(t.Progress, 10), t.Progress, shared.Truncate(t.Title, 28),
			theme.Category.Render(t.Platform), spent, due, avatars(t.Assignees))
		b.WriteString(shared.Row(i == m.cursor, line) + "\n")
	}
	if m.shareLine != "" {
		b.WriteString("\n" + theme.Muted.Render("share: ") + m.shareLine)
	}
	return b.String()
}
