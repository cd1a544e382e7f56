// Package goals is the goals page: a filterable checklist with add, edit
// and delete prompts.
package goals

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/dates"
	goalspkg "projector/internal/goals"
	"projector/internal/listview"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const (
	formAdd  = "goal-add"
	formEdit = "goal-edit"
)

var (
	statuses   = []goalspkg.Status{goalspkg.StatusAll, goalspkg.StatusActive, goalspkg.StatusCompleted}
	priorities = []goalspkg.Priority{"", goalspkg.PriorityLow, goalspkg.PriorityMedium, goalspkg.PriorityHigh}
)

type Model struct {
	ws      *workspace.Workspace
	filter  goalspkg.Filter
	order   goalspkg.Order
	items   []goalspkg.Goal
	cursor  int
	form    *shared.Form
	editing string
	confirm *shared.ConfirmationModal
	width   int
	height  int
}

func New(ws *workspace.Workspace) *Model {
	m := &Model{
		ws:     ws,
		filter: goalspkg.Filter{Status: goalspkg.StatusAll},
		order:  goalspkg.DefaultOrder,
	}
	m.Refresh()
	return m
}

func (m *Model) Refresh() {
	m.items = m.ws.Goals.Query(m.filter, m.order)
	m.cursor = shared.ClampCursor(m.cursor, len(m.items))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) Capturing() bool { return m.form != nil || m.confirm != nil }

func (m *Model) Hints() string {
	return "space:toggle n:new e:edit d:delete f:status p:priority s:sort r:reverse"
}

func (m *Model) Help() shared.HelpSection {
	return shared.HelpSection{Title: "Goals", Binds: []shared.HelpBind{
		{Key: "space / x", Desc: "Toggle completed"},
		{Key: "n", Desc: "New goal"},
		{Key: "e", Desc: "Edit goal"},
		{Key: "d", Desc: "Delete goal"},
		{Key: "f / p", Desc: "Cycle status / priority filter"},
		{Key: "s / r", Desc: "Cycle sort key / reverse"},
	}}
}

func (m *Model) Focus(id string) {
	m.filter = goalspkg.Filter{Status: goalspkg.StatusAll}
	m.Refresh()
	for i, g := range m.items {
		if g.ID == id {
			m.cursor = i
		}
	}
}

func (m *Model) selected() (goalspkg.Goal, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return goalspkg.Goal{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case shared.FormResultMsg:
		return m.submit(msg)
	case shared.ConfirmationResultMsg:
		m.confirm = nil
		if msg.Confirmed {
			shared.Report(m.ws.Bus, "delete goal", m.ws.Goals.Delete(msg.ID))
			m.Refresh()
		}
		return nil
	case tea.KeyMsg:
		if m.confirm != nil {
			return m.confirm.Update(msg)
		}
		if m.form != nil {
			return m.form.Update(msg)
		}
		return m.handleKey(msg)
	}
	if m.form != nil {
		return m.form.Update(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if next, ok := shared.MoveCursor(msg.String(), m.cursor, len(m.items)); ok {
		m.cursor = next
		return nil
	}
	switch msg.String() {
	case " ", "x":
		if g, ok := m.selected(); ok {
			_, err := m.ws.Goals.Toggle(g.ID)
			shared.Report(m.ws.Bus, "update goal", err)
			m.Refresh()
		}
	case "n":
		m.editing = ""
		m.form = goalForm(formAdd, "New Goal", goalspkg.Goal{Priority: goalspkg.PriorityMedium})
	case "e", "enter":
		if g, ok := m.selected(); ok {
			m.editing = g.ID
			m.form = goalForm(formEdit, "Edit Goal", g)
		}
	case "d":
		if g, ok := m.selected(); ok {
			m.confirm = shared.NewConfirmationModal(g.ID, "Delete this goal?", g.Text)
		}
	case "f":
		m.filter.Status = shared.Next(statuses, m.filter.Status)
		m.Refresh()
	case "p":
		m.filter.Priority = shared.Next(priorities, m.filter.Priority)
		m.Refresh()
	case "s":
		m.order.Key = shared.Next(goalspkg.SortKeys, m.order.Key)
		m.Refresh()
	case "r":
		m.order.Direction = m.order.Direction.Toggle()
		m.Refresh()
	}
	return nil
}

func goalForm(tag, title string, g goalspkg.Goal) *shared.Form {
	due := ""
	if g.DueDate != nil {
		due = g.DueDate.String()
	}
	prios := make([]string, len(goalspkg.Priorities))
	for i, p := range goalspkg.Priorities {
		prios[i] = string(p)
	}
	category := g.Category
	if category == "" {
		category = goalspkg.DefaultCategory
	}
	return shared.NewForm(tag, title,
		shared.Field{Label: "Goal", Placeholder: "What do you want to achieve?", Value: g.Text, Validate: shared.Required("goal")},
		shared.Field{Label: "Priority", Options: prios, Value: string(g.Priority)},
		shared.Field{Label: "Due", Placeholder: "YYYY-MM-DD (optional)", Value: due, Validate: shared.OptionalDate},
		shared.Field{Label: "Category", Options: goalspkg.Categories, Value: category},
	)
}

func (m *Model) submit(msg shared.FormResultMsg) tea.Cmd {
	m.form = nil
	if msg.Cancelled {
		return nil
	}
	due, err := dates.ParsePtr(msg.Values[2])
	if err != nil {
		return nil
	}
	in := goalspkg.NewGoal{
		Text:     msg.Values[0],
		Priority: goalspkg.Priority(msg.Values[1]),
		DueDate:  due,
		Category: msg.Values[3],
	}
	switch msg.Tag {
	case formAdd:
		g, err := m.ws.Goals.Add(in)
		if shared.Report(m.ws.Bus, "add goal", err) {
			return nil
		}
		m.Focus(g.ID)
	case formEdit:
		_, err := m.ws.Goals.Update(m.editing, in)
		shared.Report(m.ws.Bus, "update goal", err)
		m.Refresh()
	}
	return nil
}

func (m *Model) View() string {
	if m.form != nil {
		return shared.Overlay(m.form.View(), m.width, m.height)
	}
	if m.confirm != nil {
		return shared.Overlay(m.confirm.View(), m.width, m.height)
	}

	var b strings.Builder
	all := m.ws.Goals.List()
	pct := goalspkg.CompletionPercentage(all)
	b.WriteString(shared.Heading("Goals", fmt.Sprintf("%d%% of %d complete", pct, len(all))) + "\n")
	b.WriteString(shared.ProgressBar(pct, 30) + "\n")

	prio := "all"
	if m.filter.Priority != "" {
		prio = string(m.filter.Priority)
	}
	b.WriteString(theme.Muted.Render(fmt.Sprintf("status: %s  priority: %s  sort: %s %s",
		m.filter.Status, prio, m.order.Key, m.order.Direction)) + "\n\n")

	if len(m.items) == 0 {
		b.WriteString(theme.Muted.Render("No goals match. Press n to add one."))
		return b.String()
	}
	today := m.ws.Today()
	for i, g := range m.items {
		b.WriteString(shared.Row(i == m.cursor, m.line(g, today)) + "\n")
	}
	return b.String()
}

func (m *Model) line(g goalspkg.Goal, today dates.Date) string {
	check := "[ ]"
	text := g.Text
	if g.Completed {
		check = theme.Ok.Render("[x]")
		text = theme.Done.Render(text)
	}
	prio := theme.Muted.Render(string(g.Priority))
	if g.Priority == goalspkg.PriorityHigh {
		prio = theme.Priority.Render(string(g.Priority))
	}
	due := ""
	if g.DueDate != nil {
		label := dates.Relative(*g.DueDate, today) + " · " + dates.DaysUntil(*g.DueDate, today)
		switch {
		case g.Completed:
			due = theme.Muted.Render(label)
		case dates.Overdue(*g.DueDate, today):
			due = theme.Error.Render(label)
		default:
			due = theme.Warn.Render(label)
		}
	}
	return strings.Join(listview.Filter([]string{check, text, prio, theme.Category.Render(g.Category), due},
		func(s string) bool { return s != "" }), "  ")
}
