package tasks

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/work"
	"projector/internal/workspace"
)

const (
	formWork     = "work-add"
	formProgress = "work-progress"
	formTag      = "work-tag"
)

// Work lists work items grouped under their space.
type Work struct {
	ws      *workspace.Workspace
	items   []work.Item
	cursor  int
	form    *shared.Form
	target  string
	confirm *shared.ConfirmationModal
	width   int
	height  int
}

func NewWork(ws *workspace.Workspace) *Work {
	m := &Work{ws: ws}
	m.Refresh()
	return m
}

func (m *Work) Refresh() {
	m.items = m.ws.Work.List()
	m.cursor = shared.ClampCursor(m.cursor, len(m.items))
}

func (m *Work) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Work) Capturing() bool { return m.form != nil || m.confirm != nil }

func (m *Work) Hints() string { return "n:new u:progress t:tag d:delete" }

func (m *Work) selected() (work.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return work.Item{}, false
	}
	return m.items[m.cursor], true
}

func (m *Work) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case shared.FormResultMsg:
		return m.submit(msg)
	case shared.ConfirmationResultMsg:
		m.confirm = nil
		if msg.Confirmed {
			shared.Report(m.ws.Bus, "delete work item", m.ws.Work.Delete(msg.ID))
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

func (m *Work) handleKey(msg tea.KeyMsg) tea.Cmd {
	if next, ok := shared.MoveCursor(msg.String(), m.cursor, len(m.items)); ok {
		m.cursor = next
		return nil
	}
	it, ok := m.selected()
	switch msg.String() {
	case "n":
		m.form = shared.NewForm(formWork, "New Work Item",
			shared.Field{Label: "Title", Validate: shared.Required("title")},
			shared.Field{Label: "Path", Placeholder: work.DefaultPath},
			shared.Field{Label: "Progress", Placeholder: work.DefaultProgress, Validate: optionalProgress},
			shared.Field{Label: "Date", Placeholder: "e.g. July 30 (default today)"},
		)
	case "u", "enter":
		if ok {
			m.target = it.ID
			m.form = shared.NewForm(formProgress, "Update Progress",
				shared.Field{Label: "Progress", Value: it.Progress, Validate: optionalProgress})
		}
	case "t":
		if ok {
			m.target = it.ID
			m.form = shared.NewForm(formTag, "Add Tag", shared.Field{Label: "Tag", Validate: shared.Required("tag")})
		}
	case "d":
		if ok {
			m.confirm = shared.NewConfirmationModal(it.ID, "Delete this work item?", it.Title)
		}
	}
	return nil
}

func optionalProgress(s string) error {
	if s == "" {
		return nil
	}
	_, _, err := work.ParseProgress(s)
	return err
}

func (m *Work) submit(msg shared.FormResultMsg) tea.Cmd {
	m.form = nil
	if msg.Cancelled {
		return nil
	}
	var err error
	switch msg.Tag {
	case formWork:
		_, err = m.ws.Work.Add(work.NewItem{
			Title:    msg.Values[0],
			Path:     msg.Values[1],
			Progress: msg.Values[2],
			Date:     msg.Values[3],
			Assignee: currentMember(m.ws),
		})
	case formProgress:
		_, err = m.ws.Work.SetProgress(m.target, msg.Values[0])
	case formTag:
		_, err = m.ws.Work.AddTag(m.target, msg.Values[0], "")
	}
	shared.Report(m.ws.Bus, "save work item", err)
	m.Refresh()
	return nil
}

func (m *Work) View() string {
	if m.form != nil {
		return shared.Overlay(m.form.View(), m.width, m.height)
	}
	if m.confirm != nil {
		return shared.Overlay(m.confirm.View(), m.width, m.height)
	}
	var b strings.Builder
	spaces := workspace.BuildSpaces(m.items)
	names := make([]string, len(spaces))
	for i, s := range spaces {
		names[i] = fmt.Sprintf("%s (%d)", s.Name, s.Items)
	}
	b.WriteString(theme.Muted.Render("spaces: "+strings.Join(names, ", ")) + "\n\n")
	if len(m.items) == 0 {
		b.WriteString(theme.Muted.Render("No work items. Press n to add one."))
		return b.String()
	}
	for i, it := range m.items {
		pct, ok := it.Percent()
		bar := theme.Muted.Render(strings.Repeat("·", 10))
		if ok {
			bar = shared.ProgressBar(pct, 10)
		}
		tags := make([]string, len(it.Tags))
		for j, t := range it.Tags {
			tags[j] = theme.Tag.Render("#" + t.Text)
		}
		line := fmt.Sprintf("%s %-6s %-30s %s  %s %s %s",
			bar, it.Progress, shared.Truncate(it.Title, 30), theme.Muted.Render(it.Path),
			it.Date, avatars(it.Assignees), strings.Join(tags, " "))
		b.WriteString(shared.Row(i == m.cursor, line) + "\n")
	}
	return b.String()
}
