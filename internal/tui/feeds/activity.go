// Package feeds holds the read-mostly pages: the activity history, the
// mentions inbox and the Dribbble and Behance galleries.
package feeds

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/activity"
	"projector/internal/listview"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const clearID = "activity-clear"

var activityFilters = append([]string{"all"}, activity.Types...)

type Activity struct {
	ws      *workspace.Workspace
	typ     string
	groups  []listview.Group[activity.Item]
	count   int
	cursor  int
	confirm *shared.ConfirmationModal
	width   int
	height  int
}

func NewActivity(ws *workspace.Workspace) *Activity {
	a := &Activity{ws: ws, typ: "all"}
	a.Refresh()
	return a
}

func (a *Activity) Refresh() {
	a.groups = a.ws.Activity.Grouped(a.typ, a.ws.Now())
	a.count = 0
	for _, g := range a.groups {
		a.count += len(g.Items)
	}
	a.cursor = shared.ClampCursor(a.cursor, a.count)
}

func (a *Activity) SetSize(width, height int) {
	a.width = width
	a.height = height
}

func (a *Activity) Capturing() bool { return a.confirm != nil }

func (a *Activity) Hints() string { return "f:type filter c:clear j/k:scroll" }

func (a *Activity) Help() shared.HelpSection {
	return shared.HelpSection{Title: "Activity", Binds: []shared.HelpBind{
		{Key: "f", Desc: "Cycle type filter"},
		{Key: "c", Desc: "Clear the history"},
	}}
}

func (a *Activity) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case shared.ConfirmationResultMsg:
		a.confirm = nil
		if msg.Confirmed && msg.ID == clearID {
			shared.Report(a.ws.Bus, "clear activity", a.ws.Activity.Clear())
			a.Refresh()
		}
	case tea.KeyMsg:
		if a.confirm != nil {
			return a.confirm.Update(msg)
		}
		if next, ok := shared.MoveCursor(msg.String(), a.cursor, a.count); ok {
			a.cursor = next
			return nil
		}
		switch msg.String() {
		case "f":
			a.typ = shared.Next(activityFilters, a.typ)
			a.cursor = 0
			a.Refresh()
		case "c":
			if a.count > 0 {
				a.confirm = shared.NewConfirmationModal(clearID, "Clear all activity?", fmt.Sprintf("%d item(s) will be removed", a.count))
			}
		}
	}
	return nil
}

func (a *Activity) View() string {
	if a.confirm != nil {
		return shared.Overlay(a.confirm.View(), a.width, a.height)
	}
	var b strings.Builder
	b.WriteString(shared.Heading("Activity", fmt.Sprintf("%d item(s) · type: %s", a.count, a.typ)) + "\n\n")
	if a.count == 0 {
		b.WriteString(theme.Muted.Render("No activity yet."))
		return b.String()
	}
	i := 0
	for _, g := range a.groups {
		b.WriteString(theme.Subtitle.Render(g.Label) + "\n")
		for _, it := range g.Items {
			line := fmt.Sprintf("%s %s %s  %s %s",
				theme.Muted.Render(it.Timestamp.Format("15:04")), it.Icon(), theme.Bold.Render(it.Title),
				it.Description, theme.Muted.Render("· "+it.User.Name))
			b.WriteString(shared.Row(i == a.cursor, shared.Truncate(line, max(a.width-4, 40))) + "\n")
			i++
		}
		b.WriteString("\n")
	}
	return b.String()
}
