// Package dashboard is the home page: an overview of today plus the task,
// trending and work panels under tabs.
package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"projector/internal/activity"
	"projector/internal/agenda"
	"projector/internal/dates"
	"projector/internal/tui/shared"
	"projector/internal/tui/tasks"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const (
	tabOverview = iota
	tabTasks
	tabTrending
	tabWork
)

var tabLabels = []string{"Overview", "My Tasks", "Trending", "Work"}

// panel is the part of shared.Page the tab bodies implement.
type panel interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Refresh()
	Capturing() bool
	Hints() string
}

type Model struct {
	ws       *workspace.Workspace
	tab      int
	tasks    *tasks.TaskList
	trending *tasks.Trending
	work     *tasks.Work
	width    int
	height   int
}

func New(ws *workspace.Workspace) *Model {
	return &Model{
		ws:       ws,
		tasks:    tasks.NewTaskList(ws),
		trending: tasks.NewTrending(ws),
		work:     tasks.NewWork(ws),
	}
}

func (m *Model) panel() panel {
	switch m.tab {
	case tabTasks:
		return m.tasks
	case tabTrending:
		return m.trending
	case tabWork:
		return m.work
	}
	return nil
}

func (m *Model) Refresh() {
	m.tasks.Refresh()
	m.trending.Refresh()
	m.work.Refresh()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	for _, p := range []panel{m.tasks, m.trending, m.work} {
		p.SetSize(width, height-4)
	}
}

func (m *Model) Capturing() bool {
	if p := m.panel(); p != nil {
		return p.Capturing()
	}
	return false
}

func (m *Model) Hints() string {
	hints := "tab:switch panel"
	if p := m.panel(); p != nil {
		hints += " " + p.Hints()
	}
	return hints
}

func (m *Model) Help() shared.HelpSection {
	return shared.HelpSection{Title: "Dashboard", Binds: []shared.HelpBind{
		{Key: "tab / shift+tab", Desc: "Switch panel"},
		{Key: "+ / -", Desc: "Adjust progress by 10%"},
		{Key: "n", Desc: "New task / trending task / work item"},
		{Key: "t", Desc: "Start / stop a trending timer"},
		{Key: "y", Desc: "Show share text"},
		{Key: "d", Desc: "Delete"},
		{Key: "p / s / r", Desc: "Platform filter / sort / reverse"},
	}}
}

// Focus selects a task in the My Tasks panel.
func (m *Model) Focus(id string) {
	m.tab = tabTasks
	m.tasks.Focus(id)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && !m.Capturing() {
		switch k.String() {
		case "tab":
			m.tab = (m.tab + 1) % len(tabLabels)
			return nil
		case "shift+tab":
			m.tab = (m.tab - 1 + len(tabLabels)) % len(tabLabels)
			return nil
		}
	}
	if p := m.panel(); p != nil {
		return p.Update(msg)
	}
	return nil
}

func (m *Model) View() string {
	if p := m.panel(); p != nil && p.Capturing() {
		return p.View()
	}
	var body string
	if p := m.panel(); p != nil {
		body = p.View()
	} else {
		body = m.overview()
	}
	return m.greeting() + "\n" + shared.Tabs(tabLabels, m.tab) + "\n" + body
}

func (m *Model) greeting() string {
	name := "there"
	if u, ok := m.ws.Session.Current(); ok {
		name = u.FirstName()
	}
	now := m.ws.Now()
	return shared.Heading("Hello, "+name, now.Format("Monday, January 2"))
}

func (m *Model) overview() string {
	sum := m.ws.Summary()
	cards := []string{
		card("Tasks", fmt.Sprintf("%d", sum.Tasks), fmt.Sprintf("%d done · avg %d%%", sum.TasksDone, sum.AvgProgress)),
		card("Goals", fmt.Sprintf("%d%%", sum.GoalCompletion), fmt.Sprintf("%d of %d · %d overdue", sum.GoalsDone, sum.Goals, sum.OverdueGoals)),
		card("Notes", fmt.Sprintf("%d", sum.Notes), fmt.Sprintf("%d pinned", sum.PinnedNotes)),
		card("Today", fmt.Sprintf("%d", sum.EventsToday), "events scheduled"),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	today := m.ws.Today()
	var left strings.Builder
	left.WriteString(theme.Subtitle.Render("Today's agenda") + "\n")
	evs := agenda.OnDate(m.ws.Events.List(), today)
	if len(evs) == 0 {
		left.WriteString(theme.Muted.Render("Nothing scheduled") + "\n")
	}
	for _, e := range evs {
		left.WriteString(fmt.Sprintf("  %s %s %s\n", theme.Warn.Render(e.Time), e.Title, theme.Muted.Render(e.Duration)))
	}
	if overdue := agenda.Overdue(m.ws.Goals.List(), today); len(overdue) > 0 {
		left.WriteString("\n" + theme.Error.Render("Overdue goals") + "\n")
		for _, it := range overdue {
			left.WriteString(fmt.Sprintf("  ! %s %s\n", it.Title(), theme.Muted.Render(dates.Relative(it.Date, today))))
		}
	}

	var right strings.Builder
	right.WriteString(theme.Subtitle.Render("Recent activity") + "\n")
	items := m.ws.Activity.List()
	for _, it := range items[:min(len(items), 5)] {
		right.WriteString(fmt.Sprintf("  %s %s %s\n", it.Icon(), it.Description, theme.Muted.Render(since(it, m.ws))))
	}

	half := max(m.width/2-2, 30)
	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(left.String()),
		lipgloss.NewStyle().Width(half).Render(right.String()))
	return row + "\n\n" + cols
}

func card(title, value, detail string) string {
	body := theme.Muted.Render(title) + "\n" + theme.Bold.Render(value) + "\n" + theme.Muted.Render(detail)
	return theme.Card.Width(24).Render(body)
}

func since(it activity.Item, ws *workspace.Workspace) string {
	d := ws.Now().Sub(it.Timestamp)
	switch {
	case d < 0:
		return "just now"
	case d.Hours() < 1:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d.Hours() < 24:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
