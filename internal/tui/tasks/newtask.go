package tasks

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/routes"
	taskspkg "projector/internal/tasks"
	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const formNewTask = "new-task"

var (
	newTaskPlatforms = []string{"Dribbble", "Behance", "Roman IT Internal", "GitHub", "Figma"}
	newTaskPriority  = []string{"Low", "Medium", "High", "Urgent"}
)

// NewTaskPage is the full-screen create-task form. Submitting or cancelling
// returns to the dashboard.
type NewTaskPage struct {
	ws     *workspace.Workspace
	form   *shared.Form
	width  int
	height int
}

func NewNewTaskPage(ws *workspace.Workspace) *NewTaskPage {
	p := &NewTaskPage{ws: ws}
	p.Refresh()
	return p
}

// Refresh resets the form; it runs every time the page is opened.
func (p *NewTaskPage) Refresh() {
	p.form = shared.NewForm(formNewTask, "Create New Task",
		shared.Field{Label: "Title", Placeholder: "Enter task title", Validate: shared.Required("title")},
		shared.Field{Label: "Description", Placeholder: "Enter task description"},
		shared.Field{Label: "Platform", Options: newTaskPlatforms},
		shared.Field{Label: "Priority", Options: newTaskPriority, Value: "Medium"},
		shared.Field{Label: "Due", Value: taskspkg.DefaultDueTime, Validate: validClock},
	)
	p.form.Width = min(max(p.width-4, 40), 70)
}

func validClock(s string) error {
	if s == "" {
		return nil
	}
	_, err := taskspkg.ParseClock(s)
	return err
}

func (p *NewTaskPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.form.Width = min(max(width-4, 40), 70)
}

func (p *NewTaskPage) Capturing() bool { return true }

func (p *NewTaskPage) Hints() string { return "tab:next field  ←/→:choose  enter:create  esc:back" }

func (p *NewTaskPage) Update(msg tea.Msg) tea.Cmd {
	if res, ok := msg.(shared.FormResultMsg); ok {
		back := messages.Navigate(routes.DashboardPath)
		if res.Cancelled {
			return back
		}
		_, err := p.ws.Tasks.Add(taskspkg.NewTask{
			Title:       res.Values[0],
			Description: res.Values[1],
			Platform:    res.Values[2],
			Priority:    res.Values[3],
			DueTime:     res.Values[4],
			Assignee:    currentMember(p.ws),
		})
		if shared.Report(p.ws.Bus, "create task", err, taskspkg.ErrTitleRequired) {
			return nil
		}
		p.Refresh()
		return back
	}
	return p.form.Update(msg)
}

func (p *NewTaskPage) View() string {
	var b strings.Builder
	b.WriteString(shared.Heading("New Task", "assigned to you") + "\n\n")
	b.WriteString(p.form.View())
	b.WriteString("\n" + theme.Muted.Render("The task starts at 0% and appears under My Tasks."))
	return b.String()
}
