package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/routes"
	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
)

// notFound is shown for paths outside the route table.
type notFound struct {
	path   string
	width  int
	height int
}

func (n *notFound) Refresh() {}

func (n *notFound) SetSize(width, height int) {
	n.width = width
	n.height = height
}

func (n *notFound) Capturing() bool { return false }

func (n *notFound) Hints() string { return "enter:return home" }

func (n *notFound) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "enter" || k.String() == "esc") {
		return messages.Navigate(routes.DashboardPath)
	}
	return nil
}

func (n *notFound) View() string {
	body := theme.Title.Render("404") + "\n\n" +
		"Oops! Page not found\n" +
		theme.Muted.Render(n.path) + "\n\n" +
		theme.HelpHint.Render("Press enter to return home")
	return shared.CenterContent(body, n.height)
}
