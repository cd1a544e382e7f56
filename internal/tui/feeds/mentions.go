package feeds

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/activity"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

type Mentions struct {
	ws     *workspace.Workspace
	search shared.SearchBar
	items  []activity.Mention
	cursor int
	width  int
}

func NewMentions(ws *workspace.Workspace) *Mentions {
	m := &Mentions{ws: ws, search: shared.NewSearchBar("Search mentions...")}
	m.Refresh()
	return m
}

func (m *Mentions) Refresh() {
	u, _ := m.ws.Session.Current()
	m.items = activity.SearchMentions(activity.Mentions(u.Name), m.search.Query())
	m.cursor = shared.ClampCursor(m.cursor, len(m.items))
}

func (m *Mentions) SetSize(width, _ int) { m.width = width }

func (m *Mentions) Capturing() bool { return m.search.Active() }

func (m *Mentions) Hints() string { return "/:search j/k:move" }

func (m *Mentions) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.search.Active() {
		cmd, changed := m.search.Update(k)
		if changed {
			m.Refresh()
		}
		return cmd
	}
	if next, ok := shared.MoveCursor(k.String(), m.cursor, len(m.items)); ok {
		m.cursor = next
		return nil
	}
	if k.String() == "/" {
		return m.search.Start()
	}
	return nil
}

func (m *Mentions) View() string {
	var b strings.Builder
	b.WriteString(shared.Heading("Mentions", fmt.Sprintf("%d comment(s) mention you", len(m.items))) + "\n")
	if s := m.search.View(); s != "" {
		b.WriteString(s + "\n")
	}
	b.WriteString("\n")
	if len(m.items) == 0 {
		b.WriteString(theme.Muted.Render("No mentions match."))
		return b.String()
	}
	for i, mn := range m.items {
		head := fmt.Sprintf("%s in %s %s", theme.Bold.Render(mn.Author), theme.Category.Render(mn.Project), theme.Muted.Render(mn.Time))
		b.WriteString(shared.Row(i == m.cursor, head) + "\n")
		b.WriteString("    " + shared.Truncate(mn.Content, max(m.width-8, 40)) + "\n\n")
	}
	return b.String()
}
