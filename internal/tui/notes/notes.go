// Package notes is the notes page: a pinned-first list beside a rendered
// markdown preview.
package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"projector/internal/logs"
	notespkg "projector/internal/notes"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const (
	formAdd  = "note-add"
	formEdit = "note-edit"
)

type Model struct {
	ws       *workspace.Workspace
	category string
	search   shared.SearchBar
	items    []notespkg.Note
	cursor   int
	form     *shared.Form
	editing  string
	confirm  *shared.ConfirmationModal
	preview  viewport.Model
	renderer *glamour.TermRenderer
	rendered string // id of the note in the preview
	style    string
	width    int
	height   int
}

func New(ws *workspace.Workspace) *Model {
	m := &Model{
		ws:       ws,
		category: "all",
		search:   shared.NewSearchBar("Search notes..."),
		preview:  viewport.New(40, 10),
	}
	m.Refresh()
	return m
}

func (m *Model) Refresh() {
	m.items = m.ws.Notes.Query(notespkg.Filter{Search: m.search.Query(), Category: m.category})
	m.cursor = shared.ClampCursor(m.cursor, len(m.items))
	m.rendered = ""
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.preview.Width = max(width-m.listWidth()-3, 20)
	m.preview.Height = max(height-4, 3)
	m.renderer = nil
	m.rendered = ""
}

func (m *Model) listWidth() int { return max(m.width*2/5, 24) }

func (m *Model) Capturing() bool { return m.form != nil || m.confirm != nil || m.search.Active() }

func (m *Model) Hints() string {
	return "n:new e:edit p:pin d:delete c:category /:search pgup/pgdn:scroll"
}

func (m *Model) Help() shared.HelpSection {
	return shared.HelpSection{Title: "Notes", Binds: []shared.HelpBind{
		{Key: "n", Desc: "New note (markdown)"},
		{Key: "e", Desc: "Edit note"},
		{Key: "p", Desc: "Pin / unpin"},
		{Key: "d", Desc: "Delete note"},
		{Key: "c", Desc: "Cycle category filter"},
		{Key: "/", Desc: "Search"},
	}}
}

func (m *Model) Focus(id string) {
	m.category = "all"
	m.search = shared.NewSearchBar("Search notes...")
	m.Refresh()
	for i, n := range m.items {
		if n.ID == id {
			m.cursor = i
		}
	}
}

func (m *Model) selected() (notespkg.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return notespkg.Note{}, false
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
			shared.Report(m.ws.Bus, "delete note", m.ws.Notes.Delete(msg.ID))
			m.Refresh()
		}
		return nil
	case tea.KeyMsg:
		switch {
		case m.confirm != nil:
			return m.confirm.Update(msg)
		case m.form != nil:
			return m.form.Update(msg)
		case m.search.Active():
			cmd, changed := m.search.Update(msg)
			if changed {
				m.Refresh()
			}
			return cmd
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
	case "/":
		return m.search.Start()
	case "n":
		m.form = noteForm(formAdd, "New Note", notespkg.Note{Category: notespkg.DefaultCategory})
	case "e", "enter":
		if n, ok := m.selected(); ok {
			m.editing = n.ID
			m.form = noteForm(formEdit, "Edit Note", n)
		}
	case "p":
		if n, ok := m.selected(); ok {
			_, err := m.ws.Notes.TogglePin(n.ID)
			shared.Report(m.ws.Bus, "pin note", err)
			m.Focus(n.ID)
		}
	case "d":
		if n, ok := m.selected(); ok {
			m.confirm = shared.NewConfirmationModal(n.ID, "Delete this note?", notespkg.Headline(n.Text))
		}
	case "c":
		m.category = shared.Next(append([]string{"all"}, notespkg.Categories...), m.category)
		m.Refresh()
	default:
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return cmd
	}
	return nil
}

func noteForm(tag, title string, n notespkg.Note) *shared.Form {
	return shared.NewForm(tag, title,
		shared.Field{Label: "Note", Placeholder: "Markdown text; use \\n for new lines",
			Value: strings.ReplaceAll(n.Text, "\n", `\n`), Validate: shared.Required("note"), CharLimit: 2000},
		shared.Field{Label: "Category", Options: notespkg.Categories, Value: n.Category},
	)
}

func (m *Model) submit(msg shared.FormResultMsg) tea.Cmd {
	m.form = nil
	if msg.Cancelled {
		return nil
	}
	text := strings.ReplaceAll(msg.Values[0], `\n`, "\n")
	switch msg.Tag {
	case formAdd:
		n, err := m.ws.Notes.Add(text, msg.Values[1])
		if shared.Report(m.ws.Bus, "add note", err) {
			return nil
		}
		m.Focus(n.ID)
	case formEdit:
		_, err := m.ws.Notes.Update(m.editing, text, msg.Values[1])
		shared.Report(m.ws.Bus, "update note", err)
		m.Refresh()
	}
	return nil
}

// render converts markdown for the preview pane, falling back to the raw
// text when glamour fails.
func (m *Model) render(n notespkg.Note) string {
	if m.renderer == nil || m.style != theme.Current() {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(theme.Current()),
			glamour.WithWordWrap(max(m.preview.Width-2, 10)),
		)
		if err != nil {
			logs.Logger.Warnw("markdown renderer unavailable", "error", err)
			return n.Text
		}
		m.renderer = r
		m.style = theme.Current()
	}
	out, err := m.renderer.Render(n.Text)
	if err != nil {
		return n.Text
	}
	return strings.TrimRight(out, "\n")
}

func (m *Model) View() string {
	if m.form != nil {
		return shared.Overlay(m.form.View(), m.width, m.height)
	}
	if m.confirm != nil {
		return shared.Overlay(m.confirm.View(), m.width, m.height)
	}

	header := shared.Heading("Notes", fmt.Sprintf("%d shown · category: %s", len(m.items), m.category))
	if s := m.search.View(); s != "" {
		header += "\n" + s
	}

	lw := m.listWidth()
	var list strings.Builder
	if len(m.items) == 0 {
		list.WriteString(theme.Muted.Render("No notes. Press n to add one."))
	}
	for i, n := range m.items {
		pin := " "
		if n.Pinned {
			pin = theme.Pinned.Render("*")
		}
		title := shared.Truncate(notespkg.Headline(n.Text), lw-16)
		line := fmt.Sprintf("%s %s %s", pin, title, theme.Muted.Render(n.CreatedAt.Format("Jan 2")))
		list.WriteString(shared.Row(i == m.cursor, line) + "\n")
	}

	if n, ok := m.selected(); ok && m.rendered != n.ID {
		meta := theme.Category.Render(n.Category) + "  " + theme.Muted.Render(n.CreatedAt.Format("Monday, January 2, 2006 15:04"))
		m.preview.SetContent(meta + "\n" + m.render(n))
		m.preview.GotoTop()
		m.rendered = n.ID
	} else if !ok {
		m.preview.SetContent("")
	}

	left := lipgloss.NewStyle().Width(lw).Render(list.String())
	right := theme.Card.Render(m.preview.View())
	return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}
