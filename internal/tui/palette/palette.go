// Package palette is the ctrl+k jump list: a fuzzy finder over pages,
// notes, goals and tasks.
package palette

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"projector/internal/notes"
	"projector/internal/routes"
	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const maxRows = 12

// Entry is one jump target.
type Entry struct {
	Kind  string
	Label string
	Path  string
	// ID is set for items; selecting one focuses it on Path.
	ID string
}

// Command returns the navigation the entry triggers.
func (e Entry) Command() tea.Cmd {
	if e.ID != "" {
		return messages.Focus(e.Path, e.ID)
	}
	return messages.Navigate(e.Path)
}

// Entries collects every jump target from the workspace.
func Entries(ws *workspace.Workspace) []Entry {
	var out []Entry
	for _, r := range routes.All() {
		if r.Page == routes.Login {
			continue
		}
		out = append(out, Entry{Kind: "page", Label: r.Label, Path: r.Path})
	}
	for _, t := range ws.Tasks.List() {
		out = append(out, Entry{Kind: "task", Label: t.Title, Path: routes.DashboardPath, ID: t.ID})
	}
	goalsPath := routes.PathOf(routes.Goals)
	for _, g := range ws.Goals.List() {
		out = append(out, Entry{Kind: "goal", Label: g.Text, Path: goalsPath, ID: g.ID})
	}
	notesPath := routes.PathOf(routes.Notes)
	for _, n := range ws.Notes.List() {
		out = append(out, Entry{Kind: "note", Label: notes.Headline(n.Text), Path: notesPath, ID: n.ID})
	}
	return out
}

type Model struct {
	entries    []Entry
	labels     []string
	filterText string
	filtered   []int
	cursor     int
	width      int
}

func New(entries []Entry) Model {
	m := Model{entries: entries, width: 60}
	m.labels = make([]string, len(entries))
	for i, e := range entries {
		m.labels[i] = e.Kind + " " + e.Label
	}
	m.recomputeFilter()
	return m
}

func (m *Model) recomputeFilter() {
	m.cursor = 0
	if m.filterText == "" {
		m.filtered = make([]int, len(m.entries))
		for i := range m.entries {
			m.filtered[i] = i
		}
		return
	}
	matches := fuzzy.Find(m.filterText, m.labels)
	m.filtered = make([]int, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.Index
	}
}

// Matches returns the entries passing the current filter, best first.
func (m Model) Matches() []Entry {
	out := make([]Entry, len(m.filtered))
	for i, idx := range m.filtered {
		out[i] = m.entries[idx]
	}
	return out
}

// Update handles one key. done is set on enter or esc; selected is nil
// when the palette was dismissed.
func (m Model) Update(msg tea.KeyMsg) (Model, *Entry, bool) {
	switch msg.String() {
	case "esc", "ctrl+k":
		return m, nil, true
	case "enter":
		if m.cursor < len(m.filtered) {
			e := m.entries[m.filtered[m.cursor]]
			return m, &e, true
		}
		return m, nil, true
	case "down", "ctrl+n", "tab":
		m.cursor = shared.ClampCursor(m.cursor+1, len(m.filtered))
	case "up", "ctrl+p", "shift+tab":
		m.cursor = shared.ClampCursor(m.cursor-1, len(m.filtered))
	case "backspace":
		if len(m.filterText) > 0 {
			r := []rune(m.filterText)
			m.filterText = string(r[:len(r)-1])
			m.recomputeFilter()
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.filterText += string(msg.Runes)
			m.recomputeFilter()
		case tea.KeySpace:
			m.filterText += " "
			m.recomputeFilter()
		}
	}
	return m, nil, false
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.ModalTitle.Render("Go to") + "\n\n")
	b.WriteString("> " + m.filterText + "_\n\n")
	if len(m.filtered) == 0 {
		b.WriteString(theme.Muted.Render("No matches") + "\n")
	}
	start := max(0, m.cursor-maxRows+1)
	for i := start; i < len(m.filtered) && i < start+maxRows; i++ {
		e := m.entries[m.filtered[i]]
		line := fmt.Sprintf("%-5s %s", theme.Muted.Render(e.Kind), shared.Truncate(e.Label, m.width-14))
		b.WriteString(shared.Row(i == m.cursor, line) + "\n")
	}
	b.WriteString("\n" + theme.ModalHelp.Render("[↑/↓] move  [enter] open  [esc] close"))
	return theme.ModalBox.Width(m.width).Render(b.String())
}
