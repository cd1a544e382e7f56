package shared

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/tui/theme"
)

// SearchBar is the "/" filter line shared by list pages. Typing updates
// Query live; enter keeps the query and esc clears it.
type SearchBar struct {
	input  textinput.Model
	active bool
}

func NewSearchBar(placeholder string) SearchBar {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	return SearchBar{input: ti}
}

func (s *SearchBar) Active() bool  { return s.active }
func (s *SearchBar) Query() string { return s.input.Value() }

func (s *SearchBar) Start() tea.Cmd {
	s.active = true
	return s.input.Focus()
}

// Update handles a key while the bar is active. changed reports whether the
// query text changed.
func (s *SearchBar) Update(msg tea.KeyMsg) (cmd tea.Cmd, changed bool) {
	before := s.input.Value()
	switch msg.String() {
	case "enter":
		s.active = false
		s.input.Blur()
		return nil, false
	case "esc":
		s.active = false
		s.input.Blur()
		s.input.SetValue("")
		return nil, before != ""
	}
	s.input, cmd = s.input.Update(msg)
	return cmd, s.input.Value() != before
}

func (s *SearchBar) View() string {
	if s.active {
		return s.input.View()
	}
	if q := s.input.Value(); q != "" {
		return theme.Muted.Render("/ " + q)
	}
	return ""
}
