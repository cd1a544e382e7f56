package shared

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/tui/theme"
)

// ConfirmationModal is a yes/no dialog. ID travels back in the result so
// the page knows what was confirmed.
type ConfirmationModal struct {
	ID      string
	Message string
	Details string
	Width   int
}

type ConfirmationResultMsg struct {
	ID        string
	Confirmed bool
}

func NewConfirmationModal(id, message, details string) *ConfirmationModal {
	return &ConfirmationModal{ID: id, Message: message, Details: details, Width: 50}
}

func (m *ConfirmationModal) Update(msg tea.KeyMsg) tea.Cmd {
	var confirmed bool
	switch msg.String() {
	case "y", "enter":
		confirmed = true
	case "n", "esc":
	default:
		return nil
	}
	res := ConfirmationResultMsg{ID: m.ID, Confirmed: confirmed}
	return func() tea.Msg { return res }
}

func (m *ConfirmationModal) View() string {
	var b strings.Builder
	b.WriteString(theme.ModalTitle.Render(m.Message) + "\n")
	if m.Details != "" {
		b.WriteString("\n" + m.Details + "\n")
	}
	b.WriteString("\n" + theme.Ok.Render("[y]") + " Yes  " + theme.Error.Render("[n/esc]") + " No")
	return theme.ModalBox.Width(m.Width).Render(b.String())
}
