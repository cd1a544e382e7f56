package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"projector/internal/tui/theme"
)

type HelpBind struct {
	Key  string
	Desc string
}

type HelpSection struct {
	Title string
	Binds []HelpBind
}

// RenderHelpPopup renders a centered help popup with the given sections.
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Width(14)
	descStyle := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Title.Render(section.Title) + "\n")
		for _, bind := range section.Binds {
			b.WriteString("  " + keyStyle.Render(bind.Key) + descStyle.Render(bind.Desc) + "\n")
		}
	}
	b.WriteString("\n" + theme.HelpHint.Render("Press any key to close"))

	return Overlay(theme.ModalBox.Render(b.String()), width, height)
}
