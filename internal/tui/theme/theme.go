// Package theme holds the TUI palette and shared styles. Apply swaps between
// the dark and light palettes chosen in the appearance settings.
package theme

import "github.com/charmbracelet/lipgloss"

const (
	Dark  = "dark"
	Light = "light"
)

// ---------------------------------------------------------------------------
// Color palette
// ---------------------------------------------------------------------------

var (
	Text       lipgloss.Color
	TextMuted  lipgloss.Color
	TextBright lipgloss.Color

	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Danger        lipgloss.Color
	Surface       lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
)

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	Error lipgloss.Style
	Warn  lipgloss.Style
	Ok    lipgloss.Style

	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	SelectedBg lipgloss.Style

	Category lipgloss.Style
	Tag      lipgloss.Style
	Priority lipgloss.Style
	Done     lipgloss.Style
	Pinned   lipgloss.Style

	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
	ModalHelp  lipgloss.Style
	Card       lipgloss.Style

	StatusBar lipgloss.Style
	HelpHint  lipgloss.Style

	NavActive   lipgloss.Style
	NavInactive lipgloss.Style
	Sidebar     lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBar      lipgloss.Style

	ToastInfo        lipgloss.Style
	ToastDestructive lipgloss.Style
)

var current = Dark

func init() { Apply(Dark) }

// Current is the name of the active palette.
func Current() string { return current }

// Apply switches the palette. Unknown names fall back to dark.
func Apply(name string) {
	if name != Light {
		name = Dark
	}
	current = name

	Primary = lipgloss.Color("4")
	Secondary = lipgloss.Color("6")
	Accent = lipgloss.Color("5")
	Success = lipgloss.Color("2")
	Warning = lipgloss.Color("3")
	Danger = lipgloss.Color("1")
	Border = lipgloss.Color("8")
	BorderFocused = lipgloss.Color("4")
	if name == Light {
		Text = lipgloss.Color("0")
		TextMuted = lipgloss.Color("8")
		TextBright = lipgloss.Color("0")
		Surface = lipgloss.Color("254")
	} else {
		Text = lipgloss.Color("7")
		TextMuted = lipgloss.Color("8")
		TextBright = lipgloss.Color("15")
		Surface = lipgloss.Color("236")
	}
	build()
}

func build() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(Secondary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Bold = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	Ok = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Cursor = lipgloss.NewStyle().Bold(true).Foreground(Success)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	SelectedBg = lipgloss.NewStyle().Foreground(TextBright).Background(Surface)

	Category = lipgloss.NewStyle().Foreground(Secondary)
	Tag = lipgloss.NewStyle().Foreground(Accent)
	Priority = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Done = lipgloss.NewStyle().Foreground(TextMuted).Strikethrough(true)
	Pinned = lipgloss.NewStyle().Foreground(Warning)

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2)
	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)
	ModalHelp = lipgloss.NewStyle().Foreground(TextMuted)
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	StatusBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Border)
	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	NavActive = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	NavInactive = lipgloss.NewStyle().Foreground(TextMuted)
	Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Border).
		PaddingRight(1)

	TabActive = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	TabInactive = lipgloss.NewStyle().Foreground(TextMuted)
	TabBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Border).
		PaddingLeft(1)

	ToastInfo = lipgloss.NewStyle().Bold(true).Foreground(Success)
	ToastDestructive = lipgloss.NewStyle().Bold(true).Foreground(Danger)
}
