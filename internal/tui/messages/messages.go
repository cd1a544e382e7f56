package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/stats"
)

// NavigateMsg asks the root model to open path. The route table decides
// where it lands.
type NavigateMsg struct {
	Path string
}

// FocusMsg opens path and selects the item with ID once the page is loaded.
type FocusMsg struct {
	Path string
	ID   string
}

// StorageChangedMsg reports that key was rewritten, possibly by another
// process.
type StorageChangedMsg struct {
	Key string
}

// SessionChangedMsg is sent after login, logout or a profile change.
type SessionChangedMsg struct{}

// ThemeChangedMsg is sent when the appearance settings switch palettes.
type ThemeChangedMsg struct {
	Theme string
}

// CardsMsg carries a statistics monitor snapshot.
type CardsMsg struct {
	Cards stats.Cards
}

// TickMsg drives toast expiry and running timers.
type TickMsg struct{}

func Navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

func Focus(path, id string) tea.Cmd {
	return func() tea.Msg {
		return FocusMsg{Path: path, ID: id}
	}
}

func SessionChanged() tea.Msg { return SessionChangedMsg{} }
