package shared

import tea "github.com/charmbracelet/bubbletea"

// Page is a routed screen. The root model owns one per route and forwards
// messages to the active page only.
type Page interface {
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Refresh reloads the page's rows from the workspace services.
	Refresh()
	// Capturing reports whether a prompt or modal wants every key,
	// including the global navigation keys.
	Capturing() bool
	// Hints is the one-line key summary shown in the status bar.
	Hints() string
}

// Focuser is implemented by pages that can select an item by id.
type Focuser interface {
	Focus(id string)
}

// Helper is implemented by pages that contribute a section to the help
// overlay.
type Helper interface {
	Help() HelpSection
}

// Next returns the option after cur, wrapping around. An unknown cur yields
// the first option.
func Next[T comparable](options []T, cur T) T {
	for i, o := range options {
		if o == cur {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// ClampCursor keeps cursor within a list of n rows.
func ClampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	return max(cursor, 0)
}

// MoveCursor applies j/k/up/down/g/G to cursor. ok reports whether key was
// a movement key.
func MoveCursor(key string, cursor, n int) (next int, ok bool) {
	switch key {
	case "j", "down":
		return ClampCursor(cursor+1, n), true
	case "k", "up":
		return ClampCursor(cursor-1, n), true
	case "g", "home":
		return 0, true
	case "G", "end":
		return ClampCursor(n-1, n), true
	}
	return cursor, false
}
