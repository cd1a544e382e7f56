package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"projector/internal/tui/theme"
)

// CenterContent renders content vertically centered in the available height.
func CenterContent(content string, height int) string {
	lines := splitLines(content)
	if len(lines) >= height {
		return strings.Join(lines, "\n")
	}
	top := (height - len(lines)) / 2
	out := make([]string, 0, height)
	out = append(out, make([]string, top)...)
	out = append(out, lines...)
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// WithBottomHints pads content to height with hints pinned to the last line.
func WithBottomHints(content, hints string, height int) string {
	lines := splitLines(content)
	hintLines := splitLines(hints)
	if gap := height - len(lines) - len(hintLines); gap > 0 {
		lines = append(lines, make([]string, gap)...)
	}
	return strings.Join(append(lines, hintLines...), "\n")
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Truncate shortens s to width cells, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// ProgressBar renders pct (0-100) as a bar of width cells.
func ProgressBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	filled := pct * width / 100
	style := theme.Warn
	if pct >= 100 {
		style = theme.Ok
	}
	return style.Render(strings.Repeat("█", filled)) + theme.Muted.Render(strings.Repeat("░", width-filled))
}

// Row renders a selectable list row with a cursor marker.
func Row(selected bool, text string) string {
	if selected {
		return theme.Cursor.Render(">") + " " + theme.SelectedBg.Render(text)
	}
	return "  " + text
}

// Heading renders a page title with an optional muted subtitle.
func Heading(title, subtitle string) string {
	if subtitle == "" {
		return theme.Title.Render(title)
	}
	return theme.Title.Render(title) + "  " + theme.Muted.Render(subtitle)
}

// Tabs renders a tab strip with the active label highlighted.
func Tabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		label := " " + l + " "
		if i == active {
			parts[i] = theme.TabActive.Render(label)
		} else {
			parts[i] = theme.TabInactive.Render(label)
		}
	}
	return theme.TabBar.Render(strings.Join(parts, " "))
}

// Overlay centers box over a blank screen of the given size.
func Overlay(box string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
