// Package stats is the statistics page: the live monitor cards, working
// hours per period and the task completion history.
package stats

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statspkg "projector/internal/stats"
	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const sparkRunes = "▁▂▃▄▅▆▇█"

type Model struct {
	ws     *workspace.Workspace
	cards  statspkg.Cards
	period statspkg.Period
	day    int
	width  int
	height int
}

func New(ws *workspace.Workspace) *Model {
	m := &Model{ws: ws, period: statspkg.Weekly}
	m.Refresh()
	return m
}

func (m *Model) Refresh() {
	m.cards = m.ws.Monitor.Snapshot()
	m.syncDay()
}

func (m *Model) syncDay() {
	for i, d := range m.cards.Week.Days {
		if d == m.cards.ActiveDay {
			m.day = i
		}
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) Capturing() bool { return false }

func (m *Model) Hints() string { return "[/]:week h/l:day enter:select day p:period" }

func (m *Model) Help() shared.HelpSection {
	return shared.HelpSection{Title: "Statistics", Binds: []shared.HelpBind{
		{Key: "[ / ]", Desc: "Previous / next week"},
		{Key: "h / l", Desc: "Move the day cursor"},
		{Key: "enter", Desc: "Select the day"},
		{Key: "p", Desc: "Cycle weekly / monthly / yearly hours"},
	}}
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case messages.CardsMsg:
		m.cards = msg.Cards
		m.day = min(m.day, len(m.cards.Week.Days)-1)
	case tea.KeyMsg:
		switch msg.String() {
		case "[":
			m.ws.Monitor.PreviousWeek()
			m.Refresh()
		case "]":
			m.ws.Monitor.NextWeek()
			m.Refresh()
		case "h", "left":
			m.day = max(m.day-1, 0)
		case "l", "right":
			m.day = min(m.day+1, len(m.cards.Week.Days)-1)
		case "enter":
			if m.day >= 0 && m.day < len(m.cards.Week.Days) {
				shared.Report(m.ws.Bus, "select day", m.ws.Monitor.SelectDay(m.cards.Week.Days[m.day]))
				m.Refresh()
			}
		case "p":
			m.period = m.period.Next()
		}
	}
	return nil
}

func card(title, value, detail string) string {
	body := theme.Muted.Render(title) + "\n" + theme.Bold.Render(value) + "\n" + detail
	return theme.Card.Width(26).Render(body)
}

func change(v float64) string {
	s := fmt.Sprintf("%+.1f%%", v)
	if v < 0 {
		return theme.Error.Render(s)
	}
	return theme.Ok.Render(s)
}

// Sparkline scales values onto block glyphs.
func Sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	runes := []rune(sparkRunes)
	var b strings.Builder
	for _, v := range values {
		i := 0
		if hi > lo {
			i = (v - lo) * (len(runes) - 1) / (hi - lo)
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}

func (m *Model) View() string {
	c := m.cards
	var b strings.Builder
	b.WriteString(shared.Heading("Statistics", "Live at "+c.CurrentTime) + "\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		card("Weekly activity", fmt.Sprintf("%.1f%%", c.WeeklyActivity), change(c.WeeklyChange)+"\n"+lipgloss.NewStyle().Foreground(theme.Primary).Render(Sparkline(c.Activity))),
		card("Total progress", fmt.Sprintf("%.1f%%", c.TotalProgress), change(c.TotalProgressChange)+"\n"+shared.ProgressBar(int(c.TotalProgress), 18)),
		card("Time tracked", fmt.Sprintf("%.1fh", c.TotalTime), theme.Muted.Render(fmt.Sprintf("day %d", c.ActiveDay))),
	) + "\n\n")

	b.WriteString(theme.Subtitle.Render("Week of "+c.Week.Label) + "  ")
	for i, d := range c.Week.Days {
		label := fmt.Sprintf(" %2d ", d)
		switch {
		case i == m.day:
			label = theme.SelectedBg.Render(label)
		case d == c.ActiveDay:
			label = theme.Ok.Render(label)
		}
		b.WriteString(label)
	}
	b.WriteString("\n\n")

	series := statspkg.Series(m.period)
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Working hours (%s): %.1fh", m.period, statspkg.TotalHours(series))) + "\n")
	peak := 0.0
	for _, p := range series {
		peak = max(peak, p.Hours)
	}
	for _, p := range series {
		b.WriteString(fmt.Sprintf("  %-7s %6.1f %s\n", p.Name, p.Hours, shared.ProgressBar(int(p.Hours/peak*100), 24)))
	}

	history := statspkg.TaskHistory()
	done, total, pct := statspkg.CompletionRate(history)
	b.WriteString("\n" + theme.Subtitle.Render(fmt.Sprintf("Task completion: %d/%d (%d%%)", done, total, pct)) + "\n  ")
	for _, d := range history {
		style := theme.Muted
		switch d.Status() {
		case statspkg.DayComplete:
			style = theme.Ok
		case statspkg.DayPartial:
			style = theme.Warn
		case statspkg.DayBehind:
			style = theme.Error
		}
		b.WriteString(style.Render(fmt.Sprintf("%s %d/%d", d.Day, d.Completed, d.Total)) + "  ")
	}
	b.WriteString("\n\n")

	left := theme.Subtitle.Render("Project distribution") + "\n"
	for _, s := range statspkg.ProjectDistribution() {
		left += fmt.Sprintf("  %s %-20s %3d%%\n", lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("■"), s.Name, s.Value)
	}
	right := theme.Subtitle.Render("Challenges") + "\n"
	for _, ch := range statspkg.Challenges() {
		right += fmt.Sprintf("  %-20s %-7s %s\n", ch.Name, ch.Status, theme.Muted.Render(ch.ActionsLabel()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(40).Render(left), right))
	return b.String()
}
