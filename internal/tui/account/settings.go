package account

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/auth"
	"projector/internal/logs"
	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const (
	rowNotifyEmail = iota
	rowNotifyApp
	rowTheme
	rowTimeFormat
	settingsRows
)

// Settings edits the signed-in user's preferences. Every change is saved
// immediately.
type Settings struct {
	ws     *workspace.Workspace
	prefs  auth.Preferences
	cursor int
	err    string
}

func NewSettings(ws *workspace.Workspace) *Settings {
	s := &Settings{ws: ws}
	s.Refresh()
	return s
}

func (s *Settings) Refresh() {
	u, _ := s.ws.Session.Current()
	s.prefs = u.Settings()
}

func (s *Settings) SetSize(int, int) {}

func (s *Settings) Capturing() bool { return false }

func (s *Settings) Hints() string { return "j/k:move space:toggle" }

func (s *Settings) Help() shared.HelpSection {
	return shared.HelpSection{Title: "Settings", Binds: []shared.HelpBind{
		{Key: "space / enter", Desc: "Toggle the selected setting"},
	}}
}

func (s *Settings) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if next, ok := shared.MoveCursor(k.String(), s.cursor, settingsRows); ok {
		s.cursor = next
		return nil
	}
	switch k.String() {
	case " ", "enter", "left", "right":
		return s.toggle()
	}
	return nil
}

func (s *Settings) toggle() tea.Cmd {
	p := s.prefs
	session := s.ws.Session
	var err error
	var cmd tea.Cmd
	switch s.cursor {
	case rowNotifyEmail:
		_, err = session.SaveNotifications(!p.NotifyEmail, p.NotifyApp)
	case rowNotifyApp:
		_, err = session.SaveNotifications(p.NotifyEmail, !p.NotifyApp)
	case rowTheme:
		next := shared.Next([]string{theme.Light, theme.Dark}, p.Theme)
		if _, err = session.SaveAppearance(next, p.TimeFormat); err == nil {
			theme.Apply(next)
			cmd = func() tea.Msg { return messages.ThemeChangedMsg{Theme: next} }
		}
	case rowTimeFormat:
		_, err = session.SaveAppearance(p.Theme, shared.Next([]string{"12h", "24h"}, p.TimeFormat))
	}
	s.err = ""
	if err != nil {
		logs.Logger.Warnw("settings save failed", "error", err)
		s.err = err.Error()
	}
	s.Refresh()
	return cmd
}

func onOff(v bool) string {
	if v {
		return theme.Ok.Render("on")
	}
	return theme.Muted.Render("off")
}

func (s *Settings) View() string {
	rows := []string{
		fmt.Sprintf("%-22s %s", "Email notifications", onOff(s.prefs.NotifyEmail)),
		fmt.Sprintf("%-22s %s", "App notifications", onOff(s.prefs.NotifyApp)),
		fmt.Sprintf("%-22s %s", "Theme", theme.Category.Render(s.prefs.Theme)),
		fmt.Sprintf("%-22s %s", "Time format", theme.Category.Render(s.prefs.TimeFormat)),
	}
	var b strings.Builder
	b.WriteString(shared.Heading("Settings", "Manage notifications and appearance") + "\n\n")
	b.WriteString(theme.Subtitle.Render("Notifications") + "\n")
	for i, r := range rows {
		if i == rowTheme {
			b.WriteString("\n" + theme.Subtitle.Render("Appearance") + "\n")
		}
		b.WriteString(shared.Row(i == s.cursor, r) + "\n")
	}
	if s.err != "" {
		b.WriteString("\n" + theme.Error.Render(s.err))
	}
	return b.String()
}
