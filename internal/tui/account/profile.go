package account

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/logs"
	"projector/internal/routes"
	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const (
	formProfile = "profile"
	logoutID    = "logout"
)

type Profile struct {
	ws      *workspace.Workspace
	form    *shared.Form
	confirm *shared.ConfirmationModal
	err     string
	width   int
	height  int
}

func NewProfile(ws *workspace.Workspace) *Profile {
	return &Profile{ws: ws}
}

func (p *Profile) Refresh() {}

func (p *Profile) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *Profile) Capturing() bool { return p.form != nil || p.confirm != nil }

func (p *Profile) Hints() string { return "e:edit profile L:log out" }

func (p *Profile) Help() shared.HelpSection {
	return shared.HelpSection{Title: "Profile", Binds: []shared.HelpBind{
		{Key: "e", Desc: "Edit name and email"},
		{Key: "L", Desc: "Log out"},
	}}
}

func (p *Profile) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case shared.FormResultMsg:
		p.form = nil
		if msg.Cancelled {
			return nil
		}
		if _, err := p.ws.Session.UpdateProfile(msg.Values[0], msg.Values[1]); err != nil {
			logs.Logger.Warnw("profile update failed", "error", err)
			p.err = err.Error()
			return nil
		}
		p.err = ""
		return messages.SessionChanged
	case shared.ConfirmationResultMsg:
		p.confirm = nil
		if !msg.Confirmed {
			return nil
		}
		if err := p.ws.Session.Logout(); err != nil {
			logs.Logger.Warnw("logout failed", "error", err)
			p.err = err.Error()
			return nil
		}
		return tea.Batch(messages.SessionChanged, messages.Navigate(routes.LoginPath))
	case tea.KeyMsg:
		switch {
		case p.confirm != nil:
			return p.confirm.Update(msg)
		case p.form != nil:
			return p.form.Update(msg)
		}
		switch msg.String() {
		case "e":
			u, _ := p.ws.Session.Current()
			p.form = shared.NewForm(formProfile, "Edit Profile",
				shared.Field{Label: "Name", Value: u.Name, Validate: shared.Required("name")},
				shared.Field{Label: "Email", Value: u.Email, Validate: shared.Required("email")},
			)
		case "L":
			p.confirm = shared.NewConfirmationModal(logoutID, "Log out?", "You will return to the sign-in page.")
		}
		return nil
	}
	if p.form != nil {
		return p.form.Update(msg)
	}
	return nil
}

func (p *Profile) View() string {
	if p.form != nil {
		return shared.Overlay(p.form.View(), p.width, p.height)
	}
	if p.confirm != nil {
		return shared.Overlay(p.confirm.View(), p.width, p.height)
	}
	u, _ := p.ws.Session.Current()
	prefs := u.Settings()
	var b strings.Builder
	b.WriteString(shared.Heading("Profile", "Your account") + "\n\n")
	b.WriteString(theme.Card.Render(fmt.Sprintf("%s  %s\n%s\n%s",
		theme.Tag.Render(u.Member().Initials()), theme.Bold.Render(u.Name),
		theme.Muted.Render(u.Email), theme.Muted.Render(u.AvatarURL))) + "\n\n")
	b.WriteString(fmt.Sprintf("Theme: %s   Time format: %s   Email notifications: %s   App notifications: %s\n",
		prefs.Theme, prefs.TimeFormat, onOff(prefs.NotifyEmail), onOff(prefs.NotifyApp)))
	if p.err != "" {
		b.WriteString("\n" + theme.Error.Render(p.err))
	}
	return b.String()
}
