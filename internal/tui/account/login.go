// Package account holds the sign-in, settings and profile pages.
package account

import (
	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/routes"
	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const (
	modeSignIn = "Sign in"
	modeSignUp = "Sign up"
	formLogin  = "login"
)

// Login is the only page reachable while signed out.
type Login struct {
	ws     *workspace.Workspace
	form   *shared.Form
	err    string
	width  int
	height int
}

func NewLogin(ws *workspace.Workspace) *Login {
	l := &Login{ws: ws}
	l.reset()
	return l
}

func (l *Login) reset() {
	l.form = shared.NewForm(formLogin, "Welcome to Projector",
		shared.Field{Label: "Mode", Options: []string{modeSignIn, modeSignUp}},
		shared.Field{Label: "Email", Placeholder: "you@example.com", Validate: shared.Required("email")},
		shared.Field{Label: "Name", Placeholder: "Optional when signing in"},
	)
	l.form.Width = 56
}

func (l *Login) Refresh() {}

func (l *Login) SetSize(width, height int) {
	l.width = width
	l.height = height
}

func (l *Login) Capturing() bool { return true }

func (l *Login) Hints() string {
	return "←/→:sign in or sign up tab:next field enter:submit ctrl+c:quit"
}

func (l *Login) Update(msg tea.Msg) tea.Cmd {
	if res, ok := msg.(shared.FormResultMsg); ok && res.Tag == formLogin {
		if res.Cancelled {
			l.err = ""
			l.reset()
			return nil
		}
		return l.submit(res.Values)
	}
	return l.form.Update(msg)
}

func (l *Login) submit(v []string) tea.Cmd {
	session := l.ws.Session
	var err error
	if v[0] == modeSignUp {
		_, err = session.SignUp(v[1], v[2])
	} else {
		_, err = session.Login(v[1], v[2])
	}
	if err != nil {
		l.err = err.Error()
		return nil
	}
	l.err = ""
	l.reset()
	return tea.Batch(messages.SessionChanged, messages.Navigate(routes.DashboardPath))
}

func (l *Login) View() string {
	box := l.form.View()
	if l.err != "" {
		box += "\n" + theme.Error.Render(l.err)
	}
	return shared.Overlay(box, l.width, l.height)
}
