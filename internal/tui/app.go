// Package tui is the interactive terminal UI: a sidebar of routes, one page
// per route and a status bar with key hints and the latest notification.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"projector/internal/events"
	"projector/internal/gallery"
	"projector/internal/logs"
	"projector/internal/routes"
	"projector/internal/stats"
	"projector/internal/storage"
	"projector/internal/tui/account"
	agendaview "projector/internal/tui/agenda"
	"projector/internal/tui/dashboard"
	"projector/internal/tui/feeds"
	goalview "projector/internal/tui/goals"
	"projector/internal/tui/messages"
	noteview "projector/internal/tui/notes"
	"projector/internal/tui/palette"
	"projector/internal/tui/shared"
	statsview "projector/internal/tui/stats"
	taskview "projector/internal/tui/tasks"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

const (
	sidebarWidth = 20
	chromeHeight = 2
	changeBuffer = 16
)

// AppModel is the root model that routes messages to the active page
type AppModel struct {
	ws          *workspace.Workspace
	pages       map[routes.Page]shared.Page
	notFound    *notFound
	route       routes.Route
	palette     *palette.Model
	showHelp    bool
	changes     chan string
	unsubscribe func()
	width       int
	height      int
	ready       bool
}

// NewAppModel builds every page and lands on the configured start path.
func NewAppModel(ws *workspace.Workspace) AppModel {
	nf := &notFound{}
	m := AppModel{
		ws:       ws,
		notFound: nf,
		changes:  make(chan string, changeBuffer),
		pages: map[routes.Page]shared.Page{
			routes.Dashboard:  dashboard.New(ws),
			routes.Notes:      noteview.New(ws),
			routes.Goals:      goalview.New(ws),
			routes.Activity:   feeds.NewActivity(ws),
			routes.Agenda:     agendaview.New(ws),
			routes.Mentions:   feeds.NewMentions(ws),
			routes.Statistics: statsview.New(ws),
			routes.Settings:   account.NewSettings(ws),
			routes.Profile:    account.NewProfile(ws),
			routes.Dribbble:   feeds.NewGallery(gallery.Dribbble),
			routes.Behance:    feeds.NewGallery(gallery.Behance),
			routes.NewTask:    taskview.NewNewTaskPage(ws),
			routes.Login:      account.NewLogin(ws),
			routes.NotFound:   nf,
		},
	}
	changes := m.changes
	m.unsubscribe = events.On(ws.Bus, func(e events.StorageChanged) {
		select {
		case changes <- e.Key:
		default:
		}
	})
	m.applyTheme()

	start := routes.Root
	if ws.Config != nil && ws.Config.DefaultView != "" {
		start = ws.Config.DefaultView
	}
	m.navigate(start)
	return m
}

// Close stops listening for storage changes.
func (m AppModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Route is the page currently shown.
func (m AppModel) Route() routes.Route { return m.route }

func (m AppModel) page() shared.Page { return m.pages[m.route.Page] }

func (m *AppModel) applyTheme() {
	if u, ok := m.ws.Session.Current(); ok {
		theme.Apply(u.Settings().Theme)
	}
}

// navigate resolves path against the route table and the session.
func (m *AppModel) navigate(path string) {
	res := routes.Resolve(path, m.ws.Session.Authenticated())
	if res.Redirected {
		logs.Logger.Debugw("navigation redirected", "from", path, "to", res.Route.Path)
	}
	m.route = res.Route
	if res.Route.Page == routes.NotFound {
		m.notFound.path = res.Route.Path
	}
	p := m.page()
	p.Refresh()
	p.SetSize(m.contentSize())
}

func (m AppModel) contentSize() (int, int) {
	return max(m.width-sidebarWidth-2, 20), max(m.height-chromeHeight-1, 5)
}

func (m AppModel) refreshAll() {
	for _, p := range m.pages {
		p.Refresh()
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return messages.TickMsg{} })
}

func waitForChange(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return messages.StorageChangedMsg{Key: <-ch}
	}
}

func waitForCards(ch <-chan stats.Cards) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return messages.CardsMsg{Cards: c}
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(tick(), waitForChange(m.changes), waitForCards(m.ws.Monitor.Updates()))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		w, h := m.contentSize()
		for _, p := range m.pages {
			p.SetSize(w, h)
		}
		return m, nil

	case messages.NavigateMsg:
		m.navigate(msg.Path)
		return m, nil

	case messages.FocusMsg:
		m.navigate(msg.Path)
		if f, ok := m.page().(shared.Focuser); ok && m.route.Path == routes.Clean(msg.Path) {
			f.Focus(msg.ID)
		}
		return m, nil

	case messages.StorageChangedMsg:
		m.refreshAll()
		if msg.Key == storage.KeyUser {
			m.applyTheme()
			m.navigate(m.route.Path)
		}
		return m, waitForChange(m.changes)

	case messages.SessionChangedMsg:
		m.applyTheme()
		m.refreshAll()
		m.navigate(m.route.Path)
		return m, nil

	case messages.CardsMsg:
		cmd := m.pages[routes.Statistics].Update(msg)
		return m, tea.Batch(cmd, waitForCards(m.ws.Monitor.Updates()))

	case messages.TickMsg:
		return m, tick()

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	return m, m.page().Update(msg)
}

// handleKey applies the global bindings. handled is false when the key
// belongs to the active page.
func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit, true
	}
	if m.showHelp {
		m.showHelp = false
		return nil, true
	}
	if m.palette != nil {
		next, picked, done := m.palette.Update(msg)
		m.palette = &next
		if done {
			m.palette = nil
			if picked != nil {
				return picked.Command(), true
			}
		}
		return nil, true
	}
	if m.page().Capturing() {
		return nil, false
	}

	authed := m.ws.Session.Authenticated()
	if !authed {
		return nil, false
	}

	switch key {
	case "q":
		return tea.Quit, true
	case "?":
		m.showHelp = true
		return nil, true
	case "ctrl+k", ":":
		p := palette.New(palette.Entries(m.ws))
		m.palette = &p
		return nil, true
	case "ctrl+n":
		return messages.Navigate(routes.PathOf(routes.NewTask)), true
	case "ctrl+p":
		return messages.Navigate(routes.PathOf(routes.Profile)), true
	case "ctrl+x":
		for _, t := range m.ws.Toasts.Active() {
			m.ws.Toasts.Dismiss(t.ID)
		}
		return nil, true
	}

	if i, ok := navIndex(key); ok {
		nav := routes.Nav()
		if i < len(nav) {
			m.navigate(nav[i].Path)
			return nil, true
		}
	}
	return nil, false
}

// navIndex maps "1".."9" to 0..8 and "0" to 9.
func navIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	if key == "0" {
		return 9, true
	}
	return int(key[0] - '1'), true
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return shared.RenderHelpPopup(m.helpSections(), m.width, m.height)
	}
	if m.palette != nil {
		return shared.Overlay(m.palette.View(), m.width, m.height)
	}

	w, h := m.contentSize()
	content := lipgloss.NewStyle().Width(w).Height(h).MaxHeight(h).Render(m.page().View())
	body := content
	if m.route.Page != routes.Login {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(h), " ", content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar())
}

func (m AppModel) sidebar(height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Projector") + "\n\n")
	for i, r := range routes.Nav() {
		digit := (i + 1) % 10
		label := fmt.Sprintf("%d %s", digit, r.Label)
		if r.Path == m.route.Path {
			b.WriteString(theme.NavActive.Render("▌"+label) + "\n")
		} else {
			b.WriteString(theme.NavInactive.Render(" "+label) + "\n")
		}
	}
	if u, ok := m.ws.Session.Current(); ok {
		b.WriteString("\n" + theme.Muted.Render(shared.Truncate(u.Name, sidebarWidth-2)) + "\n")
	}
	return theme.Sidebar.Width(sidebarWidth).Height(height).Render(b.String())
}

func (m AppModel) statusBar() string {
	hints := m.page().Hints()
	if m.route.Page != routes.Login && !m.page().Capturing() {
		hints += " | 1-0:pages ctrl+k:jump ?:help q:quit"
	}
	line := theme.HelpHint.Render(hints)
	if active := m.ws.Toasts.Active(); len(active) > 0 {
		t := active[len(active)-1]
		style := theme.ToastInfo
		if t.Destructive() {
			style = theme.ToastDestructive
		}
		toast := t.Title
		if t.Description != "" {
			toast += ": " + t.Description
		}
		line = style.Render(shared.Truncate(toast, max(m.width/2, 20))) + "  " + line
	}
	return theme.StatusBar.Width(m.width).Render(shared.Truncate(line, m.width))
}

func (m AppModel) helpSections() []shared.HelpSection {
	global := shared.HelpSection{Title: "Global", Binds: []shared.HelpBind{
		{Key: "1-9, 0", Desc: "Jump to a sidebar page"},
		{Key: "ctrl+k / :", Desc: "Jump to a page, task, goal or note"},
		{Key: "ctrl+n", Desc: "New task"},
		{Key: "ctrl+p", Desc: "Profile"},
		{Key: "ctrl+x", Desc: "Dismiss notifications"},
		{Key: "?", Desc: "Show this help"},
		{Key: "q / ctrl+c", Desc: "Quit"},
	}}
	sections := []shared.HelpSection{global}
	if h, ok := m.page().(shared.Helper); ok {
		sections = append(sections, h.Help())
	}
	return sections
}

// Run starts the workspace background work and blocks until the UI exits
// or ctx is cancelled.
func Run(ctx context.Context, ws *workspace.Workspace) error {
	if err := ws.Start(ctx); err != nil {
		return err
	}
	m := NewAppModel(ws)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
