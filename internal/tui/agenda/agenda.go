// Package agenda is the calendar page with day, week and month views of
// events, goal due dates and notes.
package agenda

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	agendapkg "projector/internal/agenda"
	"projector/internal/dates"
	"projector/internal/routes"
	"projector/internal/tui/messages"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
	"projector/internal/workspace"
)

type Mode int

const (
	ModeDay Mode = iota
	ModeWeek
	ModeMonth
)

var modes = []Mode{ModeDay, ModeWeek, ModeMonth}

func (v Mode) String() string {
	switch v {
	case ModeWeek:
		return "week"
	case ModeMonth:
		return "month"
	}
	return "day"
}

const (
	formAdd  = "event-add"
	formEdit = "event-edit"
	formMove = "event-move"
)

type Model struct {
	ws      *workspace.Workspace
	mode    Mode
	anchor  dates.Date
	buckets []agendapkg.DateBucket
	overdue []agendapkg.AgendaItem
	items   []agendapkg.AgendaItem
	cursor  int
	form    *shared.Form
	target  string
	confirm *shared.ConfirmationModal
	width   int
	height  int
}

func New(ws *workspace.Workspace) *Model {
	m := &Model{ws: ws, anchor: ws.Today()}
	m.Refresh()
	return m
}

func (m *Model) rangeOf() agendapkg.DateRange {
	t := m.anchor.Time(time.Local)
	switch m.mode {
	case ModeWeek:
		return agendapkg.WeekRange(t)
	case ModeMonth:
		return agendapkg.MonthRange(t)
	}
	return agendapkg.DayRange(t)
}

func (m *Model) Refresh() {
	r := m.rangeOf()
	gs := m.ws.Goals.List()
	m.buckets = agendapkg.Query(r, m.ws.Events.List(), gs, m.ws.Notes.List())
	m.overdue = agendapkg.Overdue(gs, r.Start)

	m.items = append([]agendapkg.AgendaItem(nil), m.overdue...)
	for _, b := range m.buckets {
		if m.mode == ModeMonth && b.Date != m.anchor {
			continue
		}
		m.items = append(m.items, b.AllItems()...)
		m.items = append(m.items, b.CompletedGoals...)
	}
	m.cursor = shared.ClampCursor(m.cursor, len(m.items))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) Capturing() bool { return m.form != nil || m.confirm != nil }

func (m *Model) Hints() string {
	if m.mode == ModeMonth {
		return "h/l:day j/k:week H/L:month enter:open day n:new T:today v:view"
	}
	return "h/l:prev/next j/k:items n:new e:edit m:move d:delete T:today v:view"
}

func (m *Model) Help() shared.HelpSection {
	return shared.HelpSection{Title: "Agenda", Binds: []shared.HelpBind{
		{Key: "v", Desc: "Cycle day / week / month"},
		{Key: "h / l", Desc: "Previous / next period (day in month view)"},
		{Key: "j / k", Desc: "Navigate items (week in month view)"},
		{Key: "H / L", Desc: "Previous / next month"},
		{Key: "T", Desc: "Jump to today"},
		{Key: "n", Desc: "New event on the selected day"},
		{Key: "e / m / d", Desc: "Edit / move / delete event"},
		{Key: "enter", Desc: "Open goal, note or event"},
	}}
}

func (m *Model) selected() (agendapkg.AgendaItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return agendapkg.AgendaItem{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) shift(days int) {
	m.anchor = m.anchor.AddDays(days)
	m.cursor = 0
	m.Refresh()
}

func (m *Model) shiftMonths(n int) {
	m.anchor = dates.FromTime(m.anchor.Time(time.Local).AddDate(0, n, 0))
	m.Refresh()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case shared.FormResultMsg:
		return m.submit(msg)
	case shared.ConfirmationResultMsg:
		m.confirm = nil
		if msg.Confirmed {
			shared.Report(m.ws.Bus, "delete event", m.ws.Events.Delete(msg.ID))
			m.Refresh()
		}
		return nil
	case tea.KeyMsg:
		switch {
		case m.confirm != nil:
			return m.confirm.Update(msg)
		case m.form != nil:
			return m.form.Update(msg)
		}
		return m.handleKey(msg)
	}
	if m.form != nil {
		return m.form.Update(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "v":
		m.mode = shared.Next(modes, m.mode)
		m.cursor = 0
		m.Refresh()
		return nil
	case "T":
		m.anchor = m.ws.Today()
		m.Refresh()
		return nil
	case "H":
		m.shiftMonths(-1)
		return nil
	case "L":
		m.shiftMonths(1)
		return nil
	case "n":
		m.form = eventForm(formAdd, "New Event · "+m.anchor.String(), agendapkg.EventForm{Time: "09:00", Duration: "30 min"})
		return nil
	}

	if m.mode == ModeMonth {
		switch key {
		case "h", "left":
			m.shift(-1)
		case "l", "right":
			m.shift(1)
		case "j", "down":
			m.shift(7)
		case "k", "up":
			m.shift(-7)
		case "enter":
			m.mode = ModeDay
			m.Refresh()
		}
		return nil
	}

	if next, ok := shared.MoveCursor(key, m.cursor, len(m.items)); ok {
		m.cursor = next
		return nil
	}
	step := 1
	if m.mode == ModeWeek {
		step = 7
	}
	it, ok := m.selected()
	switch key {
	case "h", "left":
		m.shift(-step)
	case "l", "right":
		m.shift(step)
	case "enter":
		if ok {
			return m.open(it)
		}
	case "e":
		if ok && it.Event != nil {
			m.target = it.Event.ID
			m.form = eventForm(formEdit, "Edit Event", agendapkg.FormOf(*it.Event))
		}
	case "m":
		if ok && it.Event != nil {
			m.target = it.Event.ID
			m.form = shared.NewForm(formMove, "Move Event",
				shared.Field{Label: "Date", Value: it.Event.Date.String(), Validate: requiredDate})
		}
	case "d":
		if ok && it.Event != nil {
			m.confirm = shared.NewConfirmationModal(it.Event.ID, "Delete this event?", it.Title())
		}
	}
	return nil
}

func requiredDate(s string) error {
	_, err := dates.Parse(s)
	return err
}

func (m *Model) open(it agendapkg.AgendaItem) tea.Cmd {
	switch {
	case it.Goal != nil:
		return messages.Focus(routes.PathOf(routes.Goals), it.Goal.ID)
	case it.Note != nil:
		return messages.Focus(routes.PathOf(routes.Notes), it.Note.ID)
	case it.Event != nil:
		m.target = it.Event.ID
		m.form = eventForm(formEdit, "Edit Event", agendapkg.FormOf(*it.Event))
	}
	return nil
}

func eventForm(tag, title string, f agendapkg.EventForm) *shared.Form {
	return shared.NewForm(tag, title,
		shared.Field{Label: "Title", Value: f.Title, Placeholder: "Event title", Validate: shared.Required("title")},
		shared.Field{Label: "Time", Value: f.Time, Placeholder: "HH:MM"},
		shared.Field{Label: "Duration", Value: f.Duration, Placeholder: "e.g. 1 hour"},
		shared.Field{Label: "Location", Value: f.Location, Placeholder: "Optional"},
		shared.Field{Label: "Participants", Value: f.Participants, Placeholder: "Comma-separated"},
	)
}

func (m *Model) submit(msg shared.FormResultMsg) tea.Cmd {
	m.form = nil
	if msg.Cancelled {
		return nil
	}
	switch msg.Tag {
	case formMove:
		if d, err := dates.Parse(msg.Values[0]); err == nil {
			_, err = m.ws.Events.Move(m.target, d)
			shared.Report(m.ws.Bus, "move event", err)
		}
	default:
		f := agendapkg.EventForm{
			Title:        msg.Values[0],
			Time:         msg.Values[1],
			Duration:     msg.Values[2],
			Location:     msg.Values[3],
			Participants: msg.Values[4],
		}
		var err error
		if msg.Tag == formAdd {
			_, err = m.ws.Events.Add(m.anchor, f)
		} else {
			_, err = m.ws.Events.Update(m.target, f)
		}
		shared.Report(m.ws.Bus, "save event", err,
			agendapkg.ErrMissingFields, agendapkg.ErrInvalidTime, agendapkg.ErrNoDate)
	}
	m.Refresh()
	return nil
}

func (m *Model) title() string {
	r := m.rangeOf()
	switch m.mode {
	case ModeWeek:
		return fmt.Sprintf("%s - %s", r.Start.Time(time.UTC).Format("Jan 2"), r.End.Time(time.UTC).Format("Jan 2, 2006"))
	case ModeMonth:
		return m.anchor.Time(time.UTC).Format("January 2006")
	}
	return m.anchor.Time(time.UTC).Format("Monday, January 2, 2006")
}

func (m *Model) View() string {
	if m.form != nil {
		return shared.Overlay(m.form.View(), m.width, m.height)
	}
	if m.confirm != nil {
		return shared.Overlay(m.confirm.View(), m.width, m.height)
	}

	header := shared.Heading("Agenda", m.title()+" · "+m.mode.String())
	list := m.renderList()
	if m.mode == ModeMonth {
		cal := renderMonth(m.anchor, m.ws.Today(), m.buckets)
		return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, cal, "   ", list)
	}
	return header + "\n\n" + list
}

func (m *Model) renderList() string {
	var b strings.Builder
	today := m.ws.Today()
	idx := 0
	row := func(it agendapkg.AgendaItem) {
		b.WriteString(shared.Row(idx == m.cursor, itemLine(it, today)) + "\n")
		idx++
	}

	if len(m.overdue) > 0 {
		b.WriteString(theme.Error.Render(fmt.Sprintf("Overdue (%d)", len(m.overdue))) + "\n")
		for _, it := range m.overdue {
			row(it)
		}
		b.WriteString("\n")
	}

	shown := 0
	for _, bucket := range m.buckets {
		if m.mode == ModeMonth && bucket.Date != m.anchor {
			continue
		}
		shown++
		b.WriteString(theme.Subtitle.Render(dates.Relative(bucket.Date, today)) + " " +
			theme.Muted.Render(bucket.Date.Time(time.UTC).Format("Mon")) + "\n")
		for _, it := range bucket.AllItems() {
			row(it)
		}
		for _, it := range bucket.CompletedGoals {
			row(it)
		}
	}
	if shown == 0 {
		b.WriteString(theme.Muted.Render("Nothing scheduled. Press n to add an event.") + "\n")
	}
	return b.String()
}
