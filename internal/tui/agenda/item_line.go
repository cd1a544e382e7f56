package agenda

import (
	"strings"

	agendapkg "projector/internal/agenda"
	"projector/internal/dates"
	"projector/internal/tui/theme"
)

// itemLine renders one agenda row: a source tag, the title and any
// location or participants.
func itemLine(it agendapkg.AgendaItem, today dates.Date) string {
	var parts []string
	switch it.Source {
	case agendapkg.SourceEvent:
		parts = append(parts, theme.Warn.Render(it.Event.Time), it.Event.Title, theme.Muted.Render(it.Event.Duration))
		if it.Event.Location != "" {
			parts = append(parts, theme.Category.Render("@ "+it.Event.Location))
		}
		if len(it.Event.Participants) > 0 {
			parts = append(parts, theme.Muted.Render("with "+strings.Join(it.Event.Participants, ", ")))
		}
	case agendapkg.SourceGoal:
		tag := theme.Priority.Render("due")
		title := it.Title()
		switch {
		case it.Completed:
			tag = theme.Ok.Render("done")
			title = theme.Done.Render(title)
		case dates.Overdue(it.Date, today):
			tag = theme.Error.Render(dates.DaysUntil(it.Date, today))
		}
		parts = append(parts, tag, title)
	case agendapkg.SourceNote:
		parts = append(parts, theme.Muted.Render("note"), it.Title())
	}
	return strings.Join(parts, " ")
}
