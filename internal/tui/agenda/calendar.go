package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	agendapkg "projector/internal/agenda"
	"projector/internal/dates"
	"projector/internal/tui/theme"
)

const cellWidth = 5

// renderMonth draws a Monday-first grid of cursor's month. Days with items
// carry a "*".
func renderMonth(cursor, today dates.Date, buckets []agendapkg.DateBucket) string {
	counts := make(map[dates.Date]int, len(buckets))
	for _, b := range buckets {
		counts[b.Date] = b.TotalCount()
	}

	cell := lipgloss.NewStyle().Width(cellWidth)
	header := cell.Foreground(theme.Secondary).Bold(true)
	var sb strings.Builder
	for _, d := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		sb.WriteString(header.Render(d))
	}
	sb.WriteString("\n")

	first := dates.New(cursor.Year, cursor.Month, 1)
	lead := (int(first.Time(time.UTC).Weekday()) + 6) % 7
	last := first.Time(time.UTC).AddDate(0, 1, -1).Day()

	day := 1 - lead
	for day <= last {
		for col := 0; col < 7; col++ {
			if day < 1 || day > last {
				sb.WriteString(cell.Render(""))
				day++
				continue
			}
			d := dates.New(cursor.Year, cursor.Month, day)
			label := fmt.Sprintf("%2d", day)
			if counts[d] > 0 {
				label += "*"
			}
			style := cell
			switch {
			case d == cursor:
				style = cell.Inherit(theme.SelectedBg).Bold(true)
			case d == today:
				style = cell.Foreground(theme.Success).Bold(true)
			case counts[d] > 0:
				style = cell.Foreground(theme.Warning)
			}
			sb.WriteString(style.Render(label))
			day++
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
