package dates

import (
	"fmt"
	"time"
)

// Relative labels a due date as Today, Tomorrow or "Jan 2". The year is
// appended when it differs from now's year.
func Relative(d Date, today Date) string {
	switch today.DaysBetween(d) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	t := d.Time(time.UTC)
	if d.Year != today.Year {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}

// DaysUntil describes how far away d is.
func DaysUntil(d Date, today Date) string {
	n := today.DaysBetween(d)
	switch {
	case n < 0:
		return "Overdue"
	case n == 0:
		return "Due today"
	case n == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("%d days left", n)
	}
}

// Overdue reports whether d is strictly before today.
func Overdue(d Date, today Date) bool {
	return d.Before(today)
}
