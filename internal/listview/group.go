package listview

import (
	"slices"
	"time"

	"projector/internal/dates"
)

const dayLabelLayout = "Monday, January 2, 2006"

type Group[T any] struct {
	Label string
	Day   dates.Date
	Items []T
}

// GroupByDay buckets items by the calendar day of dayOf (in now's location).
// Buckets are ordered newest first and items keep input order within a
// bucket. Today and yesterday get relative labels.
func GroupByDay[T any](items []T, dayOf func(T) time.Time, now time.Time) []Group[T] {
	loc := now.Location()
	buckets := make(map[dates.Date]*Group[T])
	for _, item := range items {
		day := dates.FromTime(dayOf(item).In(loc))
		g, ok := buckets[day]
		if !ok {
			g = &Group[T]{Day: day, Label: DayLabel(day, now)}
			buckets[day] = g
		}
		g.Items = append(g.Items, item)
	}

	groups := make([]Group[T], 0, len(buckets))
	for _, g := range buckets {
		groups = append(groups, *g)
	}
	slices.SortFunc(groups, func(a, b Group[T]) int {
		return b.Day.Compare(a.Day)
	})
	return groups
}

// DayLabel renders a bucket heading.
func DayLabel(day dates.Date, now time.Time) string {
	today := dates.FromTime(now)
	switch {
	case day == today:
		return "Today"
	case day == today.AddDays(-1):
		return "Yesterday"
	default:
		return day.Time(time.UTC).Format(dayLabelLayout)
	}
}
