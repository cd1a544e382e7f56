package agenda

import (
	"slices"
	"time"

	"projector/internal/dates"
	"projector/internal/goals"
	"projector/internal/notes"
)

// ItemSource identifies what an agenda item wraps
type ItemSource int

const (
	SourceEvent ItemSource = iota
	SourceGoal
	SourceNote
)

func (s ItemSource) String() string {
	switch s {
	case SourceEvent:
		return "event"
	case SourceGoal:
		return "due"
	case SourceNote:
		return "note"
	default:
		return ""
	}
}

// AgendaItem wraps an event, a goal due date or a note with its day.
type AgendaItem struct {
	Source    ItemSource
	Date      dates.Date
	Event     *Event
	Goal      *goals.Goal
	Note      *notes.Note
	Completed bool
}

// Title is the one-line label of the wrapped item.
func (it AgendaItem) Title() string {
	switch {
	case it.Event != nil:
		return it.Event.Time + " " + it.Event.Title
	case it.Goal != nil:
		return it.Goal.Text
	case it.Note != nil:
		return notes.Headline(it.Note.Text)
	}
	return ""
}

// DateBucket groups agenda items by date
type DateBucket struct {
	Date           dates.Date
	Events         []AgendaItem
	Goals          []AgendaItem
	Notes          []AgendaItem
	CompletedGoals []AgendaItem
}

// AllItems returns events first, then goals, then notes.
func (b DateBucket) AllItems() []AgendaItem {
	items := make([]AgendaItem, 0, len(b.Events)+len(b.Goals)+len(b.Notes))
	items = append(items, b.Events...)
	items = append(items, b.Goals...)
	items = append(items, b.Notes...)
	return items
}

// TotalCount includes completed goals.
func (b DateBucket) TotalCount() int {
	return len(b.Events) + len(b.Goals) + len(b.Notes) + len(b.CompletedGoals)
}

// DateRange is an inclusive span of days.
type DateRange struct {
	Start dates.Date
	End   dates.Date
}

func (r DateRange) Contains(d dates.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days lists every day in the range.
func (r DateRange) Days() []dates.Date {
	var out []dates.Date
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// DayRange returns a DateRange for a single day
func DayRange(date time.Time) DateRange {
	d := dates.FromTime(date)
	return DateRange{Start: d, End: d}
}

// WeekRange returns a DateRange for the week containing the given date (Mon-Sun)
func WeekRange(date time.Time) DateRange {
	weekday := date.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	monday := dates.FromTime(date).AddDays(-int(weekday - time.Monday))
	return DateRange{Start: monday, End: monday.AddDays(6)}
}

// MonthRange returns a DateRange for the entire month containing the given date
func MonthRange(date time.Time) DateRange {
	start := dates.New(date.Year(), date.Month(), 1)
	end := dates.FromTime(start.Time(time.UTC).AddDate(0, 1, -1))
	return DateRange{Start: start, End: end}
}

// Query buckets events, goal due dates and note creation days that fall in
// r. Buckets are ordered by date; events within a bucket by start time.
func Query(r DateRange, evs []Event, allGoals []goals.Goal, allNotes []notes.Note) []DateBucket {
	bucketMap := make(map[dates.Date]*DateBucket)
	bucket := func(d dates.Date) *DateBucket {
		b, ok := bucketMap[d]
		if !ok {
			b = &DateBucket{Date: d}
			bucketMap[d] = b
		}
		return b
	}

	for _, d := range r.Days() {
		for _, e := range OnDate(evs, d) {
			b := bucket(d)
			b.Events = append(b.Events, AgendaItem{Source: SourceEvent, Date: d, Event: &e})
		}
	}

	for i := range allGoals {
		g := &allGoals[i]
		if g.DueDate == nil || !r.Contains(*g.DueDate) {
			continue
		}
		b := bucket(*g.DueDate)
		item := AgendaItem{Source: SourceGoal, Date: *g.DueDate, Goal: g, Completed: g.Completed}
		if g.Completed {
			b.CompletedGoals = append(b.CompletedGoals, item)
		} else {
			b.Goals = append(b.Goals, item)
		}
	}

	for i := range allNotes {
		n := &allNotes[i]
		d := dates.FromTime(n.CreatedAt.Local())
		if !r.Contains(d) {
			continue
		}
		b := bucket(d)
		b.Notes = append(b.Notes, AgendaItem{Source: SourceNote, Date: d, Note: n})
	}

	buckets := make([]DateBucket, 0, len(bucketMap))
	for _, b := range bucketMap {
		buckets = append(buckets, *b)
	}
	slices.SortFunc(buckets, func(a, b DateBucket) int { return a.Date.Compare(b.Date) })
	return buckets
}

// Overdue returns incomplete goals due strictly before cutoff, oldest first.
func Overdue(allGoals []goals.Goal, cutoff dates.Date) []AgendaItem {
	var items []AgendaItem
	for i := range allGoals {
		g := &allGoals[i]
		if g.Completed || g.DueDate == nil || !g.DueDate.Before(cutoff) {
			continue
		}
		items = append(items, AgendaItem{Source: SourceGoal, Date: *g.DueDate, Goal: g})
	}
	slices.SortStableFunc(items, func(a, b AgendaItem) int { return a.Date.Compare(b.Date) })
	return items
}
