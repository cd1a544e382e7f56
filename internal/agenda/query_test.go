package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projector/internal/dates"
	"projector/internal/goals"
	"projector/internal/notes"
)

func datePtr(y int, m time.Month, d int) *dates.Date {
	v := dates.New(y, m, d)
	return &v
}

func TestRanges(t *testing.T) {
	// Wednesday
	wed := time.Date(2025, 4, 16, 15, 0, 0, 0, time.UTC)

	day := DayRange(wed)
	assert.Equal(t, day.Start, day.End)

	week := WeekRange(wed)
	assert.Equal(t, dates.New(2025, time.April, 14), week.Start)
	assert.Equal(t, dates.New(2025, time.April, 20), week.End)
	assert.Len(t, week.Days(), 7)

	sunday := time.Date(2025, 4, 20, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, week, WeekRange(sunday))

	month := MonthRange(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, dates.New(2024, time.February, 1), month.Start)
	assert.Equal(t, dates.New(2024, time.February, 29), month.End)
}

func TestQueryBuckets(t *testing.T) {
	wed := dates.New(2025, time.April, 16)
	thu := wed.AddDays(1)
	evs := []Event{
		{ID: "a", Title: "Late", Time: "17:00", Date: wed},
		{ID: "b", Title: "Early", Time: "08:00", Date: wed},
		{ID: "c", Title: "Next week", Time: "08:00", Date: wed.AddDays(7)},
	}
	gs := []goals.Goal{
		{ID: "1", Text: "Open", DueDate: &thu},
		{ID: "2", Text: "Done", DueDate: &thu, Completed: true},
		{ID: "3", Text: "Undated"},
	}
	ns := []notes.Note{
		{ID: "n", Text: "# Standup notes", CreatedAt: time.Date(2025, 4, 14, 12, 0, 0, 0, time.Local)},
	}

	buckets := Query(WeekRange(wed.Time(time.UTC)), evs, gs, ns)
	require.Len(t, buckets, 3)

	assert.Equal(t, dates.New(2025, time.April, 14), buckets[0].Date)
	require.Len(t, buckets[0].Notes, 1)
	assert.Equal(t, "Standup notes", buckets[0].Notes[0].Title())

	assert.Equal(t, wed, buckets[1].Date)
	require.Len(t, buckets[1].Events, 2)
	assert.Equal(t, "08:00 Early", buckets[1].Events[0].Title())

	assert.Equal(t, thu, buckets[2].Date)
	assert.Len(t, buckets[2].Goals, 1)
	assert.Len(t, buckets[2].CompletedGoals, 1)
	assert.Equal(t, 2, buckets[2].TotalCount())
	assert.Len(t, buckets[2].AllItems(), 1)
}

func TestOverdue(t *testing.T) {
	gs := []goals.Goal{
		{ID: "1", Text: "b", DueDate: datePtr(2025, time.April, 10)},
		{ID: "2", Text: "a", DueDate: datePtr(2025, time.April, 1)},
		{ID: "3", Text: "done", DueDate: datePtr(2025, time.April, 1), Completed: true},
		{ID: "4", Text: "today", DueDate: datePtr(2025, time.April, 16)},
		{ID: "5", Text: "none"},
	}
	items := Overdue(gs, dates.New(2025, time.April, 16))
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Title())
	assert.Equal(t, "b", items[1].Title())
}
