package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"projector/internal/agenda"
	"projector/internal/dates"
	"projector/internal/goals"
	"projector/internal/notes"
	"projector/internal/tasks"
)

func TestSummarize(t *testing.T) {
	today := dates.New(2025, time.April, 16)
	past := today.AddDays(-3)

	s := Summarize(
		[]tasks.Task{{ID: "1", Progress: 100}, {ID: "2", Progress: 50}},
		[]goals.Goal{{ID: "1", Completed: true}, {ID: "2", DueDate: &past}, {ID: "3"}, {ID: "4"}},
		[]notes.Note{{ID: "1", Pinned: true}, {ID: "2"}},
		[]agenda.Event{{ID: "1", Date: today, Time: "10:00"}, {ID: "2", Date: past, Time: "10:00"}},
		today,
	)
	assert.Equal(t, Summary{
		Tasks:          2,
		TasksDone:      1,
		AvgProgress:    75,
		Goals:          4,
		GoalsDone:      1,
		GoalCompletion: 25,
		OverdueGoals:   1,
		Notes:          2,
		PinnedNotes:    1,
		EventsToday:    1,
	}, s)

	assert.Equal(t, Summary{}, Summarize(nil, nil, nil, nil, today))
}
