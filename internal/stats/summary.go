package stats

import (
	"projector/internal/agenda"
	"projector/internal/dates"
	"projector/internal/goals"
	"projector/internal/notes"
	"projector/internal/tasks"
)

// Summary holds live counts computed from the stored lists.
type Summary struct {
	Tasks          int
	TasksDone      int
	AvgProgress    int
	Goals          int
	GoalsDone      int
	GoalCompletion int
	OverdueGoals   int
	Notes          int
	PinnedNotes    int
	EventsToday    int
}

func Summarize(ts []tasks.Task, gs []goals.Goal, ns []notes.Note, evs []agenda.Event, today dates.Date) Summary {
	s := Summary{
		Tasks:          len(ts),
		Goals:          len(gs),
		Notes:          len(ns),
		GoalCompletion: goals.CompletionPercentage(gs),
		OverdueGoals:   len(agenda.Overdue(gs, today)),
		EventsToday:    len(agenda.OnDate(evs, today)),
	}
	progress := 0
	for _, t := range ts {
		progress += t.Progress
		if t.Done() {
			s.TasksDone++
		}
	}
	if len(ts) > 0 {
		s.AvgProgress = progress / len(ts)
	}
	for _, g := range gs {
		if g.Completed {
			s.GoalsDone++
		}
	}
	for _, n := range ns {
		if n.Pinned {
			s.PinnedNotes++
		}
	}
	return s
}
