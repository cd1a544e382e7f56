package goals

import (
	"cmp"
	"fmt"
	"math"

	"projector/internal/listview"
)

type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type SortKey string

const (
	SortDueDate   SortKey = "dueDate"
	SortPriority  SortKey = "priority"
	SortCreatedAt SortKey = "createdAt"
)

var SortKeys = []SortKey{SortDueDate, SortPriority, SortCreatedAt}

func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q (want dueDate, priority or createdAt)", s)
}

type Filter struct {
	Status   Status
	Priority Priority // empty means any
}

type Order struct {
	Key       SortKey
	Direction listview.Direction
}

// DefaultOrder sorts by due date ascending.
var DefaultOrder = Order{Key: SortDueDate, Direction: listview.Asc}

// Apply filters and sorts goals without modifying them.
func Apply(goals []Goal, f Filter, o Order) []Goal {
	q := listview.Query[Goal]{
		Filters: []listview.Predicate[Goal]{
			statusPredicate(f.Status),
			priorityPredicate(f.Priority),
		},
		Direction: o.Direction,
	}
	switch o.Key {
	case SortDueDate:
		q.Compare = func(a, b Goal) int { return a.DueDate.Compare(*b.DueDate) }
		q.Trailing = func(g Goal) bool { return g.DueDate == nil }
	case SortPriority:
		q.Compare = func(a, b Goal) int { return cmp.Compare(a.Priority.Rank(), b.Priority.Rank()) }
	case SortCreatedAt:
		q.Compare = func(a, b Goal) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
	return listview.Apply(goals, q)
}

func statusPredicate(s Status) listview.Predicate[Goal] {
	switch s {
	case StatusActive:
		return func(g Goal) bool { return !g.Completed }
	case StatusCompleted:
		return func(g Goal) bool { return g.Completed }
	}
	return nil
}

func priorityPredicate(p Priority) listview.Predicate[Goal] {
	if listview.IsAll(string(p)) {
		return nil
	}
	return func(g Goal) bool { return g.Priority == p }
}

// CompletionPercentage rounds completed/total to a whole percent; 0 for an
// empty list.
func CompletionPercentage(goals []Goal) int {
	if len(goals) == 0 {
		return 0
	}
	done := 0
	for _, g := range goals {
		if g.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(goals)) * 100))
}
