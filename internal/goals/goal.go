package goals

import (
	"fmt"
	"strings"
	"time"

	"projector/internal/dates"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank orders priorities: high=3, medium=2, low=1.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func (p Priority) Valid() bool { return p.Rank() > 0 }

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q (want low, medium or high)", s)
	}
	return p, nil
}

const DefaultCategory = "personal"

var Categories = []string{"personal", "work", "health", "education", "finance"}

type Goal struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Completed bool        `json:"completed"`
	Priority  Priority    `json:"priority"`
	DueDate   *dates.Date `json:"dueDate"`
	Category  string      `json:"category"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewGoal carries the fields a user fills in when adding or editing a goal.
type NewGoal struct {
	Text     string
	Priority Priority
	DueDate  *dates.Date
	Category string
}

// normalize is applied to every goal read from storage.
func normalize(g *Goal) {
	if !g.Priority.Valid() {
		g.Priority = PriorityMedium
	}
	if strings.TrimSpace(g.Category) == "" {
		g.Category = DefaultCategory
	}
	g.DueDate = dates.Normalize(g.DueDate)
}

func datePtr(y int, m time.Month, d int) *dates.Date {
	v := dates.New(y, m, d)
	return &v
}

func defaultGoals(now time.Time) []Goal {
	return []Goal{
		{ID: "1", Text: "Complete project proposal", Completed: true, Priority: PriorityHigh, DueDate: datePtr(2025, time.April, 20), Category: "work", CreatedAt: now},
		{ID: "2", Text: "Review design feedback", Priority: PriorityMedium, DueDate: datePtr(2025, time.April, 18), Category: "work", CreatedAt: now},
		{ID: "3", Text: "Prepare for client meeting", Priority: PriorityHigh, DueDate: datePtr(2025, time.April, 16), Category: "work", CreatedAt: now},
		{ID: "4", Text: "Daily exercise routine", Priority: PriorityLow, Category: "health", CreatedAt: now},
	}
}
