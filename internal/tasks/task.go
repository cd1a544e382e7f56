package tasks

import (
	"strings"
	"time"

	"projector/internal/dates"
	"projector/internal/team"
)

const DefaultDueTime = "24:00:00"

var Platforms = []string{"Dribbble", "Behance", "Roman IT Internal"}

// Task is a dashboard task with numeric progress.
type Task struct {
	ID          string        `json:"id"`
	Platform    string        `json:"platform"`
	Title       string        `json:"title"`
	Progress    int           `json:"progress"`
	DueTime     string        `json:"dueTime"`
	Assignees   []team.Member `json:"assignees"`
	Description string        `json:"description,omitempty"`
	Priority    string        `json:"priority,omitempty"`
	CreatedAt   time.Time     `json:"createdAt,omitzero"`
}

func (t Task) Done() bool { return t.Progress >= 100 }

// NewTask carries the fields of the new-task form.
type NewTask struct {
	Title       string
	Platform    string
	Description string
	Priority    string
	DueTime     string
	Assignee    *team.Member
}

// TrendingTask tracks elapsed time instead of a due time.
type TrendingTask struct {
	ID          string        `json:"id"`
	Platform    string        `json:"platform"`
	Title       string        `json:"title"`
	Progress    int           `json:"progress"`
	TimeSpent   string        `json:"timeSpent"`
	DueDate     *dates.Date   `json:"dueDate,omitempty"`
	Description string        `json:"description,omitempty"`
	Assignees   []team.Member `json:"assignees"`
	CreatedAt   time.Time     `json:"createdAt,omitzero"`
}

// NewTrendingTask carries the fields of the trending add form.
type NewTrendingTask struct {
	Title       string
	Platform    string
	DueDate     *dates.Date
	Description string
	Assignee    *team.Member
}

// ClampProgress bounds p to 0..100.
func ClampProgress(p int) int {
	return min(max(p, 0), 100)
}

func normalizeTask(t *Task) {
	t.Progress = ClampProgress(t.Progress)
	if strings.TrimSpace(t.DueTime) == "" {
		t.DueTime = DefaultDueTime
	}
	if t.Assignees == nil {
		t.Assignees = []team.Member{}
	}
}

func normalizeTrending(t *TrendingTask) {
	t.Progress = ClampProgress(t.Progress)
	if _, err := ParseClock(t.TimeSpent); err != nil {
		t.TimeSpent = FormatClock(0)
	}
	t.DueDate = dates.Normalize(t.DueDate)
	if t.Assignees == nil {
		t.Assignees = []team.Member{}
	}
}

func defaultTasks() []Task {
	return []Task{
		{ID: "1", Platform: "Dribbble", Title: "Banking app shot", Progress: 43, DueTime: "23:00:57",
			Assignees: []team.Member{team.Niranjan}},
		{ID: "2", Platform: "Behance", Title: "Geological website case", Progress: 67, DueTime: "16:20:32",
			Assignees: []team.Member{team.Niranjan, team.AlexJohnson, team.EmilyWong}},
	}
}

func defaultTrending() []TrendingTask {
	return []TrendingTask{
		{ID: "1", Platform: "Dribbble", Title: "Banking App Animation", Progress: 12, TimeSpent: "10:48:14",
			Assignees: []team.Member{team.Niranjan, team.AlexJohnson}},
		{ID: "2", Platform: "Behance", Title: "AI chat app case", Progress: 36, TimeSpent: "6:30:43",
			Assignees: []team.Member{team.Niranjan}},
		{ID: "3", Platform: "Roman IT Internal", Title: "Logotype design", Progress: 98, TimeSpent: "24:05:09",
			Assignees: []team.Member{team.EmilyWong}},
	}
}
