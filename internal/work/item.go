// Package work tracks deliverables whose progress is a fractional string
// such as "3/10".
package work

import (
	"fmt"
	"strconv"
	"strings"

	"projector/internal/team"
)

const (
	DefaultPath     = "Projects / New"
	DefaultProgress = "0/10"
	DefaultTagColor = "bg-blue-200 text-blue-800"
	dateLayout      = "January 2"
)

type Tag struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

type Item struct {
	ID          string        `json:"id"`
	Path        string        `json:"path"`
	Title       string        `json:"title"`
	Progress    string        `json:"progress"`
	Date        string        `json:"date"`
	Description string        `json:"description,omitempty"`
	Assignees   []team.Member `json:"assignees"`
	Tags        []Tag         `json:"tags,omitempty"`
}

// Percent interprets Progress as "done/total". ok is false when it does not
// parse or total is zero.
func (it Item) Percent() (pct int, ok bool) {
	done, total, err := ParseProgress(it.Progress)
	if err != nil || total == 0 {
		return 0, false
	}
	return min(done*100/total, 100), true
}

type NewItem struct {
	Path        string
	Title       string
	Progress    string
	Date        string
	Description string
	Assignee    *team.Member
}

// ParseProgress splits "n/m" into its parts.
func ParseProgress(s string) (done, total int, err error) {
	a, b, found := strings.Cut(strings.TrimSpace(s), "/")
	if !found {
		return 0, 0, fmt.Errorf("invalid progress %q, use done/total", s)
	}
	done, err1 := strconv.Atoi(strings.TrimSpace(a))
	total, err2 := strconv.Atoi(strings.TrimSpace(b))
	if err1 != nil || err2 != nil || done < 0 || total < 0 {
		return 0, 0, fmt.Errorf("invalid progress %q, use done/total", s)
	}
	return done, total, nil
}

func normalize(it *Item) {
	if strings.TrimSpace(it.Path) == "" {
		it.Path = DefaultPath
	}
	if strings.TrimSpace(it.Progress) == "" {
		it.Progress = DefaultProgress
	}
	if it.Assignees == nil {
		it.Assignees = []team.Member{}
	}
	for i := range it.Tags {
		if it.Tags[i].Color == "" {
			it.Tags[i].Color = DefaultTagColor
		}
	}
}

func avatarOnly(m team.Member) team.Member {
	return team.Member{ID: m.ID, AvatarURL: m.AvatarURL}
}

func defaultItems() []Item {
	return []Item{
		{ID: "1", Path: "Publications / Shots / Dribbble", Title: "Dribbble: Banking app shot", Progress: "3/10", Date: "July 22",
			Assignees: []team.Member{avatarOnly(team.Niranjan), avatarOnly(team.AlexJohnson), avatarOnly(team.EmilyWong)}},
		{ID: "2", Path: "Publications / Shots / Behance", Title: "Behance: Mobile delivery app", Progress: "1/8", Date: "July 24",
			Assignees: []team.Member{avatarOnly(team.Niranjan), avatarOnly(team.EmilyWong)}},
		{ID: "3", Path: "Internal / Events / Design", Title: "Event: User research methods", Progress: "2/14", Date: "July 26",
			Assignees: []team.Member{avatarOnly(team.Niranjan), avatarOnly(team.EmilyWong)},
			Tags:      []Tag{{Text: "3", Color: "bg-green-200 text-green-800"}}},
	}
}
