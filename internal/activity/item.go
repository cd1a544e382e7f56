package activity

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"projector/internal/events"
)

// Types an activity item can carry.
const (
	TypeNote      = "note"
	TypeGoal      = "goal"
	TypeTask      = "task"
	TypeMeeting   = "meeting"
	TypeAnalytics = "analytics"
)

var Types = []string{TypeNote, TypeGoal, TypeTask, TypeMeeting, TypeAnalytics}

const maxItems = 200

type User struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Item struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	User        User      `json:"user"`
}

// Icon is the single-glyph marker shown next to an item.
func (it Item) Icon() string {
	switch it.Type {
	case TypeNote:
		return "✎"
	case TypeGoal:
		return "◎"
	case TypeTask:
		return "☐"
	case TypeMeeting:
		return "◷"
	case TypeAnalytics:
		return "▤"
	default:
		return "•"
	}
}

// FromEvent turns a recorded action into a history item.
func FromEvent(id string, e events.ActivityRecorded, at time.Time) Item {
	title := upperFirst(e.Action)
	desc := title
	if e.Target != "" {
		desc = title + `: "` + e.Target + `"`
	}
	return Item{
		ID:          id,
		Type:        e.Type,
		Title:       title,
		Description: desc,
		Timestamp:   at,
		User:        User{Name: e.Actor.Name, Avatar: e.Actor.AvatarURL},
	}
}

func upperFirst(s string) string {
	s = strings.TrimSpace(s)
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func defaultItems(now time.Time) []Item {
	yesterday := now.AddDate(0, 0, -1)
	twoDaysAgo := now.AddDate(0, 0, -2)
	avatar := func(u string) string { return "https://i.pravatar.cc/150?u=" + u }
	return []Item{
		{ID: "1", Type: TypeNote, Title: "Note created", Description: `Created a new note: "Update wireframes for mobile app"`,
			Timestamp: now, User: User{Name: "Alex Johnson", Avatar: avatar("alex")}},
		{ID: "2", Type: TypeGoal, Title: "Goal completed", Description: `Completed goal: "Complete project proposal"`,
			Timestamp: now, User: User{Name: "You", Avatar: avatar("you")}},
		{ID: "3", Type: TypeMeeting, Title: "Meeting scheduled", Description: "Team meeting scheduled for tomorrow at 10:00 AM",
			Timestamp: yesterday, User: User{Name: "Emma Watson", Avatar: avatar("emma")}},
		{ID: "4", Type: TypeTask, Title: "Task assigned", Description: `You were assigned to "Design new landing page"`,
			Timestamp: yesterday, User: User{Name: "James Smith", Avatar: avatar("james")}},
		{ID: "5", Type: TypeAnalytics, Title: "Weekly report", Description: "Your productivity increased by 15% this week",
			Timestamp: twoDaysAgo, User: User{Name: "System", Avatar: avatar("system")}},
		{ID: "6", Type: TypeNote, Title: "Note updated", Description: `Updated note: "Schedule meeting with design team"`,
			Timestamp: twoDaysAgo, User: User{Name: "You", Avatar: avatar("you")}},
	}
}
