package agenda

import (
	"strconv"
	"strings"

	"projector/internal/dates"
)

// Event is a calendar entry on a single day.
type Event struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Time         string     `json:"time"`
	Date         dates.Date `json:"date"`
	Duration     string     `json:"duration"`
	Location     string     `json:"location,omitempty"`
	Participants []string   `json:"participants"`
}

// EventForm holds the raw add/edit form fields. Participants is a
// comma-separated list.
type EventForm struct {
	Title        string
	Time         string
	Duration     string
	Location     string
	Participants string
}

// FormOf turns an event back into editable form fields.
func FormOf(e Event) EventForm {
	return EventForm{
		Title:        e.Title,
		Time:         e.Time,
		Duration:     e.Duration,
		Location:     e.Location,
		Participants: strings.Join(e.Participants, ", "),
	}
}

// ParseParticipants splits on commas, trims and drops empty names.
func ParseParticipants(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TimeValue turns "HH:MM" into an HHMM integer for ordering. Unparsable
// times sort last.
func TimeValue(t string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(t), ":", ""))
	if err != nil {
		return 1 << 30
	}
	return n
}

func normalize(e *Event) {
	if e.Participants == nil {
		e.Participants = []string{}
	}
	e.Location = strings.TrimSpace(e.Location)
}

func defaultEvents(today dates.Date) []Event {
	return []Event{
		{ID: "1", Title: "Team Meeting", Time: "10:00", Date: today, Duration: "1 hour", Location: "Conference Room A",
			Participants: []string{"Alex", "Emma", "John"}},
		{ID: "2", Title: "Project Review", Time: "14:00", Date: today, Duration: "45 min", Location: "Zoom Call",
			Participants: []string{"Emma", "Robert"}},
		{ID: "3", Title: "Client Call", Time: "16:30", Date: today, Duration: "30 min", Location: "Phone",
			Participants: []string{"You"}},
	}
}
