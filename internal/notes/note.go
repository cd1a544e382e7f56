package notes

import (
	"strings"
	"time"
)

const DefaultCategory = "general"

var Categories = []string{"general", "work", "personal", "ideas", "important"}

// Note is a short user note. Text may contain markdown.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"createdAt"`
}

func normalize(n *Note) {
	if strings.TrimSpace(n.Category) == "" {
		n.Category = DefaultCategory
	}
}

func defaultNotes(now time.Time) []Note {
	return []Note{
		{ID: "1", Text: "Update wireframes for mobile app", Category: "work", Pinned: true, CreatedAt: now},
		{ID: "2", Text: "Schedule meeting with design team", Category: "general", CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "3", Text: "Buy groceries for the week", Category: "personal", CreatedAt: now.Add(-48 * time.Hour)},
	}
}
