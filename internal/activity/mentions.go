package activity

import (
	"strings"

	"projector/internal/listview"
)

// Mention is a comment addressed to the signed-in user.
type Mention struct {
	ID        int
	Author    string
	AvatarURL string
	Content   string
	Project   string
	Time      string
}

const mentionPlaceholder = "@you"

var mentions = []Mention{
	{ID: 1, Author: "Alex Morgan", AvatarURL: "https://i.pravatar.cc/150?u=you",
		Content: "Hey @you, can you review the latest design files I uploaded?", Project: "Banking App", Time: "2 hours ago"},
	{ID: 2, Author: "Emily Wong", AvatarURL: "https://i.pravatar.cc/150?u=james",
		Content: "@you I need your feedback on the typography choices for the homepage.", Project: "Geological Website", Time: "Yesterday"},
	{ID: 3, Author: "James Wilson", AvatarURL: "https://i.pravatar.cc/150?u=system",
		Content: "Let's schedule a meeting tomorrow @you to discuss the user flow.", Project: "Mobile Delivery App", Time: "2 days ago"},
}

// Mentions returns the mention feed addressed to userName's first name.
func Mentions(userName string) []Mention {
	handle := "@" + FirstName(userName)
	out := make([]Mention, len(mentions))
	for i, m := range mentions {
		m.Content = strings.ReplaceAll(m.Content, mentionPlaceholder, handle)
		out[i] = m
	}
	return out
}

// SearchMentions filters by content, author or project.
func SearchMentions(ms []Mention, query string) []Mention {
	return listview.Filter(ms, func(m Mention) bool {
		return listview.MatchAny(query, m.Content, m.Author, m.Project)
	})
}

// FirstName is the first word of name, or "You" when name is blank.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "You"
	}
	return fields[0]
}
