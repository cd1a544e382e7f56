// Package team holds the person records embedded in tasks and work items.
package team

// Member is an assignee. Records are copied into each list, not referenced.
type Member struct {
	ID        string `json:"id,omitempty"`
	AvatarURL string `json:"avatarUrl"`
	Name      string `json:"name,omitempty"`
}

// Initials returns up to two initials for a compact avatar.
func (m Member) Initials() string {
	var out []rune
	prev := ' '
	for _, r := range m.Name {
		if prev == ' ' && r != ' ' {
			out = append(out, r)
			if len(out) == 2 {
				break
			}
		}
		prev = r
	}
	return string(out)
}

// Names lists member names, skipping blanks.
func Names(members []Member) []string {
	var out []string
	for _, m := range members {
		if m.Name != "" {
			out = append(out, m.Name)
		}
	}
	return out
}

const DefaultAvatarURL = "/uploads/6653e968-d824-406d-a044-035175d60980.png"

// Seed members referenced by the default lists.
var (
	Niranjan    = Member{ID: "1", AvatarURL: DefaultAvatarURL, Name: "Niranjan"}
	AlexJohnson = Member{ID: "2", AvatarURL: "https://i.pravatar.cc/150?u=alex", Name: "Alex Johnson"}
	EmilyWong   = Member{ID: "3", AvatarURL: "https://i.pravatar.cc/150?u=james", Name: "Emily Wong"}
)
