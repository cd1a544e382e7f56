package notes

import (
	"projector/internal/listview"
)

type Filter struct {
	Search   string
	Category string // "all" or empty means any
}

// Apply filters notes and orders them pinned first, newest first.
func Apply(notes []Note, f Filter) []Note {
	q := listview.Query[Note]{
		Filters: []listview.Predicate[Note]{
			func(n Note) bool { return listview.ContainsFold(n.Text, f.Search) },
			categoryPredicate(f.Category),
		},
		Compare: func(a, b Note) int {
			if a.Pinned != b.Pinned {
				if a.Pinned {
					return -1
				}
				return 1
			}
			return b.CreatedAt.Compare(a.CreatedAt)
		},
	}
	return listview.Apply(notes, q)
}

func categoryPredicate(c string) listview.Predicate[Note] {
	if listview.IsAll(c) {
		return nil
	}
	return func(n Note) bool { return n.Category == c }
}

// UniqueCategories lists the categories in use, first-seen order.
func UniqueCategories(notes []Note) []string {
	return listview.Unique(notes, func(n Note) string { return n.Category })
}
