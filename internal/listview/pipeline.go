// Package listview implements the filter, sort and group pipeline shared by
// every list screen.
package listview

import (
	"slices"
	"strings"
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

func ParseDirection(s string) Direction {
	if strings.EqualFold(s, "desc") {
		return Desc
	}
	return Asc
}

// Predicate reports whether an item passes a filter. A nil predicate is
// inactive.
type Predicate[T any] func(T) bool

// Compare orders two items the way cmp.Compare does.
type Compare[T any] func(a, b T) int

type Query[T any] struct {
	Filters   []Predicate[T]
	Compare   Compare[T]
	Direction Direction
	// Trailing items sort after all others regardless of Direction.
	Trailing Predicate[T]
}

// Apply filters and sorts a copy of items. The source slice is never
// modified and ties keep input order.
func Apply[T any](items []T, q Query[T]) []T {
	out := Filter(items, q.Filters...)
	if q.Compare == nil && q.Trailing == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b T) int {
		if q.Trailing != nil {
			ta, tb := q.Trailing(a), q.Trailing(b)
			if ta != tb {
				if ta {
					return 1
				}
				return -1
			}
			if ta {
				return 0
			}
		}
		if q.Compare == nil {
			return 0
		}
		c := q.Compare(a, b)
		if q.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

// Filter returns the items passing every non-nil predicate, in input order.
// The result is never nil.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if passes(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func passes[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// ContainsFold is a case-insensitive substring match. An empty query
// matches everything.
func ContainsFold(field, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(query))
}

// MatchAny reports whether query occurs in any of fields.
func MatchAny(query string, fields ...string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	for _, f := range fields {
		if ContainsFold(f, query) {
			return true
		}
	}
	return false
}

// Deref returns "" for a nil string pointer.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsAll reports whether a select value means "no filter".
func IsAll(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

// Unique returns the distinct non-empty keys of items in first-seen order.
func Unique[T any](items []T, key func(T) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range items {
		k := key(item)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
