package tasks

import (
	"cmp"
	"fmt"
	"strings"

	"projector/internal/listview"
)

type SortKey string

const (
	SortProgress  SortKey = "progress"
	SortTitle     SortKey = "title"
	SortCreatedAt SortKey = "createdAt"
	SortDate      SortKey = "date"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortProgress, SortTitle, SortCreatedAt, SortDate:
		return k, nil
	}
	return "", fmt.Errorf("invalid sort key %q (want progress, title, createdAt or date)", s)
}

type Filter struct {
	Platform string // empty or "all" means any
	Search   string
}

type Order struct {
	Key       SortKey
	Direction listview.Direction
}

func platformPredicate[T any](platform string, of func(T) string) listview.Predicate[T] {
	if listview.IsAll(platform) {
		return nil
	}
	return func(t T) bool { return strings.EqualFold(of(t), platform) }
}

// ApplyTasks filters and sorts tasks.
func ApplyTasks(items []Task, f Filter, o Order) []Task {
	q := listview.Query[Task]{
		Filters: []listview.Predicate[Task]{
			platformPredicate(f.Platform, func(t Task) string { return t.Platform }),
			func(t Task) bool { return listview.MatchAny(f.Search, t.Title, t.Description) },
		},
		Direction: o.Direction,
	}
	switch o.Key {
	case SortProgress:
		q.Compare = func(a, b Task) int { return cmp.Compare(a.Progress, b.Progress) }
	case SortTitle:
		q.Compare = func(a, b Task) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case SortCreatedAt, SortDate:
		q.Compare = func(a, b Task) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
	return listview.Apply(items, q)
}

// ApplyTrending filters by platform and orders by one of the trending sort
// options: progress (highest first), title (A-Z) or date (newest first).
func ApplyTrending(items []TrendingTask, platform string, key SortKey) []TrendingTask {
	q := listview.Query[TrendingTask]{
		Filters: []listview.Predicate[TrendingTask]{
			platformPredicate(platform, func(t TrendingTask) string { return t.Platform }),
		},
	}
	switch key {
	case SortProgress:
		q.Compare = func(a, b TrendingTask) int { return cmp.Compare(a.Progress, b.Progress) }
		q.Direction = listview.Desc
	case SortTitle:
		q.Compare = func(a, b TrendingTask) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case SortDate, SortCreatedAt:
		q.Compare = func(a, b TrendingTask) int {
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
				return c
			}
			return compareNumericID(a.ID, b.ID)
		}
		q.Direction = listview.Desc
	}
	return listview.Apply(items, q)
}

// compareNumericID orders seeded numeric ids numerically and falls back to
// string order.
func compareNumericID(a, b string) int {
	if len(a) != len(b) {
		return cmp.Compare(len(a), len(b))
	}
	return cmp.Compare(a, b)
}

// PlatformsOf lists distinct platforms in first-seen order.
func PlatformsOf[T any](items []T, of func(T) string) []string {
	return listview.Unique(items, of)
}
