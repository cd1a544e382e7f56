// Package gallery holds the showcase items listed on the Dribbble and
// Behance pages.
package gallery

import (
	"cmp"
	"slices"
	"strings"

	"projector/internal/listview"
)

type Platform string

const (
	Dribbble Platform = "dribbble"
	Behance  Platform = "behance"
)

type Order string

const (
	OrderNone          Order = ""
	OrderPopular       Order = "popular"
	OrderRecent        Order = "recent"
	OrderTrending      Order = "trending"
	OrderMostCommented Order = "mostCommented"
)

var Orders = []Order{OrderPopular, OrderRecent, OrderTrending, OrderMostCommented}

func (o Order) Label() string {
	switch o {
	case OrderPopular:
		return "Popular"
	case OrderRecent:
		return "Recent"
	case OrderTrending:
		return "Trending"
	case OrderMostCommented:
		return "Most Commented"
	default:
		return "Any"
	}
}

// FilterTags are the tag chips offered on the Dribbble page.
var FilterTags = []string{"Mobile", "Web", "Illustration", "Animation", "Branding"}

type Shot struct {
	ID       int
	Title    string
	Author   string
	Likes    int
	Views    int
	Comments int
	Tags     []string
	Platform Platform
}

type Filter struct {
	Search string
	// Tags matches shots carrying any of these tags, case-insensitively.
	Tags  []string
	Order Order
}

// IsZero reports whether f leaves the list unchanged.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && len(f.Tags) == 0 && f.Order == OrderNone
}

// ToggleTag adds tag to the selection or removes it if already present.
func (f Filter) ToggleTag(tag string) Filter {
	tags := slices.Clone(f.Tags)
	if i := slices.IndexFunc(tags, func(t string) bool { return strings.EqualFold(t, tag) }); i >= 0 {
		f.Tags = slices.Delete(tags, i, i+1)
		return f
	}
	f.Tags = append(tags, tag)
	return f
}

func (f Filter) predicates() []listview.Predicate[Shot] {
	return []listview.Predicate[Shot]{
		func(s Shot) bool { return listview.MatchAny(f.Search, s.Title, s.Author) },
		func(s Shot) bool {
			if len(f.Tags) == 0 {
				return true
			}
			return slices.ContainsFunc(s.Tags, func(t string) bool {
				return slices.ContainsFunc(f.Tags, func(want string) bool { return strings.EqualFold(t, want) })
			})
		},
	}
}

func (o Order) compare() listview.Compare[Shot] {
	switch o {
	case OrderPopular:
		return func(a, b Shot) int { return cmp.Compare(b.Likes, a.Likes) }
	case OrderRecent:
		return func(a, b Shot) int { return cmp.Compare(b.ID, a.ID) }
	case OrderTrending:
		return func(a, b Shot) int { return cmp.Compare(b.Views, a.Views) }
	case OrderMostCommented:
		return func(a, b Shot) int { return cmp.Compare(b.Comments, a.Comments) }
	default:
		return nil
	}
}

// Query filters and orders shots. The input slice is left untouched.
func Query(shots []Shot, f Filter) []Shot {
	return listview.Apply(shots, listview.Query[Shot]{
		Filters: f.predicates(),
		Compare: f.Order.compare(),
	})
}

// Shots returns the catalog for p.
func Shots(p Platform) []Shot {
	var src []Shot
	switch p {
	case Dribbble:
		src = dribbbleShots
	case Behance:
		src = behanceDesigns
	}
	out := make([]Shot, len(src))
	for i, s := range src {
		s.Tags = slices.Clone(s.Tags)
		s.Platform = p
		out[i] = s
	}
	return out
}

var dribbbleShots = []Shot{
	{ID: 1, Title: "Banking App Dashboard", Author: "Niranjan", Likes: 423, Views: 5280, Comments: 28, Tags: []string{"Mobile", "UI Design", "Banking"}},
	{ID: 2, Title: "E-commerce Website Design", Author: "Emily Wong", Likes: 367, Views: 4892, Comments: 15, Tags: []string{"Web", "E-commerce", "Redesign"}},
	{ID: 3, Title: "Illustration Set for Startup", Author: "Alex Johnson", Likes: 298, Views: 3765, Comments: 8, Tags: []string{"Illustration", "Startup", "Branding"}},
	{ID: 4, Title: "Animated Icon Pack", Author: "Sarah Lee", Likes: 512, Views: 6123, Comments: 32, Tags: []string{"Animation", "Icon", "UI/UX"}},
	{ID: 5, Title: "Mobile Banking App Case Study", Author: "Niranjan", Likes: 342, Views: 5789, Comments: 18, Tags: []string{"UI/UX", "Mobile", "Banking"}},
	{ID: 6, Title: "E-commerce Website Redesign", Author: "Emily Wong", Likes: 278, Views: 4321, Comments: 12, Tags: []string{"Website", "E-commerce", "Redesign"}},
}

var behanceDesigns = []Shot{
	{ID: 1, Title: "Mobile Banking App Case Study", Author: "Niranjan", Likes: 342, Views: 5789, Tags: []string{"UI/UX", "Mobile", "Banking"}},
	{ID: 2, Title: "E-commerce Website Redesign", Author: "Emily Wong", Likes: 278, Views: 4321, Tags: []string{"Website", "UI", "Redesign"}},
	{ID: 3, Title: "Travel App Design Concept", Author: "Alex Johnson", Likes: 512, Views: 7234, Tags: []string{"App Design", "Travel", "UX"}},
	{ID: 4, Title: "Landing Page for SaaS Product", Author: "Sarah Lee", Likes: 189, Views: 2987, Tags: []string{"UI", "SaaS", "Product"}},
	{ID: 5, Title: "Fitness Tracker Mobile App", Author: "David Kim", Likes: 456, Views: 6123, Tags: []string{"Mobile App", "Fitness", "UI"}},
	{ID: 6, Title: "Online Education Platform", Author: "Megan Chen", Likes: 321, Views: 4890, Tags: []string{"Education", "Web", "Design"}},
}
