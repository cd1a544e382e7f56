// Package routes maps paths to pages and applies the sign-in redirects.
package routes

import (
	"slices"
	"strings"
)

// Page identifies a screen.
type Page string

const (
	Dashboard  Page = "dashboard"
	Notes      Page = "notes"
	Goals      Page = "goals"
	Activity   Page = "activity"
	Agenda     Page = "agenda"
	Mentions   Page = "mentions"
	Statistics Page = "statistics"
	Settings   Page = "settings"
	Profile    Page = "profile"
	Dribbble   Page = "dribbble"
	Behance    Page = "behance"
	NewTask    Page = "new-task"
	Login      Page = "login"
	NotFound   Page = "not-found"
)

const (
	Root          = "/"
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

type Route struct {
	Path  string
	Page  Page
	Label string
	// Nav marks routes listed in the sidebar.
	Nav bool
}

var table = []Route{
	{Path: DashboardPath, Page: Dashboard, Label: "Home", Nav: true},
	{Path: "/notes", Page: Notes, Label: "Notes", Nav: true},
	{Path: "/goals", Page: Goals, Label: "Goals", Nav: true},
	{Path: "/activity", Page: Activity, Label: "Activity", Nav: true},
	{Path: "/agenda", Page: Agenda, Label: "Agenda", Nav: true},
	{Path: "/mentions", Page: Mentions, Label: "Mentions", Nav: true},
	{Path: "/statistics", Page: Statistics, Label: "Statistics", Nav: true},
	{Path: "/settings", Page: Settings, Label: "Settings", Nav: true},
	{Path: "/dribbble", Page: Dribbble, Label: "Dribbble", Nav: true},
	{Path: "/behance", Page: Behance, Label: "Behance", Nav: true},
	{Path: "/profile", Page: Profile, Label: "Profile"},
	{Path: "/new-task", Page: NewTask, Label: "New Task"},
	{Path: LoginPath, Page: Login, Label: "Login"},
}

// All returns the route table.
func All() []Route { return slices.Clone(table) }

// Nav returns the sidebar routes in display order.
func Nav() []Route {
	var out []Route
	for _, r := range table {
		if r.Nav {
			out = append(out, r)
		}
	}
	return out
}

// Lookup finds the route for path without applying redirects.
func Lookup(path string) (Route, bool) {
	path = Clean(path)
	i := slices.IndexFunc(table, func(r Route) bool { return r.Path == path })
	if i < 0 {
		return Route{}, false
	}
	return table[i], true
}

// PathOf returns the path serving page, or "" for NotFound.
func PathOf(p Page) string {
	for _, r := range table {
		if r.Page == p {
			return r.Path
		}
	}
	return ""
}

// Clean lowercases path, adds a leading slash and strips trailing ones.
func Clean(path string) string {
	path = strings.ToLower(strings.TrimSpace(path))
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = Root
		}
	}
	return path
}

// Resolution is where a navigation lands.
type Resolution struct {
	Route Route
	// Redirected is set when the landing path differs from the request.
	Redirected bool
}

// Resolve applies the navigation rules: "/" goes to the dashboard, signed-out
// users land on the login page, signed-in users skip it, and unknown paths
// resolve to NotFound.
func Resolve(path string, authed bool) Resolution {
	path = Clean(path)
	target := path
	if target == Root {
		target = DashboardPath
	}
	switch {
	case !authed && target != LoginPath:
		target = LoginPath
	case authed && target == LoginPath:
		target = DashboardPath
	}
	r, ok := Lookup(target)
	if !ok {
		return Resolution{Route: Route{Path: path, Page: NotFound, Label: "Not Found"}}
	}
	return Resolution{Route: r, Redirected: target != path}
}
