package feeds

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"projector/internal/gallery"
	"projector/internal/tui/shared"
	"projector/internal/tui/theme"
)

var galleryOrders = append([]gallery.Order{gallery.OrderNone}, gallery.Orders...)

// Gallery lists one platform's shots. Keys 1-5 are taken by global
// navigation, so tags are toggled by moving a tag cursor with [ and ].
type Gallery struct {
	platform gallery.Platform
	title    string
	all      []gallery.Shot
	filter   gallery.Filter
	search   shared.SearchBar
	items    []gallery.Shot
	cursor   int
	tag      int
	width    int
}

func NewGallery(p gallery.Platform) *Gallery {
	title := "Dribbble"
	if p == gallery.Behance {
		title = "Behance"
	}
	g := &Gallery{
		platform: p,
		title:    title,
		all:      gallery.Shots(p),
		search:   shared.NewSearchBar("Search " + title + "..."),
	}
	g.Refresh()
	return g
}

func (g *Gallery) Refresh() {
	g.filter.Search = g.search.Query()
	g.items = gallery.Query(g.all, g.filter)
	g.cursor = shared.ClampCursor(g.cursor, len(g.items))
}

func (g *Gallery) SetSize(width, _ int) { g.width = width }

func (g *Gallery) Capturing() bool { return g.search.Active() }

func (g *Gallery) Hints() string {
	return "/:search [/]:pick tag t:toggle tag o:order x:reset"
}

func (g *Gallery) Help() shared.HelpSection {
	return shared.HelpSection{Title: g.title, Binds: []shared.HelpBind{
		{Key: "/", Desc: "Search titles and authors"},
		{Key: "[ / ]", Desc: "Move the tag cursor"},
		{Key: "t", Desc: "Toggle the tag under the cursor"},
		{Key: "o", Desc: "Cycle ordering"},
		{Key: "x", Desc: "Reset filters"},
	}}
}

func (g *Gallery) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if g.search.Active() {
		cmd, changed := g.search.Update(k)
		if changed {
			g.Refresh()
		}
		return cmd
	}
	if next, ok := shared.MoveCursor(k.String(), g.cursor, len(g.items)); ok {
		g.cursor = next
		return nil
	}
	switch k.String() {
	case "/":
		return g.search.Start()
	case "[":
		g.tag = (g.tag - 1 + len(gallery.FilterTags)) % len(gallery.FilterTags)
	case "]":
		g.tag = (g.tag + 1) % len(gallery.FilterTags)
	case "t":
		g.filter = g.filter.ToggleTag(gallery.FilterTags[g.tag])
		g.Refresh()
	case "o":
		g.filter.Order = shared.Next(galleryOrders, g.filter.Order)
		g.Refresh()
	case "x":
		g.filter = gallery.Filter{}
		g.search = shared.NewSearchBar("Search " + g.title + "...")
		g.Refresh()
	}
	return nil
}

func (g *Gallery) chips() string {
	out := make([]string, len(gallery.FilterTags))
	for i, t := range gallery.FilterTags {
		var label string
		if slices.ContainsFunc(g.filter.Tags, func(s string) bool { return strings.EqualFold(s, t) }) {
			label = theme.Tag.Render(t)
		} else {
			label = theme.Muted.Render(t)
		}
		if i == g.tag {
			label = "[" + label + "]"
		} else {
			label = " " + label + " "
		}
		out[i] = label
	}
	return strings.Join(out, " ")
}

func (g *Gallery) View() string {
	var b strings.Builder
	b.WriteString(shared.Heading(g.title, fmt.Sprintf("%d shot(s) · order: %s", len(g.items), g.filter.Order.Label())) + "\n")
	if s := g.search.View(); s != "" {
		b.WriteString(s + "\n")
	}
	b.WriteString(g.chips() + "\n\n")
	if len(g.items) == 0 {
		b.WriteString(theme.Muted.Render("No shots match these filters."))
		return b.String()
	}
	for i, s := range g.items {
		line := fmt.Sprintf("%-34s %s  %s",
			shared.Truncate(s.Title, 34), theme.Muted.Render("by "+s.Author),
			theme.Muted.Render(fmt.Sprintf("♥ %d  ◉ %d  ✉ %d", s.Likes, s.Views, s.Comments)))
		if len(s.Tags) > 0 {
			line += "  " + theme.Tag.Render(strings.Join(s.Tags, " "))
		}
		b.WriteString(shared.Row(i == g.cursor, line) + "\n")
	}
	return b.String()
}
