package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"projector/internal/activity"
	"projector/internal/gallery"
	"projector/internal/stats"
	"projector/internal/workspace"
)

func (a *app) activityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the recent activity feed",
	}

	var typ string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List activity grouped by day",
		Args:    cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			if typ != "" && typ != "all" && !validType(typ) {
				return fmt.Errorf("unknown activity type %q (want one of %s)", typ, strings.Join(activity.Types, ", "))
			}
			out := cmd.OutOrStdout()
			groups := ws.Activity.Grouped(typ, ws.Now())
			if len(groups) == 0 {
				printf(out, "No activity\n")
				return nil
			}
			for _, g := range groups {
				printf(out, "%s\n", g.Label)
				for _, it := range g.Items {
					printf(out, "  %s %s  %s  %s (%s)\n", it.Timestamp.Format("15:04"), it.Icon(), it.Title, it.Description, it.User.Name)
				}
			}
			return nil
		}),
	}
	list.Flags().StringVarP(&typ, "type", "t", "", "Filter by type: "+strings.Join(activity.Types, ", "))

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Remove every activity item",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			if err := ws.Activity.Clear(); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Activity cleared\n")
			return nil
		}),
	}

	cmd.AddCommand(list, clear)
	return cmd
}

func validType(typ string) bool {
	for _, t := range activity.Types {
		if t == typ {
			return true
		}
	}
	return false
}

func (a *app) mentionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mentions [search]",
		Short: "List comments that mention you",
		Args:  cobra.ArbitraryArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			u, _ := ws.Session.Current()
			ms := activity.Mentions(u.Name)
			if len(args) > 0 {
				ms = activity.SearchMentions(ms, strings.Join(args, " "))
			}
			out := cmd.OutOrStdout()
			for _, m := range ms {
				printf(out, "%s in %s, %s\n  %s\n", m.Author, m.Project, m.Time, m.Content)
			}
			printf(out, "\n%d mention(s)\n", len(ms))
			return nil
		}),
	}
}

func (a *app) statsCmd() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show productivity statistics",
		Args:  cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			p, err := stats.ParsePeriod(period)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			sum := ws.Summary()
			printf(out, "Tasks:  %d (%d done, avg %d%%)\n", sum.Tasks, sum.TasksDone, sum.AvgProgress)
			printf(out, "Goals:  %d (%d done, %d%%, %d overdue)\n", sum.Goals, sum.GoalsDone, sum.GoalCompletion, sum.OverdueGoals)
			printf(out, "Notes:  %d (%d pinned)\n", sum.Notes, sum.PinnedNotes)
			printf(out, "Events today: %d\n\n", sum.EventsToday)

			series := stats.Series(p)
			printf(out, "Working hours (%s): %.1fh\n", p, stats.TotalHours(series))
			for _, pt := range series {
				printf(out, "  %-7s %6.1f %s\n", pt.Name, pt.Hours, bar(pt.Hours, maxHours(series), 20))
			}

			done, total, pct := stats.CompletionRate(stats.TaskHistory())
			printf(out, "\nTask completion: %d/%d (%d%%)\n", done, total, pct)

			printf(out, "\nProject distribution\n")
			for _, s := range stats.ProjectDistribution() {
				printf(out, "  %-20s %3d%%\n", s.Name, s.Value)
			}

			printf(out, "\nChallenges\n")
			for _, c := range stats.Challenges() {
				printf(out, "  %-20s %-7s %s\n", c.Name, c.Status, c.ActionsLabel())
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&period, "period", "p", string(stats.Weekly), "weekly, monthly or yearly")
	return cmd
}

func maxHours(series []stats.Point) float64 {
	var m float64
	for _, p := range series {
		m = max(m, p.Hours)
	}
	return m
}

func bar(v, top float64, width int) string {
	if top <= 0 {
		return ""
	}
	return strings.Repeat("#", int(v/top*float64(width)+0.5))
}

func (a *app) galleryCmd() *cobra.Command {
	var (
		search string
		tags   []string
		order  string
	)
	cmd := &cobra.Command{
		Use:       "gallery <dribbble|behance>",
		Short:     "Browse showcase shots",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(gallery.Dribbble), string(gallery.Behance)},
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			p := gallery.Platform(strings.ToLower(args[0]))
			if p != gallery.Dribbble && p != gallery.Behance {
				return fmt.Errorf("unknown platform %q (want dribbble or behance)", args[0])
			}
			o := gallery.Order(order)
			if o != gallery.OrderNone && o.Label() == gallery.OrderNone.Label() {
				return fmt.Errorf("unknown order %q", order)
			}
			shots := gallery.Query(gallery.Shots(p), gallery.Filter{Search: search, Tags: tags, Order: o})
			out := cmd.OutOrStdout()
			for _, s := range shots {
				printf(out, "%-32s by %-18s %6d likes %7d views %4d comments  [%s]\n",
					s.Title, s.Author, s.Likes, s.Views, s.Comments, strings.Join(s.Tags, ", "))
			}
			printf(out, "\n%d shot(s)\n", len(shots))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search titles and authors")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Only shots with any of these tags")
	cmd.Flags().StringVar(&order, "order", "", "popular, recent, trending or mostCommented")
	return cmd
}
