package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"projector/internal/agenda"
	"projector/internal/dates"
	"projector/internal/workspace"
)

func (a *app) eventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage agenda events",
	}

	var form agenda.EventForm
	var on string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Schedule an event",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			day := ws.Today()
			if on != "" {
				d, err := dates.Parse(on)
				if err != nil {
					return err
				}
				day = d
			}
			form.Title = strings.Join(args, " ")
			e, err := ws.Events.Add(day, form)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Added: %s on %s at %s\nID: %s\n", e.Title, e.Date, e.Time, e.ID)
			return nil
		}),
	}
	add.Flags().StringVar(&on, "date", "", "Date as YYYY-MM-DD (default today)")
	add.Flags().StringVar(&form.Time, "time", "", "Start time as HH:MM")
	add.Flags().StringVar(&form.Duration, "duration", "30 min", "Duration, e.g. \"30 min\"")
	add.Flags().StringVar(&form.Location, "location", "", "Location")
	add.Flags().StringVar(&form.Participants, "with", "", "Comma-separated participants")

	var view, from string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the agenda for a day, week or month",
		Args:    cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			anchor := ws.Today()
			if from != "" {
				d, err := dates.Parse(from)
				if err != nil {
					return err
				}
				anchor = d
			}
			t := anchor.Time(time.Local)
			var r agenda.DateRange
			switch view {
			case "week":
				r = agenda.WeekRange(t)
			case "month":
				r = agenda.MonthRange(t)
			default:
				r = agenda.DayRange(t)
			}

			out := cmd.OutOrStdout()
			today := ws.Today()
			buckets := agenda.Query(r, ws.Events.List(), ws.Goals.List(), ws.Notes.List())
			if overdue := agenda.Overdue(ws.Goals.List(), today); len(overdue) > 0 && r.Contains(today) {
				printf(out, "Overdue\n")
				for _, it := range overdue {
					printf(out, "  ! %s (due %s)\n", it.Title(), it.Date)
				}
			}
			for _, b := range buckets {
				printf(out, "%s\n", dates.Relative(b.Date, today))
				for _, it := range b.Events {
					e := it.Event
					printf(out, "  [%s] %s %s (%s)", shortID(e.ID), e.Time, e.Title, e.Duration)
					if e.Location != "" {
						printf(out, " @ %s", e.Location)
					}
					printf(out, "\n")
				}
				for _, it := range b.Goals {
					printf(out, "  goal: %s\n", it.Title())
				}
				for _, it := range b.CompletedGoals {
					printf(out, "  goal (done): %s\n", it.Title())
				}
				for _, it := range b.Notes {
					printf(out, "  note: %s\n", it.Title())
				}
			}
			if len(buckets) == 0 {
				printf(out, "Nothing scheduled.\n")
			}
			return nil
		}),
	}
	list.Flags().StringVar(&view, "view", "day", "day, week or month")
	list.Flags().StringVar(&from, "date", "", "Anchor date as YYYY-MM-DD (default today)")

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			e, err := resolveID(ws.Events.List(), func(e agenda.Event) string { return e.ID }, args[0], "event")
			if err != nil {
				return err
			}
			if err := ws.Events.Delete(e.ID); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Deleted: %s\n", e.Title)
			return nil
		}),
	}

	cmd.AddCommand(add, list, del)
	return cmd
}
