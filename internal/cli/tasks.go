package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"projector/internal/dates"
	"projector/internal/listview"
	"projector/internal/tasks"
	"projector/internal/team"
	"projector/internal/workspace"
)

func parsePercent(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return 0, fmt.Errorf("invalid progress %q, want 0-100", s)
	}
	return n, nil
}

func names(ms []team.Member) string {
	if n := team.Names(ms); len(n) > 0 {
		return strings.Join(n, ", ")
	}
	return "-"
}

func currentMember(ws *workspace.Workspace) *team.Member {
	if u, ok := ws.Session.Current(); ok {
		m := u.Member()
		return &m
	}
	return nil
}

func (a *app) taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage dashboard tasks",
	}

	var in tasks.NewTask
	add := &cobra.Command{
		Use:     "add <title>",
		Aliases: []string{"a"},
		Short:   "Add a task assigned to you",
		Args:    cobra.MinimumNArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			in.Title = strings.Join(args, " ")
			in.Assignee = currentMember(ws)
			t, err := ws.Tasks.Add(in)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Added: %s\nID: %s\n", t.Title, t.ID)
			return nil
		}),
	}
	add.Flags().StringVarP(&in.Platform, "platform", "p", tasks.Platforms[0], "Platform")
	add.Flags().StringVar(&in.Priority, "priority", "", "Priority label")
	add.Flags().StringVar(&in.DueTime, "due", "", "Due time as H:MM:SS")
	add.Flags().StringVarP(&in.Description, "description", "d", "", "Description")

	var f tasks.Filter
	var sortKey string
	var desc bool
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			o := tasks.Order{Direction: listview.Asc}
			if desc {
				o.Direction = listview.Desc
			}
			if sortKey != "" {
				k, err := tasks.ParseSortKey(sortKey)
				if err != nil {
					return err
				}
				o.Key = k
			}
			ts := ws.Tasks.Query(f, o)
			out := cmd.OutOrStdout()
			if len(ts) == 0 {
				printf(out, "No tasks found.\n")
				return nil
			}
			for _, t := range ts {
				status := " "
				if t.Done() {
					status = "x"
				}
				printf(out, "[%s] %s %3d%% %s (%s, due %s)\n", shortID(t.ID), status, t.Progress, t.Title, t.Platform, t.DueTime)
				printf(out, "        %s\n", names(t.Assignees))
			}
			printf(out, "\n%d task(s)\n", len(ts))
			return nil
		}),
	}
	list.Flags().StringVarP(&f.Platform, "platform", "p", "", "Filter by platform")
	list.Flags().StringVarP(&f.Search, "search", "s", "", "Search title and description")
	list.Flags().StringVar(&sortKey, "sort", "", "Sort by progress, title or createdAt")
	list.Flags().BoolVar(&desc, "desc", false, "Sort descending")

	progress := &cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Set task progress",
		Args:  cobra.ExactArgs(2),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			t, err := resolveID(ws.Tasks.List(), func(t tasks.Task) string { return t.ID }, args[0], "task")
			if err != nil {
				return err
			}
			n, err := parsePercent(args[1])
			if err != nil {
				return err
			}
			t, err = ws.Tasks.SetProgress(t.ID, n)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s: %d%%\n", t.Title, t.Progress)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm", "del"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			t, err := resolveID(ws.Tasks.List(), func(t tasks.Task) string { return t.ID }, args[0], "task")
			if err != nil {
				return err
			}
			if err := ws.Tasks.Delete(t.ID); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Deleted: %s\n", t.Title)
			return nil
		}),
	}

	cmd.AddCommand(add, list, progress, del)
	return cmd
}

func (a *app) trendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Manage trending tasks and their timers",
	}
	find := func(ws *workspace.Workspace, id string) (tasks.TrendingTask, error) {
		return resolveID(ws.Trending.List(), func(t tasks.TrendingTask) string { return t.ID }, id, "task")
	}

	var in tasks.NewTrendingTask
	var due string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a trending task",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			d, err := dates.ParsePtr(due)
			if err != nil {
				return err
			}
			in.Title = strings.Join(args, " ")
			in.DueDate = d
			in.Assignee = currentMember(ws)
			t, err := ws.Trending.Add(in)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Added: %s\nID: %s\n", t.Title, t.ID)
			return nil
		}),
	}
	add.Flags().StringVarP(&in.Platform, "platform", "p", tasks.Platforms[0], "Platform")
	add.Flags().StringVar(&due, "due", "", "Due date as YYYY-MM-DD")
	add.Flags().StringVarP(&in.Description, "description", "d", "", "Description")

	var platform, sortKey string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List trending tasks",
		Args:    cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			var key tasks.SortKey
			if sortKey != "" {
				k, err := tasks.ParseSortKey(sortKey)
				if err != nil {
					return err
				}
				key = k
			}
			out := cmd.OutOrStdout()
			ts := ws.Trending.Query(platform, key)
			for _, t := range ts {
				dueStr := "-"
				if t.DueDate != nil {
					dueStr = t.DueDate.String()
				}
				printf(out, "[%s] %3d%% %s (%s) spent %s due %s\n", shortID(t.ID), t.Progress, t.Title, t.Platform, t.TimeSpent, dueStr)
			}
			printf(out, "\n%d task(s)\n", len(ts))
			return nil
		}),
	}
	list.Flags().StringVarP(&platform, "platform", "p", "", "Filter by platform")
	list.Flags().StringVar(&sortKey, "sort", "", "Sort by progress, title or date")

	progress := &cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Set trending task progress",
		Args:  cobra.ExactArgs(2),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			t, err := find(ws, args[0])
			if err != nil {
				return err
			}
			n, err := parsePercent(args[1])
			if err != nil {
				return err
			}
			if t, err = ws.Trending.SetProgress(t.ID, n); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s: %d%%\n", t.Title, t.Progress)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a trending task",
		Args:    cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			t, err := find(ws, args[0])
			if err != nil {
				return err
			}
			if err := ws.Trending.Delete(t.ID); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Deleted: %s\n", t.Title)
			return nil
		}),
	}

	var limit time.Duration
	timer := &cobra.Command{
		Use:   "timer <id>",
		Short: "Track time on a task until interrupted",
		Long: `Starts the task timer and blocks until Ctrl-C (or --for elapses), then
adds the elapsed time to the task.`,
		Args: cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			t, err := find(ws, args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if limit > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, limit)
				defer cancel()
			}

			if err := ws.Trending.StartTimer(t.ID); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Tracking %s, press Ctrl-C to stop\n", t.Title)
			<-ctx.Done()

			t, err = ws.Trending.StopTimer(t.ID)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s\n", tasks.ShareText(t))
			return nil
		}),
	}
	timer.Flags().DurationVar(&limit, "for", 0, "Stop automatically after this long")

	cmd.AddCommand(add, list, progress, del, timer)
	return cmd
}
