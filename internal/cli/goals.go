package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"projector/internal/dates"
	"projector/internal/goals"
	"projector/internal/listview"
	"projector/internal/workspace"
)

type goalFlags struct {
	priority string
	due      string
	category string
}

func (gf *goalFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&gf.priority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&gf.due, "due", "", "Due date as YYYY-MM-DD (\"none\" clears it)")
	cmd.Flags().StringVar(&gf.category, "category", "", "Category: "+strings.Join(goals.Categories, ", "))
}

// apply overlays the flags that were set onto in.
func (gf *goalFlags) apply(cmd *cobra.Command, in *goals.NewGoal) error {
	if cmd.Flags().Changed("priority") {
		p, err := goals.ParsePriority(gf.priority)
		if err != nil {
			return err
		}
		in.Priority = p
	}
	if cmd.Flags().Changed("due") {
		if gf.due == "none" {
			in.DueDate = nil
		} else {
			d, err := dates.ParsePtr(gf.due)
			if err != nil {
				return err
			}
			in.DueDate = d
		}
	}
	if cmd.Flags().Changed("category") {
		in.Category = gf.category
	}
	return nil
}

func (a *app) goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}
	find := func(ws *workspace.Workspace, id string) (goals.Goal, error) {
		return resolveID(ws.Goals.List(), func(g goals.Goal) string { return g.ID }, id, "goal")
	}

	var addFlags goalFlags
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			in := goals.NewGoal{Text: strings.Join(args, " "), Priority: goals.PriorityMedium}
			if err := addFlags.apply(cmd, &in); err != nil {
				return err
			}
			g, err := ws.Goals.Add(in)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Added: %s\nID: %s\n", g.Text, g.ID)
			return nil
		}),
	}
	addFlags.register(add)

	var status, priority, sortKey string
	var desc bool
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals",
		Args:    cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			f := goals.Filter{Status: goals.Status(status)}
			if !listview.IsAll(priority) {
				p, err := goals.ParsePriority(priority)
				if err != nil {
					return err
				}
				f.Priority = p
			}
			o := goals.DefaultOrder
			if sortKey != "" {
				k, err := goals.ParseSortKey(sortKey)
				if err != nil {
					return err
				}
				o.Key = k
			}
			if desc {
				o.Direction = listview.Desc
			}

			out := cmd.OutOrStdout()
			today := ws.Today()
			gs := ws.Goals.Query(f, o)
			for _, g := range gs {
				check := " "
				if g.Completed {
					check = "x"
				}
				due := ""
				if g.DueDate != nil {
					due = " - " + dates.DaysUntil(*g.DueDate, today)
				}
				printf(out, "[%s] [%s] %s (%s, %s)%s\n", shortID(g.ID), check, g.Text, g.Priority, g.Category, due)
			}
			printf(out, "\n%d goal(s), %d%% complete\n", len(gs), ws.Goals.CompletionPercentage())
			return nil
		}),
	}
	list.Flags().StringVar(&status, "status", string(goals.StatusAll), "all, active or completed")
	list.Flags().StringVar(&priority, "priority", "all", "Filter by priority")
	list.Flags().StringVar(&sortKey, "sort", "", "Sort by dueDate, priority or createdAt")
	list.Flags().BoolVar(&desc, "desc", false, "Sort descending")

	toggle := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Toggle goal completion",
		Args:    cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			g, err := find(ws, args[0])
			if err != nil {
				return err
			}
			if g, err = ws.Goals.Toggle(g.ID); err != nil {
				return err
			}
			state := "Reopened"
			if g.Completed {
				state = "Completed"
			}
			printf(cmd.OutOrStdout(), "%s: %s\n", state, g.Text)
			return nil
		}),
	}

	var editFlags goalFlags
	edit := &cobra.Command{
		Use:   "edit <id> [text]",
		Short: "Edit a goal; unset flags keep their values",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			g, err := find(ws, args[0])
			if err != nil {
				return err
			}
			in := goals.NewGoal{Text: g.Text, Priority: g.Priority, DueDate: g.DueDate, Category: g.Category}
			if len(args) > 1 {
				in.Text = strings.Join(args[1:], " ")
			}
			if err := editFlags.apply(cmd, &in); err != nil {
				return err
			}
			if g, err = ws.Goals.Update(g.ID, in); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Updated: %s\n", g.Text)
			return nil
		}),
	}
	editFlags.register(edit)

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a goal",
		Args:    cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			g, err := find(ws, args[0])
			if err != nil {
				return err
			}
			if err := ws.Goals.Delete(g.ID); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Deleted: %s\n", g.Text)
			return nil
		}),
	}

	cmd.AddCommand(add, list, toggle, edit, del)
	return cmd
}
