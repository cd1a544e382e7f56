package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"projector/internal/work"
	"projector/internal/workspace"
)

func (a *app) workCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Manage work items",
	}
	find := func(ws *workspace.Workspace, id string) (work.Item, error) {
		return resolveID(ws.Work.List(), func(it work.Item) string { return it.ID }, id, "work item")
	}

	var in work.NewItem
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a work item",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			in.Title = strings.Join(args, " ")
			in.Assignee = currentMember(ws)
			it, err := ws.Work.Add(in)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Added: %s\nID: %s\n", it.Title, it.ID)
			return nil
		}),
	}
	add.Flags().StringVar(&in.Path, "path", work.DefaultPath, "Breadcrumb path, e.g. \"Publications / Shots\"")
	add.Flags().StringVar(&in.Progress, "progress", work.DefaultProgress, "Progress as done/total")
	add.Flags().StringVar(&in.Date, "date", "", "Display date, e.g. \"July 22\"")
	add.Flags().StringVarP(&in.Description, "description", "d", "", "Description")

	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List work items grouped by space",
		Args:    cobra.NoArgs,
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			out := cmd.OutOrStdout()
			items := ws.Work.List()
			for _, it := range items {
				pct := "  ?%"
				if p, ok := it.Percent(); ok {
					pct = fmt.Sprintf("%3d%%", p)
				}
				printf(out, "[%s] %s %s  %s (%s) %s\n", shortID(it.ID), pct, it.Title, it.Path, it.Progress, it.Date)
				if len(it.Tags) > 0 {
					var tags []string
					for _, t := range it.Tags {
						tags = append(tags, "#"+t.Text)
					}
					printf(out, "        %s\n", strings.Join(tags, " "))
				}
			}
			printf(out, "\n%d item(s)", len(items))
			if spaces := workspace.BuildSpaces(items); len(spaces) > 0 {
				var parts []string
				for _, s := range spaces {
					parts = append(parts, s.Name)
				}
				printf(out, " in %s", strings.Join(parts, ", "))
			}
			printf(out, "\n")
			return nil
		}),
	}

	progress := &cobra.Command{
		Use:   "progress <id> <done/total>",
		Short: "Set work item progress",
		Args:  cobra.ExactArgs(2),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			it, err := find(ws, args[0])
			if err != nil {
				return err
			}
			if _, _, err := work.ParseProgress(args[1]); err != nil {
				return err
			}
			if it, err = ws.Work.SetProgress(it.ID, args[1]); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s: %s\n", it.Title, it.Progress)
			return nil
		}),
	}

	var color string
	tag := &cobra.Command{
		Use:   "tag <id> <text>",
		Short: "Tag a work item",
		Args:  cobra.MinimumNArgs(2),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			it, err := find(ws, args[0])
			if err != nil {
				return err
			}
			if it, err = ws.Work.AddTag(it.ID, strings.Join(args[1:], " "), color); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s now has %d tag(s)\n", it.Title, len(it.Tags))
			return nil
		}),
	}
	tag.Flags().StringVar(&color, "color", work.DefaultTagColor, "Tag color classes")

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a work item",
		Args:    cobra.ExactArgs(1),
		RunE: a.authed(func(cmd *cobra.Command, args []string, ws *workspace.Workspace) error {
			it, err := find(ws, args[0])
			if err != nil {
				return err
			}
			if err := ws.Work.Delete(it.ID); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Deleted: %s\n", it.Title)
			return nil
		}),
	}

	cmd.AddCommand(add, list, progress, tag, del)
	return cmd
}
